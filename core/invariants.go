package core

import (
	"encoding/binary"
	"fmt"

	"lukechampine.com/blake3"

	"edcchain/core/types"
)

// coreSupplyBreakdown sums every pool the core asset can sit in.
type coreSupplyBreakdown struct {
	Balances        types.Amount
	OrdersForSale   types.Amount
	CashbackVesting types.Amount
	PendingFees     types.Amount
	AccumulatedFees types.Amount
	FBAFees         types.Amount
	WitnessBudget   types.Amount
	WorkerVesting   types.Amount
	FundPools       types.Amount
	ChequeLocked    types.Amount
}

func (sp *StateProcessor) coreBreakdown() coreSupplyBreakdown {
	var b coreSupplyBreakdown

	for _, bal := range sp.s.BalancesByAccountAsset() {
		if bal.Asset == types.CoreAssetID {
			b.Balances += bal.Balance
		}
	}
	for _, o := range sp.s.LimitOrdersByID() {
		if o.SellAsset == types.CoreAssetID {
			b.OrdersForSale += o.ForSale
		}
	}
	for _, a := range sp.s.AccountsByID() {
		b.CashbackVesting += a.CashbackVesting
		st := sp.s.AccountStats(a.ID)
		b.PendingFees += st.PendingFees + st.PendingVestedFees
	}
	b.AccumulatedFees = sp.s.CoreDynamic().AccumulatedFees
	for _, id := range []types.FBAccumulatorID{types.FBATransferToBlind, types.FBABlindTransfer, types.FBATransferFromBlind} {
		b.FBAFees += sp.s.FBA(id).AccumulatedFBAFees
	}
	b.WitnessBudget = sp.s.Dynamic.WitnessBudget
	for _, w := range sp.s.WorkersByID() {
		b.WorkerVesting += w.VestingBalance
	}
	for _, f := range sp.s.FundsByID() {
		if f.Asset == types.CoreAssetID {
			b.FundPools += f.Balance
		}
	}
	for _, d := range sp.s.AllFundDeposits() {
		if fund, ok := sp.s.Fund(d.Fund); ok && fund.Asset == types.CoreAssetID {
			b.FundPools += d.Amount
		}
	}
	for _, c := range sp.s.ChequesByID() {
		if c.Asset == types.CoreAssetID {
			b.ChequeLocked += c.AmountRemaining
		}
	}
	return b
}

func (b coreSupplyBreakdown) total() types.Amount {
	return b.Balances + b.OrdersForSale + b.CashbackVesting + b.PendingFees +
		b.AccumulatedFees + b.FBAFees + b.WitnessBudget + b.WorkerVesting +
		b.FundPools + b.ChequeLocked
}

// CheckCoreSupplyInvariant verifies conservation: the sum of every
// core-asset pool equals the recorded current supply.
func (sp *StateProcessor) CheckCoreSupplyInvariant() error {
	b := sp.coreBreakdown()
	supply := sp.s.CoreDynamic().CurrentSupply
	if b.total() != supply {
		return fmt.Errorf("%w: core pools sum to %d, current supply is %d",
			types.ErrInvariantViolation, b.total(), supply)
	}
	return nil
}

// accountingDigest fingerprints the post-pass supply accounting. Two
// nodes that applied the same pass produce the same digest.
func (sp *StateProcessor) accountingDigest() [32]byte {
	b := sp.coreBreakdown()
	dpo := sp.s.Dynamic

	buf := make([]byte, 0, 14*8)
	for _, v := range []uint64{
		uint64(sp.s.CoreDynamic().CurrentSupply),
		uint64(b.Balances),
		uint64(b.OrdersForSale),
		uint64(b.CashbackVesting),
		uint64(b.PendingFees),
		uint64(b.AccumulatedFees),
		uint64(b.FBAFees),
		uint64(b.WitnessBudget),
		uint64(b.WorkerVesting),
		uint64(b.FundPools),
		uint64(b.ChequeLocked),
		dpo.HeadBlockNumber,
		uint64(dpo.HeadBlockTime.Unix()),
		uint64(dpo.NextMaintenanceTime.Unix()),
	} {
		var word [8]byte
		binary.BigEndian.PutUint64(word[:], v)
		buf = append(buf, word[:]...)
	}
	return blake3.Sum256(buf)
}
