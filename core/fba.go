package core

import (
	"edcchain/core/types"
	"edcchain/native/fba"
)

// distributeFBABalances splits the three fee-backed-asset pools. Every
// pool uses the frozen 20/60/20 network/buyback/issuer shares.
func (sp *StateProcessor) distributeFBABalances() error {
	for _, id := range []types.FBAccumulatorID{
		types.FBATransferToBlind,
		types.FBABlindTransfer,
		types.FBATransferFromBlind,
	} {
		if err := sp.splitFBABalance(id, 20*types.Percent1, 60*types.Percent1, 20*types.Percent1); err != nil {
			return err
		}
	}
	return nil
}

func (sp *StateProcessor) splitFBABalance(id types.FBAccumulatorID, networkPct, buybackPct, issuerPct uint16) error {
	pool := sp.s.FBA(id)
	if pool.AccumulatedFBAFees == 0 {
		// Percentage validation still runs on empty pools; a bad
		// parameter set is fatal regardless of accumulation.
		_, err := fba.Split(0, networkPct, buybackPct, issuerPct)
		return err
	}

	core := sp.s.CoreDynamic()

	var designated *types.Asset
	if pool.DesignatedAsset != nil {
		designated, _ = sp.s.Asset(*pool.DesignatedAsset)
	}
	if !pool.IsConfigured(designated) {
		sp.logger.Info("fba fees burned due to non-configured pool",
			"amount", pool.AccumulatedFBAFees,
			"fba_id", uint64(id),
			"block_num", sp.s.Dynamic.HeadBlockNumber,
		)
		core.CurrentSupply -= pool.AccumulatedFBAFees
		pool.AccumulatedFBAFees = 0
		return nil
	}

	shares, err := fba.Split(pool.AccumulatedFBAFees, networkPct, buybackPct, issuerPct)
	if err != nil {
		return err
	}

	if shares.Network != 0 {
		core.CurrentSupply -= shares.Network
	}
	if shares.Buyback != 0 {
		if _, err := sp.eval.Apply(types.FBADistributeOperation{
			Account: *designated.BuybackAccount,
			FBA:     id,
			Amount:  shares.Buyback,
		}); err != nil {
			return err
		}
	}
	if shares.Issuer != 0 {
		if _, err := sp.eval.Apply(types.FBADistributeOperation{
			Account: designated.Issuer,
			FBA:     id,
			Amount:  shares.Issuer,
		}); err != nil {
			return err
		}
	}

	pool.AccumulatedFBAFees = 0
	return nil
}
