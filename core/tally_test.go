package core

import (
	"testing"

	"edcchain/core/types"
)

func TestFeeFlushMovesPendingIntoPoolsAndVesting(t *testing.T) {
	tc := newTestChain(t, ProcessorConfig{})
	payer := newMember(tc.s, "payer")

	// Fees charged during the interval sit in the statistics row;
	// they are already part of the supply.
	stats := tc.s.AccountStats(payer)
	stats.PendingFees = 400
	stats.PendingVestedFees = 150
	tc.s.CoreDynamic().CurrentSupply += 550

	tc.runMaintenance(t)
	tc.checkUniversalInvariants(t)

	if stats.PendingFees != 0 || stats.PendingVestedFees != 0 {
		t.Fatalf("pending fees not flushed: %+v", stats)
	}
	if stats.LifetimeFeesPaid != 550 {
		t.Fatalf("lifetime fees %d, want 550", stats.LifetimeFeesPaid)
	}
	if got := tc.s.MustAccount(payer).CashbackVesting; got != 150 {
		t.Fatalf("cashback vesting %d, want 150", got)
	}
	// The network share of flushed fees feeds the next budget and is
	// zeroed by it in the same pass.
	recs := tc.s.BudgetRecords()
	rec := recs[len(recs)-1].Record
	if rec.FromAccumulatedFees != 400 {
		t.Fatalf("budget saw %d accumulated fees, want 400", rec.FromAccumulatedFees)
	}
	if tc.s.CoreDynamic().AccumulatedFees != 0 {
		t.Fatalf("accumulated fees not consumed by the budget")
	}
}

func TestCashbackVestingCountsAsVotingStake(t *testing.T) {
	tc := newTestChain(t, ProcessorConfig{})
	extra := tc.s.CreateWitness(newMember(tc.s, "candidate"))

	voter := newMember(tc.s, "voter")
	acct := tc.s.MustAccount(voter)
	acct.Options.Votes = []types.VoteID{extra.VoteID}
	acct.CashbackVesting = 30_000
	tc.s.CoreDynamic().CurrentSupply += 30_000
	tc.fund(voter, types.CoreAssetID, 20_000)
	tc.s.AccountStats(voter).TotalCoreInOrders = 10_000
	tc.s.CoreDynamic().CurrentSupply += 10_000
	// Stake in orders needs a backing order for conservation.
	tc.s.CreateLimitOrder(&types.LimitOrder{
		Seller:       voter,
		SellAsset:    types.CoreAssetID,
		ReceiveAsset: 1,
		ForSale:      10_000,
		MinToReceive: 1,
	})

	tc.runMaintenance(t)
	tc.checkUniversalInvariants(t)

	// balance + cashback vesting + core in orders all vote.
	if extra.TotalVotes != 60_000 {
		t.Fatalf("voting stake %d, want 60000", extra.TotalVotes)
	}
}
