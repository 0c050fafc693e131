package core

import (
	"edcchain/core/types"
	"edcchain/native/votes"
)

// performAccountMaintenance walks every account in name order exactly
// once, tallying voting stake and flushing accumulated fees. The two
// concerns share the walk because both must see each account exactly
// once per pass.
func (sp *StateProcessor) performAccountMaintenance() {
	gpo := sp.s.Global
	params := gpo.Parameters

	sp.tally.Resize(gpo.NextAvailableVoteID, params.MaximumWitnessCount, params.MaximumCommitteeCount)

	for _, stakeAccount := range sp.s.AccountsByName() {
		sp.tallyAccountVotes(stakeAccount)
		sp.processAccountFees(stakeAccount)
	}
}

// tallyAccountVotes accumulates one account's voting stake into the
// scratch buffers.
func (sp *StateProcessor) tallyAccountVotes(stakeAccount *types.Account) {
	params := sp.s.Global.Parameters
	now := sp.s.Dynamic.HeadBlockTime

	if !params.CountNonMemberVotes && !stakeAccount.IsMember(now) {
		return
	}

	// The stake account votes; its opinion account (itself unless a
	// proxy is set) decides what for.
	opinionAccount := stakeAccount
	if stakeAccount.Options.VotingAccount != types.ProxyToSelfAccountID {
		if proxy, ok := sp.s.Account(stakeAccount.Options.VotingAccount); ok {
			opinionAccount = proxy
		}
	}

	stats := sp.s.AccountStats(stakeAccount.ID)
	votingStake := uint64(stats.TotalCoreInOrders) +
		uint64(stakeAccount.CashbackVesting) +
		uint64(sp.s.Balance(stakeAccount.ID, types.CoreAssetID).Balance)

	for _, id := range opinionAccount.Options.Votes {
		// Illegal offsets are ignored inside AddVote, not rejected.
		sp.tally.AddVote(id, votingStake)
	}

	// Opinions above the configured cap are clipped to the cap inside
	// AddCountOpinion; this absorbs parameter reductions gracefully.
	if opinionAccount.Options.NumWitness <= params.MaximumWitnessCount {
		votes.AddCountOpinion(sp.tally.WitnessHistogram, opinionAccount.Options.NumWitness, votingStake)
	}
	if opinionAccount.Options.NumCommittee <= params.MaximumCommitteeCount {
		votes.AddCountOpinion(sp.tally.CommitteeHistogram, opinionAccount.Options.NumCommittee, votingStake)
	}

	sp.tally.TotalVotingStake += votingStake
}

// processAccountFees flushes the fee statistics accumulated since the
// previous pass: vested fees into the account's cashback pot, plain
// fees into the core asset's accumulated pool.
func (sp *StateProcessor) processAccountFees(acct *types.Account) {
	stats := sp.s.AccountStats(acct.ID)
	if stats.PendingFees == 0 && stats.PendingVestedFees == 0 {
		return
	}

	core := sp.s.CoreDynamic()
	core.AccumulatedFees += stats.PendingFees
	acct.CashbackVesting += stats.PendingVestedFees

	stats.LifetimeFeesPaid += stats.PendingFees + stats.PendingVestedFees
	stats.PendingFees = 0
	stats.PendingVestedFees = 0
}
