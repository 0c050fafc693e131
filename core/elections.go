package core

import (
	"sort"

	"edcchain/core/types"
	"edcchain/native/votes"
)

// updateActiveWitnesses derives the producer-set size from the stake
// histogram, elects the top candidates and rebuilds the witness
// account's authority.
func (sp *StateProcessor) updateActiveWitnesses() {
	hist := sp.tally.WitnessHistogram

	// Accounts voting for 0 or 1 witnesses abstain from the size
	// question; their bucket is excluded from the target.
	stakeTarget := (sp.tally.TotalVotingStake - hist[0]) / 2
	witnessCount := votes.DesiredCount(hist, stakeTarget)

	minCount := int(sp.s.Chain.Immutable.MinWitnessCount)
	wanted := witnessCount*2 + 1
	if wanted < minCount {
		wanted = minCount
	}

	wits := votes.TopK(sp.s.WitnessesByID(), wanted,
		func(w *types.Witness) uint64 { return sp.tally.Votes(w.VoteID) },
		func(w *types.Witness) uint64 { return uint64(w.VoteID.Instance()) },
	)

	for _, w := range sp.s.WitnessesByID() {
		w.TotalVotes = sp.tally.Votes(w.VoteID)
	}

	witnessAccount := sp.s.MustAccount(types.WitnessAccountID)
	if sp.s.Dynamic.HeadBlockTime.Before(sp.hardforks.HF533) {
		members := make([]votes.WeightedVote, 0, len(wits))
		for _, w := range wits {
			members = append(members, votes.WeightedVote{
				Account: w.WitnessAccount,
				Votes:   sp.tally.Votes(w.VoteID),
			})
		}
		votes.LegacyAuthority(&witnessAccount.Active, members)
	} else {
		vc := votes.NewCounter()
		for _, w := range wits {
			vc.Add(w.WitnessAccount, sp.tally.Votes(w.VoteID))
		}
		vc.Finish(&witnessAccount.Active)
	}

	active := make([]types.WitnessID, 0, len(wits))
	for _, w := range wits {
		active = append(active, w.ID)
	}
	sort.Slice(active, func(i, j int) bool { return active[i] < active[j] })
	sp.s.Global.ActiveWitnesses = active
}

// updateActiveCommitteeMembers mirrors the witness election for
// governance members.
func (sp *StateProcessor) updateActiveCommitteeMembers() {
	// The abstainer bucket deliberately comes from the witness
	// histogram. Do not "fix" this; every node must derive the same
	// committee size, and historical replay depends on it.
	stakeTarget := (sp.tally.TotalVotingStake - sp.tally.WitnessHistogram[0]) / 2
	committeeCount := votes.DesiredCount(sp.tally.CommitteeHistogram, stakeTarget)

	minCount := int(sp.s.Chain.Immutable.MinCommitteeMemberCount)
	wanted := committeeCount*2 + 1
	if wanted < minCount {
		wanted = minCount
	}

	members := votes.TopK(sp.s.CommitteeMembersByID(), wanted,
		func(m *types.CommitteeMember) uint64 { return sp.tally.Votes(m.VoteID) },
		func(m *types.CommitteeMember) uint64 { return uint64(m.VoteID.Instance()) },
	)

	for _, m := range members {
		m.TotalVotes = sp.tally.Votes(m.VoteID)
	}

	if len(members) > 0 {
		committeeAccount := sp.s.MustAccount(types.CommitteeAccountID)
		if sp.s.Dynamic.HeadBlockTime.Before(sp.hardforks.HF533) {
			weighted := make([]votes.WeightedVote, 0, len(members))
			for _, m := range members {
				weighted = append(weighted, votes.WeightedVote{
					Account: m.CommitteeMemberAccount,
					Votes:   sp.tally.Votes(m.VoteID),
				})
			}
			votes.LegacyAuthority(&committeeAccount.Active, weighted)
		} else {
			vc := votes.NewCounter()
			for _, m := range members {
				vc.Add(m.CommitteeMemberAccount, sp.tally.Votes(m.VoteID))
			}
			vc.Finish(&committeeAccount.Active)
		}
		// The relaxed committee account mirrors the committee's
		// authority verbatim.
		relaxed := sp.s.MustAccount(types.RelaxedCommitteeAccountID)
		relaxed.Active = committeeAccount.Active.Clone()
	}

	active := make([]types.CommitteeMemberID, 0, len(members))
	for _, m := range members {
		active = append(active, m.ID)
	}
	sort.Slice(active, func(i, j int) bool { return active[i] < active[j] })
	sp.s.Global.ActiveCommitteeMembers = active
}

// updateWorkerVotes refreshes every worker's vote totals from the
// tally buffer. Negative votes stopped counting at HF607.
func (sp *StateProcessor) updateWorkerVotes() {
	allowNegativeVotes := sp.s.Dynamic.HeadBlockTime.Before(sp.hardforks.HF607)
	for _, w := range sp.s.WorkersByID() {
		w.TotalVotesFor = sp.tally.Votes(w.VoteFor)
		if allowNegativeVotes {
			w.TotalVotesAgainst = sp.tally.Votes(w.VoteAgainst)
		} else {
			w.TotalVotesAgainst = 0
		}
	}
}

// updateTopNAuthorities recomputes the authority of every account
// with a top-N-holders special authority from the asset's largest
// holders.
func (sp *StateProcessor) updateTopNAuthorities() {
	for _, acct := range sp.s.AccountsWithSpecialAuthority() {
		if acct.OwnerSpecialAuthority.Kind == types.TopHoldersSpecialAuthority {
			sp.applyTopNAuthority(acct, acct.OwnerSpecialAuthority, true)
		}
		if acct.ActiveSpecialAuthority.Kind == types.TopHoldersSpecialAuthority {
			sp.applyTopNAuthority(acct, acct.ActiveSpecialAuthority, false)
		}
	}
}

func (sp *StateProcessor) applyTopNAuthority(acct *types.Account, sa types.SpecialAuthority, isOwner bool) {
	if sa.NumTopHolders == 0 {
		return
	}
	vc := votes.NewCounter()
	needed := int(sa.NumTopHolders)
	for _, bal := range sp.s.BalancesByAssetDesc(sa.Asset) {
		if bal.Owner == acct.ID {
			continue
		}
		vc.Add(bal.Owner, uint64(bal.Balance))
		needed--
		if needed == 0 {
			break
		}
	}

	target := &acct.Active
	flag := types.TopNControlActive
	if isOwner {
		target = &acct.Owner
		flag = types.TopNControlOwner
	}
	vc.Finish(target)
	if !vc.IsEmpty() {
		acct.TopNControlFlags |= flag
	}
}
