package core

import (
	"testing"
	"time"

	"edcchain/core/types"
)

func TestTopNHoldersAuthorityRebuilt(t *testing.T) {
	tc := newTestChain(t, ProcessorConfig{})
	alt := tc.s.CreateAsset(&types.Asset{
		ID:        tc.s.NewAssetID(),
		Symbol:    "ALT",
		Issuer:    tc.issuer,
		MaxSupply: types.MaxShareSupply,
	})

	controlled := newMember(tc.s, "controlled")
	tc.s.MustAccount(controlled).ActiveSpecialAuthority = types.SpecialAuthority{
		Kind:          types.TopHoldersSpecialAuthority,
		Asset:         alt.ID,
		NumTopHolders: 2,
	}

	big := newMember(tc.s, "big-holder")
	mid := newMember(tc.s, "mid-holder")
	small := newMember(tc.s, "small-holder")
	tc.fund(big, alt.ID, 10_000)
	tc.fund(mid, alt.ID, 5_000)
	tc.fund(small, alt.ID, 100)
	// The controlled account's own holding never votes for itself.
	tc.fund(controlled, alt.ID, 50_000)

	tc.runMaintenance(t)
	tc.checkUniversalInvariants(t)

	acct := tc.s.MustAccount(controlled)
	auth := acct.Active
	if len(auth.AccountAuths) != 2 {
		t.Fatalf("authority members %d, want top 2 holders", len(auth.AccountAuths))
	}
	if _, ok := auth.AccountAuths[big]; !ok {
		t.Fatalf("largest holder missing from authority")
	}
	if _, ok := auth.AccountAuths[mid]; !ok {
		t.Fatalf("second holder missing from authority")
	}
	if _, ok := auth.AccountAuths[small]; ok {
		t.Fatalf("third holder included beyond N")
	}
	if auth.TotalWeight() < uint64(auth.WeightThreshold) {
		t.Fatalf("authority unsatisfiable: total %d < threshold %d", auth.TotalWeight(), auth.WeightThreshold)
	}
	if acct.TopNControlFlags&types.TopNControlActive == 0 {
		t.Fatalf("active control flag not set")
	}
}

func TestWorkerNegativeVotesIgnoredPost607(t *testing.T) {
	tc := newTestChain(t, ProcessorConfig{})
	workerAccount := newMember(tc.s, "builder")
	worker := tc.s.CreateWorker(&types.Worker{
		WorkerAccount: workerAccount,
		DailyPay:      100,
		WorkBegin:     passTime.Add(-time.Hour),
		WorkEnd:       passTime.Add(time.Hour),
		Kind:          types.WorkerRefund,
	})

	hater := newMember(tc.s, "hater")
	tc.fund(hater, types.CoreAssetID, 500_000)
	tc.s.MustAccount(hater).Options.Votes = []types.VoteID{worker.VoteAgainst}

	fan := newMember(tc.s, "fan")
	tc.fund(fan, types.CoreAssetID, 100_000)
	tc.s.MustAccount(fan).Options.Votes = []types.VoteID{worker.VoteFor}

	tc.runMaintenance(t)
	tc.checkUniversalInvariants(t)

	if worker.TotalVotesFor != 100_000 {
		t.Fatalf("votes for %d, want 100000", worker.TotalVotesFor)
	}
	if worker.TotalVotesAgainst != 0 {
		t.Fatalf("negative votes %d counted after HF607", worker.TotalVotesAgainst)
	}
	if worker.ApprovingStake() != 100_000 {
		t.Fatalf("approving stake %d, want 100000", worker.ApprovingStake())
	}
}

func TestWorkerNegativeVotesCountedPre607(t *testing.T) {
	hf := types.DefaultHardforks()
	hf.HF607 = passTime.Add(365 * 24 * time.Hour)
	hf.HF613 = hf.HF607.Add(time.Hour)
	hf.HF616 = hf.HF607.Add(2 * time.Hour)
	hf.HF616MaintenanceChange = hf.HF607.Add(3 * time.Hour)
	hf.HF617 = hf.HF607.Add(4 * time.Hour)
	hf.HF618 = hf.HF607.Add(5 * time.Hour)
	hf.HF619 = hf.HF607.Add(6 * time.Hour)
	hf.HF620 = hf.HF607.Add(7 * time.Hour)
	hf.HF622 = hf.HF607.Add(8 * time.Hour)
	tc := newTestChain(t, ProcessorConfig{Hardforks: &hf})

	workerAccount := newMember(tc.s, "builder")
	worker := tc.s.CreateWorker(&types.Worker{
		WorkerAccount: workerAccount,
		DailyPay:      100,
		WorkBegin:     passTime.Add(-time.Hour),
		WorkEnd:       passTime.Add(time.Hour),
		Kind:          types.WorkerRefund,
	})
	hater := newMember(tc.s, "hater")
	tc.fund(hater, types.CoreAssetID, 500_000)
	tc.s.MustAccount(hater).Options.Votes = []types.VoteID{worker.VoteAgainst}

	tc.runMaintenance(t)
	tc.checkUniversalInvariants(t)

	if worker.TotalVotesAgainst != 500_000 {
		t.Fatalf("negative votes %d, want 500000 before HF607", worker.TotalVotesAgainst)
	}
	if worker.ApprovingStake() != 0 {
		t.Fatalf("approving stake %d, want 0", worker.ApprovingStake())
	}
}

func TestProxiedVotesFollowOpinionAccount(t *testing.T) {
	tc := newTestChain(t, ProcessorConfig{})
	extra := tc.s.CreateWitness(newMember(tc.s, "candidate"))

	opinion := newMember(tc.s, "opinion-leader")
	tc.s.MustAccount(opinion).Options.Votes = []types.VoteID{extra.VoteID}

	follower := newMember(tc.s, "follower")
	tc.fund(follower, types.CoreAssetID, 250_000)
	tc.s.MustAccount(follower).Options.VotingAccount = opinion

	tc.runMaintenance(t)
	tc.checkUniversalInvariants(t)

	if extra.TotalVotes != 250_000 {
		t.Fatalf("proxied votes %d, want 250000", extra.TotalVotes)
	}
}

func TestNonMembersDoNotVoteByDefault(t *testing.T) {
	tc := newTestChain(t, ProcessorConfig{})
	extra := tc.s.CreateWitness(newMember(tc.s, "candidate"))

	basic := tc.s.CreateAccount(&types.Account{
		ID:      tc.s.NewAccountID(),
		Name:    "basic-user",
		Options: types.AccountOptions{VotingAccount: types.ProxyToSelfAccountID, Votes: []types.VoteID{extra.VoteID}},
		Owner:   types.NewAuthority(),
		Active:  types.NewAuthority(),
	})
	basic.Referrer = basic.ID
	tc.fund(basic.ID, types.CoreAssetID, 900_000)

	tc.runMaintenance(t)
	tc.checkUniversalInvariants(t)

	if extra.TotalVotes != 0 {
		t.Fatalf("non-member stake counted: %d", extra.TotalVotes)
	}

	// Flip the parameter and the same stake counts.
	tc.s.Global.Parameters.CountNonMemberVotes = true
	tc.runMaintenance(t)
	tc.checkUniversalInvariants(t)
	if extra.TotalVotes != 900_000 {
		t.Fatalf("non-member stake ignored with CountNonMemberVotes: %d", extra.TotalVotes)
	}
}

func TestRelaxedCommitteeMirrorsCommitteeAuthority(t *testing.T) {
	tc := newTestChain(t, ProcessorConfig{})
	voter := newMember(tc.s, "whale")
	tc.fund(voter, types.CoreAssetID, 750_000)
	votes := make([]types.VoteID, 0, len(tc.members))
	for _, m := range tc.members {
		votes = append(votes, m.VoteID)
	}
	tc.s.MustAccount(voter).Options.Votes = votes

	tc.runMaintenance(t)
	tc.checkUniversalInvariants(t)

	committee := tc.s.MustAccount(types.CommitteeAccountID).Active
	relaxed := tc.s.MustAccount(types.RelaxedCommitteeAccountID).Active
	if committee.WeightThreshold == 0 || len(committee.AccountAuths) == 0 {
		t.Fatalf("committee authority empty after voted election")
	}
	if relaxed.WeightThreshold != committee.WeightThreshold || len(relaxed.AccountAuths) != len(committee.AccountAuths) {
		t.Fatalf("relaxed committee does not mirror committee authority")
	}
	for id, w := range committee.AccountAuths {
		if relaxed.AccountAuths[id] != w {
			t.Fatalf("relaxed weight for %d differs", id)
		}
	}
}
