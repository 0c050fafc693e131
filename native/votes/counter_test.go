package votes

import (
	"testing"

	"edcchain/core/types"
)

func TestCounterEmitsThresholdAndWeights(t *testing.T) {
	vc := NewCounter()
	vc.Add(types.AccountID(10), 1000)
	vc.Add(types.AccountID(11), 600)
	vc.Add(types.AccountID(12), 400)

	auth := types.NewAuthority()
	vc.Finish(&auth)

	if vc.IsEmpty() {
		t.Fatalf("counter should not be empty")
	}
	total := auth.TotalWeight()
	if total != 2000 {
		t.Fatalf("total weight %d, want 2000", total)
	}
	want := uint32(total/2 + 1)
	if auth.WeightThreshold != want {
		t.Fatalf("threshold %d, want %d", auth.WeightThreshold, want)
	}
	if auth.AccountAuths[10] != 1000 || auth.AccountAuths[11] != 600 || auth.AccountAuths[12] != 400 {
		t.Fatalf("unexpected weights %v", auth.AccountAuths)
	}
}

func TestCounterScalesLargeVotesInto16Bits(t *testing.T) {
	vc := NewCounter()
	// Largest first fixes the shared scale.
	vc.Add(types.AccountID(1), 1<<40)
	vc.Add(types.AccountID(2), 1<<39)
	vc.Add(types.AccountID(3), 1) // scales to zero, floored at one

	auth := types.NewAuthority()
	vc.Finish(&auth)

	for id, w := range auth.AccountAuths {
		if w < 1 {
			t.Fatalf("account %d weight %d below one", id, w)
		}
	}
	if auth.AccountAuths[1] != 1<<15 {
		t.Fatalf("largest weight %d, want %d", auth.AccountAuths[1], 1<<15)
	}
	if auth.AccountAuths[3] != 1 {
		t.Fatalf("smallest weight %d, want 1", auth.AccountAuths[3])
	}
	if auth.TotalWeight() < uint64(auth.WeightThreshold) {
		t.Fatalf("weights %d cannot satisfy threshold %d", auth.TotalWeight(), auth.WeightThreshold)
	}
}

func TestCounterIgnoresZeroVotesAndStaysEmpty(t *testing.T) {
	vc := NewCounter()
	vc.Add(types.AccountID(1), 0)
	if !vc.IsEmpty() {
		t.Fatalf("zero-vote counter should be empty")
	}

	auth := types.NewAuthority()
	auth.AccountAuths[types.AccountID(9)] = 5
	auth.WeightThreshold = 3
	vc.Finish(&auth)

	// An empty counter leaves the authority untouched.
	if auth.WeightThreshold != 3 || auth.AccountAuths[9] != 5 {
		t.Fatalf("empty finish modified authority: %+v", auth)
	}
}

func TestLegacyAuthorityZeroVotesFloorToOne(t *testing.T) {
	auth := types.NewAuthority()
	members := make([]WeightedVote, 0, 11)
	for i := 0; i < 11; i++ {
		members = append(members, WeightedVote{Account: types.AccountID(100 + i), Votes: 0})
	}
	LegacyAuthority(&auth, members)

	if len(auth.AccountAuths) != 11 {
		t.Fatalf("auth members %d, want 11", len(auth.AccountAuths))
	}
	for id, w := range auth.AccountAuths {
		if w != 1 {
			t.Fatalf("account %d weight %d, want 1", id, w)
		}
	}
	if auth.WeightThreshold != 6 {
		t.Fatalf("threshold %d, want 6", auth.WeightThreshold)
	}
}

func TestLegacyAuthorityThresholdIsMajority(t *testing.T) {
	auth := types.NewAuthority()
	LegacyAuthority(&auth, []WeightedVote{
		{Account: 1, Votes: 500},
		{Account: 2, Votes: 300},
		{Account: 3, Votes: 200},
	})
	var sum uint32
	for _, w := range auth.AccountAuths {
		if w < 1 || w > 0xffff {
			t.Fatalf("weight %d outside [1, 65535]", w)
		}
		sum += uint32(w)
	}
	if auth.WeightThreshold != sum/2+1 {
		t.Fatalf("threshold %d, want %d", auth.WeightThreshold, sum/2+1)
	}
}
