package votes

import (
	"testing"

	"edcchain/core/types"
)

func TestTallyResizeAndClear(t *testing.T) {
	var tally Tally
	if !tally.Empty() {
		t.Fatalf("zero tally should be empty")
	}
	tally.Resize(10, 21, 11)
	if len(tally.VoteTally) != 10 {
		t.Fatalf("vote tally size %d, want 10", len(tally.VoteTally))
	}
	if len(tally.WitnessHistogram) != 11 {
		t.Fatalf("witness histogram size %d, want 11", len(tally.WitnessHistogram))
	}
	if len(tally.CommitteeHistogram) != 6 {
		t.Fatalf("committee histogram size %d, want 6", len(tally.CommitteeHistogram))
	}
	tally.AddVote(types.NewVoteID(types.VoteWitness, 3), 100)
	tally.Clear()
	if !tally.Empty() {
		t.Fatalf("tally not empty after clear")
	}
}

func TestAddVoteIgnoresIllegalOffset(t *testing.T) {
	var tally Tally
	tally.Resize(4, 10, 10)
	tally.AddVote(types.NewVoteID(types.VoteWitness, 9), 500)
	for i, v := range tally.VoteTally {
		if v != 0 {
			t.Fatalf("bucket %d modified by out-of-range vote", i)
		}
	}
	if got := tally.Votes(types.NewVoteID(types.VoteWitness, 9)); got != 0 {
		t.Fatalf("out-of-range read = %d, want 0", got)
	}
}

func TestAddCountOpinionClipsToCap(t *testing.T) {
	hist := make([]uint64, 6)
	AddCountOpinion(hist, 4, 100)
	if hist[2] != 100 {
		t.Fatalf("hist[2] = %d, want 100", hist[2])
	}
	// An opinion far above the bucket range lands in the top bucket.
	AddCountOpinion(hist, 40, 70)
	if hist[5] != 70 {
		t.Fatalf("hist[5] = %d, want 70", hist[5])
	}
}

func TestDesiredCountMedianByStake(t *testing.T) {
	// Buckets: abstainers 100, then stake spread over half-counts.
	// Total voting stake 390, target (390-100)/2 = 145.
	hist := []uint64{100, 50, 200, 30, 10}
	count := DesiredCount(hist, (390-100)/2)
	// tally: 50 (count 1) <= 145, +200 (count 2) = 250 > 145 -> stop at 2.
	if count != 2 {
		t.Fatalf("DesiredCount = %d, want 2", count)
	}
}

func TestDesiredCountZeroTarget(t *testing.T) {
	hist := []uint64{0, 10, 10}
	if got := DesiredCount(hist, 0); got != 0 {
		t.Fatalf("DesiredCount = %d, want 0", got)
	}
}

func TestDesiredCountStopsAtLastBucket(t *testing.T) {
	hist := []uint64{0, 1, 1, 1}
	if got := DesiredCount(hist, 1<<40); got != len(hist)-1 {
		t.Fatalf("DesiredCount = %d, want %d", got, len(hist)-1)
	}
}

func TestHistogramSumBoundedByTotalStake(t *testing.T) {
	var tally Tally
	tally.Resize(0, 10, 10)
	stakes := []uint64{10, 20, 30}
	opinions := []uint16{0, 3, 7}
	for i, s := range stakes {
		AddCountOpinion(tally.WitnessHistogram, opinions[i], s)
		tally.TotalVotingStake += s
	}
	var sum uint64
	for _, v := range tally.WitnessHistogram {
		sum += v
	}
	if sum > tally.TotalVotingStake {
		t.Fatalf("histogram sum %d exceeds total stake %d", sum, tally.TotalVotingStake)
	}
}
