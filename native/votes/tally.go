// Package votes holds the stake-weighted tallying machinery of the
// maintenance pass: the scratch buffers, the desired-count derivation,
// the deterministic top-K selection and the authority builders.
package votes

import "edcchain/core/types"

// Tally is the per-pass scratch state. It is owned by the engine and
// must be empty outside a maintenance pass; the engine clears it on
// every exit path.
type Tally struct {
	// VoteTally has one stake bucket per allocated vote id.
	VoteTally []uint64
	// WitnessHistogram and CommitteeHistogram bucket stake by
	// half-counts of the desired population.
	WitnessHistogram   []uint64
	CommitteeHistogram []uint64
	// TotalVotingStake sums the stake of every counted account.
	TotalVotingStake uint64
}

// Resize prepares the buffers for one pass.
func (t *Tally) Resize(nextAvailableVoteID uint32, maxWitnessCount, maxCommitteeCount uint16) {
	t.VoteTally = make([]uint64, nextAvailableVoteID)
	t.WitnessHistogram = make([]uint64, maxWitnessCount/2+1)
	t.CommitteeHistogram = make([]uint64, maxCommitteeCount/2+1)
	t.TotalVotingStake = 0
}

// Clear releases the buffers. Safe to call repeatedly.
func (t *Tally) Clear() {
	t.VoteTally = nil
	t.WitnessHistogram = nil
	t.CommitteeHistogram = nil
	t.TotalVotingStake = 0
}

// Empty reports whether every buffer is released.
func (t *Tally) Empty() bool {
	return t.VoteTally == nil && t.WitnessHistogram == nil &&
		t.CommitteeHistogram == nil && t.TotalVotingStake == 0
}

// Votes returns the stake bucket of a vote id, zero when the id is out
// of range.
func (t *Tally) Votes(id types.VoteID) uint64 {
	offset := id.Instance()
	if int(offset) >= len(t.VoteTally) {
		return 0
	}
	return t.VoteTally[offset]
}

// AddVote accumulates stake into a vote bucket. Out-of-range offsets
// are ignored, not rejected.
func (t *Tally) AddVote(id types.VoteID, stake uint64) {
	offset := id.Instance()
	if int(offset) < len(t.VoteTally) {
		t.VoteTally[offset] += stake
	}
}

// AddCountOpinion accumulates stake into a count histogram. Opinions
// above the cap are clipped to the top bucket; the caller has already
// filtered opinions above the configured maximum.
func AddCountOpinion(hist []uint64, num uint16, stake uint64) {
	offset := int(num / 2)
	if offset > len(hist)-1 {
		offset = len(hist) - 1
	}
	hist[offset] += stake
}

// DesiredCount derives the target population half-count from a stake
// histogram: the median by stake after excluding the abstainers whose
// stake the caller folded into stakeTarget.
//
// stakeTarget is (total voting stake − abstainer bucket) / 2; which
// histogram the abstainer bucket comes from is the caller's business
// (the committee derivation deliberately uses the witness
// histogram's — consensus-frozen behavior).
func DesiredCount(hist []uint64, stakeTarget uint64) int {
	count := 0
	if stakeTarget == 0 {
		return 0
	}
	var tally uint64
	for count < len(hist)-1 && tally <= stakeTarget {
		count++
		tally += hist[count]
	}
	return count
}
