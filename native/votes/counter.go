package votes

import (
	"math/bits"

	"edcchain/core/types"
)

// Counter builds a multi-sig authority from weighted votes. Weights
// are scaled on the fly so that every kept weight fits 16 bits; the
// scale is fixed by the first (largest) vote added, so callers must
// add votes in non-increasing order — which the top-K selection
// guarantees.
type Counter struct {
	auth             types.Authority
	bitshift         int
	totalScaledVotes uint64
}

// NewCounter returns an empty counter.
func NewCounter() *Counter {
	return &Counter{auth: types.NewAuthority(), bitshift: -1}
}

// Add accumulates one weighted vote. Zero weights are dropped.
func (c *Counter) Add(who types.AccountID, votes uint64) {
	if votes == 0 {
		return
	}
	if c.bitshift == -1 {
		c.bitshift = msb(votes) - 15
		if c.bitshift < 0 {
			c.bitshift = 0
		}
	}
	scaled := votes >> uint(c.bitshift)
	if scaled == 0 {
		scaled = 1
	}
	c.totalScaledVotes += scaled
	c.auth.AccountAuths[who] += uint16(scaled)
}

// IsEmpty reports whether no vote survived scaling.
func (c *Counter) IsEmpty() bool { return c.totalScaledVotes == 0 }

// Finish writes the accumulated weights and threshold into result.
// When the counter is empty, result is left untouched.
func (c *Counter) Finish(result *types.Authority) {
	if c.totalScaledVotes == 0 {
		return
	}
	*result = c.auth
	result.WeightThreshold = uint32(c.totalScaledVotes/2 + 1)
}

// msb is the index of the highest set bit; 0 for input 0.
func msb(v uint64) int {
	if v == 0 {
		return 0
	}
	return bits.Len64(v) - 1
}

// LegacyAuthority rebuilds an authority the pre-HF533 way: one shared
// bit-drop derived from the vote total, per-member weights floored at
// one, threshold = floor(sum/2)+1.
func LegacyAuthority(auth *types.Authority, members []WeightedVote) {
	auth.Clear()

	var totalVotes uint64
	weights := make(map[types.AccountID]uint64, len(members))
	for _, m := range members {
		if _, seen := weights[m.Account]; !seen {
			weights[m.Account] = m.Votes
		}
		totalVotes += m.Votes
	}

	bitsToDrop := msb(totalVotes) - 15
	if bitsToDrop < 0 {
		bitsToDrop = 0
	}
	for id, w := range weights {
		votes := w >> uint(bitsToDrop)
		if votes == 0 {
			votes = 1
		}
		auth.AccountAuths[id] += uint16(votes)
		auth.WeightThreshold += uint32(votes)
	}

	auth.WeightThreshold /= 2
	auth.WeightThreshold++
}

// WeightedVote pairs a member account with its tallied stake.
type WeightedVote struct {
	Account types.AccountID
	Votes   uint64
}
