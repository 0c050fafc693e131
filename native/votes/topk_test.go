package votes

import "testing"

type candidate struct {
	id    uint64
	votes uint64
}

func TestTopKOrdersByVotesThenID(t *testing.T) {
	cands := []candidate{
		{id: 9, votes: 50},
		{id: 7, votes: 50},
		{id: 3, votes: 80},
		{id: 5, votes: 10},
	}
	top := TopK(cands, 3,
		func(c candidate) uint64 { return c.votes },
		func(c candidate) uint64 { return c.id },
	)
	wantIDs := []uint64{3, 7, 9}
	for i, c := range top {
		if c.id != wantIDs[i] {
			t.Fatalf("position %d: id %d, want %d", i, c.id, wantIDs[i])
		}
	}
}

func TestTopKTruncatesToPopulation(t *testing.T) {
	cands := []candidate{{id: 1, votes: 1}, {id: 2, votes: 2}}
	top := TopK(cands, 11,
		func(c candidate) uint64 { return c.votes },
		func(c candidate) uint64 { return c.id },
	)
	if len(top) != 2 {
		t.Fatalf("len %d, want 2", len(top))
	}
}

func TestTopKDoesNotMutateInput(t *testing.T) {
	cands := []candidate{{id: 1, votes: 1}, {id: 2, votes: 2}, {id: 3, votes: 3}}
	TopK(cands, 2,
		func(c candidate) uint64 { return c.votes },
		func(c candidate) uint64 { return c.id },
	)
	for i, c := range cands {
		if c.id != uint64(i+1) {
			t.Fatalf("input order mutated: %v", cands)
		}
	}
}
