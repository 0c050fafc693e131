package store

import (
	"sort"

	"edcchain/core/types"
)

// CreateWitness inserts a witness candidate and allocates its vote id.
func (s *Store) CreateWitness(account types.AccountID) *types.Witness {
	w := &types.Witness{
		ID:             s.nextWitnessID,
		WitnessAccount: account,
		VoteID:         s.allocateVoteID(types.VoteWitness),
	}
	s.nextWitnessID++
	s.witnesses[w.ID] = w
	return w
}

// Witness looks up a witness by id.
func (s *Store) Witness(id types.WitnessID) (*types.Witness, bool) {
	w, ok := s.witnesses[id]
	return w, ok
}

// WitnessesByID yields every witness candidate ordered by id.
func (s *Store) WitnessesByID() []*types.Witness {
	out := make([]*types.Witness, 0, len(s.witnesses))
	for _, w := range s.witnesses {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreateCommitteeMember inserts a governance candidate and allocates
// its vote id.
func (s *Store) CreateCommitteeMember(account types.AccountID) *types.CommitteeMember {
	m := &types.CommitteeMember{
		ID:                     s.nextCommitteeID,
		CommitteeMemberAccount: account,
		VoteID:                 s.allocateVoteID(types.VoteCommittee),
	}
	s.nextCommitteeID++
	s.committeeMembers[m.ID] = m
	return m
}

// CommitteeMember looks up a governance candidate by id.
func (s *Store) CommitteeMember(id types.CommitteeMemberID) (*types.CommitteeMember, bool) {
	m, ok := s.committeeMembers[id]
	return m, ok
}

// CommitteeMembersByID yields every governance candidate ordered by id.
func (s *Store) CommitteeMembersByID() []*types.CommitteeMember {
	out := make([]*types.CommitteeMember, 0, len(s.committeeMembers))
	for _, m := range s.committeeMembers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreateWorker inserts a worker proposal and allocates its for/against
// vote ids.
func (s *Store) CreateWorker(w *types.Worker) *types.Worker {
	w.ID = s.nextWorkerID
	s.nextWorkerID++
	w.VoteFor = s.allocateVoteID(types.VoteWorker)
	w.VoteAgainst = s.allocateVoteID(types.VoteWorker)
	s.workers[w.ID] = w
	return w
}

// Worker looks up a worker by id.
func (s *Store) Worker(id types.WorkerID) (*types.Worker, bool) {
	w, ok := s.workers[id]
	return w, ok
}

// WorkersByID yields every worker ordered by id.
func (s *Store) WorkersByID() []*types.Worker {
	out := make([]*types.Worker, 0, len(s.workers))
	for _, w := range s.workers {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// allocateVoteID hands out the next dense vote id; the tally buffer is
// sized from Global.NextAvailableVoteID.
func (s *Store) allocateVoteID(kind types.VoteIDKind) types.VoteID {
	id := types.NewVoteID(kind, s.Global.NextAvailableVoteID)
	s.Global.NextAvailableVoteID++
	return id
}
