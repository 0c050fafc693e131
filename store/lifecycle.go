package store

import (
	"sort"

	"edcchain/core/types"
)

// CreateFund inserts an interest-bearing fund.
func (s *Store) CreateFund(f *types.Fund) *types.Fund {
	f.ID = s.nextFundID
	s.nextFundID++
	s.funds[f.ID] = f
	return f
}

// Fund looks up a fund by id.
func (s *Store) Fund(id types.FundID) (*types.Fund, bool) {
	f, ok := s.funds[id]
	return f, ok
}

// FundsByID yields every fund ordered by id, the order the lifecycle
// pass processes them in.
func (s *Store) FundsByID() []*types.Fund {
	out := make([]*types.Fund, 0, len(s.funds))
	for _, f := range s.funds {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreateFundDeposit inserts a depositor position.
func (s *Store) CreateFundDeposit(d *types.FundDeposit) *types.FundDeposit {
	d.ID = s.nextFundDepositID
	s.nextFundDepositID++
	s.fundDeposits[d.ID] = d
	return d
}

// FundDepositsByID yields every deposit of one fund, enabled or not,
// ordered by id.
func (s *Store) FundDepositsByID(fund types.FundID) []*types.FundDeposit {
	var out []*types.FundDeposit
	for _, d := range s.fundDeposits {
		if d.Fund == fund {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AllFundDeposits yields every deposit position ordered by id.
func (s *Store) AllFundDeposits() []*types.FundDeposit {
	out := make([]*types.FundDeposit, 0, len(s.fundDeposits))
	for _, d := range s.fundDeposits {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreateCheque inserts a cheque.
func (s *Store) CreateCheque(c *types.Cheque) *types.Cheque {
	c.ID = s.nextChequeID
	s.nextChequeID++
	s.cheques[c.ID] = c
	return c
}

// Cheque looks up a cheque by id.
func (s *Store) Cheque(id types.ChequeID) (*types.Cheque, bool) {
	c, ok := s.cheques[id]
	return c, ok
}

// ChequesByID yields every cheque ordered by id.
func (s *Store) ChequesByID() []*types.Cheque {
	out := make([]*types.Cheque, 0, len(s.cheques))
	for _, c := range s.cheques {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ChequesByCreation yields every cheque ordered by creation time then
// id, the reaper's index.
func (s *Store) ChequesByCreation() []*types.Cheque {
	out := s.ChequesByID()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DatetimeCreation.Before(out[j].DatetimeCreation)
	})
	return out
}

// RemoveCheque deletes a cheque.
func (s *Store) RemoveCheque(id types.ChequeID) {
	delete(s.cheques, id)
}
