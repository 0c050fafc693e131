package store

import (
	"sort"
	"time"

	"edcchain/core/types"
)

// PushAppliedOperation appends an operation-history row and threads it
// onto the acting account's newest-first history chain.
func (s *Store) PushAppliedOperation(account types.AccountID, op types.Operation) *types.OperationHistory {
	h := &types.OperationHistory{
		ID:        s.nextOpHistoryID,
		Op:        op,
		BlockNum:  s.Dynamic.HeadBlockNumber,
		BlockTime: s.Dynamic.HeadBlockTime,
	}
	s.nextOpHistoryID++
	s.opHistory[h.ID] = h

	st := s.AccountStats(account)
	node := &types.AccountTxHistory{
		ID:          s.nextAccountHistID,
		Account:     account,
		OperationID: h.ID,
		Next:        st.MostRecentOp,
		BlockTime:   h.BlockTime,
	}
	s.nextAccountHistID++
	s.accountHistory[node.ID] = node
	st.MostRecentOp = node.ID
	return h
}

// OperationHistoryByID looks up an applied operation.
func (s *Store) OperationHistoryByID(id types.OperationHistoryID) (*types.OperationHistory, bool) {
	h, ok := s.opHistory[id]
	return h, ok
}

// OperationHistoryByTime yields every history row ordered by block
// time then id.
func (s *Store) OperationHistoryByTime() []*types.OperationHistory {
	out := make([]*types.OperationHistory, 0, len(s.opHistory))
	for _, h := range s.opHistory {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].BlockTime.Equal(out[j].BlockTime) {
			return out[i].BlockTime.Before(out[j].BlockTime)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// RemoveOperationHistory deletes a history row.
func (s *Store) RemoveOperationHistory(id types.OperationHistoryID) {
	delete(s.opHistory, id)
}

// AccountTxHistoryNode looks up one node of an account history chain.
func (s *Store) AccountTxHistoryNode(id types.AccountTxHistoryID) (*types.AccountTxHistory, bool) {
	n, ok := s.accountHistory[id]
	return n, ok
}

// AccountTxHistoryByTime yields every account-history node ordered by
// block time then id.
func (s *Store) AccountTxHistoryByTime() []*types.AccountTxHistory {
	out := make([]*types.AccountTxHistory, 0, len(s.accountHistory))
	for _, n := range s.accountHistory {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].BlockTime.Equal(out[j].BlockTime) {
			return out[i].BlockTime.Before(out[j].BlockTime)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// RemoveAccountTxHistory deletes an account-history node. Chains are
// reaped oldest-first, so dangling Next links only ever point past the
// retention horizon.
func (s *Store) RemoveAccountTxHistory(id types.AccountTxHistoryID) {
	delete(s.accountHistory, id)
}

// PushFundHistory appends a fund-history reference row.
func (s *Store) PushFundHistory(fund types.FundID, account types.AccountID, amount types.Amount) *types.FundTxHistory {
	h := &types.FundTxHistory{
		ID:        s.nextFundHistoryID,
		Fund:      fund,
		Account:   account,
		Amount:    amount,
		BlockTime: s.Dynamic.HeadBlockTime,
	}
	s.nextFundHistoryID++
	s.fundHistory[h.ID] = h
	return h
}

// FundHistoryByTime yields every fund-history row ordered by block
// time then id.
func (s *Store) FundHistoryByTime() []*types.FundTxHistory {
	out := make([]*types.FundTxHistory, 0, len(s.fundHistory))
	for _, h := range s.fundHistory {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].BlockTime.Equal(out[j].BlockTime) {
			return out[i].BlockTime.Before(out[j].BlockTime)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// RemoveFundHistory deletes a fund-history row.
func (s *Store) RemoveFundHistory(id uint64) {
	delete(s.fundHistory, id)
}

// CreateBlindTransfer records a privacy transfer.
func (s *Store) CreateBlindTransfer(at time.Time) *types.BlindTransfer {
	b := &types.BlindTransfer{ID: s.nextBlindID, Datetime: at}
	s.nextBlindID++
	s.blindTransfers[b.ID] = b
	return b
}

// BlindTransfersByDatetime yields every blind-transfer row ordered by
// datetime then id.
func (s *Store) BlindTransfersByDatetime() []*types.BlindTransfer {
	out := make([]*types.BlindTransfer, 0, len(s.blindTransfers))
	for _, b := range s.blindTransfers {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Datetime.Equal(out[j].Datetime) {
			return out[i].Datetime.Before(out[j].Datetime)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// RemoveBlindTransfer deletes a blind-transfer row.
func (s *Store) RemoveBlindTransfer(id uint64) {
	delete(s.blindTransfers, id)
}

// AppendBudgetRecord appends to the append-only budget ledger.
func (s *Store) AppendBudgetRecord(at time.Time, rec types.BudgetRecord) *types.BudgetRecordObject {
	obj := &types.BudgetRecordObject{ID: s.nextBudgetRecordID, Time: at, Record: rec}
	s.nextBudgetRecordID++
	s.budgetRecords = append(s.budgetRecords, obj)
	return obj
}

// BudgetRecords yields the budget ledger oldest-first.
func (s *Store) BudgetRecords() []*types.BudgetRecordObject {
	return s.budgetRecords
}
