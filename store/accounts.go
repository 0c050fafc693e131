package store

import (
	"sort"

	"edcchain/core/types"
)

// CreateAccount inserts a new account, assigning the next dense id
// unless the account carries one of the reserved system ids.
func (s *Store) CreateAccount(a *types.Account) *types.Account {
	if a.ID >= s.nextAccountID {
		s.nextAccountID = a.ID + 1
	}
	s.accounts[a.ID] = a
	s.stats[a.ID] = &types.AccountStatistics{Account: a.ID}
	return a
}

// NewAccountID hands out the next dense account id.
func (s *Store) NewAccountID() types.AccountID {
	id := s.nextAccountID
	s.nextAccountID++
	return id
}

// Account looks up an account by id.
func (s *Store) Account(id types.AccountID) (*types.Account, bool) {
	a, ok := s.accounts[id]
	return a, ok
}

// MustAccount looks up an account that is known to exist.
func (s *Store) MustAccount(id types.AccountID) *types.Account {
	return s.accounts[id]
}

// AccountStats looks up the statistics row of an account.
func (s *Store) AccountStats(id types.AccountID) *types.AccountStatistics {
	st, ok := s.stats[id]
	if !ok {
		st = &types.AccountStatistics{Account: id}
		s.stats[id] = st
	}
	return st
}

// AccountsByName yields every account ordered by name ascending, the
// index the account-maintenance walk uses.
func (s *Store) AccountsByName() []*types.Account {
	out := make([]*types.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// AccountsByID yields every account ordered by id ascending.
func (s *Store) AccountsByID() []*types.Account {
	out := make([]*types.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AccountsWithSpecialAuthority yields, by id ascending, every account
// with a non-trivial owner or active special authority.
func (s *Store) AccountsWithSpecialAuthority() []*types.Account {
	var out []*types.Account
	for _, a := range s.accounts {
		if a.OwnerSpecialAuthority.Kind != types.NoSpecialAuthority ||
			a.ActiveSpecialAuthority.Kind != types.NoSpecialAuthority {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Balance returns the ledger row for (owner, asset), or a zero row.
func (s *Store) Balance(owner types.AccountID, asset types.AssetID) types.AccountBalance {
	if b, ok := s.balances[balanceKey{owner, asset}]; ok {
		return *b
	}
	return types.AccountBalance{Owner: owner, Asset: asset}
}

// AdjustBalance credits (or debits) an account balance, creating the
// row on first touch.
func (s *Store) AdjustBalance(owner types.AccountID, asset types.AssetID, delta types.Amount) {
	key := balanceKey{owner, asset}
	b, ok := s.balances[key]
	if !ok {
		b = &types.AccountBalance{Owner: owner, Asset: asset}
		s.balances[key] = b
	}
	b.Balance += delta
}

// ModifyBalance applies fn to the (owner, asset) row, creating it if
// missing.
func (s *Store) ModifyBalance(owner types.AccountID, asset types.AssetID, fn func(*types.AccountBalance)) {
	key := balanceKey{owner, asset}
	b, ok := s.balances[key]
	if !ok {
		b = &types.AccountBalance{Owner: owner, Asset: asset}
		s.balances[key] = b
	}
	fn(b)
}

// BalancesByAccountAsset yields every balance row ordered by (owner
// asc, asset asc).
func (s *Store) BalancesByAccountAsset() []*types.AccountBalance {
	out := make([]*types.AccountBalance, 0, len(s.balances))
	for _, b := range s.balances {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Owner != out[j].Owner {
			return out[i].Owner < out[j].Owner
		}
		return out[i].Asset < out[j].Asset
	})
	return out
}

// AccountBalances yields the balance rows of one account ordered by
// asset ascending.
func (s *Store) AccountBalances(owner types.AccountID) []*types.AccountBalance {
	var out []*types.AccountBalance
	for _, b := range s.balances {
		if b.Owner == owner {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Asset < out[j].Asset })
	return out
}

// BalancesByAssetDesc yields the holders of one asset ordered by
// balance descending, owner ascending — the top-N-holders index.
func (s *Store) BalancesByAssetDesc(asset types.AssetID) []*types.AccountBalance {
	var out []*types.AccountBalance
	for _, b := range s.balances {
		if b.Asset == asset {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Balance != out[j].Balance {
			return out[i].Balance > out[j].Balance
		}
		return out[i].Owner < out[j].Owner
	})
	return out
}

// MatureBalance returns the maturation row for (owner, asset), or a
// zero row.
func (s *Store) MatureBalance(owner types.AccountID, asset types.AssetID) types.AccountMatureBalance {
	if b, ok := s.matureBalances[balanceKey{owner, asset}]; ok {
		return *b
	}
	return types.AccountMatureBalance{Owner: owner, Asset: asset}
}

// ModifyMatureBalance applies fn to the maturation row, creating it if
// missing.
func (s *Store) ModifyMatureBalance(owner types.AccountID, asset types.AssetID, fn func(*types.AccountMatureBalance)) {
	key := balanceKey{owner, asset}
	b, ok := s.matureBalances[key]
	if !ok {
		b = &types.AccountMatureBalance{Owner: owner, Asset: asset}
		s.matureBalances[key] = b
	}
	fn(b)
}

// MatureBalancesByAccountAsset yields every maturation row ordered by
// (owner asc, asset asc).
func (s *Store) MatureBalancesByAccountAsset() []*types.AccountMatureBalance {
	out := make([]*types.AccountMatureBalance, 0, len(s.matureBalances))
	for _, b := range s.matureBalances {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Owner != out[j].Owner {
			return out[i].Owner < out[j].Owner
		}
		return out[i].Asset < out[j].Asset
	})
	return out
}

// BonusBalance returns the pending-bonus row for (owner, asset), or
// nil.
func (s *Store) BonusBalance(owner types.AccountID, asset types.AssetID) *types.BonusBalance {
	return s.bonusBalances[balanceKey{owner, asset}]
}

// ModifyBonusBalance applies fn to the pending-bonus row, creating it
// if missing.
func (s *Store) ModifyBonusBalance(owner types.AccountID, asset types.AssetID, fn func(*types.BonusBalance)) {
	key := balanceKey{owner, asset}
	b, ok := s.bonusBalances[key]
	if !ok {
		b = &types.BonusBalance{Owner: owner, Asset: asset}
		s.bonusBalances[key] = b
	}
	fn(b)
}

// BonusBalancesOf yields the pending-bonus rows of one account ordered
// by asset ascending.
func (s *Store) BonusBalancesOf(owner types.AccountID) []*types.BonusBalance {
	var out []*types.BonusBalance
	for _, b := range s.bonusBalances {
		if b.Owner == owner {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Asset < out[j].Asset })
	return out
}

// RemoveBonusBalance drops a fully-released pending-bonus row.
func (s *Store) RemoveBonusBalance(owner types.AccountID, asset types.AssetID) {
	delete(s.bonusBalances, balanceKey{owner, asset})
}
