package store

import "edcchain/core/types"

// Snapshot is an opaque deep copy of the full store state. The block
// application layer takes one before a maintenance pass and restores
// it if the pass aborts.
type Snapshot struct {
	state *Store
}

func cloneMap[K comparable, V any](src map[K]*V, cloneVal func(*V) *V) map[K]*V {
	out := make(map[K]*V, len(src))
	for k, v := range src {
		out[k] = cloneVal(v)
	}
	return out
}

func shallowClone[V any](v *V) *V {
	c := *v
	return &c
}

func cloneAccount(a *types.Account) *types.Account {
	c := *a
	c.Options.Votes = append([]types.VoteID(nil), a.Options.Votes...)
	c.Owner = a.Owner.Clone()
	c.Active = a.Active.Clone()
	if a.AllowedAssets != nil {
		c.AllowedAssets = make(map[types.AssetID]struct{}, len(a.AllowedAssets))
		for k := range a.AllowedAssets {
			c.AllowedAssets[k] = struct{}{}
		}
	}
	if a.BlacklistedAccounts != nil {
		c.BlacklistedAccounts = make(map[types.AccountID]struct{}, len(a.BlacklistedAccounts))
		for k := range a.BlacklistedAccounts {
			c.BlacklistedAccounts[k] = struct{}{}
		}
	}
	return &c
}

func cloneMatureBalance(b *types.AccountMatureBalance) *types.AccountMatureBalance {
	c := *b
	c.History = append([]types.MatureBalancesHistory(nil), b.History...)
	return &c
}

func cloneBonusBalance(b *types.BonusBalance) *types.BonusBalance {
	c := *b
	if b.Referral != nil {
		r := *b.Referral
		r.History = append([]types.Amount(nil), b.Referral.History...)
		c.Referral = &r
	}
	return &c
}

func cloneCheque(c *types.Cheque) *types.Cheque {
	out := *c
	out.Payees = append([]types.ChequePayee(nil), c.Payees...)
	return &out
}

// TakeSnapshot deep-copies the store.
func (s *Store) TakeSnapshot() *Snapshot {
	c := New()

	g := *s.Global
	g.ActiveWitnesses = append([]types.WitnessID(nil), s.Global.ActiveWitnesses...)
	g.ActiveCommitteeMembers = append([]types.CommitteeMemberID(nil), s.Global.ActiveCommitteeMembers...)
	if s.Global.PendingParameters != nil {
		p := *s.Global.PendingParameters
		g.PendingParameters = &p
	}
	c.Global = &g

	d := *s.Dynamic
	c.Dynamic = &d
	ch := *s.Chain
	c.Chain = &ch
	c.Online = &types.AccountsOnline{OnlineInfo: make(map[types.AccountID]uint16, len(s.Online.OnlineInfo))}
	for k, v := range s.Online.OnlineInfo {
		c.Online.OnlineInfo[k] = v
	}

	c.accounts = cloneMap(s.accounts, cloneAccount)
	c.stats = cloneMap(s.stats, shallowClone[types.AccountStatistics])
	c.balances = cloneMap(s.balances, shallowClone[types.AccountBalance])
	c.matureBalances = cloneMap(s.matureBalances, cloneMatureBalance)
	c.bonusBalances = cloneMap(s.bonusBalances, cloneBonusBalance)
	c.witnesses = cloneMap(s.witnesses, shallowClone[types.Witness])
	c.committeeMembers = cloneMap(s.committeeMembers, shallowClone[types.CommitteeMember])
	c.workers = cloneMap(s.workers, shallowClone[types.Worker])
	c.assets = cloneMap(s.assets, func(a *types.Asset) *types.Asset {
		out := *a
		if a.BuybackAccount != nil {
			id := *a.BuybackAccount
			out.BuybackAccount = &id
		}
		return &out
	})
	c.assetDyn = cloneMap(s.assetDyn, shallowClone[types.AssetDynamicData])
	c.bitassets = cloneMap(s.bitassets, shallowClone[types.BitassetData])
	c.fbas = cloneMap(s.fbas, func(f *types.FBAccumulator) *types.FBAccumulator {
		out := *f
		if f.DesignatedAsset != nil {
			id := *f.DesignatedAsset
			out.DesignatedAsset = &id
		}
		return &out
	})
	c.buybacks = cloneMap(s.buybacks, shallowClone[types.Buyback])
	c.limitOrders = cloneMap(s.limitOrders, shallowClone[types.LimitOrder])
	c.funds = cloneMap(s.funds, shallowClone[types.Fund])
	c.fundDeposits = cloneMap(s.fundDeposits, shallowClone[types.FundDeposit])
	c.cheques = cloneMap(s.cheques, cloneCheque)
	c.opHistory = cloneMap(s.opHistory, shallowClone[types.OperationHistory])
	c.accountHistory = cloneMap(s.accountHistory, shallowClone[types.AccountTxHistory])
	c.fundHistory = cloneMap(s.fundHistory, shallowClone[types.FundTxHistory])
	c.blindTransfers = cloneMap(s.blindTransfers, shallowClone[types.BlindTransfer])

	c.budgetRecords = make([]*types.BudgetRecordObject, len(s.budgetRecords))
	for i, r := range s.budgetRecords {
		rr := *r
		c.budgetRecords[i] = &rr
	}

	c.nextAccountID = s.nextAccountID
	c.nextWitnessID = s.nextWitnessID
	c.nextCommitteeID = s.nextCommitteeID
	c.nextWorkerID = s.nextWorkerID
	c.nextAssetID = s.nextAssetID
	c.nextBuybackID = s.nextBuybackID
	c.nextFundID = s.nextFundID
	c.nextFundDepositID = s.nextFundDepositID
	c.nextChequeID = s.nextChequeID
	c.nextLimitOrderID = s.nextLimitOrderID
	c.nextOpHistoryID = s.nextOpHistoryID
	c.nextAccountHistID = s.nextAccountHistID
	c.nextFundHistoryID = s.nextFundHistoryID
	c.nextBlindID = s.nextBlindID
	c.nextBudgetRecordID = s.nextBudgetRecordID

	return &Snapshot{state: c}
}

// Restore replaces the store's contents with the snapshot's.
func (s *Store) Restore(snap *Snapshot) {
	*s = *snap.state.TakeSnapshot().state
}
