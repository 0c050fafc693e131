// Package store is the transactional, typed, multi-indexed in-memory
// object database the maintenance engine runs against. Every accessor
// that yields more than one object iterates a deterministic secondary
// index (by id, by name, by asset, by time); map-ordered iteration
// never escapes this package.
package store

import (
	"edcchain/core/types"
)

type balanceKey struct {
	Owner types.AccountID
	Asset types.AssetID
}

// Store owns every chain object. It is not safe for concurrent use;
// the engine runs single-threaded inside the block-application
// critical section.
type Store struct {
	Global  *types.GlobalProperties
	Dynamic *types.DynamicProperties
	Chain   *types.ChainProperties
	Online  *types.AccountsOnline

	accounts map[types.AccountID]*types.Account
	stats    map[types.AccountID]*types.AccountStatistics

	balances       map[balanceKey]*types.AccountBalance
	matureBalances map[balanceKey]*types.AccountMatureBalance
	bonusBalances  map[balanceKey]*types.BonusBalance

	witnesses        map[types.WitnessID]*types.Witness
	committeeMembers map[types.CommitteeMemberID]*types.CommitteeMember
	workers          map[types.WorkerID]*types.Worker

	assets    map[types.AssetID]*types.Asset
	assetDyn  map[types.AssetID]*types.AssetDynamicData
	bitassets map[types.AssetID]*types.BitassetData
	fbas      map[types.FBAccumulatorID]*types.FBAccumulator
	buybacks  map[uint64]*types.Buyback

	limitOrders map[types.LimitOrderID]*types.LimitOrder

	funds        map[types.FundID]*types.Fund
	fundDeposits map[uint64]*types.FundDeposit
	cheques      map[types.ChequeID]*types.Cheque

	opHistory      map[types.OperationHistoryID]*types.OperationHistory
	accountHistory map[types.AccountTxHistoryID]*types.AccountTxHistory
	fundHistory    map[uint64]*types.FundTxHistory
	blindTransfers map[uint64]*types.BlindTransfer

	budgetRecords []*types.BudgetRecordObject

	nextAccountID      types.AccountID
	nextWitnessID      types.WitnessID
	nextCommitteeID    types.CommitteeMemberID
	nextWorkerID       types.WorkerID
	nextAssetID        types.AssetID
	nextBuybackID      uint64
	nextFundID         types.FundID
	nextFundDepositID  uint64
	nextChequeID       types.ChequeID
	nextLimitOrderID   types.LimitOrderID
	nextOpHistoryID    types.OperationHistoryID
	nextAccountHistID  types.AccountTxHistoryID
	nextFundHistoryID  uint64
	nextBlindID        uint64
	nextBudgetRecordID uint64
}

// New returns an empty store with zeroed singletons.
func New() *Store {
	return &Store{
		Global:  &types.GlobalProperties{},
		Dynamic: &types.DynamicProperties{},
		Chain:   &types.ChainProperties{},
		Online:  &types.AccountsOnline{OnlineInfo: map[types.AccountID]uint16{}},

		accounts: map[types.AccountID]*types.Account{},
		stats:    map[types.AccountID]*types.AccountStatistics{},

		balances:       map[balanceKey]*types.AccountBalance{},
		matureBalances: map[balanceKey]*types.AccountMatureBalance{},
		bonusBalances:  map[balanceKey]*types.BonusBalance{},

		witnesses:        map[types.WitnessID]*types.Witness{},
		committeeMembers: map[types.CommitteeMemberID]*types.CommitteeMember{},
		workers:          map[types.WorkerID]*types.Worker{},

		assets:    map[types.AssetID]*types.Asset{},
		assetDyn:  map[types.AssetID]*types.AssetDynamicData{},
		bitassets: map[types.AssetID]*types.BitassetData{},
		fbas:      map[types.FBAccumulatorID]*types.FBAccumulator{},
		buybacks:  map[uint64]*types.Buyback{},

		limitOrders: map[types.LimitOrderID]*types.LimitOrder{},

		funds:        map[types.FundID]*types.Fund{},
		fundDeposits: map[uint64]*types.FundDeposit{},
		cheques:      map[types.ChequeID]*types.Cheque{},

		opHistory:      map[types.OperationHistoryID]*types.OperationHistory{},
		accountHistory: map[types.AccountTxHistoryID]*types.AccountTxHistory{},
		fundHistory:    map[uint64]*types.FundTxHistory{},
		blindTransfers: map[uint64]*types.BlindTransfer{},

		// History ids start at 1 so that the zero id can terminate the
		// per-account linked list.
		nextAccountHistID: 1,
		nextOpHistoryID:   1,
	}
}
