// Package evaluator applies the synthetic, fee-free operations the
// maintenance engine emits: issues, reversals, upgrades and the
// buyback limit orders. It owns the balance and supply effects; the
// engine only decides what to emit.
//
// Rejections surface as wrapped types.ErrAuthorityRejected or
// types.ErrSupplyOverflow so per-record fault boundaries in the engine
// can match on them and continue.
package evaluator

import (
	"fmt"

	"edcchain/core/types"
	"edcchain/store"
)

// Applied carries the object id an operation produced, when it
// produces one.
type Applied struct {
	Order types.LimitOrderID
}

// Applier is the boundary the engine talks to.
type Applier interface {
	Apply(op types.Operation) (Applied, error)
}

// Evaluator is the concrete operation applier over the object store.
type Evaluator struct {
	s *store.Store
}

// New returns an evaluator bound to the store.
func New(s *store.Store) *Evaluator {
	return &Evaluator{s: s}
}

// Apply dispatches one operation. Every applied operation lands in the
// history of the account it credits or debits.
func (e *Evaluator) Apply(op types.Operation) (Applied, error) {
	switch o := op.(type) {
	case types.TransferOperation:
		return Applied{}, e.applyTransfer(o)
	case types.AccountUpgradeOperation:
		return Applied{}, e.applyAccountUpgrade(o)
	case types.LimitOrderCreateOperation:
		return e.applyLimitOrderCreate(o)
	case types.LimitOrderCancelOperation:
		return Applied{}, e.applyLimitOrderCancel(o)
	case types.DailyIssueOperation:
		return Applied{}, e.applyDailyIssue(o)
	case types.ReferralIssueOperation:
		return Applied{}, e.applyReferralIssue(o)
	case types.ChequeReverseOperation:
		return Applied{}, e.applyChequeReverse(o)
	case types.FBADistributeOperation:
		return Applied{}, e.applyFBADistribute(o)
	case types.FundPaymentOperation:
		return Applied{}, e.applyFundPayment(o)
	case types.BonusReleaseOperation:
		return Applied{}, e.applyBonusRelease(o)
	default:
		return Applied{}, fmt.Errorf("evaluator: unsupported operation kind %d", op.Kind())
	}
}

func (e *Evaluator) applyTransfer(o types.TransferOperation) error {
	if o.Amount <= 0 {
		return fmt.Errorf("%w: non-positive transfer", types.ErrAuthorityRejected)
	}
	from, ok := e.s.Account(o.From)
	if !ok {
		return fmt.Errorf("%w: unknown account %d", types.ErrAuthorityRejected, o.From)
	}
	to, ok := e.s.Account(o.To)
	if !ok {
		return fmt.Errorf("%w: unknown account %d", types.ErrAuthorityRejected, o.To)
	}
	if !from.AllowsAsset(o.Asset) || !to.AllowsAsset(o.Asset) {
		return fmt.Errorf("%w: asset %d not authorized", types.ErrAuthorityRejected, o.Asset)
	}
	if e.s.Balance(o.From, o.Asset).Balance < o.Amount {
		return fmt.Errorf("%w: insufficient balance", types.ErrAuthorityRejected)
	}
	e.s.AdjustBalance(o.From, o.Asset, -o.Amount)
	e.s.AdjustBalance(o.To, o.Asset, o.Amount)
	e.s.ModifyBalance(o.To, o.Asset, func(b *types.AccountBalance) { b.MandatoryTransfer = true })
	e.s.PushAppliedOperation(o.From, o)
	e.s.PushAppliedOperation(o.To, o)
	return nil
}

func (e *Evaluator) applyAccountUpgrade(o types.AccountUpgradeOperation) error {
	acct, ok := e.s.Account(o.AccountToUpgrade)
	if !ok {
		return fmt.Errorf("%w: unknown account %d", types.ErrAuthorityRejected, o.AccountToUpgrade)
	}
	if !o.UpgradeToLifetime {
		return fmt.Errorf("%w: only lifetime upgrades are supported", types.ErrAuthorityRejected)
	}
	acct.MembershipExpiration = types.LifetimeMemberExpiration
	e.s.PushAppliedOperation(acct.ID, o)
	return nil
}

func (e *Evaluator) applyLimitOrderCreate(o types.LimitOrderCreateOperation) (Applied, error) {
	seller, ok := e.s.Account(o.Seller)
	if !ok {
		return Applied{}, fmt.Errorf("%w: unknown seller %d", types.ErrAuthorityRejected, o.Seller)
	}
	if !seller.AllowsAsset(o.SellAsset) || !seller.AllowsAsset(o.ReceiveAsset) {
		return Applied{}, fmt.Errorf("%w: seller %d not authorized for market %d/%d",
			types.ErrAuthorityRejected, o.Seller, o.SellAsset, o.ReceiveAsset)
	}
	if issuer := e.assetIssuer(o.SellAsset); issuer != nil && issuer.IsBlacklisted(o.Seller) {
		return Applied{}, fmt.Errorf("%w: seller %d blacklisted by issuer of asset %d",
			types.ErrAuthorityRejected, o.Seller, o.SellAsset)
	}
	if issuer := e.assetIssuer(o.ReceiveAsset); issuer != nil && issuer.IsBlacklisted(o.Seller) {
		return Applied{}, fmt.Errorf("%w: seller %d blacklisted by issuer of asset %d",
			types.ErrAuthorityRejected, o.Seller, o.ReceiveAsset)
	}
	if o.AmountToSell <= 0 || e.s.Balance(o.Seller, o.SellAsset).Balance < o.AmountToSell {
		return Applied{}, fmt.Errorf("%w: insufficient balance for order", types.ErrAuthorityRejected)
	}

	e.s.AdjustBalance(o.Seller, o.SellAsset, -o.AmountToSell)
	if o.SellAsset == types.CoreAssetID {
		e.s.AccountStats(o.Seller).TotalCoreInOrders += o.AmountToSell
	}
	order := e.s.CreateLimitOrder(&types.LimitOrder{
		Seller:       o.Seller,
		SellAsset:    o.SellAsset,
		ReceiveAsset: o.ReceiveAsset,
		ForSale:      o.AmountToSell,
		MinToReceive: o.MinToReceive,
	})
	e.s.PushAppliedOperation(o.Seller, o)
	return Applied{Order: order.ID}, nil
}

func (e *Evaluator) applyLimitOrderCancel(o types.LimitOrderCancelOperation) error {
	order, ok := e.s.LimitOrder(o.Order)
	if !ok {
		return fmt.Errorf("%w: unknown order %d", types.ErrAuthorityRejected, o.Order)
	}
	if order.Seller != o.FeePayingAccount {
		return fmt.Errorf("%w: order %d not owned by %d", types.ErrAuthorityRejected, o.Order, o.FeePayingAccount)
	}
	e.s.AdjustBalance(order.Seller, order.SellAsset, order.ForSale)
	if order.SellAsset == types.CoreAssetID {
		e.s.AccountStats(order.Seller).TotalCoreInOrders -= order.ForSale
	}
	e.s.RemoveLimitOrder(order.ID)
	e.s.PushAppliedOperation(order.Seller, o)
	return nil
}

func (e *Evaluator) applyDailyIssue(o types.DailyIssueOperation) error {
	return e.issue(o.Asset, o.Issuer, o.IssueToAccount, o.AssetToIssue, o)
}

func (e *Evaluator) applyReferralIssue(o types.ReferralIssueOperation) error {
	return e.issue(o.Asset, o.Issuer, o.IssueToAccount, o.AssetToIssue, o)
}

func (e *Evaluator) issue(asset types.AssetID, issuer, to types.AccountID, amount types.Amount, op types.Operation) error {
	if amount < 1 {
		return fmt.Errorf("%w: empty issue", types.ErrAuthorityRejected)
	}
	a, ok := e.s.Asset(asset)
	if !ok {
		return fmt.Errorf("%w: unknown asset %d", types.ErrAuthorityRejected, asset)
	}
	if a.Issuer != issuer {
		return fmt.Errorf("%w: account %d is not issuer of asset %d", types.ErrAuthorityRejected, issuer, asset)
	}
	acct, ok := e.s.Account(to)
	if !ok {
		return fmt.Errorf("%w: unknown account %d", types.ErrAuthorityRejected, to)
	}
	if !acct.AllowsAsset(asset) {
		return fmt.Errorf("%w: account %d not authorized for asset %d", types.ErrAuthorityRejected, to, asset)
	}
	dyn := e.s.AssetDynamic(asset)
	if dyn.CurrentSupply > a.MaxSupply-amount {
		return fmt.Errorf("%w: asset %d supply %d + %d exceeds max",
			types.ErrSupplyOverflow, asset, dyn.CurrentSupply, amount)
	}
	dyn.CurrentSupply += amount
	e.s.AdjustBalance(to, asset, amount)
	e.s.PushAppliedOperation(to, op)
	return nil
}

func (e *Evaluator) applyChequeReverse(o types.ChequeReverseOperation) error {
	cheque, ok := e.s.Cheque(o.Cheque)
	if !ok {
		return fmt.Errorf("%w: unknown cheque %d", types.ErrAuthorityRejected, o.Cheque)
	}
	if cheque.Status != types.ChequeNew {
		return fmt.Errorf("%w: cheque %d not reversible", types.ErrAuthorityRejected, o.Cheque)
	}
	if cheque.Drawer != o.Account || cheque.AmountRemaining != o.Amount {
		return fmt.Errorf("%w: cheque %d reverse mismatch", types.ErrAuthorityRejected, o.Cheque)
	}

	e.s.AdjustBalance(cheque.Drawer, cheque.Asset, cheque.AmountRemaining)
	cheque.AmountRemaining = 0
	cheque.Status = types.ChequeUndo
	cheque.DatetimeUsed = e.s.Dynamic.HeadBlockTime
	for i := range cheque.Payees {
		if cheque.Payees[i].Status == types.ChequeNew {
			cheque.Payees[i].Status = types.ChequeUndo
			cheque.Payees[i].DatetimeUsed = e.s.Dynamic.HeadBlockTime
		}
	}
	e.s.PushAppliedOperation(cheque.Drawer, o)
	return nil
}

func (e *Evaluator) applyFBADistribute(o types.FBADistributeOperation) error {
	if o.Amount <= 0 {
		return fmt.Errorf("%w: empty fba distribution", types.ErrAuthorityRejected)
	}
	if _, ok := e.s.Account(o.Account); !ok {
		return fmt.Errorf("%w: unknown account %d", types.ErrAuthorityRejected, o.Account)
	}
	e.s.AdjustBalance(o.Account, types.CoreAssetID, o.Amount)
	e.s.PushAppliedOperation(o.Account, o)
	return nil
}

// applyFundPayment pays interest out of the fund's own pot; supply is
// untouched.
func (e *Evaluator) applyFundPayment(o types.FundPaymentOperation) error {
	if o.Amount <= 0 {
		return fmt.Errorf("%w: empty fund payment", types.ErrAuthorityRejected)
	}
	fund, ok := e.s.Fund(o.Fund)
	if !ok {
		return fmt.Errorf("%w: unknown fund %d", types.ErrAuthorityRejected, o.Fund)
	}
	if fund.Balance < o.Amount {
		return fmt.Errorf("%w: fund %d cannot cover payment", types.ErrAuthorityRejected, o.Fund)
	}
	fund.Balance -= o.Amount
	e.s.AdjustBalance(o.Account, o.Asset, o.Amount)
	e.s.PushFundHistory(o.Fund, o.Account, o.Amount)
	e.s.PushAppliedOperation(o.Account, o)
	return nil
}

// applyBonusRelease issues a matured pending bonus. The tokens only
// enter the supply here; the deposit into the bonus ledger was a
// bookkeeping promise, not an issue.
func (e *Evaluator) applyBonusRelease(o types.BonusReleaseOperation) error {
	if o.Amount <= 0 {
		return fmt.Errorf("%w: empty bonus release", types.ErrAuthorityRejected)
	}
	a, ok := e.s.Asset(o.Asset)
	if !ok {
		return fmt.Errorf("%w: unknown asset %d", types.ErrAuthorityRejected, o.Asset)
	}
	dyn := e.s.AssetDynamic(o.Asset)
	if dyn.CurrentSupply > a.MaxSupply-o.Amount {
		return fmt.Errorf("%w: asset %d supply %d + %d exceeds max",
			types.ErrSupplyOverflow, o.Asset, dyn.CurrentSupply, o.Amount)
	}
	dyn.CurrentSupply += o.Amount
	e.s.AdjustBalance(o.Account, o.Asset, o.Amount)
	e.s.PushAppliedOperation(o.Account, o)
	return nil
}

func (e *Evaluator) assetIssuer(asset types.AssetID) *types.Account {
	a, ok := e.s.Asset(asset)
	if !ok {
		return nil
	}
	issuer, ok := e.s.Account(a.Issuer)
	if !ok {
		return nil
	}
	return issuer
}
