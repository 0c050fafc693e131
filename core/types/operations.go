package types

// OpKind discriminates operation payloads. Transfer is kind 0; the
// legacy bonus activity gate depends on that.
type OpKind uint8

const (
	OpTransfer OpKind = iota
	OpAccountUpgrade
	OpLimitOrderCreate
	OpLimitOrderCancel
	OpWorkerPay
	OpDailyIssue
	OpReferralIssue
	OpChequeReverse
	OpFBADistribute
	OpFundPayment
	OpBonusRelease
)

// Operation is a state-transition payload fed to the evaluator. The
// maintenance engine only ever emits synthetic (fee-free) operations.
type Operation interface {
	Kind() OpKind
}

// TransferOperation moves an asset amount between accounts.
type TransferOperation struct {
	From   AccountID
	To     AccountID
	Asset  AssetID
	Amount Amount
}

func (TransferOperation) Kind() OpKind { return OpTransfer }

// AccountUpgradeOperation upgrades an account to lifetime membership.
type AccountUpgradeOperation struct {
	AccountToUpgrade  AccountID
	UpgradeToLifetime bool
}

func (AccountUpgradeOperation) Kind() OpKind { return OpAccountUpgrade }

// LimitOrderCreateOperation posts a limit order. The buyback engine
// uses a one-satoshi minimum price, no expiration and no fill-or-kill.
type LimitOrderCreateOperation struct {
	Seller       AccountID
	AmountToSell Amount
	SellAsset    AssetID
	MinToReceive Amount
	ReceiveAsset AssetID
	FillOrKill   bool
}

func (LimitOrderCreateOperation) Kind() OpKind { return OpLimitOrderCreate }

// LimitOrderCancelOperation cancels an open order and refunds the
// unsold remainder.
type LimitOrderCancelOperation struct {
	Order            LimitOrderID
	FeePayingAccount AccountID
}

func (LimitOrderCancelOperation) Kind() OpKind { return OpLimitOrderCancel }

// WorkerPayOperation is the virtual record of one worker payment.
type WorkerPayOperation struct {
	Worker WorkerID
	Amount Amount
}

func (WorkerPayOperation) Kind() OpKind { return OpWorkerPay }

// DailyIssueOperation issues the daily holder bonus.
type DailyIssueOperation struct {
	Issuer         AccountID
	Asset          AssetID
	AssetToIssue   Amount
	IssueToAccount AccountID
	AccountBalance Amount
}

func (DailyIssueOperation) Kind() OpKind { return OpDailyIssue }

// ReferralIssueOperation issues a referral-tree bonus.
type ReferralIssueOperation struct {
	Issuer         AccountID
	Asset          AssetID
	AssetToIssue   Amount
	IssueToAccount AccountID
	Rank           uint8
	History        []Amount
	AccountBalance Amount
}

func (ReferralIssueOperation) Kind() OpKind { return OpReferralIssue }

// ChequeReverseOperation returns an expired cheque's remainder to its
// drawer.
type ChequeReverseOperation struct {
	Cheque  ChequeID
	Account AccountID
	Asset   AssetID
	Amount  Amount
}

func (ChequeReverseOperation) Kind() OpKind { return OpChequeReverse }

// FBADistributeOperation is the virtual record of one FBA credit.
type FBADistributeOperation struct {
	Account AccountID
	FBA     FBAccumulatorID
	Amount  Amount
}

func (FBADistributeOperation) Kind() OpKind { return OpFBADistribute }

// FundPaymentOperation is the virtual record of fund interest accrual.
type FundPaymentOperation struct {
	Fund    FundID
	Account AccountID
	Asset   AssetID
	Amount  Amount
}

func (FundPaymentOperation) Kind() OpKind { return OpFundPayment }

// BonusReleaseOperation is the virtual record of a matured bonus
// entering the real balance.
type BonusReleaseOperation struct {
	Account AccountID
	Asset   AssetID
	Amount  Amount
}

func (BonusReleaseOperation) Kind() OpKind { return OpBonusRelease }
