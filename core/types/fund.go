package types

import "time"

// Fund is an interest-bearing pool. Depositors earn a fixed percent on
// their positions at every maintenance pass while the fund is enabled
// and inside its lifetime.
type Fund struct {
	ID      FundID
	Owner   AccountID
	Asset   AssetID
	Enabled bool

	// Balance is the fund's own pot that interest is paid from.
	Balance Amount

	// RatePerMaintenance is the per-pass interest on deposits, in
	// Percent100 units.
	RatePerMaintenance uint16

	DatetimeBegin time.Time
	DatetimeEnd   time.Time
}

// ChequeStatus is the lifecycle state of a cheque.
type ChequeStatus uint8

const (
	// ChequeNew is an issued, not fully used cheque.
	ChequeNew ChequeStatus = iota
	// ChequeUsed has been fully drawn by its payees.
	ChequeUsed
	// ChequeUndo was reversed after expiry; the remainder returned to
	// the drawer.
	ChequeUndo
)

// ChequePayee is one designated receiver of a cheque part.
type ChequePayee struct {
	Payee        AccountID
	DatetimeUsed time.Time
	Status       ChequeStatus
}

// Cheque is a code-redeemable payment split across payees.
type Cheque struct {
	ID   ChequeID
	Code string

	DatetimeCreation   time.Time
	DatetimeExpiration time.Time
	DatetimeUsed       time.Time

	Drawer AccountID
	Asset  AssetID

	// AmountPayee is the per-payee part; AmountRemaining is what is
	// still locked in the cheque.
	AmountPayee     Amount
	AmountRemaining Amount

	Status ChequeStatus

	Payees []ChequePayee
}

// RemainingAmount is the still-locked value of the cheque.
func (c *Cheque) RemainingAmount() Amount { return c.AmountRemaining }
