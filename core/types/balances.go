package types

import "time"

// AccountBalance is a per-(account, asset) ledger row.
type AccountBalance struct {
	Owner   AccountID
	Asset   AssetID
	Balance Amount

	// MandatoryTransfer is set by transfer evaluation and consumed by
	// the mature-balance machinery; the maintenance pass clears it.
	MandatoryTransfer bool
}

// MatureBalancesHistory is one snapshot of the maturation window.
type MatureBalancesHistory struct {
	Balance        Amount
	MaturedBalance Amount
}

// AccountMatureBalance lags the live balance by the maturation window;
// the daily bonus is computed over the matured figure.
type AccountMatureBalance struct {
	Owner   AccountID
	Asset   AssetID
	Balance Amount

	MandatoryTransfer bool

	History []MatureBalancesHistory
}

// ReferralInfo records how a referral bonus was earned.
type ReferralInfo struct {
	Rank uint8
	// History lists the per-level amounts that fed the bonus.
	History []Amount
}

// BonusBalance is a pending (not yet released) daily or referral bonus
// for one (account, asset) pair. Amounts deposited in the current pass
// sit in DailyAmount/ReferralAmount; amounts from earlier passes roll
// into the matured buckets and release on the next processing.
type BonusBalance struct {
	Owner AccountID
	Asset AssetID

	// DailyAmount is the current-pass plain daily bonus.
	DailyAmount Amount
	// ReferralAmount is the current-pass referral bonus.
	ReferralAmount Amount
	Referral       *ReferralInfo

	// MaturedDaily and MaturedReferral are deposits from earlier
	// passes, ready to release.
	MaturedDaily    Amount
	MaturedReferral Amount

	// LastDeposit stamps the most recent deposit.
	LastDeposit time.Time
}

// Roll moves deposits older than now into the matured buckets.
func (b *BonusBalance) Roll(now time.Time) {
	if !b.LastDeposit.Before(now) {
		return
	}
	b.MaturedDaily += b.DailyAmount
	b.MaturedReferral += b.ReferralAmount
	b.DailyAmount = 0
	b.ReferralAmount = 0
}

// Empty reports whether nothing is pending or matured.
func (b *BonusBalance) Empty() bool {
	return b.DailyAmount == 0 && b.ReferralAmount == 0 &&
		b.MaturedDaily == 0 && b.MaturedReferral == 0
}

// FundDeposit is one depositor position inside a fund.
type FundDeposit struct {
	ID      uint64
	Fund    FundID
	Account AccountID
	Amount  Amount
	Enabled bool
}
