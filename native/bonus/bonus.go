// Package bonus holds the daily-bonus arithmetic: percent application
// over the bonus base and the online-presence weighting of the legacy
// issuance window.
package bonus

import (
	"github.com/holiman/uint256"

	"edcchain/core/types"
)

// Quantity applies a bonus percent (BonusPercentDenom units) to the
// balance the bonus is computed over. Results below one satoshi are
// the caller's signal to skip the account.
func Quantity(balance types.Amount, percent uint32) types.Amount {
	if balance <= 0 || percent == 0 {
		return 0
	}
	q := uint256.NewInt(uint64(balance))
	q.Mul(q, uint256.NewInt(uint64(percent)))
	q.Div(q, uint256.NewInt(types.BonusPercentDenom))
	return types.Amount(q.Uint64())
}

// OnlineWeight scales a quantity by minutes-online out of a full day.
// Only the HF618..HF619 window uses it.
func OnlineWeight(quantity types.Amount, minutesOnline uint16) types.Amount {
	if quantity <= 0 {
		return 0
	}
	q := uint256.NewInt(uint64(quantity))
	q.Mul(q, uint256.NewInt(uint64(minutesOnline)))
	q.Div(q, uint256.NewInt(types.MinutesPerDay))
	return types.Amount(q.Uint64())
}
