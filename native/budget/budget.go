// Package budget holds the fixed-width arithmetic of the treasury
// budget: the per-interval inflow from the reserve and the pro-rated
// worker pay. Every intermediate is 128-bit; an overflow here is a
// consensus bug, never a recoverable condition.
package budget

import (
	"fmt"

	"github.com/holiman/uint256"

	"edcchain/core/types"
)

// TotalBudget computes the period budget from the effective reserve
// and the elapsed seconds since the last budget:
//
//	budget = ceil(reserve * dt * CoreAssetCycleRate / 2^CoreAssetCycleRateBits)
//
// capped at the reserve. The ceiling keeps the entire reserve
// eventually spendable.
func TotalBudget(reserve types.Amount, dtSeconds uint64) (types.Amount, error) {
	if reserve <= 0 || dtSeconds == 0 {
		return 0, nil
	}

	b := uint256.NewInt(uint64(reserve))
	var overflow bool
	b, overflow = mulCheck(b, uint256.NewInt(dtSeconds))
	if !overflow {
		b, overflow = mulCheck(b, uint256.NewInt(types.CoreAssetCycleRate))
	}
	if overflow {
		return 0, fmt.Errorf("%w: budget intermediate overflow (reserve=%d dt=%d)",
			types.ErrInvariantViolation, reserve, dtSeconds)
	}

	// Round up to the nearest satoshi.
	b.Add(b, uint256.NewInt((1<<types.CoreAssetCycleRateBits)-1))
	b.Rsh(b, types.CoreAssetCycleRateBits)

	if !b.IsUint64() || b.Uint64() >= uint64(reserve) {
		return reserve, nil
	}
	return types.Amount(b.Uint64()), nil
}

// WorkerBudget computes the per-interval worker allowance:
// floor(perDay * dt / 86400), capped at available.
func WorkerBudget(perDay types.Amount, dtSeconds uint64, available types.Amount) types.Amount {
	if perDay <= 0 || available <= 0 {
		return 0
	}
	b := uint256.NewInt(uint64(perDay))
	b.Mul(b, uint256.NewInt(dtSeconds))
	b.Div(b, uint256.NewInt(types.SecondsPerDay))
	if !b.IsUint64() || b.Uint64() >= uint64(available) {
		return available
	}
	return types.Amount(b.Uint64())
}

// ProratedPay scales a worker's daily pay to the elapsed interval:
// daily * dt / 86400 in a 128-bit intermediate.
func ProratedPay(dailyPay types.Amount, dtSeconds uint64) types.Amount {
	if dailyPay <= 0 {
		return 0
	}
	p := uint256.NewInt(uint64(dailyPay))
	p.Mul(p, uint256.NewInt(dtSeconds))
	p.Div(p, uint256.NewInt(types.SecondsPerDay))
	return types.Amount(p.Uint64())
}

// mulCheck multiplies with a 128-bit overflow check; consensus
// arithmetic aborts on any intermediate that does not fit.
func mulCheck(a, b *uint256.Int) (*uint256.Int, bool) {
	out := new(uint256.Int).Mul(a, b)
	// Anything above word 1 exceeds the 128-bit intermediate width.
	return out, out[2] != 0 || out[3] != 0
}
