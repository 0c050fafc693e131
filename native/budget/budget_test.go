package budget

import (
	"errors"
	"testing"

	"edcchain/core/types"
)

func TestTotalBudgetZeroElapsed(t *testing.T) {
	got, err := TotalBudget(1_000_000, 0)
	if err != nil {
		t.Fatalf("TotalBudget: %v", err)
	}
	if got != 0 {
		t.Fatalf("budget %d, want 0", got)
	}
}

func TestTotalBudgetRoundsUp(t *testing.T) {
	// One satoshi of reserve over one second: the raw product is far
	// below one satoshi, the ceiling still releases one.
	got, err := TotalBudget(1, 1)
	if err != nil {
		t.Fatalf("TotalBudget: %v", err)
	}
	if got != 1 {
		t.Fatalf("budget %d, want 1 (ceiling keeps the reserve spendable)", got)
	}
}

func TestTotalBudgetCappedAtReserve(t *testing.T) {
	// A huge dt pushes the formula past the reserve; the reserve caps
	// it.
	got, err := TotalBudget(1000, 1<<40)
	if err != nil {
		t.Fatalf("TotalBudget: %v", err)
	}
	if got != 1000 {
		t.Fatalf("budget %d, want 1000", got)
	}
}

func TestTotalBudgetMatchesFixedPointFormula(t *testing.T) {
	reserve := types.Amount(1_000_000_000)
	dt := uint64(86400)
	got, err := TotalBudget(reserve, dt)
	if err != nil {
		t.Fatalf("TotalBudget: %v", err)
	}
	// (reserve*dt*rate + 2^bits - 1) >> bits, small enough for native
	// 128-bit-free checking via big words: reserve*dt = 8.64e13 fits
	// 64 bits times 17 fits too.
	raw := uint64(reserve) * dt * types.CoreAssetCycleRate
	want := types.Amount((raw + (1 << types.CoreAssetCycleRateBits) - 1) >> types.CoreAssetCycleRateBits)
	if got != want {
		t.Fatalf("budget %d, want %d", got, want)
	}
}

func TestTotalBudgetOverflowIsFatal(t *testing.T) {
	_, err := TotalBudget(types.MaxShareSupply, 1<<62)
	if err == nil {
		t.Fatalf("expected overflow error")
	}
	if !errors.Is(err, types.ErrInvariantViolation) {
		t.Fatalf("error %v, want invariant violation", err)
	}
}

func TestWorkerBudgetProration(t *testing.T) {
	// Half a day of a 1000/day allowance.
	if got := WorkerBudget(1000, 43200, 1_000_000); got != 500 {
		t.Fatalf("worker budget %d, want 500", got)
	}
	// Capped by available funds.
	if got := WorkerBudget(1000, 86400, 300); got != 300 {
		t.Fatalf("worker budget %d, want 300", got)
	}
}

func TestProratedPayHalfDay(t *testing.T) {
	if got := ProratedPay(100, 43200); got != 50 {
		t.Fatalf("prorated pay %d, want 50", got)
	}
	if got := ProratedPay(100, 0); got != 0 {
		t.Fatalf("prorated pay %d, want 0", got)
	}
}
