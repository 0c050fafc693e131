package core

import (
	"testing"
	"time"

	"edcchain/core/types"
	"edcchain/storage"
)

func TestReaperPrunesBeyondRetentionHorizon(t *testing.T) {
	archive := storage.NewMemDB()
	tc := newTestChain(t, ProcessorConfig{HistoryRetentionDays: 2, Archive: archive})

	payer := newMember(tc.s, "payer")
	payee := newMember(tc.s, "payee")
	tc.fund(payer, types.CoreAssetID, 10_000)

	stamp := func(at time.Time) {
		tc.s.Dynamic.HeadBlockTime = at
		if _, err := tc.sp.eval.Apply(types.TransferOperation{
			From: payer, To: payee, Asset: types.CoreAssetID, Amount: 10,
		}); err != nil {
			t.Fatalf("seed transfer: %v", err)
		}
	}
	stamp(passTime.Add(-5 * 24 * time.Hour)) // beyond the horizon
	stamp(passTime.Add(-3 * 24 * time.Hour)) // beyond the horizon
	stamp(passTime.Add(-time.Hour))          // kept
	tc.s.Dynamic.HeadBlockTime = passTime.Add(-time.Hour)

	tc.runMaintenance(t)
	tc.checkUniversalInvariants(t)

	var old, recent int
	cutoff := tc.s.Dynamic.HeadBlockTime.Add(-2 * 24 * time.Hour)
	for _, h := range tc.s.OperationHistoryByTime() {
		if h.Op.Kind() != types.OpTransfer {
			continue
		}
		if h.BlockTime.Before(cutoff) {
			old++
		} else {
			recent++
		}
	}
	if old != 0 {
		t.Fatalf("%d history rows survived past the horizon", old)
	}
	if recent == 0 {
		t.Fatalf("recent history reaped")
	}

	// Pruned rows were archived first; the archive also carries the
	// pass's budget record.
	if archive.Len() < 5 {
		t.Fatalf("archive has %d rows, want the 4 pruned history rows (two per transfer) plus the budget record", archive.Len())
	}
}

func TestReaperDisabledWithoutHorizon(t *testing.T) {
	tc := newTestChain(t, ProcessorConfig{HistoryRetentionDays: 0})
	payer := newMember(tc.s, "payer")
	payee := newMember(tc.s, "payee")
	tc.fund(payer, types.CoreAssetID, 10_000)

	tc.s.Dynamic.HeadBlockTime = passTime.Add(-90 * 24 * time.Hour)
	if _, err := tc.sp.eval.Apply(types.TransferOperation{
		From: payer, To: payee, Asset: types.CoreAssetID, Amount: 10,
	}); err != nil {
		t.Fatalf("seed transfer: %v", err)
	}
	tc.s.Dynamic.HeadBlockTime = passTime.Add(-time.Hour)

	before := len(tc.s.OperationHistoryByTime())
	tc.runMaintenance(t)

	if got := len(tc.s.OperationHistoryByTime()); got < before {
		t.Fatalf("history reaped with retention disabled: %d -> %d", before, got)
	}
}

func TestMatureBalancesResetEveryPass(t *testing.T) {
	tc := newTestChain(t, ProcessorConfig{})
	holder := newMember(tc.s, "holder")
	tc.fund(holder, types.CoreAssetID, 5000)

	tc.runMaintenance(t)

	mb := tc.s.MatureBalance(holder, types.CoreAssetID)
	if mb.Balance != 5000 {
		t.Fatalf("mature balance %d, want reset to live 5000", mb.Balance)
	}
	if len(mb.History) != 1 || mb.History[0].MaturedBalance != 5000 {
		t.Fatalf("mature history %+v, want single full snapshot", mb.History)
	}
}

func TestExpiredChequesReapedByCreationTime(t *testing.T) {
	tc := newTestChain(t, ProcessorConfig{HistoryRetentionDays: 1})
	drawer := newMember(tc.s, "drawer")

	// Already reversed long ago; only the record remains.
	old := tc.s.CreateCheque(&types.Cheque{
		Code:               "old123",
		DatetimeCreation:   passTime.Add(-10 * 24 * time.Hour),
		DatetimeExpiration: passTime.Add(-9 * 24 * time.Hour),
		Drawer:             drawer,
		Asset:              types.CoreAssetID,
		Status:             types.ChequeUndo,
	})
	fresh := tc.s.CreateCheque(&types.Cheque{
		Code:               "new456",
		DatetimeCreation:   passTime.Add(-time.Hour),
		DatetimeExpiration: passTime.Add(48 * time.Hour),
		Drawer:             drawer,
		Asset:              types.CoreAssetID,
		Status:             types.ChequeNew,
	})

	tc.runMaintenance(t)

	if _, ok := tc.s.Cheque(old.ID); ok {
		t.Fatalf("stale cheque record survived the reaper")
	}
	if _, ok := tc.s.Cheque(fresh.ID); !ok {
		t.Fatalf("fresh cheque reaped")
	}
}
