package core

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"

	"edcchain/core/types"
)

// Archived rows use canonical RLP so that independently-built archives
// compare byte-identical. Amounts are non-negative at archive time and
// encode as unsigned.

type archivedOperation struct {
	ID        uint64
	OpKind    uint8
	BlockNum  uint64
	BlockTime uint64
}

type archivedBudgetRecord struct {
	ID                      uint64
	Time                    uint64
	TimeSinceLastBudget     uint64
	FromInitialReserve      uint64
	FromAccumulatedFees     uint64
	FromUnusedWitnessBudget uint64
	RequestedWitnessBudget  uint64
	TotalBudget             uint64
	WitnessBudget           uint64
	WorkerBudget            uint64
	LeftoverWorkerFunds     uint64
	SupplyDeltaNeg          bool
	SupplyDeltaAbs          uint64
}

// archiveOperationHistory writes a pruned history row to the archive
// before the store forgets it.
func (sp *StateProcessor) archiveOperationHistory(h *types.OperationHistory) {
	if sp.archive == nil {
		return
	}
	row := archivedOperation{
		ID:        uint64(h.ID),
		OpKind:    uint8(h.Op.Kind()),
		BlockNum:  h.BlockNum,
		BlockTime: uint64(h.BlockTime.Unix()),
	}
	encoded, err := rlp.EncodeToBytes(row)
	if err != nil {
		sp.logger.Warn("archiving history row failed", "id", uint64(h.ID), "err", err)
		return
	}
	if err := sp.archive.Put(archiveKey("op", uint64(h.ID)), encoded); err != nil {
		sp.logger.Warn("archive write failed", "id", uint64(h.ID), "err", err)
	}
}

// archiveBudgetRecord mirrors the append-only budget ledger into the
// archive.
func (sp *StateProcessor) archiveBudgetRecord(obj *types.BudgetRecordObject) {
	if sp.archive == nil {
		return
	}
	rec := obj.Record
	row := archivedBudgetRecord{
		ID:                      obj.ID,
		Time:                    uint64(obj.Time.Unix()),
		TimeSinceLastBudget:     rec.TimeSinceLastBudget,
		FromInitialReserve:      uint64(rec.FromInitialReserve),
		FromAccumulatedFees:     uint64(rec.FromAccumulatedFees),
		FromUnusedWitnessBudget: uint64(rec.FromUnusedWitnessBudget),
		RequestedWitnessBudget:  uint64(rec.RequestedWitnessBudget),
		TotalBudget:             uint64(rec.TotalBudget),
		WitnessBudget:           uint64(rec.WitnessBudget),
		WorkerBudget:            uint64(rec.WorkerBudget),
		LeftoverWorkerFunds:     uint64(rec.LeftoverWorkerFunds),
	}
	if rec.SupplyDelta < 0 {
		row.SupplyDeltaNeg = true
		row.SupplyDeltaAbs = uint64(-rec.SupplyDelta)
	} else {
		row.SupplyDeltaAbs = uint64(rec.SupplyDelta)
	}
	encoded, err := rlp.EncodeToBytes(row)
	if err != nil {
		sp.logger.Warn("archiving budget record failed", "id", obj.ID, "err", err)
		return
	}
	if err := sp.archive.Put(archiveKey("budget", obj.ID), encoded); err != nil {
		sp.logger.Warn("archive write failed", "id", obj.ID, "err", err)
	}
}

func archiveKey(prefix string, id uint64) []byte {
	key := make([]byte, len(prefix)+1+8)
	copy(key, prefix)
	key[len(prefix)] = '/'
	binary.BigEndian.PutUint64(key[len(prefix)+1:], id)
	return key
}
