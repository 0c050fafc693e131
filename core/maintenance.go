package core

import (
	"fmt"
	"time"

	"edcchain/core/types"
)

// MaintenanceDue reports whether applying a block with the given
// timestamp crosses the maintenance deadline.
func (sp *StateProcessor) MaintenanceDue(blockTime time.Time) bool {
	return !sp.s.Dynamic.NextMaintenanceTime.After(blockTime)
}

// ProcessBlock advances head state and runs the maintenance pass when
// the block crosses the deadline. A failed pass restores the
// pre-maintenance snapshot and surfaces the error; the caller drops
// the block.
func (sp *StateProcessor) ProcessBlock(block types.BlockHeader) error {
	due := sp.MaintenanceDue(block.Timestamp)
	sp.s.Dynamic.HeadBlockNumber = block.Number
	sp.s.Dynamic.HeadBlockTime = block.Timestamp.UTC()
	if !due {
		return nil
	}

	snap := sp.s.TakeSnapshot()
	if err := sp.PerformChainMaintenance(block); err != nil {
		sp.s.Restore(snap)
		sp.s.Dynamic.HeadBlockNumber = block.Number
		sp.s.Dynamic.HeadBlockTime = block.Timestamp.UTC()
		return fmt.Errorf("maintenance pass at block %d: %w", block.Number, err)
	}
	return nil
}

// PerformChainMaintenance executes one full maintenance pass. The
// sequence is fixed and totally ordered; every traversal below runs
// over a deterministic index.
func (sp *StateProcessor) PerformChainMaintenance(block types.BlockHeader) error {
	started := time.Now()
	gpo := sp.s.Global
	dpo := sp.s.Dynamic
	now := dpo.HeadBlockTime

	// Scratch buffers are released on every exit path, including a
	// failed pass.
	defer sp.tally.Clear()

	if err := sp.checkEntryInvariants(); err != nil {
		return err
	}

	if err := sp.distributeFBABalances(); err != nil {
		return err
	}
	sp.createBuybackOrders()

	sp.performAccountMaintenance()

	sp.updateTopNAuthorities()
	sp.updateActiveWitnesses()
	sp.updateActiveCommitteeMembers()
	sp.updateWorkerVotes()

	sp.unwindAccountFeeScale()
	if gpo.PendingParameters != nil {
		gpo.Parameters = *gpo.PendingParameters
		gpo.PendingParameters = nil
	}

	nextMaintenanceTime := sp.nextMaintenanceTime(block)

	// One-shot: the interval that carries the chain across HF613
	// upgrades every annual member to lifetime.
	if dpo.NextMaintenanceTime.Before(sp.hardforks.HF613) && !nextMaintenanceTime.Before(sp.hardforks.HF613) {
		sp.deprecateAnnualMembers()
	}

	dpo.NextMaintenanceTime = nextMaintenanceTime
	dpo.AccountsRegisteredThisInterval = 0

	for _, b := range sp.s.BitassetsByAsset() {
		b.ForceSettledVolume = 0
	}

	// The budget needs the advanced next_maintenance_time; it runs at
	// the bottom.
	if err := sp.processBudget(); err != nil {
		return err
	}

	if now.After(sp.hardforks.HF622) {
		sp.processFunds()
	}
	switch {
	case now.After(sp.hardforks.HF620):
		sp.issueBonuses()
	case now.After(sp.hardforks.HF617):
		sp.issueBonusesBefore620()
	case now.After(sp.hardforks.HF616):
		sp.issueBonusesOld()
	}

	sp.processCheques()

	sp.clearOldEntities()

	sp.lastPassDigest = sp.accountingDigest()

	sp.logger.Info("maintenance pass complete",
		"block_num", block.Number,
		"head_block_time", now,
		"next_maintenance_time", dpo.NextMaintenanceTime,
	)
	sp.metrics.ObservePass(time.Since(started))
	return nil
}

// nextMaintenanceTime computes the advanced deadline per the source
// chain's schedule: the smallest k with next + k*interval > head, with
// the one-shot 3/8 phase shift exactly at the HF616 change time.
func (sp *StateProcessor) nextMaintenanceTime(block types.BlockHeader) time.Time {
	dpo := sp.s.Dynamic
	next := dpo.NextMaintenanceTime
	interval := int64(sp.s.Global.Parameters.MaintenanceInterval)

	if next.After(block.Timestamp) {
		return next
	}
	if block.Number == 1 {
		// First block: align the deadline to the interval grid.
		return time.Unix((block.Timestamp.Unix()/interval+1)*interval, 0).UTC()
	}

	y := (dpo.HeadBlockTime.Unix() - next.Unix()) / interval
	if dpo.HeadBlockTime.Equal(sp.hardforks.HF616MaintenanceChange) {
		// coef = 0.375, applied exactly once. interval*3/8 in integer
		// arithmetic; exact because the interval is divisible by
		// eight.
		return next.Add(time.Duration(y*interval+interval*3/8) * time.Second)
	}
	return next.Add(time.Duration((y+1)*interval) * time.Second)
}

// unwindAccountFeeScale removes the anti-spam scaling the account
// registration fee accumulated during the interval.
func (sp *StateProcessor) unwindAccountFeeScale() {
	gpo := sp.s.Global
	dpo := sp.s.Dynamic
	if gpo.Parameters.AccountsPerFeeScale == 0 {
		return
	}
	shift := uint(gpo.Parameters.AccountFeeScaleBitshifts) *
		uint(dpo.AccountsRegisteredThisInterval/gpo.Parameters.AccountsPerFeeScale)
	if shift >= 63 {
		gpo.Parameters.CurrentFees.AccountCreateBasicFee = 0
		return
	}
	gpo.Parameters.CurrentFees.AccountCreateBasicFee >>= shift
}

// checkEntryInvariants validates the preconditions the pass depends
// on; any violation here is a consensus bug upstream.
func (sp *StateProcessor) checkEntryInvariants() error {
	if sp.s.Global.Parameters.BlockInterval == 0 {
		return fmt.Errorf("%w: zero block interval", types.ErrParameterViolation)
	}
	if sp.s.Global.Parameters.MaintenanceInterval == 0 {
		return fmt.Errorf("%w: zero maintenance interval", types.ErrParameterViolation)
	}
	if !sp.tally.Empty() {
		return fmt.Errorf("%w: scratch buffers not empty on entry", types.ErrInvariantViolation)
	}
	return nil
}
