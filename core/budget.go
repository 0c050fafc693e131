package core

import (
	"fmt"

	"edcchain/core/types"
	"edcchain/native/budget"
	"edcchain/native/votes"
)

// initializeBudgetRecord computes the period budget from the effective
// reserve. Accumulated fees and the unspent witness budget count as
// refunded to the reserve at the start of the interval; the single
// modify of the dynamic data happens later, in processBudget.
func (sp *StateProcessor) initializeBudgetRecord(rec *types.BudgetRecord) error {
	dpo := sp.s.Dynamic
	core, _ := sp.s.Asset(types.CoreAssetID)
	coreDD := sp.s.CoreDynamic()

	rec.FromInitialReserve = core.Reserved(coreDD)
	rec.FromAccumulatedFees = coreDD.AccumulatedFees
	rec.FromUnusedWitnessBudget = dpo.WitnessBudget

	now := dpo.HeadBlockTime
	if dpo.LastBudgetTime.IsZero() || !now.After(dpo.LastBudgetTime) {
		rec.TimeSinceLastBudget = 0
		return nil
	}

	dt := uint64(now.Unix() - dpo.LastBudgetTime.Unix())
	rec.TimeSinceLastBudget = dt

	reserve := rec.FromInitialReserve + coreDD.AccumulatedFees + dpo.WitnessBudget

	total, err := budget.TotalBudget(reserve, dt)
	if err != nil {
		return err
	}
	rec.TotalBudget = total
	return nil
}

// processBudget allocates the period budget between witnesses and
// workers, pays the workers and reconciles the core supply. It runs
// after the deadline has advanced; it needs next_maintenance_time.
func (sp *StateProcessor) processBudget() error {
	gpo := sp.s.Global
	dpo := sp.s.Dynamic
	core := sp.s.CoreDynamic()
	now := dpo.HeadBlockTime

	timeToMaint := dpo.NextMaintenanceTime.Unix() - now.Unix()
	if timeToMaint <= 0 {
		return fmt.Errorf("%w: non-positive time to maintenance %d",
			types.ErrInvariantViolation, timeToMaint)
	}
	blockInterval := int64(gpo.Parameters.BlockInterval)
	blocksToMaint := (timeToMaint + blockInterval - 1) / blockInterval

	var rec types.BudgetRecord
	if err := sp.initializeBudgetRecord(&rec); err != nil {
		return err
	}
	availableFunds := rec.TotalBudget

	witnessBudget := gpo.Parameters.WitnessPayPerBlock * blocksToMaint
	rec.RequestedWitnessBudget = witnessBudget
	if witnessBudget > availableFunds {
		witnessBudget = availableFunds
	}
	rec.WitnessBudget = witnessBudget
	availableFunds -= witnessBudget

	workerBudget := budget.WorkerBudget(gpo.Parameters.WorkerBudgetPerDay, rec.TimeSinceLastBudget, availableFunds)
	rec.WorkerBudget = workerBudget
	availableFunds -= workerBudget

	leftoverWorkerFunds := workerBudget
	sp.payWorkers(&leftoverWorkerFunds)
	rec.LeftoverWorkerFunds = leftoverWorkerFunds
	availableFunds += leftoverWorkerFunds

	rec.SupplyDelta = rec.WitnessBudget +
		rec.WorkerBudget -
		rec.LeftoverWorkerFunds -
		rec.FromAccumulatedFees -
		rec.FromUnusedWitnessBudget

	core.CurrentSupply += rec.SupplyDelta
	core.AccumulatedFees = 0

	// The prior witness budget was rolled into available funds above,
	// so the new allowance replaces it rather than adding to it.
	dpo.WitnessBudget = witnessBudget
	dpo.LastBudgetTime = now

	obj := sp.s.AppendBudgetRecord(now, rec)
	sp.archiveBudgetRecord(obj)

	// availableFunds is money we could spend but don't want to; it
	// evaporates back into the reserve.
	return nil
}

// payWorkers disburses the worker budget greedily over the active,
// approved workers: most approving stake first, lower id breaking
// ties.
func (sp *StateProcessor) payWorkers(budgetLeft *types.Amount) {
	now := sp.s.Dynamic.HeadBlockTime
	dpo := sp.s.Dynamic

	var activeWorkers []*types.Worker
	for _, w := range sp.s.WorkersByID() {
		if w.IsActive(now) && w.ApprovingStake() > 0 {
			activeWorkers = append(activeWorkers, w)
		}
	}
	activeWorkers = votes.TopK(activeWorkers, len(activeWorkers),
		func(w *types.Worker) uint64 { return w.ApprovingStake() },
		func(w *types.Worker) uint64 { return uint64(w.ID) },
	)

	dtSeconds := uint64(0)
	if !dpo.LastBudgetTime.IsZero() && now.After(dpo.LastBudgetTime) {
		dtSeconds = uint64(now.Unix() - dpo.LastBudgetTime.Unix())
	}

	for _, w := range activeWorkers {
		if *budgetLeft <= 0 {
			break
		}
		requestedPay := w.DailyPay
		if dtSeconds != types.SecondsPerDay {
			requestedPay = budget.ProratedPay(w.DailyPay, dtSeconds)
		}
		actualPay := requestedPay
		if actualPay > *budgetLeft {
			actualPay = *budgetLeft
		}
		sp.payWorker(w, actualPay)
		*budgetLeft -= actualPay
	}
}

// payWorker dispatches one payment by worker kind: refunds evaporate
// into the reserve, burns do the same but are accounted on the worker,
// vesting pay accrues into the worker's pot.
func (sp *StateProcessor) payWorker(w *types.Worker, pay types.Amount) {
	if pay <= 0 {
		return
	}
	core := sp.s.CoreDynamic()
	switch w.Kind {
	case types.WorkerRefund:
		core.CurrentSupply -= pay
	case types.WorkerBurn:
		core.CurrentSupply -= pay
		w.TotalBurned += pay
	case types.WorkerVesting:
		w.VestingBalance += pay
	}
	sp.s.PushAppliedOperation(w.WorkerAccount, types.WorkerPayOperation{Worker: w.ID, Amount: pay})
	sp.metrics.AddWorkerPay(pay)
}
