package core

import (
	"errors"
	"time"

	"edcchain/core/types"
)

func secondsDuration(s int64) time.Duration { return time.Duration(s) * time.Second }

// processFunds accrues interest on every live fund and winds down the
// ones whose lifetime ended before the previous interval boundary.
func (sp *StateProcessor) processFunds() {
	dpo := sp.s.Dynamic
	gpo := sp.s.Global
	now := dpo.HeadBlockTime

	prevIntervalEnd := dpo.NextMaintenanceTime.Add(-secondsDuration(int64(gpo.Parameters.MaintenanceInterval)))

	for _, fund := range sp.s.FundsByID() {
		// Overdue funds neither accrue nor wind down again.
		if !fund.Enabled || fund.DatetimeEnd.Before(now) {
			continue
		}

		sp.processFund(fund)

		if !prevIntervalEnd.Before(fund.DatetimeEnd) {
			sp.finishFund(fund)
		}
	}
}

// processFund pays the per-pass fixed percent to every enabled deposit
// out of the fund's own pot.
func (sp *StateProcessor) processFund(fund *types.Fund) {
	if fund.RatePerMaintenance == 0 {
		return
	}
	for _, dep := range sp.s.FundDepositsByID(fund.ID) {
		if !dep.Enabled || dep.Amount <= 0 {
			continue
		}
		interest := dep.Amount * types.Amount(fund.RatePerMaintenance) / types.Percent100
		if interest < 1 {
			continue
		}
		if _, err := sp.eval.Apply(types.FundPaymentOperation{
			Fund:    fund.ID,
			Account: dep.Account,
			Asset:   fund.Asset,
			Amount:  interest,
		}); err != nil {
			sp.warnPerRecord("skipping fund payment", dep.Account, fund.Asset, err)
		}
	}
}

// finishFund disables a fund past its deadline and returns deposits to
// their owners.
func (sp *StateProcessor) finishFund(fund *types.Fund) {
	for _, dep := range sp.s.FundDepositsByID(fund.ID) {
		if !dep.Enabled || dep.Amount <= 0 {
			continue
		}
		sp.s.AdjustBalance(dep.Account, fund.Asset, dep.Amount)
		sp.s.PushFundHistory(fund.ID, dep.Account, dep.Amount)
		dep.Amount = 0
		dep.Enabled = false
	}
	fund.Enabled = false
}

// processCheques reverses every expired cheque that is still open,
// returning the remainder to the drawer. Evaluator refusals are
// swallowed to keep the pass alive.
func (sp *StateProcessor) processCheques() {
	dpo := sp.s.Dynamic
	gpo := sp.s.Global
	prevIntervalEnd := dpo.NextMaintenanceTime.Add(-secondsDuration(int64(gpo.Parameters.MaintenanceInterval)))

	for _, cheque := range sp.s.ChequesByID() {
		if cheque.Status != types.ChequeNew {
			continue
		}
		if prevIntervalEnd.Before(cheque.DatetimeExpiration) {
			continue
		}
		if _, err := sp.eval.Apply(types.ChequeReverseOperation{
			Cheque:  cheque.ID,
			Account: cheque.Drawer,
			Asset:   cheque.Asset,
			Amount:  cheque.RemainingAmount(),
		}); err != nil {
			if errors.Is(err, types.ErrAuthorityRejected) {
				continue
			}
			sp.warnPerRecord("cheque reversal failed", cheque.Drawer, cheque.Asset, err)
		}
	}
}

// deprecateAnnualMembers upgrades every annual member to lifetime, one
// account at a time with a per-record fault boundary. Runs exactly
// once, on the interval crossing HF613.
func (sp *StateProcessor) deprecateAnnualMembers() {
	now := sp.s.Dynamic.HeadBlockTime
	for _, acct := range sp.s.AccountsByID() {
		if !acct.IsAnnualMember(now) {
			continue
		}
		if _, err := sp.eval.Apply(types.AccountUpgradeOperation{
			AccountToUpgrade:  acct.ID,
			UpgradeToLifetime: true,
		}); err != nil {
			sp.logger.Warn("skipping annual member deprecation",
				"account", uint64(acct.ID),
				"name", acct.Name,
				"block_num", sp.s.Dynamic.HeadBlockNumber,
				"err", err,
			)
		}
	}
}
