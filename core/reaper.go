package core

import (
	"time"

	"edcchain/core/types"
)

// clearOldEntities resets the maturation ledger and prunes every
// history object past the retention horizon, in a fixed order:
// operation history, account transaction history (post-HF617 only),
// fund history, blind transfers, cheques. Pruned rows are archived
// before removal.
func (sp *StateProcessor) clearOldEntities() {
	now := sp.s.Dynamic.HeadBlockTime

	// The guard looks inverted and is: the maturation reset runs on
	// every pass except the one landing exactly on the HF616 change
	// time. Consensus-frozen; changing it forks historical replay.
	if !now.Equal(sp.hardforks.HF616MaintenanceChange) {
		sp.clearAccountMatureBalanceIndex()
	}

	if sp.historyRetentionDays > 0 {
		cutoff := now.Add(-time.Duration(sp.historyRetentionDays) * 24 * time.Hour)
		reaped := 0

		for _, h := range sp.s.OperationHistoryByTime() {
			if !h.BlockTime.Before(cutoff) {
				break
			}
			sp.archiveOperationHistory(h)
			sp.s.RemoveOperationHistory(h.ID)
			reaped++
		}

		// The oldest bonus variant walks account transaction history;
		// reaping it only became safe at HF617.
		if now.After(sp.hardforks.HF617) {
			for _, n := range sp.s.AccountTxHistoryByTime() {
				if !n.BlockTime.Before(cutoff) {
					break
				}
				sp.s.RemoveAccountTxHistory(n.ID)
				reaped++
			}
		}

		for _, h := range sp.s.FundHistoryByTime() {
			if !h.BlockTime.Before(cutoff) {
				break
			}
			sp.s.RemoveFundHistory(h.ID)
			reaped++
		}

		for _, b := range sp.s.BlindTransfersByDatetime() {
			if !b.Datetime.Before(cutoff) {
				break
			}
			sp.s.RemoveBlindTransfer(b.ID)
			reaped++
		}

		for _, c := range sp.s.ChequesByCreation() {
			if !c.DatetimeCreation.Before(cutoff) {
				break
			}
			sp.s.RemoveCheque(c.ID)
			reaped++
		}

		sp.metrics.AddReaped(reaped)
	}

	// The online-presence counter only feeds the legacy bonus window;
	// from HF618 on it resets every pass.
	if now.After(sp.hardforks.HF618) {
		sp.s.Online.OnlineInfo = map[types.AccountID]uint16{}
	}
}

// clearAccountMatureBalanceIndex resets every maturation row to the
// live balance, drops its history and clears the mandatory-transfer
// marks on both ledgers.
func (sp *StateProcessor) clearAccountMatureBalanceIndex() {
	for _, bal := range sp.s.BalancesByAccountAsset() {
		bal.MandatoryTransfer = false
		live := bal.Balance
		sp.s.ModifyMatureBalance(bal.Owner, bal.Asset, func(mb *types.AccountMatureBalance) {
			mb.Balance = live
			mb.History = mb.History[:0]
			mb.MandatoryTransfer = false
			mb.History = append(mb.History, types.MatureBalancesHistory{
				Balance:        live,
				MaturedBalance: live,
			})
		})
	}
}
