package core

import (
	"errors"
	"time"

	"edcchain/core/types"
	"edcchain/native/bonus"
	"edcchain/referral"
)

// issueBonuses is the modern (post-HF620) daily bonus pass: advance
// balance maturation, issue per-asset holder bonuses, distribute the
// referral tree, then release the bonuses that matured in previous
// passes.
func (sp *StateProcessor) issueBonuses() {
	sp.considerMiningInMatureBalances()

	alpha, ok := sp.s.Account(types.AlphaAccountID)
	if !ok {
		return
	}

	for _, asset := range sp.s.AssetsByID() {
		if asset.ID == types.CoreAssetID {
			continue
		}
		if !asset.Params.DailyBonus || asset.Params.BonusPercent == 0 {
			continue
		}
		issuer := sp.s.MustAccount(asset.Issuer)

		for _, account := range sp.s.AccountsByID() {
			balance := sp.balanceForBonus(account.ID, asset.ID)
			quantity := bonus.Quantity(balance, asset.Params.BonusPercent)
			if quantity < 1 {
				continue
			}
			if alpha.IsBlacklisted(account.ID) {
				continue
			}
			if issuer.IsBlacklisted(account.ID) {
				continue
			}

			dyn := sp.s.AssetDynamic(asset.ID)
			quantity = types.ClampSupply(dyn.CurrentSupply, quantity)
			if quantity < 1 {
				continue
			}

			if asset.Params.MaturingBonusBalance {
				sp.adjustBonusBalance(account.ID, asset.ID, quantity)
				continue
			}

			realBalance := sp.s.Balance(account.ID, asset.ID).Balance
			if _, err := sp.eval.Apply(types.DailyIssueOperation{
				Issuer:         asset.Issuer,
				Asset:          asset.ID,
				AssetToIssue:   quantity,
				IssueToAccount: account.ID,
				AccountBalance: realBalance,
			}); err != nil {
				sp.warnPerRecord("skipping daily issue", account.ID, asset.ID, err)
				continue
			}
			sp.metrics.AddBonusIssued(quantity)
		}
	}

	sp.issueReferral()

	for _, account := range sp.s.AccountsByID() {
		sp.processBonusBalances(account.ID)
	}
}

// issueReferral runs the referral distribution over the core asset and
// deposits every payout into the pending bonus ledger.
func (sp *StateProcessor) issueReferral() {
	rtree := referral.New(sp.s.AccountsByID(), types.CommitteeAccountID, func(id types.AccountID) types.Amount {
		return sp.matureBalanceOf(id, types.CoreAssetID)
	})
	rtree.Form()
	for _, payout := range rtree.Scan() {
		core := sp.s.CoreDynamic()
		quantity := types.ClampSupply(core.CurrentSupply, payout.Quantity)
		if quantity < 1 {
			continue
		}
		sp.adjustReferralBalance(payout.ToAccount, types.CoreAssetID, quantity, payout.Rank, payout.History)
	}
}

// issueBonusesBefore620 is the HF617..HF620 variant: EDC-only daily
// bonuses over mature balances, online-fraction weighting inside the
// HF618..HF619 window, referral earnings issued directly.
func (sp *StateProcessor) issueBonusesBefore620() {
	now := sp.s.Dynamic.HeadBlockTime
	hf := sp.hardforks

	if now.After(hf.HF619) {
		sp.considerMiningOld()
	}

	asset, ok := sp.s.AssetBySymbol(types.CoreAssetSymbol)
	if !ok {
		return
	}
	issuer := sp.s.MustAccount(asset.Issuer)
	alpha, ok := sp.s.Account(types.AlphaAccountID)
	if !ok {
		return
	}

	rtree := referral.New(sp.s.AccountsByID(), types.CommitteeAccountID, func(id types.AccountID) types.Amount {
		return sp.matureBalanceOf(id, asset.ID)
	})
	rtree.Form()
	ops := rtree.Scan()

	onlineInfo := sp.s.Online.OnlineInfo
	onlineWindow := now.After(hf.HF618) && now.Before(hf.HF619)
	// With no presence data everybody counts as fully online.
	everyoneOnline := len(onlineInfo) == 0

	for _, account := range sp.s.AccountsByID() {
		sp.processBonusBalances(account.ID)

		realBalance := sp.s.Balance(account.ID, asset.ID).Balance
		balance := sp.matureBalanceOf(account.ID, asset.ID)
		quantity := bonus.Quantity(balance, types.LegacyBonusPercent)
		if quantity < 1 {
			continue
		}
		if alpha.IsBlacklisted(account.ID) {
			continue
		}
		if issuer.IsBlacklisted(account.ID) {
			continue
		}

		minutes := uint16(types.MinutesPerDay)
		if onlineWindow && !everyoneOnline {
			minutes = onlineInfo[account.ID]
		}
		if onlineWindow {
			quantity = bonus.OnlineWeight(quantity, minutes)
		}
		if quantity < 1 {
			continue
		}

		if now.After(hf.HF620) {
			sp.adjustBonusBalance(account.ID, asset.ID, quantity)
		} else {
			if _, err := sp.eval.Apply(types.DailyIssueOperation{
				Issuer:         asset.Issuer,
				Asset:          asset.ID,
				AssetToIssue:   types.ClampSupply(sp.s.AssetDynamic(asset.ID).CurrentSupply, quantity),
				IssueToAccount: account.ID,
				AccountBalance: realBalance,
			}); err != nil {
				sp.warnPerRecord("skipping daily issue", account.ID, asset.ID, err)
			}
		}

		payout, ok := referral.Find(ops, account.ID)
		if !ok {
			continue
		}

		if now.After(hf.HF620) {
			sp.adjustReferralBalance(account.ID, asset.ID, payout.Quantity, payout.Rank, payout.History)
			continue
		}

		amount := payout.Quantity
		if onlineWindow {
			amount = bonus.OnlineWeight(amount, minutes)
		}
		if amount < 1 {
			continue
		}
		if _, err := sp.eval.Apply(types.ReferralIssueOperation{
			Issuer:         asset.Issuer,
			Asset:          asset.ID,
			AssetToIssue:   types.ClampSupply(sp.s.AssetDynamic(asset.ID).CurrentSupply, amount),
			IssueToAccount: payout.ToAccount,
			Rank:           payout.Rank,
			History:        payout.History,
			AccountBalance: realBalance,
		}); err != nil {
			sp.warnPerRecord("skipping referral issue", account.ID, asset.ID, err)
		}
	}

	if now.After(hf.HF620) {
		for _, account := range sp.s.AccountsByID() {
			sp.processBonusBalances(account.ID)
		}
	}
}

// issueBonusesOld is the HF616..HF617 variant: the activity gate over
// the account's operation history decides who earns, balances are
// live, referral earnings issue directly.
func (sp *StateProcessor) issueBonusesOld() {
	asset, ok := sp.s.AssetBySymbol(types.CoreAssetSymbol)
	if !ok {
		return
	}
	issuer := sp.s.MustAccount(asset.Issuer)
	alpha, ok := sp.s.Account(types.AlphaAccountID)
	if !ok {
		return
	}

	rtree := referral.New(sp.s.AccountsByID(), types.CommitteeAccountID, func(id types.AccountID) types.Amount {
		return sp.s.Balance(id, asset.ID).Balance
	})
	rtree.Form()

	for _, payout := range rtree.Scan() {
		if alpha.IsBlacklisted(payout.ToAccount) {
			continue
		}
		if issuer.IsBlacklisted(payout.ToAccount) {
			continue
		}
		if !sp.hadRecentOutboundTransfer(payout.ToAccount, asset.ID) {
			continue
		}
		if _, err := sp.eval.Apply(types.ReferralIssueOperation{
			Issuer:         asset.Issuer,
			Asset:          asset.ID,
			AssetToIssue:   types.ClampSupply(sp.s.AssetDynamic(asset.ID).CurrentSupply, payout.Quantity),
			IssueToAccount: payout.ToAccount,
			Rank:           payout.Rank,
			History:        payout.History,
		}); err != nil {
			sp.warnPerRecord("skipping referral issue", payout.ToAccount, asset.ID, err)
		}
	}

	for _, account := range sp.s.AccountsByID() {
		if alpha.IsBlacklisted(account.ID) {
			continue
		}
		if issuer.IsBlacklisted(account.ID) {
			continue
		}
		if !sp.hadRecentOutboundTransfer(account.ID, asset.ID) {
			continue
		}
		balance := sp.s.Balance(account.ID, asset.ID).Balance
		if balance == 0 {
			continue
		}
		quantity := bonus.Quantity(balance, types.LegacyBonusPercent)
		if quantity < 1 {
			continue
		}
		if _, err := sp.eval.Apply(types.DailyIssueOperation{
			Issuer:         asset.Issuer,
			Asset:          asset.ID,
			AssetToIssue:   types.ClampSupply(sp.s.AssetDynamic(asset.ID).CurrentSupply, quantity),
			IssueToAccount: account.ID,
		}); err != nil {
			sp.warnPerRecord("skipping daily issue", account.ID, asset.ID, err)
		}
	}
}

// hadRecentOutboundTransfer walks the account's history list newest to
// oldest and reports whether an outbound transfer of at least one
// whole core token happened within the last day. The walk order is
// load-bearing: the list is threaded newest-first via Next.
func (sp *StateProcessor) hadRecentOutboundTransfer(account types.AccountID, asset types.AssetID) bool {
	stats := sp.s.AccountStats(account)
	if stats.MostRecentOp == types.NilAccountTxHistory {
		return false
	}
	cutoff := sp.s.Dynamic.HeadBlockTime.Add(-24 * time.Hour)

	nodeID := stats.MostRecentOp
	for nodeID != types.NilAccountTxHistory {
		node, ok := sp.s.AccountTxHistoryNode(nodeID)
		if !ok {
			return false
		}
		if !node.BlockTime.After(cutoff) {
			return false
		}
		if h, ok := sp.s.OperationHistoryByID(node.OperationID); ok {
			if tr, ok := h.Op.(types.TransferOperation); ok {
				if tr.Asset == asset && tr.Amount >= 1*types.CoreAssetPrecision && tr.From == account {
					return true
				}
			}
		}
		nodeID = node.Next
	}
	return false
}

// adjustBonusBalance deposits a plain daily bonus into the pending
// ledger.
func (sp *StateProcessor) adjustBonusBalance(account types.AccountID, asset types.AssetID, quantity types.Amount) {
	now := sp.s.Dynamic.HeadBlockTime
	sp.s.ModifyBonusBalance(account, asset, func(b *types.BonusBalance) {
		b.Roll(now)
		b.DailyAmount += quantity
		b.LastDeposit = now
	})
}

// adjustReferralBalance deposits a referral payout into the pending
// ledger.
func (sp *StateProcessor) adjustReferralBalance(account types.AccountID, asset types.AssetID, quantity types.Amount, rank uint8, history []types.Amount) {
	now := sp.s.Dynamic.HeadBlockTime
	sp.s.ModifyBonusBalance(account, asset, func(b *types.BonusBalance) {
		b.Roll(now)
		b.ReferralAmount += quantity
		b.Referral = &types.ReferralInfo{Rank: rank, History: append([]types.Amount(nil), history...)}
		b.LastDeposit = now
	})
}

// processBonusBalances releases the account's matured pending bonuses
// into real balances. Deposits from the current pass stay pending; a
// bonus matures one full pass after it is earned.
func (sp *StateProcessor) processBonusBalances(account types.AccountID) {
	now := sp.s.Dynamic.HeadBlockTime
	for _, bb := range sp.s.BonusBalancesOf(account) {
		bb.Roll(now)
		total := bb.MaturedDaily + bb.MaturedReferral
		if total < 1 {
			if bb.Empty() {
				sp.s.RemoveBonusBalance(bb.Owner, bb.Asset)
			}
			continue
		}
		if _, err := sp.eval.Apply(types.BonusReleaseOperation{
			Account: bb.Owner,
			Asset:   bb.Asset,
			Amount:  total,
		}); err != nil {
			if errors.Is(err, types.ErrSupplyOverflow) || errors.Is(err, types.ErrAuthorityRejected) {
				sp.warnPerRecord("skipping bonus release", bb.Owner, bb.Asset, err)
			} else {
				sp.warnPerRecord("bonus release failed", bb.Owner, bb.Asset, err)
			}
			bb.MaturedDaily = 0
			bb.MaturedReferral = 0
			if bb.Empty() {
				sp.s.RemoveBonusBalance(bb.Owner, bb.Asset)
			}
			continue
		}
		bb.MaturedDaily = 0
		bb.MaturedReferral = 0
		if bb.Empty() {
			sp.s.RemoveBonusBalance(bb.Owner, bb.Asset)
		}
	}
}

// balanceForBonus is the base the modern bonus is computed over: the
// matured figure when a maturation row exists, the live balance
// otherwise.
func (sp *StateProcessor) balanceForBonus(account types.AccountID, asset types.AssetID) types.Amount {
	return sp.matureBalanceOf(account, asset)
}

// matureBalanceOf resolves the matured balance, falling back to the
// live balance for accounts without a maturation row yet.
func (sp *StateProcessor) matureBalanceOf(account types.AccountID, asset types.AssetID) types.Amount {
	mb := sp.s.MatureBalance(account, asset)
	if len(mb.History) == 0 && mb.Balance == 0 {
		return sp.s.Balance(account, asset).Balance
	}
	return mb.Balance
}

// considerMiningInMatureBalances advances the maturation window: the
// matured figure drops to the minimum of itself and the live balance,
// and a snapshot pair is appended.
func (sp *StateProcessor) considerMiningInMatureBalances() {
	for _, bal := range sp.s.BalancesByAccountAsset() {
		live := bal.Balance
		sp.s.ModifyMatureBalance(bal.Owner, bal.Asset, func(mb *types.AccountMatureBalance) {
			if len(mb.History) == 0 {
				mb.Balance = live
			} else if live < mb.Balance {
				mb.Balance = live
			}
			mb.History = append(mb.History, types.MatureBalancesHistory{
				Balance:        live,
				MaturedBalance: mb.Balance,
			})
		})
	}
}

// considerMiningOld is the pre-HF620 maturation advance; it shares the
// modern window arithmetic.
func (sp *StateProcessor) considerMiningOld() {
	sp.considerMiningInMatureBalances()
}

func (sp *StateProcessor) warnPerRecord(msg string, account types.AccountID, asset types.AssetID, err error) {
	sp.logger.Warn(msg,
		"account", uint64(account),
		"asset", uint64(asset),
		"block_num", sp.s.Dynamic.HeadBlockNumber,
		"err", err,
	)
}
