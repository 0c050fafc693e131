package core

import (
	"errors"

	"edcchain/core/types"
)

// createBuybackOrders liquidates each buyback account's whitelisted
// holdings into the asset being bought: post a limit order for the
// whole holding at a one-satoshi floor price, then cancel whatever
// rests. An evaluator rejection (a whitelist conflict, say) skips that
// asset and keeps the pass alive.
func (sp *StateProcessor) createBuybackOrders() {
	for _, bbo := range sp.s.BuybacksByID() {
		assetToBuy, ok := sp.s.Asset(bbo.AssetToBuy)
		if !ok || assetToBuy.BuybackAccount == nil {
			continue
		}
		buybackAccount, ok := sp.s.Account(*assetToBuy.BuybackAccount)
		if !ok {
			continue
		}
		if buybackAccount.AllowedAssets == nil {
			sp.logger.Warn("skipping buyback account without allowed-assets whitelist",
				"account", uint64(buybackAccount.ID),
				"block_num", sp.s.Dynamic.HeadBlockNumber,
			)
			continue
		}

		for _, bal := range sp.s.AccountBalances(buybackAccount.ID) {
			assetToSell := bal.Asset
			amountToSell := bal.Balance
			if assetToSell == assetToBuy.ID {
				continue
			}
			if amountToSell == 0 {
				continue
			}
			if !buybackAccount.AllowsAsset(assetToSell) {
				sp.logger.Warn("buyback account not selling disallowed holdings",
					"account", uint64(buybackAccount.ID),
					"asset", uint64(assetToSell),
					"block_num", sp.s.Dynamic.HeadBlockNumber,
				)
				continue
			}

			if err := sp.submitBuybackOrder(buybackAccount.ID, assetToSell, assetToBuy.ID, amountToSell); err != nil {
				// Per-record fault boundary: issuer white/blacklists
				// can reject the order at evaluation time.
				if errors.Is(err, types.ErrAuthorityRejected) {
					sp.logger.Warn("skipping buyback order",
						"account", uint64(buybackAccount.ID),
						"sell_asset", uint64(assetToSell),
						"buy_asset", uint64(assetToBuy.ID),
						"block_num", sp.s.Dynamic.HeadBlockNumber,
						"err", err,
					)
					continue
				}
				sp.logger.Warn("buyback order failed",
					"account", uint64(buybackAccount.ID),
					"sell_asset", uint64(assetToSell),
					"block_num", sp.s.Dynamic.HeadBlockNumber,
					"err", err,
				)
			}
		}
	}
}

func (sp *StateProcessor) submitBuybackOrder(seller types.AccountID, sellAsset, buyAsset types.AssetID, amount types.Amount) error {
	applied, err := sp.eval.Apply(types.LimitOrderCreateOperation{
		Seller:       seller,
		AmountToSell: amount,
		SellAsset:    sellAsset,
		MinToReceive: 1,
		ReceiveAsset: buyAsset,
		FillOrKill:   false,
	})
	if err != nil {
		return err
	}
	// Whatever the order did not fill immediately is cancelled so the
	// balance returns rather than resting on the book.
	if _, ok := sp.s.LimitOrder(applied.Order); ok {
		if _, err := sp.eval.Apply(types.LimitOrderCancelOperation{
			Order:            applied.Order,
			FeePayingAccount: seller,
		}); err != nil {
			return err
		}
	}
	return nil
}
