package types

// AssetParams is the bonus configuration of an asset.
type AssetParams struct {
	// DailyBonus enables the daily bonus for holders of this asset.
	DailyBonus bool
	// BonusPercent is the daily bonus rate in BonusPercentDenom units.
	BonusPercent uint32
	// MaturingBonusBalance routes bonuses through the pending
	// bonus-balance ledger instead of issuing immediately.
	MaturingBonusBalance bool
}

// Asset is the immutable-ish asset definition object.
type Asset struct {
	ID        AssetID
	Symbol    string
	Precision uint8
	Issuer    AccountID

	// MaxSupply caps CurrentSupply; reserved = MaxSupply − CurrentSupply.
	MaxSupply Amount

	Params AssetParams

	// BuybackAccount, when set, is the account whose holdings the
	// buyback engine liquidates into this asset every interval.
	BuybackAccount *AccountID
}

// AssetDynamicData is the frequently-mutated companion of an Asset.
type AssetDynamicData struct {
	Asset           AssetID
	CurrentSupply   Amount
	AccumulatedFees Amount
}

// Reserved is the unissued remainder of the asset.
func (a *Asset) Reserved(dyn *AssetDynamicData) Amount {
	return a.MaxSupply - dyn.CurrentSupply
}

// FBAccumulator pools fees earmarked for a three-way split between the
// network, a designated asset's buyback account, and its issuer.
type FBAccumulator struct {
	ID                 FBAccumulatorID
	AccumulatedFBAFees Amount
	// DesignatedAsset receives the non-network share; nil means the
	// pool is not configured and its fees burn.
	DesignatedAsset *AssetID
}

// IsConfigured reports whether the pool has a designated asset whose
// buyback account exists.
func (f *FBAccumulator) IsConfigured(designated *Asset) bool {
	return f.DesignatedAsset != nil && designated != nil && designated.BuybackAccount != nil
}

// Buyback marks an asset as buyback-configured.
type Buyback struct {
	ID         uint64
	AssetToBuy AssetID
}

// BitassetData carries the per-interval force-settlement volume of a
// market-pegged asset; the volume resets every maintenance pass.
type BitassetData struct {
	Asset              AssetID
	ForceSettledVolume Amount
}

// LimitOrder is an open order on the market; the buyback engine creates
// and immediately cancels them through the evaluator.
type LimitOrder struct {
	ID           LimitOrderID
	Seller       AccountID
	SellAsset    AssetID
	ReceiveAsset AssetID
	ForSale      Amount
	MinToReceive Amount
}
