package types

import "math"

// Amount is a quantity of some asset in satoshis. All consensus
// arithmetic on amounts is fixed-width int64, with 128-bit
// intermediates where products can exceed 64 bits.
type Amount = int64

const (
	// Percent100 is the denominator of every percentage parameter.
	Percent100 = 10000
	// Percent1 is one percent in Percent100 units.
	Percent1 = Percent100 / 100

	// CoreAssetCycleRate is the fixed-point per-second budget rate of
	// the core asset reserve, in units of 2^-CoreAssetCycleRateBits.
	CoreAssetCycleRate = 17
	// CoreAssetCycleRateBits is the fixed-point shift of the cycle rate.
	CoreAssetCycleRateBits = 32

	// MaxShareSupply caps the supply of any asset. Issuing past it is
	// clamped, never applied.
	MaxShareSupply Amount = math.MaxInt64

	// CoreAssetSymbol is the symbol of the core asset.
	CoreAssetSymbol = "EDC"
	// CoreAssetPrecision is one whole core token in satoshis.
	CoreAssetPrecision Amount = 1000

	// BonusPercentDenom is the denominator of asset daily-bonus
	// percents, parts per million.
	BonusPercentDenom = 1_000_000
	// LegacyBonusPercent is the frozen 0.65% daily bonus of the legacy
	// issuance windows, in BonusPercentDenom units.
	LegacyBonusPercent = 6500

	// SecondsPerDay is the length of the worker-pay accounting day.
	SecondsPerDay = 60 * 60 * 24
	// MinutesPerDay bounds the online-presence counter of the legacy
	// bonus window.
	MinutesPerDay = 1440
)

// Well-known account ids, fixed at genesis.
const (
	// CommitteeAccountID is the governance multi-sig account whose
	// active authority is rebuilt from the elected committee.
	CommitteeAccountID AccountID = 0
	// WitnessAccountID is the producer multi-sig account whose active
	// authority is rebuilt from the elected witnesses.
	WitnessAccountID AccountID = 1
	// RelaxedCommitteeAccountID mirrors the committee authority
	// verbatim.
	RelaxedCommitteeAccountID AccountID = 2
	// NullAccountID absorbs burned funds.
	NullAccountID AccountID = 3
	// TempAccountID holds funds in transit.
	TempAccountID AccountID = 4
	// ProxyToSelfAccountID is the sentinel meaning "no voting proxy".
	// It never owns stake; an account whose voting account equals it
	// expresses its own opinions.
	ProxyToSelfAccountID AccountID = 5
	// AlphaAccountID carries the system-wide bonus blacklist.
	AlphaAccountID AccountID = 6
)

// CoreAssetID is the id of the core asset.
const CoreAssetID AssetID = 0

// The three fee-backed-asset pools, in split order.
const (
	FBATransferToBlind FBAccumulatorID = iota
	FBABlindTransfer
	FBATransferFromBlind
	// FBACount is the number of pools.
	FBACount
)

// ClampSupply truncates amount so that supply+amount never exceeds
// MaxShareSupply.
func ClampSupply(supply, amount Amount) Amount {
	if amount <= 0 {
		return amount
	}
	if supply > MaxShareSupply-amount {
		return MaxShareSupply - supply
	}
	return amount
}
