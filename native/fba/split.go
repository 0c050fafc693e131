// Package fba computes the three-way split of a fee-backed-asset pool
// between the network, the designated asset's buyback account and its
// issuer.
package fba

import (
	"fmt"

	"github.com/holiman/uint256"

	"edcchain/core/types"
)

// Shares is the outcome of one pool split. The split is conservative:
// Network + Buyback + Issuer equals the accumulated input exactly.
type Shares struct {
	Network types.Amount
	Buyback types.Amount
	Issuer  types.Amount
}

// Split divides accumulated by the three percentages. The percentages
// must sum to exactly 100%; anything else is a consensus-fatal
// parameter violation.
func Split(accumulated types.Amount, networkPct, buybackPct, issuerPct uint16) (Shares, error) {
	if uint32(networkPct)+uint32(buybackPct)+uint32(issuerPct) != types.Percent100 {
		return Shares{}, fmt.Errorf("%w: fba percentages %d+%d+%d != %d",
			types.ErrParameterViolation, networkPct, buybackPct, issuerPct, types.Percent100)
	}

	buyback := pctOf(accumulated, buybackPct)
	issuer := pctOf(accumulated, issuerPct)
	return Shares{
		Network: accumulated - buyback - issuer,
		Buyback: buyback,
		Issuer:  issuer,
	}, nil
}

func pctOf(amount types.Amount, pct uint16) types.Amount {
	v := uint256.NewInt(uint64(amount))
	v.Mul(v, uint256.NewInt(uint64(pct)))
	v.Div(v, uint256.NewInt(types.Percent100))
	return types.Amount(v.Uint64())
}
