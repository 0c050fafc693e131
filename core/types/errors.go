package types

import "errors"

// Error taxonomy of the maintenance engine, by disposition rather than
// by site.
var (
	// ErrSupplyOverflow means an issue would push a supply past
	// MaxShareSupply; the issuer clamps and continues.
	ErrSupplyOverflow = errors.New("supply overflow")

	// ErrAuthorityRejected means the evaluator refused a balance
	// adjustment or order (whitelist conflict and the like); the
	// containing loop logs and moves to the next record.
	ErrAuthorityRejected = errors.New("authority rejected")

	// ErrInvariantViolation means consensus arithmetic or a state
	// postcondition broke; the block rolls back.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrParameterViolation means the network parameters are
	// inconsistent; the block rolls back.
	ErrParameterViolation = errors.New("parameter violation")
)
