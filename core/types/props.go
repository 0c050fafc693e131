package types

import "time"

// FeeSchedule is the subset of the fee table the maintenance engine
// touches: the account-creation basic fee carries an anti-spam scale
// that unwinds every interval.
type FeeSchedule struct {
	AccountCreateBasicFee Amount
}

// ChainParameters are the voted network parameters. A full copy sits in
// GlobalProperties.Parameters; a pending copy, if any, is swapped in
// atomically at the end of a maintenance pass.
type ChainParameters struct {
	BlockInterval       uint32
	MaintenanceInterval uint32

	MaximumWitnessCount   uint16
	MaximumCommitteeCount uint16

	WitnessPayPerBlock Amount
	WorkerBudgetPerDay Amount

	CountNonMemberVotes bool

	AccountFeeScaleBitshifts uint16
	AccountsPerFeeScale      uint32

	CurrentFees FeeSchedule
}

// GlobalProperties is the voted-parameter singleton.
type GlobalProperties struct {
	Parameters        ChainParameters
	PendingParameters *ChainParameters

	// NextAvailableVoteID sizes the tally buffer.
	NextAvailableVoteID uint32

	ActiveWitnesses        []WitnessID
	ActiveCommitteeMembers []CommitteeMemberID
}

// DynamicProperties is the per-block mutable singleton.
type DynamicProperties struct {
	HeadBlockNumber uint64
	HeadBlockTime   time.Time

	NextMaintenanceTime time.Time
	LastBudgetTime      time.Time

	// WitnessBudget is the unspent producer-pay allowance of the
	// current interval.
	WitnessBudget Amount

	AccountsRegisteredThisInterval uint32
}

// ImmutableParameters are genesis floors that no vote can change.
type ImmutableParameters struct {
	MinWitnessCount         uint16
	MinCommitteeMemberCount uint16
}

// ChainProperties is the immutable singleton.
type ChainProperties struct {
	Immutable ImmutableParameters
}

// AccountsOnline is the online-presence singleton used only by the
// legacy bonus window: minutes seen online per account over the last
// day.
type AccountsOnline struct {
	OnlineInfo map[AccountID]uint16
}

// BlockHeader is the slice of a block the maintenance engine consumes.
type BlockHeader struct {
	Number    uint64
	Timestamp time.Time
}
