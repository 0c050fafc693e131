package types

import "time"

// Witness is a block-producer candidate.
type Witness struct {
	ID             WitnessID
	WitnessAccount AccountID
	VoteID         VoteID
	TotalVotes     uint64
}

// CommitteeMember is a governance candidate.
type CommitteeMember struct {
	ID                     CommitteeMemberID
	CommitteeMemberAccount AccountID
	VoteID                 VoteID
	TotalVotes             uint64
}

// WorkerKind selects the disposition of a worker's pay.
type WorkerKind uint8

const (
	// WorkerRefund returns the pay to the reserve.
	WorkerRefund WorkerKind = iota
	// WorkerBurn destroys the pay.
	WorkerBurn
	// WorkerVesting accrues the pay into the worker's vesting pot.
	WorkerVesting
)

// Worker is a funded worker proposal. Kind-specific pay effects are
// dispatched by the worker-pay engine.
type Worker struct {
	ID            WorkerID
	WorkerAccount AccountID

	VoteFor     VoteID
	VoteAgainst VoteID

	DailyPay  Amount
	WorkBegin time.Time
	WorkEnd   time.Time

	TotalVotesFor     uint64
	TotalVotesAgainst uint64

	Kind WorkerKind

	// TotalBurned accumulates destroyed pay of burn workers.
	TotalBurned Amount
	// VestingBalance accumulates pay of vesting workers.
	VestingBalance Amount
}

// IsActive reports whether the worker's pay period covers now.
func (w *Worker) IsActive(now time.Time) bool {
	return !now.Before(w.WorkBegin) && now.Before(w.WorkEnd)
}

// ApprovingStake is the net stake in favor; negative totals clamp to
// zero.
func (w *Worker) ApprovingStake() uint64 {
	if w.TotalVotesAgainst >= w.TotalVotesFor {
		return 0
	}
	return w.TotalVotesFor - w.TotalVotesAgainst
}
