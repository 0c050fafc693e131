package types

import "time"

// HardforkSchedule holds the wall-clock thresholds past which consensus
// behavior changes. The values are frozen on the production chain; they
// are configurable only so that historical replays and tests can sit on
// either side of a fork.
type HardforkSchedule struct {
	// HF533 switches authority construction from the legacy bit-drop
	// scaling to the VoteCounter.
	HF533 time.Time
	// HF607 disables negative votes against workers.
	HF607 time.Time
	// HF613 converts all annual members to lifetime members, once.
	HF613 time.Time
	// HF616 enables the oldest daily-bonus variant.
	HF616 time.Time
	// HF616MaintenanceChange applies the one-shot 0.375-interval phase
	// shift of the maintenance schedule.
	HF616MaintenanceChange time.Time
	// HF617 enables the middle daily-bonus variant and
	// account-transaction-history reaping.
	HF617 time.Time
	// HF618 enables online-fraction bonus weighting and the per-pass
	// clearing of the online-presence map.
	HF618 time.Time
	// HF619 disables online-fraction bonus weighting.
	HF619 time.Time
	// HF620 switches to the modern bonus issuer and routes referral
	// earnings through bonus balances.
	HF620 time.Time
	// HF622 enables fund processing.
	HF622 time.Time
}

// DefaultHardforks returns the production schedule.
func DefaultHardforks() HardforkSchedule {
	return HardforkSchedule{
		HF533:                  time.Unix(1450288800, 0).UTC(),
		HF607:                  time.Unix(1458752400, 0).UTC(),
		HF613:                  time.Unix(1458838800, 0).UTC(),
		HF616:                  time.Unix(1483228800, 0).UTC(),
		HF616MaintenanceChange: time.Unix(1483232400, 0).UTC(),
		HF617:                  time.Unix(1487894400, 0).UTC(),
		HF618:                  time.Unix(1496275200, 0).UTC(),
		HF619:                  time.Unix(1501545600, 0).UTC(),
		HF620:                  time.Unix(1504224000, 0).UTC(),
		HF622:                  time.Unix(1512086400, 0).UTC(),
	}
}
