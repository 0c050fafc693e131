// Package core drives the periodic maintenance pass of the chain: the
// deterministic, atomic transformation of global state that tallies
// votes, elects producers and governance, disburses the treasury
// budget, distributes fees and bonuses, winds down expired objects and
// advances the next maintenance deadline.
package core

import (
	"log/slog"

	"edcchain/core/types"
	"edcchain/evaluator"
	"edcchain/native/votes"
	"edcchain/observability/metrics"
	"edcchain/storage"
	"edcchain/store"
)

// ProcessorConfig wires the collaborators of the state processor.
type ProcessorConfig struct {
	// Hardforks is the consensus-frozen activation schedule; zero
	// value means DefaultHardforks.
	Hardforks *types.HardforkSchedule

	// HistoryRetentionDays bounds kept history; 0 disables reaping.
	HistoryRetentionDays int

	// Archive, when set, receives pruned history rows and budget
	// records before they leave the object store.
	Archive storage.Database

	Logger  *slog.Logger
	Metrics *metrics.Maintenance
}

// StateProcessor executes maintenance passes over the object store.
// It is single-threaded; it runs inside the block-application critical
// section and owns the store exclusively for the pass.
type StateProcessor struct {
	s    *store.Store
	eval evaluator.Applier

	hardforks            types.HardforkSchedule
	historyRetentionDays int

	archive storage.Database
	logger  *slog.Logger
	metrics *metrics.Maintenance

	// tally holds the per-pass scratch buffers; empty outside a pass.
	tally votes.Tally

	// lastPassDigest fingerprints the supply accounting after the most
	// recent pass, for cross-node comparison.
	lastPassDigest [32]byte
}

// NewStateProcessor returns a processor over the given store and
// evaluator.
func NewStateProcessor(s *store.Store, eval evaluator.Applier, cfg ProcessorConfig) *StateProcessor {
	hf := types.DefaultHardforks()
	if cfg.Hardforks != nil {
		hf = *cfg.Hardforks
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &StateProcessor{
		s:                    s,
		eval:                 eval,
		hardforks:            hf,
		historyRetentionDays: cfg.HistoryRetentionDays,
		archive:              cfg.Archive,
		logger:               logger,
		metrics:              cfg.Metrics,
	}
}

// Store exposes the underlying object store.
func (sp *StateProcessor) Store() *store.Store { return sp.s }

// Hardforks exposes the activation schedule.
func (sp *StateProcessor) Hardforks() types.HardforkSchedule { return sp.hardforks }

// LastPassDigest is the accounting fingerprint of the most recent
// completed pass.
func (sp *StateProcessor) LastPassDigest() [32]byte { return sp.lastPassDigest }

// ScratchEmpty reports whether every per-pass buffer is released; it
// must hold whenever no pass is executing.
func (sp *StateProcessor) ScratchEmpty() bool { return sp.tally.Empty() }
