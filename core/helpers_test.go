package core

import (
	"log/slog"
	"testing"
	"time"

	"edcchain/core/types"
	"edcchain/evaluator"
	"edcchain/store"
)

// passTime is a wall clock safely past every default hardfork.
var passTime = time.Unix(1767225600, 0).UTC() // 2026-01-01T00:00:00Z

type testChain struct {
	sp *StateProcessor
	s  *store.Store

	issuer    types.AccountID
	witnesses []*types.Witness
	members   []*types.CommitteeMember
}

// newTestChain seeds a minimal consistent chain: the system accounts,
// the core asset, eleven producer and governance candidates, and a
// deadline that makes the next block trigger maintenance.
func newTestChain(t *testing.T, cfg ProcessorConfig) *testChain {
	t.Helper()
	s := store.New()

	s.Global.Parameters = types.ChainParameters{
		BlockInterval:         5,
		MaintenanceInterval:   86400,
		MaximumWitnessCount:   21,
		MaximumCommitteeCount: 21,
		WitnessPayPerBlock:    1,
		WorkerBudgetPerDay:    0,
		AccountsPerFeeScale:   256,
	}
	s.Chain.Immutable = types.ImmutableParameters{
		MinWitnessCount:         11,
		MinCommitteeMemberCount: 11,
	}
	s.Dynamic.HeadBlockNumber = 1
	s.Dynamic.HeadBlockTime = passTime.Add(-24 * time.Hour)
	s.Dynamic.NextMaintenanceTime = passTime

	systemNames := []string{
		"committee-account", "witness-account", "relaxed-committee-account",
		"null-account", "temp-account", "proxy-to-self", "alpha",
	}
	for i, name := range systemNames {
		id := types.AccountID(i)
		s.CreateAccount(&types.Account{
			ID:                   id,
			Name:                 name,
			Referrer:             id,
			MembershipExpiration: types.LifetimeMemberExpiration,
			Options:              types.AccountOptions{VotingAccount: types.ProxyToSelfAccountID},
			Owner:                types.NewAuthority(),
			Active:               types.NewAuthority(),
		})
	}

	issuer := newMember(s, "edc-issuer")

	s.CreateAsset(&types.Asset{
		ID:        types.CoreAssetID,
		Symbol:    types.CoreAssetSymbol,
		Precision: 3,
		Issuer:    issuer,
		MaxSupply: types.MaxShareSupply,
	})

	tc := &testChain{s: s, issuer: issuer}
	for i := 0; i < 11; i++ {
		acct := newMember(s, "init"+string(rune('a'+i)))
		tc.witnesses = append(tc.witnesses, s.CreateWitness(acct))
		tc.members = append(tc.members, s.CreateCommitteeMember(acct))
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	tc.sp = NewStateProcessor(s, evaluator.New(s), cfg)
	return tc
}

// newMember creates a lifetime-member account that votes for itself.
func newMember(s *store.Store, name string) types.AccountID {
	id := s.NewAccountID()
	s.CreateAccount(&types.Account{
		ID:                   id,
		Name:                 name,
		Referrer:             id,
		MembershipExpiration: types.LifetimeMemberExpiration,
		Options:              types.AccountOptions{VotingAccount: types.ProxyToSelfAccountID},
		Owner:                types.NewAuthority(),
		Active:               types.NewAuthority(),
	})
	return id
}

// fund seeds a balance and keeps the recorded supply consistent.
func (tc *testChain) fund(owner types.AccountID, asset types.AssetID, amount types.Amount) {
	tc.s.AdjustBalance(owner, asset, amount)
	tc.s.AssetDynamic(asset).CurrentSupply += amount
}

// runMaintenance applies the block that crosses the current deadline.
func (tc *testChain) runMaintenance(t *testing.T) {
	t.Helper()
	block := types.BlockHeader{
		Number:    tc.s.Dynamic.HeadBlockNumber + 1,
		Timestamp: tc.s.Dynamic.NextMaintenanceTime,
	}
	if err := tc.sp.ProcessBlock(block); err != nil {
		t.Fatalf("ProcessBlock: %v", err)
	}
}

// checkUniversalInvariants asserts the postconditions every pass must
// leave behind.
func (tc *testChain) checkUniversalInvariants(t *testing.T) {
	t.Helper()
	if err := tc.sp.CheckCoreSupplyInvariant(); err != nil {
		t.Fatalf("supply invariant: %v", err)
	}
	if !tc.sp.ScratchEmpty() {
		t.Fatalf("scratch buffers not empty after pass")
	}
	dpo := tc.s.Dynamic
	if !dpo.NextMaintenanceTime.After(dpo.HeadBlockTime) {
		t.Fatalf("next maintenance %v not after head %v", dpo.NextMaintenanceTime, dpo.HeadBlockTime)
	}
	if dpo.AccountsRegisteredThisInterval != 0 {
		t.Fatalf("per-interval registration counter not reset")
	}
}
