package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"edcchain/core/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaultsAndOverrides(t *testing.T) {
	path := writeFile(t, "node.toml", `
NetworkName = "edc-test"
HistoryRetentionDays = 7

[Chain]
BlockInterval = 3
MaintenanceInterval = 3600
MaximumWitnessCount = 21
MaximumCommitteeCount = 21
WitnessPayPerBlock = 2
WorkerBudgetPerDay = 500
MinWitnessCount = 11
MinCommitteeMemberCount = 11
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "edc-test", cfg.NetworkName)
	require.Equal(t, 7, cfg.HistoryRetentionDays)

	params := cfg.ChainParameters()
	require.Equal(t, uint32(3), params.BlockInterval)
	require.Equal(t, uint32(3600), params.MaintenanceInterval)
	require.Equal(t, int64(500), params.WorkerBudgetPerDay)

	imm := cfg.ImmutableParameters()
	require.Equal(t, uint16(11), imm.MinWitnessCount)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeFile(t, "node.toml", `
NetworkName = "edc-test"
ValidatorKey = "deprecated"
`)
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown field")
}

func TestValidateRejectsEvenFloors(t *testing.T) {
	cfg := defaultConfig()
	cfg.Chain.MinWitnessCount = 10
	require.Error(t, cfg.Validate())

	cfg = defaultConfig()
	cfg.Chain.MaintenanceInterval = 1 // shorter than the block interval
	require.Error(t, cfg.Validate())
}

func TestHardforkOverrides(t *testing.T) {
	path := writeFile(t, "node.toml", `
[Hardforks]
HF620 = "2030-06-01T00:00:00Z"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	hf, err := cfg.HardforkSchedule()
	require.NoError(t, err)
	require.Equal(t, time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC), hf.HF620)
	// Untouched entries keep the frozen defaults.
	require.Equal(t, types.DefaultHardforks().HF616, hf.HF616)
}

func TestHardforkOverrideRejectsGarbage(t *testing.T) {
	cfg := defaultConfig()
	cfg.Hardforks.HF533 = "not-a-time"
	_, err := cfg.HardforkSchedule()
	require.Error(t, err)
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.toml")
	require.NoError(t, WriteDefault(path))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
}
