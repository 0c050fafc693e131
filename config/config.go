// Package config loads node configuration: the TOML node file with
// chain-parameter and hardfork overrides, and the YAML genesis
// document the initial object store is seeded from.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"edcchain/core/types"
)

// Config is the node configuration file.
type Config struct {
	DataDir     string `toml:"DataDir"`
	GenesisFile string `toml:"GenesisFile"`
	NetworkName string `toml:"NetworkName"`

	LogFile       string `toml:"LogFile"`
	LogMaxSizeMB  int    `toml:"LogMaxSizeMB"`
	LogMaxBackups int    `toml:"LogMaxBackups"`

	// HistoryRetentionDays bounds kept history; 0 disables reaping.
	HistoryRetentionDays int `toml:"HistoryRetentionDays"`

	Chain     ChainConfig    `toml:"Chain"`
	Hardforks HardforkConfig `toml:"Hardforks"`
}

// ChainConfig overrides the genesis chain parameters.
type ChainConfig struct {
	BlockInterval       uint32 `toml:"BlockInterval"`
	MaintenanceInterval uint32 `toml:"MaintenanceInterval"`

	MaximumWitnessCount   uint16 `toml:"MaximumWitnessCount"`
	MaximumCommitteeCount uint16 `toml:"MaximumCommitteeCount"`

	WitnessPayPerBlock int64 `toml:"WitnessPayPerBlock"`
	WorkerBudgetPerDay int64 `toml:"WorkerBudgetPerDay"`

	CountNonMemberVotes bool `toml:"CountNonMemberVotes"`

	AccountFeeScaleBitshifts uint16 `toml:"AccountFeeScaleBitshifts"`
	AccountsPerFeeScale      uint32 `toml:"AccountsPerFeeScale"`

	MinWitnessCount         uint16 `toml:"MinWitnessCount"`
	MinCommitteeMemberCount uint16 `toml:"MinCommitteeMemberCount"`
}

// HardforkConfig lets replays override individual activation times,
// given as RFC3339 timestamps. Unset entries keep the frozen defaults.
type HardforkConfig struct {
	HF533                  string `toml:"HF533"`
	HF607                  string `toml:"HF607"`
	HF613                  string `toml:"HF613"`
	HF616                  string `toml:"HF616"`
	HF616MaintenanceChange string `toml:"HF616MaintenanceChange"`
	HF617                  string `toml:"HF617"`
	HF618                  string `toml:"HF618"`
	HF619                  string `toml:"HF619"`
	HF620                  string `toml:"HF620"`
	HF622                  string `toml:"HF622"`
}

// Load reads and validates a node configuration file.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}
	for _, undecoded := range meta.Undecoded() {
		return nil, fmt.Errorf("config file %s has unknown field %s", path, undecoded.String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		DataDir:              "./data",
		GenesisFile:          "./genesis.yaml",
		NetworkName:          "edc-local",
		HistoryRetentionDays: 30,
		Chain: ChainConfig{
			BlockInterval:           5,
			MaintenanceInterval:     86400,
			MaximumWitnessCount:     1001,
			MaximumCommitteeCount:   1001,
			WitnessPayPerBlock:      1,
			WorkerBudgetPerDay:      0,
			MinWitnessCount:         11,
			MinCommitteeMemberCount: 11,
			AccountsPerFeeScale:     256,
		},
	}
}

// Validate rejects parameter sets the engine would refuse at pass
// time.
func (c *Config) Validate() error {
	if c.Chain.BlockInterval == 0 {
		return fmt.Errorf("block interval must be positive")
	}
	if c.Chain.MaintenanceInterval == 0 {
		return fmt.Errorf("maintenance interval must be positive")
	}
	if c.Chain.MaintenanceInterval < c.Chain.BlockInterval {
		return fmt.Errorf("maintenance interval shorter than block interval")
	}
	if c.Chain.MinWitnessCount == 0 || c.Chain.MinWitnessCount%2 == 0 {
		return fmt.Errorf("minimum witness count must be odd")
	}
	if c.Chain.MinCommitteeMemberCount == 0 || c.Chain.MinCommitteeMemberCount%2 == 0 {
		return fmt.Errorf("minimum committee member count must be odd")
	}
	if strings.TrimSpace(c.NetworkName) == "" {
		c.NetworkName = "edc-local"
	}
	if c.HistoryRetentionDays < 0 {
		return fmt.Errorf("history retention cannot be negative")
	}
	return nil
}

// ChainParameters converts the config into engine parameters.
func (c *Config) ChainParameters() types.ChainParameters {
	return types.ChainParameters{
		BlockInterval:            c.Chain.BlockInterval,
		MaintenanceInterval:      c.Chain.MaintenanceInterval,
		MaximumWitnessCount:      c.Chain.MaximumWitnessCount,
		MaximumCommitteeCount:    c.Chain.MaximumCommitteeCount,
		WitnessPayPerBlock:       c.Chain.WitnessPayPerBlock,
		WorkerBudgetPerDay:       c.Chain.WorkerBudgetPerDay,
		CountNonMemberVotes:      c.Chain.CountNonMemberVotes,
		AccountFeeScaleBitshifts: c.Chain.AccountFeeScaleBitshifts,
		AccountsPerFeeScale:      c.Chain.AccountsPerFeeScale,
	}
}

// ImmutableParameters converts the config floors.
func (c *Config) ImmutableParameters() types.ImmutableParameters {
	return types.ImmutableParameters{
		MinWitnessCount:         c.Chain.MinWitnessCount,
		MinCommitteeMemberCount: c.Chain.MinCommitteeMemberCount,
	}
}

// HardforkSchedule merges overrides over the frozen defaults.
func (c *Config) HardforkSchedule() (types.HardforkSchedule, error) {
	hf := types.DefaultHardforks()
	entries := []struct {
		raw    string
		target *time.Time
		name   string
	}{
		{c.Hardforks.HF533, &hf.HF533, "HF533"},
		{c.Hardforks.HF607, &hf.HF607, "HF607"},
		{c.Hardforks.HF613, &hf.HF613, "HF613"},
		{c.Hardforks.HF616, &hf.HF616, "HF616"},
		{c.Hardforks.HF616MaintenanceChange, &hf.HF616MaintenanceChange, "HF616MaintenanceChange"},
		{c.Hardforks.HF617, &hf.HF617, "HF617"},
		{c.Hardforks.HF618, &hf.HF618, "HF618"},
		{c.Hardforks.HF619, &hf.HF619, "HF619"},
		{c.Hardforks.HF620, &hf.HF620, "HF620"},
		{c.Hardforks.HF622, &hf.HF622, "HF622"},
	}
	for _, e := range entries {
		if strings.TrimSpace(e.raw) == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, e.raw)
		if err != nil {
			return hf, fmt.Errorf("hardfork %s: %w", e.name, err)
		}
		*e.target = t.UTC()
	}
	return hf, nil
}

// WriteDefault writes a default config file if none exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(defaultConfig())
}
