package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"edcchain/core/types"
	"edcchain/store"
)

// Genesis is the YAML genesis document: the initial object store
// contents.
type Genesis struct {
	Timestamp string `yaml:"timestamp"`

	Accounts []GenesisAccount `yaml:"accounts"`
	Assets   []GenesisAsset   `yaml:"assets"`
	Balances []GenesisBalance `yaml:"balances"`

	Witnesses        []string `yaml:"witnesses"`
	CommitteeMembers []string `yaml:"committee_members"`
}

// GenesisAccount seeds one account.
type GenesisAccount struct {
	Name     string `yaml:"name"`
	Referrer string `yaml:"referrer"`
	Lifetime bool   `yaml:"lifetime"`
}

// GenesisAsset seeds one asset.
type GenesisAsset struct {
	Symbol               string `yaml:"symbol"`
	Precision            uint8  `yaml:"precision"`
	Issuer               string `yaml:"issuer"`
	MaxSupply            int64  `yaml:"max_supply"`
	DailyBonus           bool   `yaml:"daily_bonus"`
	BonusPercent         uint32 `yaml:"bonus_percent"`
	MaturingBonusBalance bool   `yaml:"maturing_bonus_balance"`
}

// GenesisBalance seeds one ledger row; the amount also enters the
// asset's current supply.
type GenesisBalance struct {
	Account string `yaml:"account"`
	Asset   string `yaml:"asset"`
	Amount  int64  `yaml:"amount"`
}

// LoadGenesis parses a genesis document.
func LoadGenesis(path string) (*Genesis, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var g Genesis
	if err := yaml.Unmarshal(raw, &g); err != nil {
		return nil, fmt.Errorf("genesis file %s: %w", path, err)
	}
	return &g, nil
}

// systemAccountNames are created before the document's own accounts so
// the reserved ids always resolve.
var systemAccountNames = []string{
	"committee-account",
	"witness-account",
	"relaxed-committee-account",
	"null-account",
	"temp-account",
	"proxy-to-self",
	"alpha",
}

// Seed builds a store from the genesis document and the configured
// parameters.
func (g *Genesis) Seed(cfg *Config) (*store.Store, error) {
	s := store.New()
	s.Global.Parameters = cfg.ChainParameters()
	s.Chain.Immutable = cfg.ImmutableParameters()

	if g.Timestamp != "" {
		t, err := time.Parse(time.RFC3339, g.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("genesis timestamp: %w", err)
		}
		s.Dynamic.HeadBlockTime = t.UTC()
	}

	names := map[string]types.AccountID{}
	for _, name := range systemAccountNames {
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
		names[name] = id
	}

	for _, ga := range g.Accounts {
		if _, dup := names[ga.Name]; dup {
			return nil, fmt.Errorf("genesis account %q duplicated", ga.Name)
		}
		id := s.NewAccountID()
		expiration := time.Time{}
		if ga.Lifetime {
			expiration = types.LifetimeMemberExpiration
		}
		referrer := id
		if ga.Referrer != "" {
			ref, ok := names[ga.Referrer]
			if !ok {
				return nil, fmt.Errorf("genesis account %q: unknown referrer %q", ga.Name, ga.Referrer)
			}
			referrer = ref
		}
		s.CreateAccount(&types.Account{
			ID:                   id,
			Name:                 ga.Name,
			Referrer:             referrer,
			MembershipExpiration: expiration,
			Options:              types.AccountOptions{VotingAccount: types.ProxyToSelfAccountID},
			Owner:                types.NewAuthority(),
			Active:               types.NewAuthority(),
		})
		names[ga.Name] = id
	}

	assets := map[string]types.AssetID{}
	for _, a := range g.Assets {
		issuer, ok := names[a.Issuer]
		if !ok {
			return nil, fmt.Errorf("genesis asset %s: unknown issuer %q", a.Symbol, a.Issuer)
		}
		id := s.NewAssetID()
		maxSupply := a.MaxSupply
		if maxSupply == 0 {
			maxSupply = types.MaxShareSupply
		}
		s.CreateAsset(&types.Asset{
			ID:        id,
			Symbol:    a.Symbol,
			Precision: a.Precision,
			Issuer:    issuer,
			MaxSupply: maxSupply,
			Params: types.AssetParams{
				DailyBonus:           a.DailyBonus,
				BonusPercent:         a.BonusPercent,
				MaturingBonusBalance: a.MaturingBonusBalance,
			},
		})
		assets[a.Symbol] = id
	}
	if _, ok := assets[types.CoreAssetSymbol]; !ok {
		return nil, fmt.Errorf("genesis must define the core asset %s first", types.CoreAssetSymbol)
	}
	if assets[types.CoreAssetSymbol] != types.CoreAssetID {
		return nil, fmt.Errorf("core asset %s must be the first asset", types.CoreAssetSymbol)
	}

	for _, b := range g.Balances {
		owner, ok := names[b.Account]
		if !ok {
			return nil, fmt.Errorf("genesis balance: unknown account %q", b.Account)
		}
		asset, ok := assets[b.Asset]
		if !ok {
			return nil, fmt.Errorf("genesis balance: unknown asset %q", b.Asset)
		}
		if b.Amount <= 0 {
			return nil, fmt.Errorf("genesis balance for %q must be positive", b.Account)
		}
		s.AdjustBalance(owner, asset, b.Amount)
		s.AssetDynamic(asset).CurrentSupply += b.Amount
	}

	for _, w := range g.Witnesses {
		acct, ok := names[w]
		if !ok {
			return nil, fmt.Errorf("genesis witness: unknown account %q", w)
		}
		s.CreateWitness(acct)
	}
	for _, m := range g.CommitteeMembers {
		acct, ok := names[m]
		if !ok {
			return nil, fmt.Errorf("genesis committee member: unknown account %q", m)
		}
		s.CreateCommitteeMember(acct)
	}

	return s, nil
}
