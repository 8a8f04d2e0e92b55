package config

import (
	"os"

	"simple-storage-tui/dapp"

	"github.com/goccy/go-json"
)

// Config represents the persisted UI preferences
type Config struct {
	RPCURLs           []RPCUrl    `json:"rpc_urls"`
	Logger            bool        `json:"logger"`
	SkipSigningPrompt bool        `json:"skip_signing_prompt"`
	WaitReceipt       bool        `json:"wait_receipt"`
	ErrorRules        []ErrorRule `json:"error_rules,omitempty"`
}

// RPCUrl represents an RPC endpoint
type RPCUrl struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// ErrorRule maps a substring of a failure message to an error kind
// ("rejected", "reverted" or "unknown")
type ErrorRule struct {
	Pattern string `json:"pattern"`
	Kind    string `json:"kind"`
}

// Load reads the config from the specified path
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}

	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		RPCURLs: []RPCUrl{
			{
				Name:   "Avalanche Fuji",
				URL:    "https://api.avax-test.network/ext/bc/C/rpc",
				Active: true,
			},
		},
		Logger: false,
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	// Try to read existing config
	data, err := os.ReadFile(path)
	if err != nil {
		// File doesn't exist, create default
		cfg := DefaultConfig()
		_ = Save(path, cfg)
		return cfg
	}

	// Parse existing config
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		// Invalid config, return default
		return DefaultConfig()
	}

	return cfg
}

// ActiveRPC returns the active endpoint URL, falling back to fallback
func (c Config) ActiveRPC(fallback string) string {
	for _, r := range c.RPCURLs {
		if r.Active {
			return r.URL
		}
	}
	return fallback
}

// Rules converts the configured error rules, skipping entries with an
// unknown kind. The skipped entries are returned for reporting.
func (c Config) Rules() ([]dapp.Rule, []ErrorRule) {
	var rules []dapp.Rule
	var bad []ErrorRule
	for _, r := range c.ErrorRules {
		kind, err := dapp.ParseKind(r.Kind)
		if err != nil || r.Pattern == "" {
			bad = append(bad, r)
			continue
		}
		rules = append(rules, dapp.Rule{Pattern: r.Pattern, Kind: kind})
	}
	return rules, bad
}
