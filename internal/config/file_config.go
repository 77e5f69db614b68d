package config

// FileConfig represents the raw config.toml file contents.
// All fields are pointers to distinguish "not set" from "set to zero/false".
type FileConfig struct {
	// Global settings
	Home    *string `toml:"home"`
	NoColor *bool   `toml:"no_color"`
	Verbose *bool   `toml:"verbose"`

	// Chain settings
	Network        *string `toml:"network"`         // main, beta, alpha or local
	RESTEndpoint   *string `toml:"rest_endpoint"`   // Overrides the network's REST gateway
	Binary         *string `toml:"pocketd"`         // Path or name of the pocketd binary
	KeyringBackend *string `toml:"keyring_backend"` // test, file or os

	// Transaction settings
	GasPrices       *string `toml:"gas_prices"`
	GasAdjustment   *string `toml:"gas_adjustment"`
	TimeoutDuration *string `toml:"timeout_duration"`
	Delay           *string `toml:"delay"` // Spacing between submissions and queries, e.g. "2s"
}

// IsEmpty returns true if no configuration values are set.
func (f *FileConfig) IsEmpty() bool {
	return f.Home == nil &&
		f.NoColor == nil &&
		f.Verbose == nil &&
		f.Network == nil &&
		f.RESTEndpoint == nil &&
		f.Binary == nil &&
		f.KeyringBackend == nil &&
		f.GasPrices == nil &&
		f.GasAdjustment == nil &&
		f.TimeoutDuration == nil &&
		f.Delay == nil
}

// knownKeys are the config.toml keys FileConfig understands.
var knownKeys = map[string]bool{
	"home":             true,
	"no_color":         true,
	"verbose":          true,
	"network":          true,
	"rest_endpoint":    true,
	"pocketd":          true,
	"keyring_backend":  true,
	"gas_prices":       true,
	"gas_adjustment":   true,
	"timeout_duration": true,
	"delay":            true,
}
