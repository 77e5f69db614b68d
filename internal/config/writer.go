package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/altuslabsxyz/supplier-ops/internal/network"
)

// ConfigWriter handles writing configuration to homeDir/config.toml.
type ConfigWriter struct {
	homeDir string
}

// NewConfigWriter creates a new ConfigWriter for the given home directory.
func NewConfigWriter(homeDir string) *ConfigWriter {
	return &ConfigWriter{homeDir: homeDir}
}

// Path returns the full path to config.toml in homeDir.
func (w *ConfigWriter) Path() string {
	return filepath.Join(w.homeDir, FileName)
}

// Exists returns true if config.toml already exists in homeDir.
func (w *ConfigWriter) Exists() bool {
	return fileExists(w.Path())
}

// Write saves the FileConfig to homeDir/config.toml.
// Creates homeDir if it doesn't exist.
func (w *ConfigWriter) Write(cfg *FileConfig) error {
	if err := os.MkdirAll(w.homeDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", w.homeDir, err)
	}
	if err := os.WriteFile(w.Path(), []byte(w.render(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// render creates commented TOML. Unset keys are written commented out with
// their default.
func (w *ConfigWriter) render(cfg *FileConfig) string {
	var b strings.Builder
	defaults := NewEffectiveConfig(w.homeDir)

	b.WriteString("# supplierctl configuration file\n")
	b.WriteString("# Priority: default < config.toml < .env / environment < CLI flag\n")
	fmt.Fprintf(&b, "# Location: %s\n\n", w.Path())

	b.WriteString("# Global settings\n")
	writeString(&b, "home", cfg.Home, defaults.Home.Value)
	writeBool(&b, "verbose", cfg.Verbose)
	writeBool(&b, "no_color", cfg.NoColor)

	fmt.Fprintf(&b, "\n# Chain settings (networks: %s)\n", strings.Join(network.List(), ", "))
	writeString(&b, "network", cfg.Network, defaults.Network.Value)
	writeString(&b, "rest_endpoint", cfg.RESTEndpoint, "")
	writeString(&b, "pocketd", cfg.Binary, defaults.Binary.Value)
	writeString(&b, "keyring_backend", cfg.KeyringBackend, defaults.KeyringBackend.Value)

	b.WriteString("\n# Transaction settings\n")
	writeString(&b, "gas_prices", cfg.GasPrices, defaults.GasPrices.Value)
	writeString(&b, "gas_adjustment", cfg.GasAdjustment, defaults.GasAdjustment.Value)
	writeString(&b, "timeout_duration", cfg.TimeoutDuration, defaults.TimeoutDuration.Value)
	writeString(&b, "delay", cfg.Delay, defaults.Delay.Value.String())
	return b.String()
}

func writeString(b *strings.Builder, key string, v *string, def string) {
	if v != nil {
		fmt.Fprintf(b, "%s = %q\n", key, *v)
		return
	}
	fmt.Fprintf(b, "# %s = %q\n", key, def)
}

func writeBool(b *strings.Builder, key string, v *bool) {
	if v != nil && *v {
		fmt.Fprintf(b, "%s = true\n", key)
		return
	}
	fmt.Fprintf(b, "# %s = false\n", key)
}
