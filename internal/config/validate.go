package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/altuslabsxyz/supplier-ops/internal/network"
)

var keyringBackends = map[string]bool{
	"test":   true,
	"file":   true,
	"os":     true,
	"memory": true,
}

// Validate validates the EffectiveConfig values against allowed ranges and types.
func (c *EffectiveConfig) Validate() error {
	if _, err := network.Get(c.Network.Value); err != nil {
		return err
	}
	if !keyringBackends[c.KeyringBackend.Value] {
		return fmt.Errorf("invalid keyring backend: %s (must be test, file, os or memory)", c.KeyringBackend.Value)
	}
	if c.Binary.Value == "" {
		return fmt.Errorf("pocketd binary must not be empty")
	}
	if c.Delay.Value < 0 {
		return fmt.Errorf("invalid delay: %s (must not be negative)", c.Delay.Value)
	}
	if err := validateGasAdjustment(c.GasAdjustment.Value); err != nil {
		return err
	}
	if _, err := time.ParseDuration(c.TimeoutDuration.Value); err != nil {
		return fmt.Errorf("invalid timeout duration: %s", c.TimeoutDuration.Value)
	}
	return nil
}

// ValidateFileConfig validates the FileConfig values before merging.
// This is called when loading the config file to provide early error messages.
func ValidateFileConfig(cfg *FileConfig) error {
	if cfg == nil {
		return nil
	}
	if cfg.Network != nil {
		if _, err := network.Get(*cfg.Network); err != nil {
			return fmt.Errorf("invalid network in config file: %w", err)
		}
	}
	if cfg.KeyringBackend != nil && !keyringBackends[*cfg.KeyringBackend] {
		return fmt.Errorf("invalid keyring_backend in config file: %s", *cfg.KeyringBackend)
	}
	if cfg.Delay != nil {
		d, err := time.ParseDuration(*cfg.Delay)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid delay in config file: %s", *cfg.Delay)
		}
	}
	if cfg.GasAdjustment != nil {
		if err := validateGasAdjustment(*cfg.GasAdjustment); err != nil {
			return fmt.Errorf("%w in config file", err)
		}
	}
	return nil
}

func validateGasAdjustment(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("invalid gas adjustment: %s (must be a positive number)", s)
	}
	return nil
}
