package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/supplier-ops/internal/config"
	"github.com/altuslabsxyz/supplier-ops/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize supplierctl configuration",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current effective configuration",
		Long: `Display the current effective configuration with sources.

Shows all configuration values and where they came from:
  - default: Built-in default value
  - config.toml: Value from config file
  - environment: Value from .env or the process environment
  - flag: Value from command-line flag`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			effective.ToTable(cmd.OutOrStdout())
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write config.toml in the home directory",
		Long: `Write config.toml in the home directory. Values given as flags or environment
variables are stored; everything else is written commented out with its default.

Examples:
  # Default to mainnet from now on
  supplierctl config init --network main

  # Overwrite an existing config without asking
  supplierctl config init --network beta --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := config.NewConfigWriter(settings.Home)
			if w.Exists() && !force {
				ok, err := output.ConfirmPrompt(fmt.Sprintf("%s exists. Overwrite", w.Path()))
				if errors.Is(err, output.ErrNotInteractive) {
					return handleCommandError(cmd, fmt.Errorf("%s already exists (use --force to overwrite)", w.Path()))
				}
				if err != nil {
					return handleCommandError(cmd, err)
				}
				if !ok {
					logger.Info("Operation cancelled.")
					return nil
				}
			}
			if err := w.Write(explicitFileConfig(effective)); err != nil {
				return handleCommandError(cmd, err)
			}
			logger.Success("Wrote %s", w.Path())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config.toml")
	return cmd
}

// explicitFileConfig keeps the values that did not come from defaults.
func explicitFileConfig(c *config.EffectiveConfig) *config.FileConfig {
	str := func(v config.StringValue) *string {
		if v.IsDefault() {
			return nil
		}
		s := v.Value
		return &s
	}
	boolean := func(v config.BoolValue) *bool {
		if v.IsDefault() {
			return nil
		}
		b := v.Value
		return &b
	}

	fc := &config.FileConfig{
		NoColor:         boolean(c.NoColor),
		Verbose:         boolean(c.Verbose),
		Network:         str(c.Network),
		RESTEndpoint:    str(c.RESTEndpoint),
		Binary:          str(c.Binary),
		KeyringBackend:  str(c.KeyringBackend),
		GasPrices:       str(c.GasPrices),
		GasAdjustment:   str(c.GasAdjustment),
		TimeoutDuration: str(c.TimeoutDuration),
	}
	if !c.Delay.IsDefault() {
		d := c.Delay.Value.String()
		fc.Delay = &d
	}
	return fc
}
