package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/supplier-ops/internal/config"
	"github.com/altuslabsxyz/supplier-ops/internal/output"
	"github.com/altuslabsxyz/supplier-ops/internal/version"
)

// Global flag values.
var (
	homeDir        string
	configPath     string
	networkName    string
	restEndpoint   string
	binaryPath     string
	keyringBackend string
	delay          time.Duration
	noColor        bool
	verbose        bool

	// logger is shared by every command; tests swap it for one with buffers.
	logger = output.DefaultLogger

	// effective and settings are resolved in PersistentPreRunE.
	effective *config.EffectiveConfig
	settings  *config.Settings
)

// DefaultHomeDir returns the default home directory for supplierctl.
func DefaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".supplierctl"
	}
	return filepath.Join(home, ".supplierctl")
}

// Command group IDs for organized help output.
const (
	GroupSetup   = "setup"
	GroupChain   = "chain"
	GroupConfigs = "configs"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supplierctl",
		Short: "Provision and stake Shannon suppliers",
		Long: `supplierctl provisions operator accounts and stakes suppliers on a Shannon network.

It covers the whole operator workflow:
  - Create operator accounts and import them into a keyring
  - Fund operator accounts from their owners
  - Generate supplier configs from a node allocation sheet
  - Stake suppliers through pocketd

Examples:
  # Create 10 accounts for customer "acme"
  supplierctl accounts create --count 10 --prefix acme

  # Generate supplier configs from the allocation sheet
  supplierctl configs generate --wallets pocket_accounts.csv --allocation NodeAllocation.csv --revshare 10

  # Stake every generated config as the owner
  supplierctl stake configs --dir output --as owner`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadSettings,
	}

	cmd.PersistentFlags().StringVarP(&homeDir, config.FlagHome, "H", DefaultHomeDir(),
		"Base directory for supplierctl settings")
	cmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config.toml file")
	cmd.PersistentFlags().StringVarP(&networkName, config.FlagNetwork, "n", "",
		"Shannon network (main, beta, alpha, local)")
	cmd.PersistentFlags().StringVar(&restEndpoint, config.FlagRESTEndpoint, "",
		"REST endpoint for supplier queries (default: the network's)")
	cmd.PersistentFlags().StringVar(&binaryPath, config.FlagBinary, "",
		"Path to the pocketd binary")
	cmd.PersistentFlags().StringVar(&keyringBackend, config.FlagKeyringBackend, "",
		"Keyring backend passed to pocketd and used for imports")
	cmd.PersistentFlags().DurationVar(&delay, config.FlagDelay, 0,
		"Delay between chain requests (default 2s)")
	cmd.PersistentFlags().BoolVar(&noColor, config.FlagNoColor, false,
		"Disable colored output")
	cmd.PersistentFlags().BoolVarP(&verbose, config.FlagVerbose, "v", false,
		"Enable verbose logging")

	cmd.AddGroup(&cobra.Group{ID: GroupSetup, Title: "Setup Commands:"})
	cmd.AddGroup(&cobra.Group{ID: GroupChain, Title: "Chain Commands:"})
	cmd.AddGroup(&cobra.Group{ID: GroupConfigs, Title: "Supplier Config Commands:"})

	accountsCmd := NewAccountsCmd()
	accountsCmd.GroupID = GroupSetup
	configCmd := NewConfigCmd()
	configCmd.GroupID = GroupSetup

	fundCmd := NewFundCmd()
	fundCmd.GroupID = GroupChain
	stakeCmd := NewStakeCmd()
	stakeCmd.GroupID = GroupChain

	configsCmd := NewConfigsCmd()
	configsCmd.GroupID = GroupConfigs

	cmd.AddCommand(
		accountsCmd,
		configCmd,
		fundCmd,
		stakeCmd,
		configsCmd,
		version.NewCmd(),
	)

	return cmd
}

// loadSettings resolves the effective configuration.
// Priority: default < config.toml < .env / environment < flag
func loadSettings(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(".", logger); err != nil {
		return handleCommandError(cmd, err)
	}
	loader := config.NewConfigLoader(configHome(cmd), configPath, logger)
	fileCfg, fileCfgPath, err := loader.LoadFileConfig()
	if err != nil {
		return handleCommandError(cmd, err)
	}

	eff := config.NewEffectiveConfig(DefaultHomeDir())
	if err := eff.ApplyFile(fileCfg, fileCfgPath); err != nil {
		return handleCommandError(cmd, err)
	}
	eff.ApplyEnv(os.Getenv)
	if err := eff.ApplyFlags(cmd); err != nil {
		return handleCommandError(cmd, err)
	}

	logger.SetNoColor(eff.NoColor.Value)
	logger.SetVerbose(eff.Verbose.Value)
	if fileCfgPath != "" {
		logger.Debug("Using config file: %s", fileCfgPath)
	}

	if err := eff.Validate(); err != nil {
		return handleCommandError(cmd, err)
	}
	s, err := eff.Settings()
	if err != nil {
		return handleCommandError(cmd, err)
	}
	effective, settings = eff, s
	return nil
}

// configHome is the directory searched for config.toml: the --home flag,
// then SUPPLIERCTL_HOME, then the default.
func configHome(cmd *cobra.Command) string {
	if cmd.Flags().Changed(config.FlagHome) {
		return homeDir
	}
	if env := os.Getenv(config.EnvHome); env != "" {
		return env
	}
	return DefaultHomeDir()
}
