package config

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/altuslabsxyz/supplier-ops/internal/chain"
	"github.com/altuslabsxyz/supplier-ops/internal/network"
	"github.com/altuslabsxyz/supplier-ops/internal/pacer"
)

// EffectiveConfig represents the final merged configuration after applying priority chain.
type EffectiveConfig struct {
	// Global settings
	Home    StringValue
	NoColor BoolValue
	Verbose BoolValue

	// Chain settings
	Network        StringValue
	RESTEndpoint   StringValue // Empty means the network's default
	Binary         StringValue
	KeyringBackend StringValue

	// Transaction settings
	GasPrices       StringValue
	GasAdjustment   StringValue
	TimeoutDuration StringValue
	Delay           DurationValue

	// Metadata
	ConfigFilePath string // Path to loaded config file (empty if none)
}

// NewEffectiveConfig creates a new EffectiveConfig with default values.
func NewEffectiveConfig(defaultHomeDir string) *EffectiveConfig {
	tx := chain.DefaultTxOptions(network.DefaultNetworkName)
	return &EffectiveConfig{
		Home:            NewStringValue(defaultHomeDir),
		NoColor:         NewBoolValue(false),
		Verbose:         NewBoolValue(false),
		Network:         NewStringValue(network.DefaultNetworkName),
		RESTEndpoint:    NewStringValue(""),
		Binary:          NewStringValue(chain.DefaultBinary),
		KeyringBackend:  NewStringValue(tx.KeyringBackend),
		GasPrices:       NewStringValue(tx.GasPrices),
		GasAdjustment:   NewStringValue(tx.GasAdjustment),
		TimeoutDuration: NewStringValue(tx.TimeoutDuration),
		Delay:           NewDurationValue(pacer.DefaultDelay),
	}
}

// Settings is the resolved configuration handed to commands.
type Settings struct {
	Home         string
	Network      network.Network
	RESTEndpoint string
	Binary       string
	Tx           chain.TxOptions
	Delay        time.Duration
}

// Settings resolves the network and returns plain values.
func (c *EffectiveConfig) Settings() (*Settings, error) {
	net, err := network.Get(c.Network.Value)
	if err != nil {
		return nil, err
	}
	rest := c.RESTEndpoint.Value
	if rest == "" {
		rest = net.RESTEndpoint
	}
	return &Settings{
		Home:         c.Home.Value,
		Network:      net,
		RESTEndpoint: rest,
		Binary:       c.Binary.Value,
		Tx: chain.TxOptions{
			Network:         net.CLIFlag,
			KeyringBackend:  c.KeyringBackend.Value,
			GasPrices:       c.GasPrices.Value,
			GasAdjustment:   c.GasAdjustment.Value,
			TimeoutDuration: c.TimeoutDuration.Value,
		},
		Delay: c.Delay.Value,
	}, nil
}

// ToTable writes the configuration as a formatted table.
func (c *EffectiveConfig) ToTable(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	fmt.Fprintf(tw, "home\t%s\t%s\n", c.Home.Value, c.Home.Source)
	fmt.Fprintf(tw, "no_color\t%t\t%s\n", c.NoColor.Value, c.NoColor.Source)
	fmt.Fprintf(tw, "verbose\t%t\t%s\n", c.Verbose.Value, c.Verbose.Source)
	fmt.Fprintf(tw, "network\t%s\t%s\n", c.Network.Value, c.Network.Source)
	fmt.Fprintf(tw, "rest_endpoint\t%s\t%s\n", orDefault(c.RESTEndpoint.Value), c.RESTEndpoint.Source)
	fmt.Fprintf(tw, "pocketd\t%s\t%s\n", c.Binary.Value, c.Binary.Source)
	fmt.Fprintf(tw, "keyring_backend\t%s\t%s\n", c.KeyringBackend.Value, c.KeyringBackend.Source)
	fmt.Fprintf(tw, "gas_prices\t%s\t%s\n", c.GasPrices.Value, c.GasPrices.Source)
	fmt.Fprintf(tw, "gas_adjustment\t%s\t%s\n", c.GasAdjustment.Value, c.GasAdjustment.Source)
	fmt.Fprintf(tw, "timeout_duration\t%s\t%s\n", c.TimeoutDuration.Value, c.TimeoutDuration.Source)
	fmt.Fprintf(tw, "delay\t%s\t%s\n", c.Delay.Value, c.Delay.Source)
	if c.ConfigFilePath != "" {
		fmt.Fprintf(tw, "\nconfig file\t%s\t\n", c.ConfigFilePath)
	}
	tw.Flush()
}

func orDefault(s string) string {
	if s == "" {
		return "(network default)"
	}
	return s
}
