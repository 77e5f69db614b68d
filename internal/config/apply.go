package config

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// Environment variables read by ApplyEnv.
const (
	EnvNetwork      = "NETWORK"
	EnvHome         = "SUPPLIERCTL_HOME"
	EnvBinary       = "POCKETD_BINARY"
	EnvRESTEndpoint = "SUPPLIERCTL_REST_ENDPOINT"
	EnvNoColor      = "NO_COLOR"
)

// Flag names read by ApplyFlags.
const (
	FlagHome           = "home"
	FlagNoColor        = "no-color"
	FlagVerbose        = "verbose"
	FlagNetwork        = "network"
	FlagRESTEndpoint   = "rest-endpoint"
	FlagBinary         = "pocketd"
	FlagKeyringBackend = "keyring-backend"
	FlagDelay          = "delay"
)

// ApplyFile copies values set in the config file.
func (c *EffectiveConfig) ApplyFile(f *FileConfig, path string) error {
	if f == nil {
		return nil
	}
	setString(&c.Home, f.Home)
	setBool(&c.NoColor, f.NoColor)
	setBool(&c.Verbose, f.Verbose)
	setString(&c.Network, f.Network)
	setString(&c.RESTEndpoint, f.RESTEndpoint)
	setString(&c.Binary, f.Binary)
	setString(&c.KeyringBackend, f.KeyringBackend)
	setString(&c.GasPrices, f.GasPrices)
	setString(&c.GasAdjustment, f.GasAdjustment)
	setString(&c.TimeoutDuration, f.TimeoutDuration)
	if f.Delay != nil {
		d, err := time.ParseDuration(*f.Delay)
		if err != nil {
			return fmt.Errorf("invalid delay in config file: %w", err)
		}
		c.Delay = DurationValue{Value: d, Source: SourceConfigFile}
	}
	c.ConfigFilePath = path
	return nil
}

// ApplyEnv copies values set in the environment. getenv is usually os.Getenv.
func (c *EffectiveConfig) ApplyEnv(getenv func(string) string) {
	envString(&c.Network, getenv(EnvNetwork))
	envString(&c.Home, getenv(EnvHome))
	envString(&c.Binary, getenv(EnvBinary))
	envString(&c.RESTEndpoint, getenv(EnvRESTEndpoint))
	if getenv(EnvNoColor) != "" {
		c.NoColor = BoolValue{Value: true, Source: SourceEnvironment}
	}
}

// ApplyFlags copies flags that were set explicitly on the command line.
// Flags that cmd does not define are ignored.
func (c *EffectiveConfig) ApplyFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	for name, dst := range map[string]*StringValue{
		FlagHome:           &c.Home,
		FlagNetwork:        &c.Network,
		FlagRESTEndpoint:   &c.RESTEndpoint,
		FlagBinary:         &c.Binary,
		FlagKeyringBackend: &c.KeyringBackend,
	} {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		v, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*dst = StringValue{Value: v, Source: SourceFlag}
	}
	for name, dst := range map[string]*BoolValue{
		FlagNoColor: &c.NoColor,
		FlagVerbose: &c.Verbose,
	} {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		v, err := flags.GetBool(name)
		if err != nil {
			return err
		}
		*dst = BoolValue{Value: v, Source: SourceFlag}
	}
	if flags.Lookup(FlagDelay) != nil && flags.Changed(FlagDelay) {
		d, err := flags.GetDuration(FlagDelay)
		if err != nil {
			return err
		}
		c.Delay = DurationValue{Value: d, Source: SourceFlag}
	}
	return nil
}

func setString(dst *StringValue, v *string) {
	if v != nil {
		*dst = StringValue{Value: *v, Source: SourceConfigFile}
	}
}

func setBool(dst *BoolValue, v *bool) {
	if v != nil {
		*dst = BoolValue{Value: *v, Source: SourceConfigFile}
	}
}

func envString(dst *StringValue, v string) {
	if v != "" {
		*dst = StringValue{Value: v, Source: SourceEnvironment}
	}
}
