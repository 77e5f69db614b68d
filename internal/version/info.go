// Package version reports build information for supplierctl.
package version

import (
	"fmt"

	goversion "github.com/caarlos0/go-version"
	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags:
//
//	-X github.com/altuslabsxyz/supplier-ops/internal/version.Version={{.Version}}
//	-X github.com/altuslabsxyz/supplier-ops/internal/version.GitCommit={{.FullCommit}}
//	-X github.com/altuslabsxyz/supplier-ops/internal/version.BuildDate={{.Date}}
var (
	Version   = ""
	GitCommit = ""
	BuildDate = ""
)

const (
	appName        = "supplierctl"
	appDescription = "Generate Shannon supplier configs and drive pocketd staking runs"
	appURL         = "https://github.com/altuslabsxyz/supplier-ops"
)

// Get returns the build information. Values injected at link time override
// what go-version reads from the module build info.
func Get() goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(appName, appDescription, appURL),
		func(i *goversion.Info) {
			if Version != "" {
				i.GitVersion = Version
			}
			if GitCommit != "" {
				i.GitCommit = GitCommit
			}
			if BuildDate != "" {
				i.BuildDate = BuildDate
			}
		},
	)
}

// NewCmd creates the version command.
func NewCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := Get()
			if jsonOutput {
				out, err := info.JSONString()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), info.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info in JSON format")
	return cmd
}
