package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/supplier-ops/internal/application"
	"github.com/altuslabsxyz/supplier-ops/internal/application/dto"
	"github.com/altuslabsxyz/supplier-ops/internal/output"
	"github.com/altuslabsxyz/supplier-ops/internal/servicemap"
	"github.com/altuslabsxyz/supplier-ops/internal/supplier"
)

// NewConfigsCmd creates the configs command group.
func NewConfigsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configs",
		Short: "Generate and edit supplier stake configs",
	}
	cmd.AddCommand(
		newConfigsGenerateCmd(),
		newConfigsOverrideCmd(),
	)
	return cmd
}

func newConfigsGenerateCmd() *cobra.Command {
	var (
		in      dto.GenerateInput
		pairBy  string
		noPrior bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one supplier config per customer from a node allocation sheet",
		Long: `Generate one supplier config per customer by joining the node allocation sheet,
the chain mapping table and the wallet CSV.

Each allocation column is paired with a wallet (by position, or by customer id
with --pair-by header). Every chain with a non-zero count in that column becomes
a service. HTC rows use the default revenue share; every other node type sends
100% of the service revenue to the revshare address.

Unless --no-prior-state is set, each operator's current on-chain supplier is
queried first and its services are kept.

Examples:
  supplierctl configs generate --wallets pocket_accounts.csv --allocation NodeAllocation.csv --revshare 10
  supplierctl configs generate --wallets w.csv --allocation a.csv --revshare 10 --stake-amount 60000 --pair-by header`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := promptIfEmpty(cmd, &in.WalletsPath, "wallets", "Wallet CSV to read"); err != nil {
				return err
			}
			if err := promptIfEmpty(cmd, &in.AllocationPath, "allocation", "Node allocation CSV"); err != nil {
				return err
			}
			if !cmd.Flags().Changed("revshare") {
				if err := promptRevShare(cmd, &in.RevSharePercent); err != nil {
					return err
				}
			}
			strategy, err := supplier.ParsePairStrategy(pairBy)
			if err != nil {
				return handleCommandError(cmd, err)
			}
			in.Strategy = strategy
			in.WithPriorState = !noPrior

			var svc *application.GenerateService
			if in.WithPriorState {
				logger.Debug("Querying prior supplier state from %s", settings.RESTEndpoint)
				svc = application.NewGenerateService(newQuerier(settings.RESTEndpoint), newPacer(), logger)
			} else {
				svc = application.NewGenerateService(nil, nil, logger)
			}

			out, err := svc.Execute(cmd.Context(), in)
			if err != nil {
				return handleCommandError(cmd, err)
			}
			logger.Info("Generated %d supplier config(s)", len(out.Files))
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.WalletsPath, "wallets", "w", "", "Wallet CSV")
	cmd.Flags().StringVarP(&in.AllocationPath, "allocation", "a", "", "Node allocation CSV")
	cmd.Flags().StringVarP(&in.MappingPath, "mapping", "m", servicemap.DefaultFile, "Chain code to service id mapping CSV")
	cmd.Flags().StringVarP(&in.OutputDir, "out", "o", supplier.OutputDir, "Output directory")
	cmd.Flags().IntVarP(&in.RevSharePercent, "revshare", "r", 0, "Revenue share percentage for the revshare address (0-100)")
	cmd.Flags().StringVarP(&in.StakeAmount, "stake-amount", "s", "", "Stake amount (POKT, or <n>upokt) when the wallet row has none")
	cmd.Flags().StringVar(&pairBy, "pair-by", supplier.PairPositional.String(), "How allocation columns match wallets: position or header")
	cmd.Flags().BoolVar(&noPrior, "no-prior-state", false, "Do not query operators' current on-chain services")
	return cmd
}

func promptRevShare(cmd *cobra.Command, pct *int) error {
	s := ""
	if err := promptIfEmpty(cmd, &s, "revshare", "Revshare percentage for the revshare address"); err != nil {
		return err
	}
	if _, err := fmt.Sscanf(s, "%d", pct); err != nil {
		return handleCommandError(cmd, fmt.Errorf("invalid revshare percentage %q", s))
	}
	return nil
}

func newConfigsOverrideCmd() *cobra.Command {
	var (
		in  dto.OverrideInput
		yes bool
	)

	cmd := &cobra.Command{
		Use:   "override-services",
		Short: "Replace the services of every supplier config in a directory",
		Long: `Replace the services key of every .yml/.yaml file in a directory with the services
from an override file. All other keys are kept in their original order. Files
without a services key are skipped.

Examples:
  supplierctl configs override-services --dir output --override services.yaml
  supplierctl configs override-services --dir output --override services.yaml --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := promptIfEmpty(cmd, &in.Dir, "dir", "Directory of supplier configs"); err != nil {
				return err
			}
			if err := promptIfEmpty(cmd, &in.OverridePath, "override", "Services override YAML"); err != nil {
				return err
			}

			var confirm application.ConfirmFunc
			if !yes {
				confirm = confirmOverride
			}
			out, err := application.NewOverrideService(logger).Execute(in, confirm)
			if err != nil {
				return handleCommandError(cmd, err)
			}
			return reportBatch(cmd, out)
		},
	}

	cmd.Flags().StringVarP(&in.Dir, "dir", "d", "", "Directory of supplier configs")
	cmd.Flags().StringVar(&in.OverridePath, "override", "", "YAML file with a services key")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

// confirmOverride asks before files are rewritten. Without a terminal it
// proceeds.
func confirmOverride(files []string) (bool, error) {
	logger.Info("%d file(s) will be updated:", len(files))
	for _, f := range files {
		logger.Info("  %s", f)
	}
	ok, err := output.ConfirmPrompt("Replace services in these files")
	if errors.Is(err, output.ErrNotInteractive) {
		return true, nil
	}
	return ok, err
}
