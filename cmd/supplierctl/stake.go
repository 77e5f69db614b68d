package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/supplier-ops/internal/application"
	"github.com/altuslabsxyz/supplier-ops/internal/application/dto"
	"github.com/altuslabsxyz/supplier-ops/internal/output"
)

// NewStakeCmd creates the stake command group.
func NewStakeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stake",
		Short: "Stake suppliers through pocketd",
	}
	cmd.AddCommand(
		newStakeWalletsCmd(),
		newStakeConfigsCmd(),
	)
	return cmd
}

func newStakeWalletsCmd() *cobra.Command {
	var (
		walletsPath  string
		templatePath string
		amount       string
		outDir       string
	)

	cmd := &cobra.Command{
		Use:   "wallets",
		Short: "Render a stake template per wallet and stake it as the owner",
		Long: `Render the stake template for every wallet and submit stake-supplier signed by
the owner. The template may use the <owner_address>, <operator_address> and
<stake_amount> placeholders. The default revenue share is set to 50/50 between
the owner and revshare addresses.

Rendered files are kept in --out for later "stake configs" runs.

Examples:
  supplierctl stake wallets --wallets pocket_accounts.csv --template stake_template.yaml --amount 60000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := promptIfEmpty(cmd, &walletsPath, "wallets", "Wallet CSV to stake"); err != nil {
				return err
			}
			if err := promptIfEmpty(cmd, &templatePath, "template", "Stake config template"); err != nil {
				return err
			}
			if err := promptIfEmpty(cmd, &amount, "amount", "Stake amount in POKT"); err != nil {
				return err
			}

			svc := application.NewStakeService(newSubmitter(), newPacer(), logger)
			out, err := svc.StakeWallets(cmd.Context(), dto.StakeWalletsInput{
				WalletsPath:  walletsPath,
				TemplatePath: templatePath,
				StakeAmount:  amount,
				OutputDir:    outDir,
			})
			if err != nil {
				return handleCommandError(cmd, err)
			}
			return reportBatch(cmd, out)
		},
	}

	cmd.Flags().StringVarP(&walletsPath, "wallets", "w", "", "Wallet CSV with owner_address and operator_address columns")
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Stake config template")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Stake amount in POKT")
	cmd.Flags().StringVarP(&outDir, "out", "o", application.DefaultStakeFilesDir, "Directory for rendered stake configs")
	return cmd
}

func newStakeConfigsCmd() *cobra.Command {
	var (
		dir string
		as  string
	)

	cmd := &cobra.Command{
		Use:   "configs",
		Short: "Stake every supplier config in a directory",
		Long: `Submit stake-supplier for every .yml/.yaml file in a directory.

The signer is taken from default_rev_share_percent, which must list exactly two
addresses: the first is the owner and the second the revshare address. Files
with any other number of addresses are skipped. Without --as the signer is
selected interactively.

Examples:
  supplierctl stake configs --dir output --as owner
  supplierctl stake configs --dir output --as revshare`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := promptIfEmpty(cmd, &dir, "dir", "Directory of supplier configs"); err != nil {
				return err
			}
			signer, err := resolveSigner(as)
			if err != nil {
				return handleCommandError(cmd, err)
			}
			logger.Info("Signing as %s", signer)

			svc := application.NewStakeService(newSubmitter(), newPacer(), logger)
			out, err := svc.StakeConfigs(cmd.Context(), dto.StakeConfigsInput{Dir: dir, Signer: signer})
			if err != nil {
				return handleCommandError(cmd, err)
			}
			return reportBatch(cmd, out)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory of supplier configs")
	cmd.Flags().StringVar(&as, "as", "", "Sign as owner or revshare")
	return cmd
}

// resolveSigner parses --as, or asks when it is empty.
func resolveSigner(as string) (dto.Signer, error) {
	switch strings.ToLower(strings.TrimSpace(as)) {
	case "owner":
		return dto.SignAsOwner, nil
	case "revshare":
		return dto.SignAsRevShare, nil
	case "":
	default:
		return 0, fmt.Errorf("invalid --as value %q (must be owner or revshare)", as)
	}

	options := []string{dto.SignAsOwner.String(), dto.SignAsRevShare.String()}
	idx, err := output.SelectPrompt("Sign stake transactions as", options)
	if err != nil {
		if errors.Is(err, output.ErrNotInteractive) {
			return 0, fmt.Errorf("--as is required when stdin is not a terminal")
		}
		return 0, err
	}
	return dto.Signer(idx), nil
}
