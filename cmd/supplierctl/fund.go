package main

import (
	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/supplier-ops/internal/application"
	"github.com/altuslabsxyz/supplier-ops/internal/application/dto"
)

// NewFundCmd creates the fund command.
func NewFundCmd() *cobra.Command {
	var (
		walletsPath string
		amount      string
	)

	cmd := &cobra.Command{
		Use:   "fund",
		Short: "Send upokt from each owner to its operator",
		Long: `Send a fixed upokt amount from every owner_address to its operator_address
with pocketd tx bank send. Rows are processed one at a time with --delay between
submissions; a failed send does not stop the run.

Examples:
  # Send 1 POKT to every operator
  supplierctl fund --wallets pocket_accounts.csv --amount 1000000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := promptIfEmpty(cmd, &walletsPath, "wallets", "Wallet CSV to fund"); err != nil {
				return err
			}
			if err := promptIfEmpty(cmd, &amount, "amount", "Amount of upokt to send to each operator (1POKT=1000000upokt)"); err != nil {
				return err
			}
			amt, err := application.ParseFundAmount(amount)
			if err != nil {
				return handleCommandError(cmd, err)
			}

			svc := application.NewFundService(newSubmitter(), newPacer(), logger)
			out, err := svc.Execute(cmd.Context(), dto.FundInput{WalletsPath: walletsPath, Amount: amt})
			if err != nil {
				return handleCommandError(cmd, err)
			}
			return reportBatch(cmd, out)
		},
	}

	cmd.Flags().StringVarP(&walletsPath, "wallets", "w", "", "Wallet CSV with owner_address and operator_address columns")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount in upokt to send to each operator")
	return cmd
}
