package main

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/supplier-ops/internal/application"
	"github.com/altuslabsxyz/supplier-ops/internal/application/dto"
	"github.com/altuslabsxyz/supplier-ops/internal/keys"
	"github.com/altuslabsxyz/supplier-ops/internal/migration"
	"github.com/altuslabsxyz/supplier-ops/internal/wallet"
)

// NewAccountsCmd creates the accounts command group.
func NewAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Create, import and extract operator accounts",
	}
	cmd.AddCommand(
		newAccountsCreateCmd(),
		newAccountsImportCmd(),
		newAccountsExtractMigrationCmd(),
	)
	return cmd
}

func newAccountsCreateCmd() *cobra.Command {
	var (
		count  int
		prefix string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generate operator accounts into a wallet CSV",
		Long: `Generate operator accounts with 24-word mnemonics and write them to a wallet CSV.

Customer ids are <prefix>_0 through <prefix>_<count-1>. The owner, revshare and
endpoint columns are left empty for the operator to fill in.

Examples:
  supplierctl accounts create --count 5 --prefix acme
  supplierctl accounts create --count 5 --prefix acme --out acme_accounts.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				s := ""
				if err := promptIfEmpty(cmd, &s, "count", "Number of accounts to create"); err != nil {
					return err
				}
				n, err := strconv.Atoi(s)
				if err != nil {
					return handleCommandError(cmd, err)
				}
				count = n
			}
			if err := promptIfEmpty(cmd, &prefix, "prefix", "Customer id prefix"); err != nil {
				return err
			}

			svc := application.NewAccountService(logger)
			if _, err := svc.Create(dto.CreateAccountsInput{Count: count, Prefix: prefix, OutputPath: out}); err != nil {
				return handleCommandError(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "c", 0, "Number of accounts to create")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Customer id prefix")
	cmd.Flags().StringVarP(&out, "out", "o", application.DefaultAccountsFile, "Output wallet CSV")
	return cmd
}

func newAccountsImportCmd() *cobra.Command {
	var (
		walletsPath string
		keyringDir  string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import wallet mnemonics into a pocketd keyring",
		Long: `Recover every mnemonic in the wallet CSV into a keyring, named after its customer id.

Keys that already exist are skipped. A recovered address that does not match the
operator_address column is reported as a failure.

Examples:
  supplierctl accounts import --wallets pocket_accounts.csv
  supplierctl accounts import --wallets pocket_accounts.csv --keyring-dir ~/.pocket --keyring-backend file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := promptIfEmpty(cmd, &walletsPath, "wallets", "Wallet CSV to import"); err != nil {
				return err
			}
			table, err := wallet.LoadTable(walletsPath, logger,
				wallet.Require(wallet.ColCustomerID, wallet.ColMnemonic))
			if err != nil {
				return handleCommandError(cmd, err)
			}

			dir := keyringDir
			if dir == "" {
				dir = defaultKeyringDir()
			}
			importer, err := keys.NewImporter(dir, settings.Tx.KeyringBackend, os.Stdin)
			if err != nil {
				return handleCommandError(cmd, err)
			}
			logger.Info("Importing into %s keyring at %s", settings.Tx.KeyringBackend, dir)

			out := application.NewAccountService(logger).Import(table, importer)
			return reportBatch(cmd, out)
		},
	}

	cmd.Flags().StringVarP(&walletsPath, "wallets", "w", "", "Wallet CSV with customer_id and mnemonic columns")
	cmd.Flags().StringVar(&keyringDir, "keyring-dir", "", "Keyring directory (default ~/.pocket)")
	return cmd
}

func defaultKeyringDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pocket"
	}
	return filepath.Join(home, ".pocket")
}

func newAccountsExtractMigrationCmd() *cobra.Command {
	var (
		in  string
		out string
	)

	cmd := &cobra.Command{
		Use:   "extract-migration",
		Short: "Extract Shannon accounts from a migration export",
		Long: `Read a migration export JSON and write the Shannon address, private key and
Morse node address of every complete mapping to a CSV.

Examples:
  supplierctl accounts extract-migration --in migration.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := promptIfEmpty(cmd, &in, "in", "Migration export JSON"); err != nil {
				return err
			}
			res, err := migration.Load(in)
			if err != nil {
				return handleCommandError(cmd, err)
			}
			if res.Incomplete > 0 {
				logger.Warn("%d mapping(s) missing Shannon account or migration message were skipped", res.Incomplete)
			}
			if len(res.Accounts) == 0 {
				logger.Warn("No accounts found to extract")
				return nil
			}
			if err := migration.SaveCSV(out, res.Accounts); err != nil {
				return handleCommandError(cmd, err)
			}
			logger.Success("Extracted %d account(s) to %s", len(res.Accounts), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "Migration export JSON")
	cmd.Flags().StringVarP(&out, "out", "o", migration.DefaultOutput, "Output CSV")
	return cmd
}
