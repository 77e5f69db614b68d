package application

import (
	"errors"
	"fmt"

	"github.com/altuslabsxyz/supplier-ops/internal/application/dto"
	"github.com/altuslabsxyz/supplier-ops/internal/application/ports"
	"github.com/altuslabsxyz/supplier-ops/internal/keys"
	"github.com/altuslabsxyz/supplier-ops/internal/output"
	"github.com/altuslabsxyz/supplier-ops/internal/wallet"
)

// DefaultAccountsFile is the wallet CSV written by CreateAccounts.
const DefaultAccountsFile = "pocket_accounts.csv"

// AccountService generates operator accounts and imports them into a keyring.
type AccountService struct {
	logger   output.LoggerInterface
	generate func() (*keys.Account, error)
}

// NewAccountService creates an AccountService.
func NewAccountService(logger output.LoggerInterface) *AccountService {
	return &AccountService{logger: logger, generate: keys.Generate}
}

// Create generates in.Count accounts named <prefix>_<i> and writes them to
// the output CSV. Accounts that fail to generate are logged and left out.
func (s *AccountService) Create(in dto.CreateAccountsInput) ([]wallet.Record, error) {
	if in.Count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", in.Count)
	}
	if in.Prefix == "" {
		return nil, fmt.Errorf("customer id prefix is required")
	}
	path := in.OutputPath
	if path == "" {
		path = DefaultAccountsFile
	}

	records := make([]wallet.Record, 0, in.Count)
	for i := 0; i < in.Count; i++ {
		s.logger.Info("Creating account %d/%d...", i+1, in.Count)
		acc, err := s.generate()
		if err != nil {
			s.logger.Error("account %d: %v", i, err)
			continue
		}
		s.logger.Debug("account created with address: %s", acc.Address)
		records = append(records, wallet.Record{
			CustomerID:      fmt.Sprintf("%s_%d", in.Prefix, i),
			OperatorAddress: acc.Address,
			Mnemonic:        acc.Mnemonic,
		})
	}

	if err := wallet.SaveCSV(path, records); err != nil {
		return records, err
	}
	s.logger.Success("%d account(s) saved to %s", len(records), path)
	return records, nil
}

// Import recovers every mnemonic in the wallet table into the keyring under
// the customer id. Existing keys are skipped. A recovered address that
// differs from operator_address is reported as a failure.
func (s *AccountService) Import(table *wallet.Table, importer ports.KeyImporter) *dto.BatchOutput {
	b := newBatch("import", table.Len(), nil, s.logger)
	for _, rec := range table.Records() {
		b.stage("Importing account %s", rec.CustomerID)
		if rec.Mnemonic == "" {
			b.skip(rec.CustomerID, "no mnemonic")
			continue
		}
		addr, err := importer.Import(rec.CustomerID, rec.Mnemonic)
		var exists *keys.KeyExistsError
		if errors.As(err, &exists) {
			b.skip(rec.CustomerID, "%v", err)
			continue
		}
		if err != nil {
			b.fail(rec.CustomerID, err)
			continue
		}
		if rec.OperatorAddress != "" && rec.OperatorAddress != addr {
			b.fail(rec.CustomerID, fmt.Errorf("recovered address %s does not match operator_address %s", addr, rec.OperatorAddress))
			continue
		}
		b.succeed("imported %s (%s)", rec.CustomerID, addr)
	}
	return b.done()
}
