package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/altuslabsxyz/supplier-ops/internal/application/dto"
	"github.com/altuslabsxyz/supplier-ops/internal/chain"
	"github.com/altuslabsxyz/supplier-ops/internal/output"
	"github.com/altuslabsxyz/supplier-ops/internal/pacer"
	"github.com/altuslabsxyz/supplier-ops/internal/supplier"
	"github.com/altuslabsxyz/supplier-ops/internal/wallet"
)

// DefaultStakeFilesDir holds configs rendered by StakeWallets.
const DefaultStakeFilesDir = "initial-stake-files"

// StakeService submits stake-supplier transactions.
type StakeService struct {
	submitter chain.Submitter
	pacer     *pacer.Pacer
	logger    output.LoggerInterface
}

// NewStakeService creates a StakeService.
func NewStakeService(submitter chain.Submitter, p *pacer.Pacer, logger output.LoggerInterface) *StakeService {
	return &StakeService{submitter: submitter, pacer: p, logger: logger}
}

// StakeFileName is the rendered config name for a customer.
func StakeFileName(customerID string) string {
	return "supplier-stake-" + customerID + ".yaml"
}

// StakeWallets renders the template for every wallet and stakes it, signing
// as the owner.
func (s *StakeService) StakeWallets(ctx context.Context, in dto.StakeWalletsInput) (*dto.BatchOutput, error) {
	stake, err := supplier.StakeFromPOKT(in.StakeAmount)
	if err != nil {
		return nil, err
	}
	tmpl, err := os.ReadFile(in.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	table, err := wallet.LoadTable(in.WalletsPath, s.logger,
		wallet.Require(wallet.ColOwnerAddress, wallet.ColOperatorAddress))
	if err != nil {
		return nil, err
	}
	outDir := in.OutputDir
	if outDir == "" {
		outDir = DefaultStakeFilesDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	b := newBatch("stake wallets", table.Len(), s.pacer, s.logger)
	for _, rec := range table.Records() {
		b.stage("Staking %s (%s)", rec.CustomerID, rec.OperatorAddress)

		data, err := supplier.RenderStakeTemplate(tmpl, supplier.StakeTemplateValues{
			OwnerAddress:    rec.OwnerAddress,
			OperatorAddress: rec.OperatorAddress,
			RevShareAddress: rec.RevShareAddress,
			StakeAmount:     stake,
		})
		if err != nil {
			b.skip(rec.CustomerID, "%v", err)
			continue
		}
		path := filepath.Join(outDir, StakeFileName(rec.CustomerID))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			b.fail(rec.CustomerID, fmt.Errorf("failed to write %s: %w", path, err))
			continue
		}
		s.logger.Info("generated config file: %s", path)

		if err := s.submit(ctx, b, rec.CustomerID, path, rec.OwnerAddress); err != nil {
			return b.done(), err
		}
	}
	return b.done(), nil
}

// StakeConfigs stakes every config in a folder. The signer is read from
// default_rev_share_percent, which must list exactly two addresses.
func (s *StakeService) StakeConfigs(ctx context.Context, in dto.StakeConfigsInput) (*dto.BatchOutput, error) {
	files, err := supplier.ListConfigFiles(in.Dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no YAML files found in %s", in.Dir)
	}

	b := newBatch("stake configs", len(files), s.pacer, s.logger)
	for _, path := range files {
		name := filepath.Base(path)
		b.stage("Processing %s", name)

		cfg, err := supplier.LoadConfig(path)
		if err != nil {
			b.fail(name, err)
			continue
		}
		owner, revshare, err := supplier.SigningAddresses(cfg)
		if err != nil {
			b.skip(name, "%v", err)
			continue
		}
		from := owner
		if in.Signer == dto.SignAsRevShare {
			from = revshare
		}
		if err := s.submit(ctx, b, name, path, from); err != nil {
			return b.done(), err
		}
	}
	return b.done(), nil
}

// submit returns an error only when ctx is done; other failures are recorded.
func (s *StakeService) submit(ctx context.Context, b *batch, item, path, from string) error {
	if err := b.wait(ctx); err != nil {
		return err
	}
	s.logger.Debug("staking %s from %s", path, from)
	receipt, err := s.submitter.StakeSupplier(ctx, path, from)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		b.fail(item, err)
		return nil
	}
	s.logger.Debug("%s", receipt.Stdout)
	b.succeed("staked %s using %s", item, from)
	return nil
}
