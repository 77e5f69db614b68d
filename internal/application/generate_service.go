package application

import (
	"context"

	"github.com/altuslabsxyz/supplier-ops/internal/allocation"
	"github.com/altuslabsxyz/supplier-ops/internal/application/dto"
	"github.com/altuslabsxyz/supplier-ops/internal/chain"
	"github.com/altuslabsxyz/supplier-ops/internal/output"
	"github.com/altuslabsxyz/supplier-ops/internal/pacer"
	"github.com/altuslabsxyz/supplier-ops/internal/servicemap"
	"github.com/altuslabsxyz/supplier-ops/internal/supplier"
	"github.com/altuslabsxyz/supplier-ops/internal/wallet"
)

// GenerateService loads the input tables and writes one supplier config per
// paired customer.
type GenerateService struct {
	querier chain.SupplierQuerier
	pacer   *pacer.Pacer
	logger  output.LoggerInterface
}

// NewGenerateService creates a GenerateService. querier is only used when
// the input asks for prior state.
func NewGenerateService(querier chain.SupplierQuerier, p *pacer.Pacer, logger output.LoggerInterface) *GenerateService {
	return &GenerateService{querier: querier, pacer: p, logger: logger}
}

// Execute runs the generator end to end.
func (s *GenerateService) Execute(ctx context.Context, in dto.GenerateInput) (*dto.GenerateOutput, error) {
	mappingPath := in.MappingPath
	if mappingPath == "" {
		mappingPath = servicemap.DefaultFile
	}
	mapping := servicemap.Load(mappingPath, s.logger)

	wallets, err := wallet.LoadTable(in.WalletsPath, s.logger)
	if err != nil {
		return nil, err
	}
	sheet, err := allocation.Load(in.AllocationPath, s.logger)
	if err != nil {
		return nil, err
	}

	opts := supplier.Options{
		RevSharePercent: in.RevSharePercent,
		StakeAmount:     in.StakeAmount,
		Strategy:        in.Strategy,
	}
	if in.WithPriorState && s.querier != nil {
		opts.Querier = s.querier
		opts.Pacer = s.pacer
	}

	gen, err := supplier.NewGenerator(supplier.Inputs{
		Mapping: mapping,
		Sheet:   sheet,
		Wallets: wallets,
	}, opts, s.logger)
	if err != nil {
		return nil, err
	}
	docs, err := gen.Generate(ctx)
	if err != nil {
		return nil, err
	}

	outDir := in.OutputDir
	if outDir == "" {
		outDir = supplier.OutputDir
	}
	files, err := supplier.WriteAll(outDir, docs, s.logger)
	for _, f := range files {
		s.logger.Success("Generated %s", f)
	}
	if err != nil {
		return nil, err
	}
	return &dto.GenerateOutput{Documents: docs, Files: files}, nil
}
