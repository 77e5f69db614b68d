package application

import (
	"context"
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/altuslabsxyz/supplier-ops/internal/application/dto"
	"github.com/altuslabsxyz/supplier-ops/internal/chain"
	"github.com/altuslabsxyz/supplier-ops/internal/network"
	"github.com/altuslabsxyz/supplier-ops/internal/output"
	"github.com/altuslabsxyz/supplier-ops/internal/pacer"
	"github.com/altuslabsxyz/supplier-ops/internal/wallet"
)

// FundService sends funds from each owner to its operator.
type FundService struct {
	submitter chain.Submitter
	pacer     *pacer.Pacer
	logger    output.LoggerInterface
}

// NewFundService creates a FundService.
func NewFundService(submitter chain.Submitter, p *pacer.Pacer, logger output.LoggerInterface) *FundService {
	return &FundService{submitter: submitter, pacer: p, logger: logger}
}

// ParseFundAmount parses a positive integer amount of upokt. A trailing
// "upokt" is accepted.
func ParseFundAmount(s string) (sdkmath.Int, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), network.BaseDenom)
	n, ok := sdkmath.NewIntFromString(strings.TrimSpace(s))
	if !ok || !n.IsPositive() {
		return sdkmath.Int{}, fmt.Errorf("amount must be a positive integer of %s, got %q", network.BaseDenom, s)
	}
	return n, nil
}

// Execute loads the wallet table and funds every operator.
func (s *FundService) Execute(ctx context.Context, in dto.FundInput) (*dto.BatchOutput, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	table, err := wallet.LoadTable(in.WalletsPath, s.logger,
		wallet.Require(wallet.ColOwnerAddress, wallet.ColOperatorAddress))
	if err != nil {
		return nil, err
	}
	return s.Fund(ctx, table, in.Amount)
}

// Fund sends amount upokt from owner to operator for every record.
func (s *FundService) Fund(ctx context.Context, table *wallet.Table, amount sdkmath.Int) (*dto.BatchOutput, error) {
	coin := sdk.NewCoin(network.BaseDenom, amount)
	b := newBatch("fund", table.Len(), s.pacer, s.logger)

	for _, rec := range table.Records() {
		b.stage("Sending %s from %s to %s", coin, rec.OwnerAddress, rec.OperatorAddress)
		if err := b.wait(ctx); err != nil {
			return b.done(), err
		}
		receipt, err := s.submitter.Send(ctx, rec.OwnerAddress, rec.OperatorAddress, coin)
		if err != nil {
			if ctx.Err() != nil {
				return b.done(), ctx.Err()
			}
			b.fail(rec.CustomerID, err)
			continue
		}
		s.logger.Debug("%s", receipt.Stdout)
		b.succeed("sent %s from %s to %s", coin, rec.OwnerAddress, rec.OperatorAddress)
	}
	return b.done(), nil
}
