package supplier

import (
	"context"
	"fmt"
	"strings"

	"github.com/altuslabsxyz/supplier-ops/internal/allocation"
	"github.com/altuslabsxyz/supplier-ops/internal/chain"
	"github.com/altuslabsxyz/supplier-ops/internal/output"
	"github.com/altuslabsxyz/supplier-ops/internal/pacer"
	"github.com/altuslabsxyz/supplier-ops/internal/servicemap"
	"github.com/altuslabsxyz/supplier-ops/internal/wallet"
)

// Inputs are the tables a generator joins.
type Inputs struct {
	Mapping servicemap.Mapping
	Sheet   *allocation.Sheet
	Wallets *wallet.Table
}

// Options tune generation.
type Options struct {
	// RevSharePercent is the revshare address's share of the default split.
	RevSharePercent int

	// StakeAmount applies to wallets without their own stake_amount. It is
	// parsed with ParseStake.
	StakeAmount string

	Strategy PairStrategy

	// Querier, when set, seeds each config with the operator's staked
	// services. Calls are spaced by Pacer.
	Querier chain.SupplierQuerier
	Pacer   *pacer.Pacer
}

// Generator produces one config per paired customer.
type Generator struct {
	in     Inputs
	opts   Options
	stake  string
	logger output.LoggerInterface
}

// NewGenerator validates inputs and options.
func NewGenerator(in Inputs, opts Options, logger output.LoggerInterface) (*Generator, error) {
	if in.Sheet == nil {
		return nil, fmt.Errorf("allocation sheet is required")
	}
	if in.Wallets == nil || in.Wallets.Len() == 0 {
		return nil, ErrNoWallets
	}
	if in.Mapping == nil {
		in.Mapping = servicemap.Mapping{}
	}
	if opts.RevSharePercent < 0 || opts.RevSharePercent > TotalPercent {
		return nil, fmt.Errorf("revshare percentage %d out of range [0,%d]", opts.RevSharePercent, TotalPercent)
	}

	g := &Generator{in: in, opts: opts, logger: logger}
	if opts.StakeAmount != "" {
		s, err := StakeFromPOKT(opts.StakeAmount)
		if err != nil {
			return nil, err
		}
		g.stake = s
	}
	return g, nil
}

// Generate pairs columns with wallets and builds the configs in column order.
// Per-customer problems are logged and that customer is skipped.
func (g *Generator) Generate(ctx context.Context) ([]Document, error) {
	pairs, err := Pair(g.in.Sheet.Columns, g.in.Wallets, g.opts.Strategy, g.logger)
	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(pairs))
	for _, p := range pairs {
		if err := ctx.Err(); err != nil {
			return docs, err
		}
		doc, ok, err := g.build(ctx, p)
		if err != nil {
			return docs, err
		}
		if ok {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func (g *Generator) build(ctx context.Context, p Pairing) (Document, bool, error) {
	rec := p.Record
	if rec.OwnerAddress == "" || rec.OperatorAddress == "" {
		g.logger.Warn("customer %s has no owner or operator address, skipping", rec.CustomerID)
		return Document{}, false, nil
	}

	prior, err := g.prior(ctx, rec.OperatorAddress)
	if err != nil {
		if ctx.Err() != nil {
			return Document{}, false, ctx.Err()
		}
		g.logger.Error("failed to fetch supplier %s for %s: %v, skipping", rec.OperatorAddress, rec.CustomerID, err)
		return Document{}, false, nil
	}

	stake, err := g.stakeFor(rec, prior)
	if err != nil {
		g.logger.Warn("customer %s: %v, skipping", rec.CustomerID, err)
		return Document{}, false, nil
	}

	split, err := DefaultRevShare(rec.OwnerAddress, rec.OperatorAddress, rec.RevShareAddress, g.opts.RevSharePercent)
	if err != nil {
		return Document{}, false, err
	}

	cfg := &Config{
		OwnerAddress:           rec.OwnerAddress,
		OperatorAddress:        rec.OperatorAddress,
		StakeAmount:            stake,
		DefaultRevSharePercent: split,
		Services:               []Service{},
	}
	if prior != nil {
		cfg.Services = append(cfg.Services, servicesFromChain(prior.Services)...)
	}

	doc := Document{CustomerID: rec.CustomerID, Column: p.Column, Config: cfg}
	for _, row := range g.in.Sheet.Rows {
		if row.Count(p.Column) == 0 {
			continue
		}
		code, ok := allocation.ChainCode(row.Chain)
		if !ok {
			g.logger.Warn("no chain code in %q: linked operator address: %s", row.Chain, rec.OperatorAddress)
			doc.Unmapped = append(doc.Unmapped, row.Chain)
			continue
		}
		id, ok := g.in.Mapping.Lookup(code)
		if !ok {
			g.logger.Warn("service mapping is missing for %s: linked operator address: %s", code, rec.OperatorAddress)
			doc.Unmapped = append(doc.Unmapped, code)
			continue
		}
		if cfg.HasService(id) {
			continue
		}
		cfg.Services = append(cfg.Services, g.service(id, row, rec))
	}
	return doc, true, nil
}

func (g *Generator) service(id string, row allocation.Row, rec wallet.Record) Service {
	svc := Service{
		ServiceID: id,
		Endpoints: []Endpoint{{
			PubliclyExposedURL: rec.PublicURL(),
			RPCType:            rec.EndpointRPCType(),
		}},
	}
	if row.IsHTC() {
		return svc
	}
	if rec.RevShareAddress == "" {
		g.logger.Warn("customer %s has no revshare address, %s keeps the default split", rec.CustomerID, id)
		return svc
	}
	svc.RevSharePercent = NewRevShare(Share{Address: rec.RevShareAddress, Percent: TotalPercent})
	return svc
}

func (g *Generator) prior(ctx context.Context, operator string) (*chain.Supplier, error) {
	if g.opts.Querier == nil {
		return nil, nil
	}
	if g.opts.Pacer != nil {
		if err := g.opts.Pacer.Wait(ctx); err != nil {
			return nil, err
		}
	}
	s, err := g.opts.Querier.Supplier(ctx, operator)
	if chain.IsNotFound(err) {
		g.logger.Debug("supplier %s is not staked", operator)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// stakeFor picks the wallet's own amount, then the run-wide amount, then the
// current on-chain stake.
func (g *Generator) stakeFor(rec wallet.Record, prior *chain.Supplier) (string, error) {
	if rec.StakeAmount != "" {
		return StakeFromPOKT(rec.StakeAmount)
	}
	if g.stake != "" {
		return g.stake, nil
	}
	if prior != nil && prior.Stake.Amount != "" {
		return StakeFromCoin(prior.Stake.Denom, prior.Stake.Amount)
	}
	return "", fmt.Errorf("no stake amount in wallet, flags or on chain")
}

func servicesFromChain(in []chain.ServiceConfig) []Service {
	out := make([]Service, 0, len(in))
	for _, sc := range in {
		svc := Service{ServiceID: sc.ServiceID}
		for _, ep := range sc.Endpoints {
			e := Endpoint{PubliclyExposedURL: ep.URL, RPCType: ep.RPCType}
			if len(ep.Configs) > 0 {
				e.Configs = make(map[string]string, len(ep.Configs))
				for _, c := range ep.Configs {
					e.Configs[strings.ToLower(c.Key)] = c.Value
				}
			}
			svc.Endpoints = append(svc.Endpoints, e)
		}
		for _, rs := range sc.RevShare {
			svc.RevSharePercent.Add(rs.Address, rs.Percentage)
		}
		out = append(out, svc)
	}
	return out
}
