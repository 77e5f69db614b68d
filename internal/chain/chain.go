// Package chain holds the narrow capabilities supplierctl needs from a Shannon
// network: submitting transactions through pocketd and reading supplier state.
package chain

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Submitter submits transactions. Implementations never retry.
type Submitter interface {
	// Send transfers amount from one account to another, signing as from.
	Send(ctx context.Context, from, to string, amount sdk.Coin) (*Receipt, error)

	// StakeSupplier stakes the supplier described by the config file, signing as from.
	StakeSupplier(ctx context.Context, configPath, from string) (*Receipt, error)
}

// SupplierQuerier reads supplier state. A supplier that is not staked yields
// ErrSupplierNotFound.
type SupplierQuerier interface {
	Supplier(ctx context.Context, operatorAddress string) (*Supplier, error)
}

// Receipt is the raw output of an accepted submission. It is not parsed.
type Receipt struct {
	Stdout string
	Stderr string
}

// Supplier is the on-chain supplier record.
type Supplier struct {
	OwnerAddress    string
	OperatorAddress string
	Stake           Coin
	Services        []ServiceConfig
}

// Coin is a denom/amount pair as returned by the REST gateway.
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// ServiceConfig is one service the supplier is staked for.
type ServiceConfig struct {
	ServiceID string
	Endpoints []Endpoint
	RevShare  []RevShareEntry
}

// Endpoint is a supplier endpoint.
type Endpoint struct {
	URL     string
	RPCType string
	Configs []ConfigOption
}

// ConfigOption is an endpoint key/value setting.
type ConfigOption struct {
	Key   string
	Value string
}

// RevShareEntry is one address's share of a service's revenue.
type RevShareEntry struct {
	Address    string
	Percentage uint64
}
