// Package network describes the Shannon networks supplierctl can target.
package network

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// Bech32Prefix is the account address prefix on every Shannon network.
	Bech32Prefix = "pokt"

	// BaseDenom is the smallest staking unit.
	BaseDenom = "upokt"

	// DisplayDenom is the human-facing unit; 1 POKT = UnitsPerPOKT upokt.
	DisplayDenom = "pokt"

	// UnitsPerPOKT converts display amounts to base units.
	UnitsPerPOKT = 1_000_000

	// DefaultNetworkName is used when nothing else selects a network.
	DefaultNetworkName = "beta"
)

// Network holds the endpoints and CLI flag value of one Shannon network.
type Network struct {
	// Name is the value accepted by --network and the NETWORK env var.
	Name string

	// CLIFlag is passed to pocketd as --network=<CLIFlag>.
	CLIFlag string

	// RESTEndpoint is the base URL of the chain REST (LCD) API.
	RESTEndpoint string
}

var known = map[string]Network{
	"main": {
		Name:         "main",
		CLIFlag:      "main",
		RESTEndpoint: "https://shannon-grove-api.mainnet.poktroll.com",
	},
	"beta": {
		Name:         "beta",
		CLIFlag:      "beta",
		RESTEndpoint: "https://shannon-testnet-grove-api.beta.poktroll.com",
	},
	"alpha": {
		Name:         "alpha",
		CLIFlag:      "alpha",
		RESTEndpoint: "https://shannon-testnet-grove-api.alpha.poktroll.com",
	},
	"local": {
		Name:         "local",
		CLIFlag:      "local",
		RESTEndpoint: "http://localhost:1317",
	},
}

// aliases maps alternative spellings used in .env files to canonical names.
var aliases = map[string]string{
	"mainnet":  "main",
	"testnet":  "beta",
	"localnet": "local",
}

// Get retrieves a network by name. Lookup is case-insensitive.
func Get(name string) (Network, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	n, ok := known[key]
	if !ok {
		return Network{}, &UnknownNetworkError{
			RequestedNetwork:  name,
			AvailableNetworks: List(),
		}
	}
	return n, nil
}

// List returns all known network names in sorted order.
func List() []string {
	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownNetworkError is returned when a network name is not recognised.
type UnknownNetworkError struct {
	RequestedNetwork  string
	AvailableNetworks []string
}

func (e *UnknownNetworkError) Error() string {
	return fmt.Sprintf("unknown network %q (available: %s)",
		e.RequestedNetwork, strings.Join(e.AvailableNetworks, ", "))
}

// RecoveryHint suggests how to fix the network selection.
func (e *UnknownNetworkError) RecoveryHint() string {
	return "set NETWORK in .env or pass --network with one of: " + strings.Join(e.AvailableNetworks, ", ")
}
