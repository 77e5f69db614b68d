package dto

import (
	sdkmath "cosmossdk.io/math"

	"github.com/altuslabsxyz/supplier-ops/internal/supplier"
)

// GenerateInput contains the input for generating supplier configs.
type GenerateInput struct {
	WalletsPath    string
	AllocationPath string
	MappingPath    string
	OutputDir      string

	RevSharePercent int
	StakeAmount     string
	Strategy        supplier.PairStrategy

	// WithPriorState seeds configs from the operators' staked services.
	WithPriorState bool
}

// GenerateOutput contains the result of generation.
type GenerateOutput struct {
	Documents []supplier.Document
	Files     []string
}

// CreateAccountsInput contains the input for generating accounts.
type CreateAccountsInput struct {
	Count      int
	Prefix     string
	OutputPath string
}

// FundInput contains the input for funding operators.
type FundInput struct {
	WalletsPath string
	Amount      sdkmath.Int
}

// StakeWalletsInput contains the input for first stakes from a template.
type StakeWalletsInput struct {
	WalletsPath  string
	TemplatePath string
	StakeAmount  string
	OutputDir    string
}

// StakeConfigsInput contains the input for staking a folder of configs.
type StakeConfigsInput struct {
	Dir    string
	Signer Signer
}

// Signer selects which default_rev_share_percent address signs a stake.
type Signer int

const (
	// SignAsOwner signs with the first address.
	SignAsOwner Signer = iota
	// SignAsRevShare signs with the second address.
	SignAsRevShare
)

func (s Signer) String() string {
	if s == SignAsRevShare {
		return "revshare"
	}
	return "owner"
}

// OverrideInput contains the input for replacing services across configs.
type OverrideInput struct {
	Dir          string
	OverridePath string
}

// BatchOutput summarises a loop over operators.
type BatchOutput struct {
	RunID     string
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Failures  []ItemFailure
}

// ItemFailure records why one item failed.
type ItemFailure struct {
	Item string
	Err  error
}
