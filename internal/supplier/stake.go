package supplier

import (
	"fmt"
	"strings"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/altuslabsxyz/supplier-ops/internal/network"
)

// StakeFromPOKT converts a display amount in POKT to a upokt coin string,
// e.g. "5" -> "5000000upokt".
func StakeFromPOKT(amount string) (string, error) {
	coin, err := ParseStake(amount)
	if err != nil {
		return "", err
	}
	return coin.String(), nil
}

// ParseStake accepts "5", "5pokt", "1.5" (all POKT) or "5000000upokt" and
// returns the amount as a upokt coin. Negative and zero amounts are rejected,
// as are POKT amounts finer than one upokt.
func ParseStake(amount string) (sdk.Coin, error) {
	s := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(amount), ",", ""))
	if s == "" {
		return sdk.Coin{}, fmt.Errorf("stake amount is empty")
	}

	if base, ok := strings.CutSuffix(s, network.BaseDenom); ok {
		n, ok := sdkmath.NewIntFromString(strings.TrimSpace(base))
		if !ok {
			return sdk.Coin{}, fmt.Errorf("invalid stake amount %q", amount)
		}
		return newStakeCoin(n, amount)
	}

	s = strings.TrimSpace(strings.TrimSuffix(s, network.DisplayDenom))
	dec, err := sdkmath.LegacyNewDecFromStr(s)
	if err != nil {
		return sdk.Coin{}, fmt.Errorf("invalid stake amount %q: %w", amount, err)
	}
	units := dec.MulInt64(network.UnitsPerPOKT)
	if !units.IsInteger() {
		return sdk.Coin{}, fmt.Errorf("stake amount %q is finer than 1%s", amount, network.BaseDenom)
	}
	return newStakeCoin(units.TruncateInt(), amount)
}

// StakeFromCoin renders an on-chain stake as a coin string.
func StakeFromCoin(denom, amount string) (string, error) {
	if denom == "" {
		denom = network.BaseDenom
	}
	n, ok := sdkmath.NewIntFromString(amount)
	if !ok {
		return "", fmt.Errorf("invalid stake amount %q", amount)
	}
	if !n.IsPositive() {
		return "", fmt.Errorf("stake amount %q must be positive", amount)
	}
	return sdk.NewCoin(denom, n).String(), nil
}

func newStakeCoin(n sdkmath.Int, raw string) (sdk.Coin, error) {
	if !n.IsPositive() {
		return sdk.Coin{}, fmt.Errorf("stake amount %q must be positive", raw)
	}
	return sdk.NewCoin(network.BaseDenom, n), nil
}
