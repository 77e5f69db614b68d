package chain

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/altuslabsxyz/supplier-ops/internal/infrastructure/executor"
)

// DefaultBinary is the chain CLI looked up in PATH.
const DefaultBinary = "pocketd"

// TxOptions are the flags appended to every pocketd tx command.
type TxOptions struct {
	Network         string
	KeyringBackend  string
	GasPrices       string
	GasAdjustment   string
	TimeoutDuration string
	Home            string
}

// DefaultTxOptions returns the flags the operator tooling has always used.
func DefaultTxOptions(network string) TxOptions {
	return TxOptions{
		Network:         network,
		KeyringBackend:  "test",
		GasPrices:       "1upokt",
		GasAdjustment:   "1.5",
		TimeoutDuration: "1m",
	}
}

// CLISubmitter submits transactions by running pocketd.
type CLISubmitter struct {
	exec   executor.CommandExecutor
	binary string
	opts   TxOptions
}

// NewCLISubmitter creates a submitter. An empty binary means DefaultBinary.
func NewCLISubmitter(exec executor.CommandExecutor, binary string, opts TxOptions) *CLISubmitter {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CLISubmitter{exec: exec, binary: binary, opts: opts}
}

// Send runs `pocketd tx bank send`.
func (s *CLISubmitter) Send(ctx context.Context, from, to string, amount sdk.Coin) (*Receipt, error) {
	args := append([]string{"tx", "bank", "send", from, to, amount.String()}, s.txFlags(from)...)
	return s.run(ctx, "bank send", args)
}

// StakeSupplier runs `pocketd tx supplier stake-supplier`.
func (s *CLISubmitter) StakeSupplier(ctx context.Context, configPath, from string) (*Receipt, error) {
	args := append([]string{"tx", "supplier", "stake-supplier", "--config=" + configPath}, s.txFlags(from)...)
	return s.run(ctx, "stake supplier", args)
}

func (s *CLISubmitter) txFlags(from string) []string {
	flags := []string{
		"--from=" + from,
		"--gas=auto",
		"--gas-prices=" + s.opts.GasPrices,
		"--gas-adjustment=" + s.opts.GasAdjustment,
		"--yes",
		"--network=" + s.opts.Network,
		"--keyring-backend=" + s.opts.KeyringBackend,
		"--unordered",
		"--timeout-duration=" + s.opts.TimeoutDuration,
	}
	if s.opts.Home != "" {
		flags = append(flags, "--home="+s.opts.Home)
	}
	return flags
}

func (s *CLISubmitter) run(ctx context.Context, op string, args []string) (*Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, executor.DefaultTimeout)
	defer cancel()

	res, err := s.exec.Execute(ctx, s.binary, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run %s for %s: %w", s.binary, op, err)
	}
	receipt := &Receipt{Stdout: string(res.Stdout), Stderr: string(res.Stderr)}
	if !res.Success() {
		return receipt, &CommandError{
			Operation: op,
			Command:   s.binary,
			Args:      args,
			ExitCode:  res.ExitCode,
			Stdout:    strings.TrimSpace(receipt.Stdout),
			Stderr:    strings.TrimSpace(receipt.Stderr),
		}
	}
	return receipt, nil
}

var _ Submitter = (*CLISubmitter)(nil)
