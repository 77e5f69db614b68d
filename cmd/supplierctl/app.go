package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/altuslabsxyz/supplier-ops/internal/chain"
	"github.com/altuslabsxyz/supplier-ops/internal/infrastructure/executor"
	"github.com/altuslabsxyz/supplier-ops/internal/output"
	"github.com/altuslabsxyz/supplier-ops/internal/pacer"
)

// Wiring hooks. Tests replace these to avoid real subprocesses and HTTP.
var (
	newExecutor = func() executor.CommandExecutor { return executor.NewOSCommandExecutor() }
	newQuerier  = func(endpoint string) chain.SupplierQuerier { return chain.NewRESTQuerier(endpoint, nil) }
)

func newPacer() *pacer.Pacer {
	return pacer.New(settings.Delay, nil)
}

func newSubmitter() chain.Submitter {
	logger.Debug("Using %s on network %s", settings.Binary, settings.Network.Name)
	return chain.NewCLISubmitter(newExecutor(), settings.Binary, settings.Tx)
}

// promptIfEmpty asks for a missing value on a terminal. Without a terminal
// the flag is reported as required.
func promptIfEmpty(cmd *cobra.Command, value *string, flag, label string) error {
	if *value != "" {
		return nil
	}
	v, err := output.StringPrompt(label)
	if errors.Is(err, output.ErrNotInteractive) {
		return handleCommandError(cmd, errors.New("--"+flag+" is required"))
	}
	if err != nil {
		return handleCommandError(cmd, err)
	}
	*value = v
	return nil
}
