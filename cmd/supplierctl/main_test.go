package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/altuslabsxyz/supplier-ops/internal/infrastructure/executor"
	"github.com/altuslabsxyz/supplier-ops/internal/keys"
	"github.com/altuslabsxyz/supplier-ops/internal/output"
	"github.com/altuslabsxyz/supplier-ops/internal/supplier"
)

type recordingExecutor struct {
	calls [][]string
}

func (e *recordingExecutor) Execute(ctx context.Context, name string, args ...string) (*executor.Result, error) {
	return e.ExecuteWithInput(ctx, nil, name, args...)
}

func (e *recordingExecutor) ExecuteWithInput(_ context.Context, _ io.Reader, name string, args ...string) (*executor.Result, error) {
	e.calls = append(e.calls, append([]string{name}, args...))
	return &executor.Result{Stdout: []byte("txhash: ABC")}, nil
}

// run executes the root command with a buffered logger and no host config.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"NETWORK", "SUPPLIERCTL_HOME", "POCKETD_BINARY", "SUPPLIERCTL_REST_ENDPOINT"} {
		t.Setenv(k, "")
	}

	var buf bytes.Buffer
	old := logger
	logger = output.NewLoggerWithWriters(&buf, &buf)
	t.Cleanup(func() { logger = old })

	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--home", t.TempDir(), "--no-color"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func address(t *testing.T, seed byte) string {
	t.Helper()
	a, err := keys.EncodeAddress(bytes.Repeat([]byte{seed}, 20))
	require.NoError(t, err)
	return a
}

func TestConfigsGenerate(t *testing.T) {
	dir := t.TempDir()
	owner, op, rs := address(t, 1), address(t, 2), address(t, 3)

	wallets := filepath.Join(dir, "wallets.csv")
	require.NoError(t, os.WriteFile(wallets, []byte(
		"customer_id,operator_address,owner_address,revshare_address\nacme_0,"+op+","+owner+","+rs+"\n"), 0600))
	alloc := filepath.Join(dir, "alloc.csv")
	require.NoError(t, os.WriteFile(alloc, []byte(
		"Chains,Node Type,StakeNodes,1,Total\nEthereum (0021),HTC,1,1,1\nPolygon (0009),LTailC,1,2,2\nTotals,,2,3,3\n"), 0600))
	mapping := filepath.Join(dir, "mapping.csv")
	require.NoError(t, os.WriteFile(mapping, []byte("Morse_Chain_Id,Shannon_Service_id\n0021,eth\n0009,poly\n"), 0600))
	out := filepath.Join(dir, "output")

	logs, err := run(t, "configs", "generate",
		"--wallets", wallets, "--allocation", alloc, "--mapping", mapping, "--out", out,
		"--revshare", "10", "--stake-amount", "100", "--no-prior-state")
	require.NoError(t, err, logs)

	cfg, err := supplier.LoadConfig(filepath.Join(out, "acme_0.yml"))
	require.NoError(t, err)
	require.Equal(t, "100000000upokt", cfg.StakeAmount)
	require.Equal(t, []string{"eth", "poly"}, cfg.ServiceIDs())
	require.Equal(t, uint64(100), cfg.DefaultRevSharePercent.Total())
}

func TestFund_BuildsPocketdArgs(t *testing.T) {
	exec := &recordingExecutor{}
	old := newExecutor
	newExecutor = func() executor.CommandExecutor { return exec }
	t.Cleanup(func() { newExecutor = old })

	dir := t.TempDir()
	owner, op := address(t, 1), address(t, 2)
	wallets := filepath.Join(dir, "wallets.csv")
	require.NoError(t, os.WriteFile(wallets, []byte(
		"customer_id,operator_address,owner_address\nc1,"+op+","+owner+"\n"), 0600))

	logs, err := run(t, "--network", "main", "--delay", "0s", "--pocketd", "/opt/pocketd",
		"fund", "--wallets", wallets, "--amount", "1000000")
	require.NoError(t, err, logs)
	require.Len(t, exec.calls, 1)

	got := strings.Join(exec.calls[0], " ")
	require.True(t, strings.HasPrefix(got, "/opt/pocketd tx bank send "+owner+" "+op+" 1000000upokt"), got)
	require.Contains(t, got, "--network=main")
	require.Contains(t, got, "--from="+owner)
}

func TestFund_RejectsBadAmount(t *testing.T) {
	logs, err := run(t, "fund", "--wallets", "w.csv", "--amount", "-5")
	require.Error(t, err)
	require.Contains(t, logs, "Error:")
}

func TestStakeConfigs_RequiresValidSigner(t *testing.T) {
	logs, err := run(t, "stake", "configs", "--dir", t.TempDir(), "--as", "validator")
	require.Error(t, err)
	require.Contains(t, logs, "invalid --as value")
}

func TestUnknownNetworkShowsHint(t *testing.T) {
	logs, err := run(t, "--network", "moon", "config", "show")
	require.Error(t, err)
	require.Contains(t, logs, "unknown network")
	require.Contains(t, logs, "Hint:")
}

func TestConfigShowAndInit(t *testing.T) {
	logs, err := run(t, "--network", "alpha", "config", "show")
	require.NoError(t, err)
	require.Contains(t, logs, "alpha")
	require.Contains(t, logs, "flag")

	home := t.TempDir()
	_, err = run(t, "--home", home, "--network", "local", "config", "init")
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(home, "config.toml"))
	require.NoError(t, err)
	require.Contains(t, string(data), `network = "local"`)
}

func TestExtractMigration(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "export.json")
	require.NoError(t, os.WriteFile(in, []byte(`{"mappings":[
		{"shannon":{"address":"pokt1abc","private_key":"deadbeef"},"migration_msg":{"morse_node_address":"A1B2"}},
		{"shannon":{"address":"pokt1def","private_key":"cafe"}}
	]}`), 0600))
	out := filepath.Join(dir, "out.csv")

	logs, err := run(t, "accounts", "extract-migration", "--in", in, "--out", out)
	require.NoError(t, err)
	require.Contains(t, logs, "1 mapping(s)")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "shannon_address,shannon_private_key,morse_node_address\npokt1abc,deadbeef,A1B2\n", string(data))
}
