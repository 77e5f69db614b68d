package executor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fakebin")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestExecute_CapturesStreams(t *testing.T) {
	bin := writeScript(t, "echo out; echo err 1>&2\n")

	res, err := NewOSCommandExecutor().Execute(context.Background(), bin)
	require.NoError(t, err)
	require.True(t, res.Success())
	require.Equal(t, "out\n", string(res.Stdout))
	require.Equal(t, "err\n", string(res.Stderr))
}

func TestExecute_NonZeroExitIsNotAnError(t *testing.T) {
	bin := writeScript(t, "echo boom 1>&2; exit 3\n")

	res, err := NewOSCommandExecutor().Execute(context.Background(), bin)
	require.NoError(t, err)
	require.False(t, res.Success())
	require.Equal(t, 3, res.ExitCode)
	require.Equal(t, "boom\n", string(res.Stderr))
}

func TestExecute_MissingBinary(t *testing.T) {
	_, err := NewOSCommandExecutor().Execute(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestExecuteWithInput_FeedsStdin(t *testing.T) {
	bin := writeScript(t, "read line; echo \"got $line\"\n")

	res, err := NewOSCommandExecutor().ExecuteWithInput(context.Background(), strings.NewReader("hello\n"), bin)
	require.NoError(t, err)
	require.Equal(t, "got hello\n", string(res.Stdout))
}
