package network

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGet_KnownAndAliases(t *testing.T) {
	n, err := Get("main")
	require.NoError(t, err)
	require.Equal(t, "main", n.CLIFlag)

	n, err = Get(" Testnet ")
	require.NoError(t, err)
	require.Equal(t, "beta", n.Name)
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("gamma")
	require.Error(t, err)

	var unknown *UnknownNetworkError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, []string{"alpha", "beta", "local", "main"}, unknown.AvailableNetworks)
	require.Contains(t, unknown.RecoveryHint(), "NETWORK")
}
