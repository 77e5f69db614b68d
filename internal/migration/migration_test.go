package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const exportJSON = `{
  "mappings": [
    {
      "shannon": {"address": "pokt1aaa", "private_key": "deadbeef"},
      "migration_msg": {"morse_node_address": "ABCDEF0123", "morse_output_address": "ignored"}
    },
    {"shannon": {"address": "pokt1bbb", "private_key": "cafe"}},
    {"migration_msg": {"morse_node_address": "FF"}},
    {
      "shannon": {"address": "pokt1ccc", "private_key": "beef"},
      "migration_msg": {"morse_node_address": "0011"}
    }
  ]
}`

func TestRead(t *testing.T) {
	res, err := Read(strings.NewReader(exportJSON))
	require.NoError(t, err)
	require.Equal(t, 2, res.Incomplete)
	require.Equal(t, []Account{
		{ShannonAddress: "pokt1aaa", ShannonPrivateKey: "deadbeef", MorseNodeAddress: "ABCDEF0123"},
		{ShannonAddress: "pokt1ccc", ShannonPrivateKey: "beef", MorseNodeAddress: "0011"},
	}, res.Accounts)
}

func TestRead_InvalidJSON(t *testing.T) {
	_, err := Read(strings.NewReader("{not json"))
	require.Error(t, err)
}

func TestRead_NoMappings(t *testing.T) {
	res, err := Read(strings.NewReader(`{}`))
	require.NoError(t, err)
	require.Empty(t, res.Accounts)
}

func TestSaveCSV(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "export.json")
	require.NoError(t, os.WriteFile(in, []byte(exportJSON), 0600))

	res, err := Load(in)
	require.NoError(t, err)

	out := filepath.Join(dir, DefaultOutput)
	require.NoError(t, SaveCSV(out, res.Accounts))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t,
		"shannon_address,shannon_private_key,morse_node_address\n"+
			"pokt1aaa,deadbeef,ABCDEF0123\n"+
			"pokt1ccc,beef,0011\n",
		string(data))

	info, err := os.Stat(out)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
