package supplier

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleTemplate = `owner_address: <owner_address>
operator_address: <operator_address>
stake_amount: <stake_amount>
default_rev_share_percent:
  <owner_address>: 100
services:
  - service_id: anvil
    endpoints:
      - publicly_exposed_url: https://relayminer.example.com
        rpc_type: JSON_RPC
`

func TestRenderStakeTemplate(t *testing.T) {
	out, err := RenderStakeTemplate([]byte(sampleTemplate), StakeTemplateValues{
		OwnerAddress:    "pokt1owner",
		OperatorAddress: "pokt1op",
		RevShareAddress: "pokt1rs",
		StakeAmount:     "1000000upokt",
	})
	require.NoError(t, err)

	var cfg Config
	require.NoError(t, yaml.Unmarshal(out, &cfg))
	require.Equal(t, "pokt1owner", cfg.OwnerAddress)
	require.Equal(t, "pokt1op", cfg.OperatorAddress)
	require.Equal(t, "1000000upokt", cfg.StakeAmount)
	require.Equal(t, []Share{{"pokt1owner", 50}, {"pokt1rs", 50}}, cfg.DefaultRevSharePercent.Shares())
	require.Equal(t, []string{"anvil"}, cfg.ServiceIDs())

	owner, revshare, err := SigningAddresses(&cfg)
	require.NoError(t, err)
	require.Equal(t, "pokt1owner", owner)
	require.Equal(t, "pokt1rs", revshare)
}

func TestRenderStakeTemplate_AddsMissingSplit(t *testing.T) {
	out, err := RenderStakeTemplate([]byte("owner_address: <owner_address>\n"), StakeTemplateValues{
		OwnerAddress: "o", OperatorAddress: "p", RevShareAddress: "r",
	})
	require.NoError(t, err)

	var cfg Config
	require.NoError(t, yaml.Unmarshal(out, &cfg))
	require.Equal(t, []string{"o", "r"}, cfg.DefaultRevSharePercent.Addresses())
}

func TestRenderStakeTemplate_Errors(t *testing.T) {
	_, err := RenderStakeTemplate([]byte(sampleTemplate), StakeTemplateValues{OwnerAddress: "o", OperatorAddress: "p"})
	require.Error(t, err)

	_, err = RenderStakeTemplate([]byte("- a\n- b\n"), StakeTemplateValues{OwnerAddress: "o", OperatorAddress: "p", RevShareAddress: "r"})
	require.Error(t, err)
}

func TestSigningAddresses_WrongCount(t *testing.T) {
	cfg := &Config{DefaultRevSharePercent: NewRevShare(Share{"a", 79}, Share{"b", 20}, Share{"c", 1})}
	_, _, err := SigningAddresses(cfg)
	require.Error(t, err)
}
