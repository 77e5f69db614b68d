package supplier

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Placeholders substituted by RenderStakeTemplate.
const (
	PlaceholderOwner    = "<owner_address>"
	PlaceholderOperator = "<operator_address>"
	PlaceholderStake    = "<stake_amount>"
)

// InitialSplitPercent is each side of the owner/revshare split written into
// first-stake configs.
const InitialSplitPercent = 50

// StakeTemplateValues fill a stake template.
type StakeTemplateValues struct {
	OwnerAddress    string
	OperatorAddress string
	RevShareAddress string
	StakeAmount     string
}

// RenderStakeTemplate substitutes the placeholders in tmpl and sets
// default_rev_share_percent to an even owner/revshare split. Other keys keep
// their template order.
func RenderStakeTemplate(tmpl []byte, v StakeTemplateValues) ([]byte, error) {
	if v.OwnerAddress == "" || v.OperatorAddress == "" {
		return nil, fmt.Errorf("owner and operator addresses are required")
	}
	if v.RevShareAddress == "" {
		return nil, fmt.Errorf("revshare address is required")
	}
	text := strings.NewReplacer(
		PlaceholderOwner, v.OwnerAddress,
		PlaceholderOperator, v.OperatorAddress,
		PlaceholderStake, v.StakeAmount,
	).Replace(string(tmpl))

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	root, err := rootMapping(&doc)
	if err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}

	split := NewRevShare(
		Share{Address: v.OwnerAddress, Percent: InitialSplitPercent},
		Share{Address: v.RevShareAddress, Percent: InitialSplitPercent},
	)
	value, err := split.MarshalYAML()
	if err != nil {
		return nil, err
	}
	setMappingValue(root, "default_rev_share_percent", value.(*yaml.Node))
	return Marshal(&doc)
}

func setMappingValue(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

// SigningAddresses returns the two default_rev_share_percent addresses of a
// config in document order. Configs with any other number of addresses are
// rejected.
func SigningAddresses(cfg *Config) (owner, revshare string, err error) {
	addrs := cfg.DefaultRevSharePercent.Addresses()
	if len(addrs) != 2 {
		return "", "", fmt.Errorf("expected exactly 2 addresses in default_rev_share_percent, found %d", len(addrs))
	}
	return addrs[0], addrs[1], nil
}
