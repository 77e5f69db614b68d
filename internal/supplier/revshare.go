package supplier

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// TotalPercent is the sum every revenue-share mapping must reach.
const TotalPercent = 100

// Share is one address's percentage.
type Share struct {
	Address string
	Percent uint64
}

// RevShare is an insertion-ordered address to percent mapping. Adding an
// address twice sums the percentages.
type RevShare struct {
	shares []Share
}

// NewRevShare builds a mapping from shares in order.
func NewRevShare(shares ...Share) RevShare {
	var r RevShare
	for _, s := range shares {
		r.Add(s.Address, s.Percent)
	}
	return r
}

// Add appends address or, if already present, increases its share.
// Zero shares are not recorded.
func (r *RevShare) Add(address string, percent uint64) {
	if percent == 0 {
		return
	}
	for i := range r.shares {
		if r.shares[i].Address == address {
			r.shares[i].Percent += percent
			return
		}
	}
	r.shares = append(r.shares, Share{Address: address, Percent: percent})
}

// Shares returns the entries in order.
func (r RevShare) Shares() []Share {
	out := make([]Share, len(r.shares))
	copy(out, r.shares)
	return out
}

// Addresses returns the addresses in order.
func (r RevShare) Addresses() []string {
	out := make([]string, len(r.shares))
	for i, s := range r.shares {
		out[i] = s.Address
	}
	return out
}

// Len returns the number of addresses.
func (r RevShare) Len() int {
	return len(r.shares)
}

// Total returns the sum of all percentages.
func (r RevShare) Total() uint64 {
	var sum uint64
	for _, s := range r.shares {
		sum += s.Percent
	}
	return sum
}

// IsZero reports whether the mapping is empty. yaml omitempty relies on it.
func (r RevShare) IsZero() bool {
	return len(r.shares) == 0
}

// Validate checks that the mapping sums to TotalPercent.
func (r RevShare) Validate() error {
	if t := r.Total(); t != TotalPercent {
		return fmt.Errorf("revenue share sums to %d, want %d", t, TotalPercent)
	}
	return nil
}

// MarshalYAML renders the mapping with keys in insertion order.
func (r RevShare) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, s := range r.shares {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s.Address},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(s.Percent, 10)},
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping keeping document order.
func (r *RevShare) UnmarshalYAML(node *yaml.Node) error {
	r.shares = nil
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: revenue share must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, v := node.Content[i], node.Content[i+1]
		pct, err := strconv.ParseUint(v.Value, 10, 64)
		if err != nil {
			return fmt.Errorf("line %d: invalid percentage %q for %s", v.Line, v.Value, k.Value)
		}
		// Keep zero entries so Len reflects the document.
		r.shares = append(r.shares, Share{Address: k.Value, Percent: pct})
	}
	return nil
}

// DefaultRevShare returns the default split for a supplier.
//
// With a revshare address the split is owner 99-r, revshare r, operator 1,
// except that r == 100 gives everything to the revshare address. Without one
// it is owner 99, operator 1. Addresses that coincide are merged.
func DefaultRevShare(owner, operator, revshare string, percent int) (RevShare, error) {
	if percent < 0 || percent > TotalPercent {
		return RevShare{}, fmt.Errorf("revshare percentage %d out of range [0,%d]", percent, TotalPercent)
	}
	var r RevShare
	if revshare == "" {
		r.Add(owner, TotalPercent-1)
		r.Add(operator, 1)
		return r, nil
	}
	p := uint64(percent)
	if p == TotalPercent {
		r.Add(revshare, TotalPercent)
		return r, nil
	}
	r.Add(owner, TotalPercent-1-p)
	r.Add(revshare, p)
	r.Add(operator, 1)
	return r, nil
}
