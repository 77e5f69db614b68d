package supplier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/altuslabsxyz/supplier-ops/internal/output"
	"github.com/altuslabsxyz/supplier-ops/internal/wallet"
)

var (
	// ErrNoPairings means no allocation column could be joined to a wallet.
	ErrNoPairings = errors.New("no allocation column could be paired with a wallet")

	// ErrNoWallets means the wallet table has no usable records.
	ErrNoWallets = errors.New("wallet table has no records")
)

// PairStrategy decides how allocation columns are joined to wallet records.
type PairStrategy int

const (
	// PairPositional joins column i with the i-th wallet record.
	PairPositional PairStrategy = iota

	// PairByHeader joins a column with the wallet whose customer id equals
	// the column header or ends with "_<header>".
	PairByHeader
)

func (s PairStrategy) String() string {
	switch s {
	case PairPositional:
		return "position"
	case PairByHeader:
		return "header"
	}
	return fmt.Sprintf("PairStrategy(%d)", int(s))
}

// ParsePairStrategy parses a --pair-by value.
func ParsePairStrategy(s string) (PairStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "position", "positional", "index":
		return PairPositional, nil
	case "header", "customer", "customer_id":
		return PairByHeader, nil
	}
	return 0, fmt.Errorf("unknown pairing strategy %q (want position or header)", s)
}

// Pairing is one allocation column joined to one wallet.
type Pairing struct {
	Column string
	Record wallet.Record
}

// Pair joins allocation columns with wallet records. Positional pairing counts
// rejected wallet rows, so a bad row costs only its own column. Columns without
// a usable wallet are skipped with a warning. Zero pairings is an error.
func Pair(columns []string, table *wallet.Table, strategy PairStrategy, logger output.LoggerInterface) ([]Pairing, error) {
	if table == nil || table.Len() == 0 {
		return nil, ErrNoWallets
	}

	var pairs []Pairing
	switch strategy {
	case PairPositional:
		rows := table.Rows()
		if len(columns) > len(rows) {
			logger.Warn("found %d allocation columns but only %d wallet entries, extra columns will be skipped",
				len(columns), len(rows))
		}
		for i, col := range columns {
			if i >= len(rows) {
				logger.Warn("no wallet data found for column %s, skipping", col)
				continue
			}
			if rows[i].Rejected != "" {
				logger.Warn("column %s: wallet %s was rejected (%s), skipping",
					col, rows[i].Record.CustomerID, rows[i].Rejected)
				continue
			}
			pairs = append(pairs, Pairing{Column: col, Record: rows[i].Record})
		}
	case PairByHeader:
		records := table.Records()
		for _, col := range columns {
			rec, err := matchHeader(col, table, records)
			if err != nil {
				logger.Warn("column %s: %v, skipping", col, err)
				continue
			}
			pairs = append(pairs, Pairing{Column: col, Record: rec})
		}
	default:
		return nil, fmt.Errorf("unknown pairing strategy %v", strategy)
	}

	if len(pairs) == 0 {
		return nil, ErrNoPairings
	}
	return pairs, nil
}

func matchHeader(col string, table *wallet.Table, records []wallet.Record) (wallet.Record, error) {
	if rec, ok := table.Get(col); ok {
		return rec, nil
	}
	var found []wallet.Record
	for _, r := range records {
		if strings.HasSuffix(r.CustomerID, "_"+col) {
			found = append(found, r)
		}
	}
	switch len(found) {
	case 0:
		return wallet.Record{}, errors.New("no wallet with a matching customer id")
	case 1:
		return found[0], nil
	}
	ids := make([]string, len(found))
	for i, r := range found {
		ids[i] = r.CustomerID
	}
	return wallet.Record{}, fmt.Errorf("ambiguous match: %s", strings.Join(ids, ", "))
}
