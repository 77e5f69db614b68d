// Package wallet reads and writes the operator wallet table shared by every
// supplierctl command.
package wallet

import (
	"fmt"
	"strings"
)

// CSV column names of the wallet table.
const (
	ColCustomerID         = "customer_id"
	ColOperatorAddress    = "operator_address"
	ColMnemonic           = "mnemonic"
	ColOwnerAddress       = "owner_address"
	ColRevShareAddress    = "revshare_address"
	ColPubliclyExposedURL = "publicly_exposed_url"
	ColRPCType            = "rpc_type"
	ColStakeAmount        = "stake_amount"
)

// Columns is the column order written by WriteCSV.
var Columns = []string{
	ColCustomerID,
	ColOperatorAddress,
	ColMnemonic,
	ColOwnerAddress,
	ColRevShareAddress,
	ColPubliclyExposedURL,
	ColRPCType,
}

const (
	// DefaultPublicURL is used for endpoints when a wallet has no publicly exposed URL.
	DefaultPublicURL = "https://relayminer.example.com"

	// DefaultRPCType is used for endpoints when a wallet has no RPC type.
	DefaultRPCType = "JSON_RPC"
)

// Record is one operator identity.
type Record struct {
	CustomerID         string
	OperatorAddress    string
	OwnerAddress       string
	RevShareAddress    string
	PubliclyExposedURL string
	RPCType            string
	Mnemonic           string

	// StakeAmount is the optional per-wallet stake in POKT (display units).
	StakeAmount string
}

// PublicURL returns the endpoint URL, falling back to DefaultPublicURL.
func (r Record) PublicURL() string {
	if u := strings.TrimSpace(r.PubliclyExposedURL); u != "" {
		return u
	}
	return DefaultPublicURL
}

// EndpointRPCType returns the RPC type, falling back to DefaultRPCType.
func (r Record) EndpointRPCType() string {
	if t := strings.TrimSpace(r.RPCType); t != "" {
		return strings.ToUpper(t)
	}
	return DefaultRPCType
}

func (r Record) value(column string) string {
	switch column {
	case ColCustomerID:
		return r.CustomerID
	case ColOperatorAddress:
		return r.OperatorAddress
	case ColMnemonic:
		return r.Mnemonic
	case ColOwnerAddress:
		return r.OwnerAddress
	case ColRevShareAddress:
		return r.RevShareAddress
	case ColPubliclyExposedURL:
		return r.PubliclyExposedURL
	case ColRPCType:
		return r.RPCType
	case ColStakeAmount:
		return r.StakeAmount
	}
	return ""
}

// Row is one data row of the wallet file. Rejected rows keep their place so
// positional consumers stay aligned with the file.
type Row struct {
	Record Record

	// Rejected is why the row was left out of the table, or empty.
	Rejected string
}

// Table is the wallet table in file order, indexed by customer id.
type Table struct {
	records []Record
	rows    []Row
	index   map[string]int
}

// NewTable builds a Table from records. Duplicate customer ids are rejected.
func NewTable(records []Record) (*Table, error) {
	t := &Table{index: make(map[string]int, len(records))}
	for _, r := range records {
		if err := t.add(r); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) add(r Record) error {
	if _, exists := t.index[r.CustomerID]; exists {
		return &DuplicateCustomerError{CustomerID: r.CustomerID}
	}
	t.index[r.CustomerID] = len(t.records)
	t.records = append(t.records, r)
	t.rows = append(t.rows, Row{Record: r})
	return nil
}

func (t *Table) reject(r Record, reason string) {
	t.rows = append(t.rows, Row{Record: r, Rejected: reason})
}

// Rows returns every data row in file order, rejected ones included.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Len returns the number of accepted records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns the records in file order.
func (t *Table) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// At returns the i-th record in file order.
func (t *Table) At(i int) Record {
	return t.records[i]
}

// Get returns the record for a customer id.
func (t *Table) Get(customerID string) (Record, bool) {
	i, ok := t.index[customerID]
	if !ok {
		return Record{}, false
	}
	return t.records[i], true
}

// MissingColumnError is returned when a required column is absent from the header.
type MissingColumnError struct {
	Path   string
	Column string
}

func (e *MissingColumnError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("required column %q not found", e.Column)
	}
	return fmt.Sprintf("required column %q not found in %s", e.Column, e.Path)
}

// RecoveryHint lists the expected header.
func (e *MissingColumnError) RecoveryHint() string {
	return "the wallet CSV header should contain: " + strings.Join(Columns, ",")
}

// DuplicateCustomerError is returned when two records share a customer id.
type DuplicateCustomerError struct {
	CustomerID string
}

func (e *DuplicateCustomerError) Error() string {
	return fmt.Sprintf("duplicate customer id %q", e.CustomerID)
}
