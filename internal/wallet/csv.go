package wallet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/altuslabsxyz/supplier-ops/internal/keys"
	"github.com/altuslabsxyz/supplier-ops/internal/output"
)

// LoadOption customises LoadTable and ReadTable.
type LoadOption func(*loadOptions)

type loadOptions struct {
	required        []string
	validateAddress func(string) error
}

// Require makes the given columns mandatory. A missing header column is an
// error; a row with a blank required value is skipped with a warning.
func Require(columns ...string) LoadOption {
	return func(o *loadOptions) {
		o.required = append(o.required, columns...)
	}
}

// WithAddressValidator replaces the bech32 address check applied to every
// non-empty address cell.
func WithAddressValidator(fn func(string) error) LoadOption {
	return func(o *loadOptions) {
		o.validateAddress = fn
	}
}

// LoadTable reads the wallet table at path.
func LoadTable(path string, logger output.LoggerInterface, opts ...LoadOption) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet file: %w", err)
	}
	defer f.Close()

	t, err := ReadTable(f, logger, opts...)
	if err != nil {
		var missing *MissingColumnError
		if errors.As(err, &missing) {
			missing.Path = path
			return nil, missing
		}
		return nil, fmt.Errorf("failed to read wallet file %s: %w", path, err)
	}
	return t, nil
}

// ReadTable parses a wallet CSV. When the customer_id column is absent or a
// cell is blank (and customer_id is not required), the id is synthesised from
// the row position as customer_<n>.
func ReadTable(r io.Reader, logger output.LoggerInterface, opts ...LoadOption) (*Table, error) {
	o := loadOptions{validateAddress: keys.ValidateAddress}
	for _, opt := range opts {
		opt(&o)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("wallet file is empty")
		}
		return nil, err
	}

	cols := headerIndex(header)
	for _, c := range o.required {
		if _, ok := cols[c]; !ok {
			return nil, &MissingColumnError{Column: c}
		}
	}

	t := &Table{index: make(map[string]int)}
	for row := 0; ; row++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row+1, err)
		}
		if isBlank(rec) {
			continue
		}

		get := func(col string) string {
			i, ok := cols[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		w := Record{
			CustomerID:         get(ColCustomerID),
			OperatorAddress:    get(ColOperatorAddress),
			OwnerAddress:       get(ColOwnerAddress),
			RevShareAddress:    get(ColRevShareAddress),
			PubliclyExposedURL: get(ColPubliclyExposedURL),
			RPCType:            get(ColRPCType),
			Mnemonic:           get(ColMnemonic),
			StakeAmount:        get(ColStakeAmount),
		}
		if w.CustomerID == "" && !contains(o.required, ColCustomerID) {
			w.CustomerID = fmt.Sprintf("customer_%d", row)
		}

		if col := firstBlank(w, o.required); col != "" {
			logger.Warn("wallet row %d: %s is empty, skipping", row+1, col)
			t.reject(w, col+" is empty")
			continue
		}
		if err := validateAddresses(w, o.validateAddress); err != nil {
			logger.Warn("wallet row %d (%s): %v, skipping", row+1, w.CustomerID, err)
			t.reject(w, err.Error())
			continue
		}
		if err := t.add(w); err != nil {
			logger.Warn("wallet row %d: %v, skipping", row+1, err)
			t.reject(w, err.Error())
			continue
		}
	}
	return t, nil
}

// WriteCSV writes records with the Columns header.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range records {
		row := make([]string, len(Columns))
		for i, c := range Columns {
			row[i] = r.value(c)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes records to path, replacing any existing file.
func SaveCSV(path string, records []Record) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		h = strings.ToLower(strings.TrimSpace(h))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	return cols
}

func validateAddresses(r Record, validate func(string) error) error {
	if validate == nil {
		return nil
	}
	for _, f := range []struct{ name, addr string }{
		{ColOwnerAddress, r.OwnerAddress},
		{ColOperatorAddress, r.OperatorAddress},
		{ColRevShareAddress, r.RevShareAddress},
	} {
		if f.addr == "" {
			continue
		}
		if err := validate(f.addr); err != nil {
			return fmt.Errorf("invalid %s: %w", f.name, err)
		}
	}
	return nil
}

func firstBlank(r Record, required []string) string {
	for _, c := range required {
		if r.value(c) == "" {
			return c
		}
	}
	return ""
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
