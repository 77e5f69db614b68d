// Package migration extracts Shannon accounts from a migration export.
package migration

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// DefaultOutput is the CSV written by extract-migration.
const DefaultOutput = "extracted_accounts.csv"

// Columns is the header of the extracted CSV.
var Columns = []string{"shannon_address", "shannon_private_key", "morse_node_address"}

// Account is one migrated account.
type Account struct {
	ShannonAddress    string
	ShannonPrivateKey string
	MorseNodeAddress  string
}

type exportFile struct {
	Mappings []mapping `json:"mappings"`
}

type mapping struct {
	Shannon *struct {
		Address    string `json:"address"`
		PrivateKey string `json:"private_key"`
	} `json:"shannon"`
	MigrationMsg *struct {
		MorseNodeAddress string `json:"morse_node_address"`
	} `json:"migration_msg"`
}

// Result holds the extracted accounts and how many mappings were incomplete.
type Result struct {
	Accounts   []Account
	Incomplete int
}

// Load reads the export at path.
func Load(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	res, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return res, nil
}

// Read decodes an export. Mappings missing the shannon account or the
// migration message are counted as incomplete and left out.
func Read(r io.Reader) (*Result, error) {
	var export exportFile
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	res := &Result{}
	for _, m := range export.Mappings {
		if m.Shannon == nil || m.MigrationMsg == nil || m.Shannon.Address == "" {
			res.Incomplete++
			continue
		}
		res.Accounts = append(res.Accounts, Account{
			ShannonAddress:    m.Shannon.Address,
			ShannonPrivateKey: m.Shannon.PrivateKey,
			MorseNodeAddress:  m.MigrationMsg.MorseNodeAddress,
		})
	}
	return res, nil
}

// WriteCSV writes accounts with the Columns header.
func WriteCSV(w io.Writer, accounts []Account) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, a := range accounts {
		if err := cw.Write([]string{a.ShannonAddress, a.ShannonPrivateKey, a.MorseNodeAddress}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes accounts to path with owner-only permissions since the file
// holds private keys.
func SaveCSV(path string, accounts []Account) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(f, accounts); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
