// Package servicemap translates legacy chain codes into service ids.
package servicemap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/altuslabsxyz/supplier-ops/internal/output"
)

// Header names of the mapping CSV.
const (
	ColLegacyCode = "Morse_Chain_Id"
	ColServiceID  = "Shannon_Service_id"
)

// DefaultFile is the mapping file name looked up in the working directory.
const DefaultFile = "morse_to_shannon_service_mapping.csv"

// Mapping is legacy chain code to service id.
type Mapping map[string]string

// Lookup returns the service id for a chain code.
func (m Mapping) Lookup(code string) (string, bool) {
	id, ok := m[code]
	return id, ok
}

// Load reads the mapping at path. Any failure degrades to an empty mapping
// and is reported as a warning.
func Load(path string, logger output.LoggerInterface) Mapping {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("could not load service mapping %s: %v", path, err)
		return Mapping{}
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		logger.Warn("could not load service mapping %s: %v", path, err)
		return Mapping{}
	}
	if len(m) == 0 {
		logger.Warn("service mapping %s has no entries", path)
	}
	return m
}

// Read parses a mapping CSV. Header matching is case-insensitive.
func Read(r io.Reader) (Mapping, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("mapping file is empty")
		}
		return nil, err
	}

	codeIdx, idIdx := -1, -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch {
		case strings.EqualFold(h, ColLegacyCode):
			codeIdx = i
		case strings.EqualFold(h, ColServiceID):
			idIdx = i
		}
	}
	if codeIdx < 0 || idIdx < 0 {
		return nil, fmt.Errorf("header must contain %s and %s", ColLegacyCode, ColServiceID)
	}

	m := Mapping{}
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if codeIdx >= len(rec) || idIdx >= len(rec) {
			continue
		}
		code, id := strings.TrimSpace(rec[codeIdx]), strings.TrimSpace(rec[idIdx])
		if code == "" || id == "" {
			continue
		}
		m[code] = id
	}
	return m, nil
}
