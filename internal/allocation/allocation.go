// Package allocation parses the node allocation spreadsheet: one row per
// chain, one numbered column per customer slot.
package allocation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/altuslabsxyz/supplier-ops/internal/output"
)

// NodeTypeHTC rows keep the default revenue split.
const NodeTypeHTC = "HTC"

// leadingColumns are chain descriptor, node type and a total count column.
const leadingColumns = 3

var chainCodePattern = regexp.MustCompile(`\(([A-F0-9]{4})\)`)

// ChainCode extracts the four character legacy code from a descriptor such
// as "Avalanche (F003)".
func ChainCode(descriptor string) (string, bool) {
	m := chainCodePattern.FindStringSubmatch(descriptor)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Row is one chain of the spreadsheet.
type Row struct {
	Chain    string
	NodeType string
	Counts   map[string]float64
}

// Count returns the allocation for a customer column; absent cells are zero.
func (r Row) Count(column string) float64 {
	return r.Counts[column]
}

// IsHTC reports whether the row is a high-throughput node type.
func (r Row) IsHTC() bool {
	return strings.EqualFold(strings.TrimSpace(r.NodeType), NodeTypeHTC)
}

// Sheet is the parsed spreadsheet. Columns holds the numbered customer slot
// headers in left-to-right order.
type Sheet struct {
	Columns []string
	Rows    []Row
}

// Load reads the allocation CSV at path.
func Load(path string, logger output.LoggerInterface) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open allocation file: %w", err)
	}
	defer f.Close()

	sheet, err := Read(f, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to read allocation file %s: %w", path, err)
	}
	return sheet, nil
}

// Read parses an allocation CSV. The final column and final row are summary
// artifacts and are always discarded. Blank cells count as zero; cells that
// are not numbers are treated as zero with a warning.
func Read(r io.Reader, logger output.LoggerInterface) (*Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("allocation file is empty")
	}

	header := records[0]
	if len(header) > 0 {
		header = header[:len(header)-1]
	}
	if len(header) < leadingColumns {
		return nil, fmt.Errorf("expected at least %d leading columns, found %d", leadingColumns, len(header))
	}

	var body [][]string
	for _, rec := range records[1:] {
		if !isBlank(rec) {
			body = append(body, rec)
		}
	}
	if len(body) > 0 {
		body = body[:len(body)-1]
	}

	sheet := &Sheet{}
	slots := make(map[string]int)
	for i, h := range header[leadingColumns:] {
		h = strings.TrimSpace(h)
		if !isNumeric(h) {
			continue
		}
		if _, dup := slots[h]; dup {
			logger.Warn("allocation column %q appears more than once, using the first", h)
			continue
		}
		slots[h] = leadingColumns + i
		sheet.Columns = append(sheet.Columns, h)
	}

	for n, rec := range body {
		row := Row{
			Chain:    cell(rec, 0),
			NodeType: cell(rec, 1),
			Counts:   make(map[string]float64, len(sheet.Columns)),
		}
		for _, col := range sheet.Columns {
			raw := strings.ReplaceAll(cell(rec, slots[col]), ",", "")
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				logger.Warn("allocation row %d (%s) column %s: %q is not a number, treating as 0", n+1, row.Chain, col, raw)
				continue
			}
			row.Counts[col] = v
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

func cell(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
