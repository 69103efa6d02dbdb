// Package tabular serializes inventory records to and from CSV and XLSX
// byte streams. Required columns are matched case-insensitively on decode;
// on encode the canonical columns come first, followed by any additional
// columns discovered in the first record (a best-effort, order-preserving
// passthrough that is non-normative for schema validation).
package tabular

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/assetdesk/assetdesk/internal/inventory"
)

// RequiredColumns is the canonical column set an upload header must cover.
var RequiredColumns = []string{"id", "owner", "department", "model", "ip", "os", "status"}

var (
	// ErrEmptyInput is returned when an upload has no header or no data rows.
	ErrEmptyInput = errors.New("empty file")
	// ErrUnsupportedFormat is returned when an upload is neither CSV nor XLSX.
	ErrUnsupportedFormat = errors.New("unsupported format: upload CSV or XLSX")
)

// SchemaMismatchError reports required columns missing from an upload header.
type SchemaMismatchError struct {
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("missing columns, need: %s", strings.Join(RequiredColumns, ", "))
}

// Columns returns the export column order for a record set: the required
// columns, then updated_at, then extra columns of the first record,
// deduplicated and order-preserving.
func Columns(records []inventory.Record) []string {
	cols := make([]string, 0, len(RequiredColumns)+1)
	seen := make(map[string]bool)
	add := func(c string) {
		if c != "" && !seen[c] {
			seen[c] = true
			cols = append(cols, c)
		}
	}
	for _, c := range RequiredColumns {
		add(c)
	}
	if len(records) > 0 {
		add("updated_at")
		for _, f := range records[0].Extra {
			add(f.Key)
		}
	}
	return cols
}

// checkHeader lowercases and trims a header row and verifies the required
// column set is a subset of it.
func checkHeader(header []string) ([]string, error) {
	lower := make([]string, len(header))
	present := make(map[string]bool, len(header))
	for i, h := range header {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
		present[lower[i]] = true
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaMismatchError{Missing: missing}
	}
	return lower, nil
}

// rowToMap zips one data row against the lowercased header. Cells are
// trimmed; missing trailing cells become ""; cells beyond the header are
// dropped. Returns nil for entirely blank rows.
func rowToMap(header, cells []string) map[string]string {
	blank := true
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			blank = false
			break
		}
	}
	if blank {
		return nil
	}
	row := make(map[string]string, len(header))
	for i, key := range header {
		if key == "" {
			continue
		}
		if i < len(cells) {
			row[key] = strings.TrimSpace(cells[i])
		} else {
			row[key] = ""
		}
	}
	return row
}

// Decode sniffs the upload format from the file name and decodes it into
// row maps. Anything that is not named *.xlsx takes the CSV path, so
// unknown text uploads are treated as CSV.
func Decode(filename string, data []byte) ([]map[string]string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return DecodeXLSX(data)
	}
	return DecodeCSV(data)
}
