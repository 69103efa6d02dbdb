package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"unicode/utf8"

	"github.com/assetdesk/assetdesk/internal/inventory"
	"golang.org/x/text/encoding/charmap"
)

// utf8BOM prefixes exported CSV so spreadsheet applications detect UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// EncodeCSV serializes records to UTF-8 CSV bytes with a byte-order mark.
func EncodeCSV(records []inventory.Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	w := csv.NewWriter(&buf)

	cols := Columns(records)
	if err := w.Write(cols); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	row := make([]string, len(cols))
	for _, r := range records {
		for i, c := range cols {
			row[i] = r.Field(c)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeCSV parses CSV bytes into row maps keyed by the lowercased header.
// A leading BOM is stripped and non-UTF-8 input falls back to Latin-1.
// Entirely blank rows are skipped; decoding never infers types beyond
// strings.
func DecodeCSV(data []byte) ([]map[string]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode csv bytes: %w", err)
		}
		data = decoded
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // rows may have missing trailing cells
	raw, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyInput
	}

	header, err := checkHeader(raw[0])
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		if row := rowToMap(header, cells); row != nil {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, ErrEmptyInput
	}
	return rows, nil
}
