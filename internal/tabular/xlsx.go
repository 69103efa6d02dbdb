package tabular

import (
	"bytes"
	"fmt"

	"github.com/assetdesk/assetdesk/internal/inventory"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet exported records land on.
const SheetName = "Inventory"

// EncodeXLSX serializes records to an XLSX workbook with a single sheet.
func EncodeXLSX(records []inventory.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	cols := Columns(records)
	if err := writeRow(f, 1, cols); err != nil {
		return nil, err
	}
	row := make([]string, len(cols))
	for i, r := range records {
		for j, c := range cols {
			row[j] = r.Field(c)
		}
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	// SetSheetRow wants a pointer to a slice of any.
	vals := make([]any, len(cells))
	for i, c := range cells {
		vals[i] = c
	}
	if err := f.SetSheetRow(SheetName, cell, &vals); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

// DecodeXLSX parses the active sheet of an XLSX workbook into row maps
// keyed by the lowercased first row. Cell values come back as strings only.
func DecodeXLSX(data []byte) ([]map[string]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
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
