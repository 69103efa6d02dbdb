package tabular

import (
	"errors"
	"testing"
	"time"

	"github.com/assetdesk/assetdesk/internal/inventory"
)

func TestXLSXRoundTrip(t *testing.T) {
	records := []inventory.Record{
		{
			ID:         "1",
			Owner:      "alice",
			Department: "ops",
			Model:      "XPS",
			IP:         "10.0.0.1",
			OS:         "Linux",
			Status:     "active",
			UpdatedAt:  time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
			Extra:      []inventory.ExtraField{{Key: "serial", Value: "SN-1"}},
		},
		{ID: "2", Owner: "bob", Status: "repair"},
	}

	data, err := EncodeXLSX(records)
	if err != nil {
		t.Fatalf("EncodeXLSX() error = %v", err)
	}

	rows, err := DecodeXLSX(data)
	if err != nil {
		t.Fatalf("DecodeXLSX() error = %v", err)
	}
	if len(rows) != len(records) {
		t.Fatalf("round trip row count = %d, want %d", len(rows), len(records))
	}
	for i, r := range records {
		for _, col := range RequiredColumns {
			if rows[i][col] != r.Field(col) {
				t.Errorf("row %d column %s = %q, want %q", i, col, rows[i][col], r.Field(col))
			}
		}
	}
	if rows[0]["serial"] != "SN-1" {
		t.Errorf("extra column lost: %v", rows[0])
	}
}

func TestDecodeXLSXRejectsGarbage(t *testing.T) {
	_, err := DecodeXLSX([]byte("this is not a zip archive"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("DecodeXLSX() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecodeXLSXSchemaMismatch(t *testing.T) {
	data, err := EncodeXLSX(nil)
	if err != nil {
		t.Fatalf("EncodeXLSX() error = %v", err)
	}
	// An empty export still carries the required header, so decoding it is
	// an empty-input error, not a schema mismatch.
	if _, err := DecodeXLSX(data); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("DecodeXLSX(empty export) error = %v, want ErrEmptyInput", err)
	}
}

func TestColumns(t *testing.T) {
	records := []inventory.Record{{
		ID:        "1",
		UpdatedAt: time.Now(),
		Extra: []inventory.ExtraField{
			{Key: "serial", Value: "SN-1"},
			{Key: "status", Value: "dupe of canonical"},
			{Key: "rack", Value: "B4"},
		},
	}}
	got := Columns(records)
	want := []string{"id", "owner", "department", "model", "ip", "os", "status", "updated_at", "serial", "rack"}
	if len(got) != len(want) {
		t.Fatalf("Columns() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Columns()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
