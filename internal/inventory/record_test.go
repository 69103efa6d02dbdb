package inventory

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestMarshalJSONFieldOrder(t *testing.T) {
	r := Record{
		ID:     "1",
		Owner:  "alice",
		Status: "active",
		Extra: []ExtraField{
			{Key: "warranty", Value: "2027-01-01"},
			{Key: "serial", Value: "SN-1"},
		},
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got := string(data)

	// Canonical fields first in fixed order, then extras in document order.
	wantOrder := []string{`"id"`, `"owner"`, `"department"`, `"model"`, `"ip"`, `"os"`, `"status"`, `"updated_at"`, `"warranty"`, `"serial"`}
	pos := -1
	for _, key := range wantOrder {
		i := strings.Index(got, key)
		if i < 0 {
			t.Fatalf("key %s missing from %s", key, got)
		}
		if i < pos {
			t.Errorf("key %s out of order in %s", key, got)
		}
		pos = i
	}
}

func TestUnmarshalJSONCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Record
	}{
		{
			"numeric id",
			`{"id": 42, "owner": "alice"}`,
			Record{ID: "42", Owner: "alice"},
		},
		{
			"null becomes empty",
			`{"id": "1", "owner": null}`,
			Record{ID: "1"},
		},
		{
			"bool extra",
			`{"id": "1", "leased": true}`,
			Record{ID: "1", Extra: []ExtraField{{Key: "leased", Value: "true"}}},
		},
		{
			"float id keeps textual form",
			`{"id": 3.0}`,
			Record{ID: "3.0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Record
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got.ID != tt.want.ID || got.Owner != tt.want.Owner {
				t.Errorf("Unmarshal() = %+v, want %+v", got, tt.want)
			}
			if len(got.Extra) != len(tt.want.Extra) {
				t.Fatalf("Extra = %v, want %v", got.Extra, tt.want.Extra)
			}
			for i := range got.Extra {
				if got.Extra[i] != tt.want.Extra[i] {
					t.Errorf("Extra[%d] = %v, want %v", i, got.Extra[i], tt.want.Extra[i])
				}
			}
		})
	}
}

func TestUnmarshalJSONUpdatedAt(t *testing.T) {
	var r Record
	in := `{"id": "1", "updated_at": "2026-08-25T12:00:00Z"}`
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	if !r.UpdatedAt.Equal(want) {
		t.Errorf("UpdatedAt = %v, want %v", r.UpdatedAt, want)
	}

	// An unparsable timestamp is dropped, not fatal.
	var r2 Record
	if err := json.Unmarshal([]byte(`{"id": "1", "updated_at": "yesterday"}`), &r2); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !r2.UpdatedAt.IsZero() {
		t.Errorf("UpdatedAt = %v, want zero", r2.UpdatedAt)
	}
}

func TestRecordRoundTripPreservesExtras(t *testing.T) {
	in := `{"id":"9","owner":"bob","department":"","model":"","ip":"","os":"","status":"active","updated_at":"","rack":"B4","slot":"12"}`
	var r Record
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != in {
		t.Errorf("round trip changed document:\n in: %s\nout: %s", in, out)
	}
}

func TestRecordCloneIsDeep(t *testing.T) {
	r := Record{ID: "1", Extra: []ExtraField{{Key: "k", Value: "v"}}}
	c := r.Clone()
	c.Extra[0].Value = "mutated"
	if r.GetExtra("k") != "v" {
		t.Errorf("Clone shares Extra backing array")
	}
}

func TestRecordField(t *testing.T) {
	r := Record{
		ID:        "1",
		OS:        "Linux",
		UpdatedAt: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		Extra:     []ExtraField{{Key: "rack", Value: "B4"}},
	}
	tests := []struct {
		field string
		want  string
	}{
		{"id", "1"},
		{"os", "Linux"},
		{"updated_at", "2026-08-25T12:00:00Z"},
		{"rack", "B4"},
		{"missing", ""},
	}
	for _, tt := range tests {
		if got := r.Field(tt.field); got != tt.want {
			t.Errorf("Field(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}
}
