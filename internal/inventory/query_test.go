package inventory

import "testing"

func testRecords() []Record {
	return []Record{
		{ID: "1", Owner: "Alice", Department: "Finance", Status: "active"},
		{ID: "2", Owner: "Bob", Department: "Ops", Status: "repair"},
		{ID: "3", Owner: "Carol", Department: "finance", Status: "active",
			Extra: []ExtraField{{Key: "serial", Value: "SN-9988"}}},
	}
}

func TestFilter(t *testing.T) {
	records := testRecords()
	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"empty matches all", "", []string{"1", "2", "3"}},
		{"blank matches all", "   ", []string{"1", "2", "3"}},
		{"case insensitive", "FINANCE", []string{"1", "3"}},
		{"matches extra fields", "sn-9988", []string{"3"}},
		{"matches id", "2", []string{"2"}},
		{"no match", "zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(records, tt.query)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Filter(%q) returned %d records, want %d", tt.query, len(got), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("Filter(%q)[%d].ID = %q, want %q", tt.query, i, got[i].ID, want)
				}
			}
		})
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		offset     int
		limit      int
		wantOffset int
		wantLimit  int
	}{
		{"defaults", 0, 0, 0, MaxLimit},
		{"negative offset clamps to zero", -5, 10, 0, 10},
		{"huge limit clamps to max", 0, 10000, 0, MaxLimit},
		{"negative limit falls to default then max", 0, -1, 0, MaxLimit},
		{"in range untouched", 20, 50, 20, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, limit := ClampPage(tt.offset, tt.limit)
			if offset != tt.wantOffset || limit != tt.wantLimit {
				t.Errorf("ClampPage(%d, %d) = (%d, %d), want (%d, %d)",
					tt.offset, tt.limit, offset, limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	records := testRecords()
	tests := []struct {
		name    string
		offset  int
		limit   int
		wantIDs []string
	}{
		{"first page", 0, 2, []string{"1", "2"}},
		{"second page", 2, 2, []string{"3"}},
		{"offset beyond set", 10, 2, []string{}},
		{"negative offset treated as zero", -3, 1, []string{"1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(records, tt.offset, tt.limit)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Paginate(%d, %d) returned %d records, want %d",
					tt.offset, tt.limit, len(got), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("Paginate(%d, %d)[%d].ID = %q, want %q",
						tt.offset, tt.limit, i, got[i].ID, want)
				}
			}
		})
	}
}
