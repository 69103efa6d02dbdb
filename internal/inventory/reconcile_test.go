package inventory

import (
	"testing"
	"time"
)

var reconcileNow = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func TestReconcileUpsert(t *testing.T) {
	existing := []Record{
		{ID: "1", Owner: "alice", Status: "active"},
		{ID: "2", Owner: "bob", Status: "active"},
	}
	incoming := []map[string]string{
		{"id": "2", "owner": "robert", "status": "repair"},
		{"id": "3", "owner": "carol"},
	}

	merged, inserted, updated := Reconcile(existing, incoming, reconcileNow)

	if inserted != 1 || updated != 1 {
		t.Fatalf("inserted = %d, updated = %d, want 1 and 1", inserted, updated)
	}
	if len(merged) != 3 {
		t.Fatalf("len(merged) = %d, want 3", len(merged))
	}
	// Matching id replaces in place, keeping position.
	if merged[1].ID != "2" || merged[1].Owner != "robert" || merged[1].Status != "repair" {
		t.Errorf("merged[1] = %+v, want replaced record", merged[1])
	}
	if merged[2].ID != "3" || merged[2].Status != StatusUnknown {
		t.Errorf("merged[2] = %+v, want appended record with sentinel status", merged[2])
	}
}

func TestReconcileFullRecordReplace(t *testing.T) {
	existing := []Record{{ID: "1", Owner: "alice", IP: "10.0.0.1"}}
	incoming := []map[string]string{{"id": "1", "owner": "alice"}}

	merged, _, updated := Reconcile(existing, incoming, reconcileNow)

	if updated != 1 {
		t.Fatalf("updated = %d, want 1", updated)
	}
	// Replace, not patch: the absent ip column clears the stored value.
	if merged[0].IP != "" {
		t.Errorf("IP = %q, want cleared by full-record replace", merged[0].IP)
	}
}

func TestReconcileAllocatesConsecutiveIDs(t *testing.T) {
	existing := []Record{{ID: "5"}}
	incoming := []map[string]string{
		{"owner": "a"},
		{"owner": "b"},
		{"owner": "c"},
	}

	merged, inserted, _ := Reconcile(existing, incoming, reconcileNow)

	if inserted != 3 {
		t.Fatalf("inserted = %d, want 3", inserted)
	}
	wantIDs := []string{"6", "7", "8"}
	for i, want := range wantIDs {
		if got := merged[len(existing)+i].ID; got != want {
			t.Errorf("allocated id[%d] = %q, want %q", i, got, want)
		}
	}
}

func TestReconcileIdempotentReimport(t *testing.T) {
	incoming := []map[string]string{
		{"id": "1", "owner": "alice", "status": "active"},
		{"id": "2", "owner": "bob", "status": "repair"},
	}

	first, inserted, updated := Reconcile(nil, incoming, reconcileNow)
	if inserted != 2 || updated != 0 {
		t.Fatalf("first pass inserted = %d, updated = %d, want 2 and 0", inserted, updated)
	}

	second, inserted, updated := Reconcile(first, incoming, reconcileNow)
	if inserted != 0 || updated != 2 {
		t.Fatalf("second pass inserted = %d, updated = %d, want 0 and 2", inserted, updated)
	}
	if len(second) != len(first) {
		t.Errorf("re-import grew the set: %d -> %d", len(first), len(second))
	}
	for i := range first {
		if second[i].ID != first[i].ID || second[i].Owner != first[i].Owner {
			t.Errorf("record %d changed on re-import: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestReconcileLaterRowWinsWithinBatch(t *testing.T) {
	incoming := []map[string]string{
		{"id": "1", "owner": "first"},
		{"id": "1", "owner": "second"},
	}

	merged, inserted, updated := Reconcile(nil, incoming, reconcileNow)

	if inserted != 1 || updated != 1 {
		t.Fatalf("inserted = %d, updated = %d, want 1 and 1", inserted, updated)
	}
	if len(merged) != 1 || merged[0].Owner != "second" {
		t.Errorf("merged = %+v, want single record owned by %q", merged, "second")
	}
}
