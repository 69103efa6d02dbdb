package inventory

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService(filepath.Join(t.TempDir(), "inventory.json"))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	s.now = func() time.Time { return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC) }
	return s
}

func strPtr(s string) *string { return &s }

func TestCreateAllocatesID(t *testing.T) {
	s := newTestService(t)

	first, err := s.Create(Payload{Owner: strPtr("alice")})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if first.ID != "1" {
		t.Errorf("first id = %q, want %q", first.ID, "1")
	}
	if first.Status != StatusUnknown {
		t.Errorf("Status = %q, want sentinel", first.Status)
	}

	second, err := s.Create(Payload{Owner: strPtr("bob")})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if second.ID != "2" {
		t.Errorf("second id = %q, want %q", second.ID, "2")
	}
}

func TestCreateDuplicateID(t *testing.T) {
	s := newTestService(t)
	if _, err := s.Create(Payload{ID: strPtr("7")}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_, err := s.Create(Payload{ID: strPtr("7")})
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Create() error = %v, want ErrDuplicateID", err)
	}
}

func TestCreateAcceptsLegacyAliases(t *testing.T) {
	s := newTestService(t)
	rec, err := s.Create(Payload{
		User: strPtr("alice"),
		Loc:  strPtr("ops"),
		Name: strPtr("XPS"),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rec.Owner != "alice" || rec.Department != "ops" || rec.Model != "XPS" {
		t.Errorf("alias payload not resolved: %+v", rec)
	}
}

func TestCreateTruncatesLongValues(t *testing.T) {
	s := newTestService(t)
	rec, err := s.Create(Payload{Owner: strPtr(strings.Repeat("a", 500))})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len([]rune(rec.Owner)) != MaxOwnerLen {
		t.Errorf("Owner length = %d, want %d", len([]rune(rec.Owner)), MaxOwnerLen)
	}
}

func TestConcurrentCreatesAllocateDistinctIDs(t *testing.T) {
	s := newTestService(t)

	var wg sync.WaitGroup
	ids := make(chan string, 2)
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := s.Create(Payload{Owner: strPtr("x")})
			if err != nil {
				t.Errorf("Create() error = %v", err)
				return
			}
			ids <- rec.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		seen[id] = true
	}
	if !seen["1"] || !seen["2"] {
		t.Errorf("allocated ids = %v, want {1, 2}", seen)
	}
}

func TestUpdatePatchSemantics(t *testing.T) {
	s := newTestService(t)
	if _, err := s.Create(Payload{ID: strPtr("1"), Owner: strPtr("alice"), IP: strPtr("10.0.0.1"), Status: strPtr("active")}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Update("1", Payload{Owner: strPtr("bob")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Owner != "bob" {
		t.Errorf("Owner = %q, want %q", got.Owner, "bob")
	}
	// Absent fields keep their stored values.
	if got.IP != "10.0.0.1" || got.Status != "active" {
		t.Errorf("absent fields changed: %+v", got)
	}
}

func TestUpdateBlankStatusGetsSentinel(t *testing.T) {
	s := newTestService(t)
	if _, err := s.Create(Payload{ID: strPtr("1"), Status: strPtr("active")}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	got, err := s.Update("1", Payload{Status: strPtr("")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Status != StatusUnknown {
		t.Errorf("Status = %q, want sentinel", got.Status)
	}
}

func TestUpdateLegacyAliasFallback(t *testing.T) {
	s := newTestService(t)
	if _, err := s.Create(Payload{ID: strPtr("1"), Owner: strPtr("alice")}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	got, err := s.Update("1", Payload{User: strPtr("bob")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Owner != "bob" {
		t.Errorf("Owner = %q, want alias value %q", got.Owner, "bob")
	}
}

func TestUpdateMissingID(t *testing.T) {
	s := newTestService(t)
	_, err := s.Update("404", Payload{Owner: strPtr("x")})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestService(t)
	if _, err := s.Create(Payload{ID: strPtr("1")}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	deleted, err := s.Delete("1")
	if err != nil || deleted != 1 {
		t.Fatalf("Delete() = (%d, %v), want (1, nil)", deleted, err)
	}
	deleted, err = s.Delete("1")
	if err != nil || deleted != 0 {
		t.Errorf("second Delete() = (%d, %v), want (0, nil)", deleted, err)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	s := newTestService(t)
	rows := []map[string]string{
		{"id": "1", "owner": "alice", "status": "active"},
		{"id": "2", "owner": "bob", "status": "repair"},
	}

	sum, err := s.Import(rows)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if sum.Inserted != 2 || sum.Updated != 0 || sum.Total != 2 {
		t.Fatalf("first Import() = %+v", sum)
	}

	sum, err = s.Import(rows)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if sum.Inserted != 0 || sum.Updated != 2 {
		t.Errorf("second Import() = %+v, want pure update", sum)
	}

	all, err := s.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("record count after re-import = %d, want 2", len(all))
	}
}

func TestListFiltersAndPaginates(t *testing.T) {
	s := newTestService(t)
	for _, owner := range []string{"alice", "bob", "alicia"} {
		if _, err := s.Create(Payload{Owner: strPtr(owner)}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	got, err := s.List("alic", 0, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List(alic) returned %d records, want 2", len(got))
	}

	page, err := s.List("", 1, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page) != 1 || page[0].Owner != "bob" {
		t.Errorf("List page = %+v, want single bob record", page)
	}
}

func TestListHealsLegacyRows(t *testing.T) {
	s := newTestService(t)
	// Seed a legacy-shaped row straight into the store.
	err := s.store.Update(func(rows []Record) ([]Record, error) {
		return append(rows, Record{
			ID:    "1",
			Extra: []ExtraField{{Key: "user", Value: "alice"}},
		}), nil
	})
	if err != nil {
		t.Fatalf("seed error = %v", err)
	}

	got, err := s.List("", 0, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 1 || got[0].Owner != "alice" || got[0].Status != StatusUnknown {
		t.Errorf("List() = %+v, want healed record", got)
	}
}

func TestStats(t *testing.T) {
	s := newTestService(t)
	seed := []Payload{
		{Status: strPtr("active"), OS: strPtr("Linux")},
		{Status: strPtr("active"), OS: strPtr("Linux")},
		{Status: strPtr("repair")},
		{},
	}
	for _, p := range seed {
		if _, err := s.Create(p); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	st, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if st.Total != 4 {
		t.Errorf("Total = %d, want 4", st.Total)
	}
	if st.ByStatus["active"] != 2 || st.ByStatus["repair"] != 1 || st.ByStatus[StatusUnknown] != 1 {
		t.Errorf("ByStatus = %v", st.ByStatus)
	}
	if st.ByOS["Linux"] != 2 || st.ByOS["other"] != 2 {
		t.Errorf("ByOS = %v", st.ByOS)
	}
}

func TestExportIsUnpaginated(t *testing.T) {
	s := newTestService(t)
	rows := make([]map[string]string, 0, 600)
	for range 600 {
		rows = append(rows, map[string]string{"owner": "x"})
	}
	if _, err := s.Import(rows); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	all, err := s.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(all) != 600 {
		t.Errorf("Export() returned %d records, want all 600", len(all))
	}
}
