package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/assetdesk/assetdesk/internal/jsondoc"
)

var (
	// ErrNotFound is returned when an update references a missing id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateID is returned when a create supplies an id that is
	// already present. Bulk import upserts instead.
	ErrDuplicateID = errors.New("record id already exists")
)

// Payload carries a partial record from a single-record write. Nil pointers
// mean "field not supplied": create treats them as empty, update keeps the
// existing value. The legacy alias keys are accepted as fallback sources.
type Payload struct {
	ID     *string `json:"id"`
	Owner  *string `json:"owner"`
	User   *string `json:"user"` // legacy alias for owner
	Dept   *string `json:"department"`
	Loc    *string `json:"location"` // legacy alias for department
	Model  *string `json:"model"`
	Name   *string `json:"name"` // legacy alias for model
	IP     *string `json:"ip"`
	OS     *string `json:"os"`
	Status *string `json:"status"`
}

// ImportSummary reports the outcome of one reconciliation batch.
type ImportSummary struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
}

// Stats aggregates the healed snapshot for the dashboard.
type Stats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	ByOS     map[string]int `json:"by_os"`
}

// Service owns the canonical record set. Every mutation runs its
// load→modify→save cycle inside the store's critical section so concurrent
// writers, single-record and bulk alike, are serialized.
type Service struct {
	store *jsondoc.Store[Record]
	now   func() time.Time
}

// NewService creates a Service persisting to the given document path.
func NewService(path string) (*Service, error) {
	store, err := jsondoc.New[Record](path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize inventory store: %w", err)
	}
	return &Service{store: store, now: time.Now}, nil
}

// List returns the healed, filtered, paginated snapshot in store order.
func (s *Service) List(query string, offset, limit int) ([]Record, error) {
	rows, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	healed := make([]Record, 0, len(rows))
	for _, r := range rows {
		healed = append(healed, Normalize(r))
	}
	return Paginate(Filter(healed, query), offset, limit), nil
}

// Export returns the full healed set, for re-encoding by the tabular codec.
// Unlike List it is not paginated.
func (s *Service) Export() ([]Record, error) {
	rows, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	healed := make([]Record, 0, len(rows))
	for _, r := range rows {
		healed = append(healed, Normalize(r))
	}
	return healed, nil
}

// Create inserts a new record. An empty id is allocated; a supplied id that
// already exists fails with ErrDuplicateID so the one-record-per-id
// invariant holds.
func (s *Service) Create(p Payload) (Record, error) {
	var created Record
	err := s.store.Update(func(rows []Record) ([]Record, error) {
		rec := Record{
			ID:         deref(p.ID),
			Owner:      firstNonBlank(deref(p.Owner), deref(p.User)),
			Department: firstNonBlank(deref(p.Dept), deref(p.Loc)),
			Model:      firstNonBlank(deref(p.Model), deref(p.Name)),
			IP:         deref(p.IP),
			OS:         deref(p.OS),
			Status:     deref(p.Status),
			UpdatedAt:  s.now().UTC(),
		}
		sanitize(&rec)
		if rec.Status == "" {
			rec.Status = StatusUnknown
		}
		if rec.ID == "" {
			rec.ID = NextID(rows)
		} else {
			for _, r := range rows {
				if r.ID == rec.ID {
					return nil, fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
				}
			}
		}
		created = rec
		return append(rows, rec), nil
	})
	if err != nil {
		return Record{}, err
	}
	return created, nil
}

// Update merges the payload into the record with the given id, located by
// linear scan. Supplied fields overwrite, absent fields keep their existing
// (alias-healed) value, and the result is truncated and restamped.
func (s *Service) Update(id string, p Payload) (Record, error) {
	var updated Record
	err := s.store.Update(func(rows []Record) ([]Record, error) {
		for i, row := range rows {
			if row.ID != id {
				continue
			}
			cur := Normalize(row)
			rec := cur.Clone()
			rec.Owner = patch(p.Owner, p.User, cur.Owner)
			rec.Department = patch(p.Dept, p.Loc, cur.Department)
			rec.Model = patch(p.Model, p.Name, cur.Model)
			if p.IP != nil {
				rec.IP = *p.IP
			}
			if p.OS != nil {
				rec.OS = *p.OS
			}
			if p.Status != nil {
				rec.Status = *p.Status
			}
			rec.UpdatedAt = s.now().UTC()
			sanitize(&rec)
			rec.ID = id
			if rec.Status == "" {
				rec.Status = StatusUnknown
			}
			rows[i] = rec
			updated = rec
			return rows, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	})
	if err != nil {
		return Record{}, err
	}
	return updated, nil
}

// Delete removes the record with the given id and reports how many records
// were deleted (0 or 1). Deleting a missing id is a no-op success.
func (s *Service) Delete(id string) (int, error) {
	deleted := 0
	err := s.store.Update(func(rows []Record) ([]Record, error) {
		out := rows[:0]
		for _, r := range rows {
			if r.ID == id {
				deleted++
				continue
			}
			out = append(out, r)
		}
		return out, nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// Import reconciles one decoded upload batch into the store. The batch is
// computed against a single loaded snapshot and committed with one save;
// on any error nothing is written.
func (s *Service) Import(rows []map[string]string) (ImportSummary, error) {
	var sum ImportSummary
	err := s.store.Update(func(existing []Record) ([]Record, error) {
		merged, inserted, updated := Reconcile(existing, rows, s.now().UTC())
		sum = ImportSummary{Inserted: inserted, Updated: updated, Total: inserted + updated}
		return merged, nil
	})
	if err != nil {
		return ImportSummary{}, err
	}
	return sum, nil
}

// Stats aggregates counts by status and OS over the healed snapshot.
func (s *Service) Stats() (Stats, error) {
	st := Stats{ByStatus: map[string]int{}, ByOS: map[string]int{}}
	err := s.store.View(func(rows []Record) error {
		st.Total = len(rows)
		for _, row := range rows {
			r := Normalize(row)
			st.ByStatus[r.Status]++
			os := strings.TrimSpace(r.OS)
			if os == "" {
				os = "other"
			}
			st.ByOS[os]++
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}
	return st, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func firstNonBlank(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// patch resolves an updated field value: the canonical key wins when
// supplied non-blank, then the legacy alias, then the existing value.
func patch(canonical, alias *string, existing string) string {
	if canonical != nil && strings.TrimSpace(*canonical) != "" {
		return *canonical
	}
	if alias != nil && strings.TrimSpace(*alias) != "" {
		return *alias
	}
	if canonical != nil || alias != nil {
		// Explicitly supplied but blank: clear the field.
		return ""
	}
	return existing
}
