// Package jsondoc persists a collection as a single pretty-printed JSON
// array on disk with read-whole / write-whole semantics.
//
// There is deliberately no partial-write API: every mutation round-trips the
// entire set through Update. This bounds the collection size the store can
// handle gracefully (it must fit in memory and is rewritten per mutation),
// which is an accepted scalability limit, not a defect.
package jsondoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// ErrCorrupt is returned (wrapped) by Load when the persisted bytes do not
// parse. The store recovers by handing back an empty set; the next Save
// overwrites the damaged document.
var ErrCorrupt = errors.New("corrupt document")

// Cloner is implemented by row types that can clone themselves.
type Cloner[T any] interface {
	Clone() T
}

// Store handles a single JSON-array document holding rows of type T.
// All mutations must go through Update so that the load→modify→save cycle
// runs as one critical section.
type Store[T Cloner[T]] struct {
	path string
	mu   sync.RWMutex
}

// New creates a Store for the document at path, creating the parent
// directory and an empty document if none exists yet.
func New[T Cloner[T]](path string) (*Store[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec // G301: 0o755 is intentional for data directories
		return nil, fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	s := &Store[T]{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.write(nil); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Path returns the document path.
func (s *Store[T]) Path() string {
	return s.path
}

// Load returns the full current set. A missing document yields an empty set.
// An unparsable document yields an empty set together with a wrapped
// ErrCorrupt so the caller can decide whether to recover or abort.
func (s *Store[T]) Load() ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

func (s *Store[T]) load() ([]T, error) {
	data, err := os.ReadFile(s.path) //nolint:gosec // G304: path is fixed at construction, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read document %s: %w", s.path, err)
	}
	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	return rows, nil
}

// Save atomically overwrites the persisted document with the full set.
func (s *Store[T]) Save(rows []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(rows)
}

// write serializes rows deterministically and replaces the document via a
// temp file + rename, so a concurrent reader observes either the old or the
// new document, never a partial one.
func (s *Store[T]) write(rows []T) error {
	if rows == nil {
		rows = []T{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp document: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp document: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace document %s: %w", s.path, err)
	}
	return nil
}

// Update runs fn as a single load→modify→save critical section. fn receives
// the current set and returns the set to persist. If fn returns an error
// nothing is written. A corrupt document is logged and replaced by fn's
// output computed over an empty set (self-healing on next write).
func (s *Store[T]) Update(fn func(rows []T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.load()
	if err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return err
		}
		slog.Warn("Recovering corrupt document", "path", s.path, "err", err)
		rows = nil
	}
	out, err := fn(rows)
	if err != nil {
		return err
	}
	return s.write(out)
}

// View runs fn over a snapshot of the set under the read lock. A corrupt
// document degrades to an empty snapshot after logging.
func (s *Store[T]) View(fn func(rows []T) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.load()
	if err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return err
		}
		slog.Warn("Ignoring corrupt document", "path", s.path, "err", err)
		rows = nil
	}
	return fn(rows)
}

// Snapshot returns clones of all rows, degrading a corrupt document to an
// empty set.
func (s *Store[T]) Snapshot() ([]T, error) {
	var out []T
	err := s.View(func(rows []T) error {
		out = make([]T, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.Clone())
		}
		return nil
	})
	return out, err
}
