// Package messages implements the contact-message inbox over the same
// whole-document store used for inventory records.
package messages

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/assetdesk/assetdesk/internal/jsondoc"
	"github.com/google/uuid"
)

// ErrNotFound is returned when a message id does not exist.
var ErrNotFound = errors.New("message not found")

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Message is one submitted contact-form entry.
type Message struct {
	ID         string    `json:"id"`
	TS         time.Time `json:"ts"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Department string    `json:"department"`
	Body       string    `json:"message"`
	Read       bool      `json:"read"`
}

// Clone returns a copy of the message.
func (m Message) Clone() Message {
	return m
}

// Submission is a contact-form payload before validation.
type Submission struct {
	Name       string
	Email      string
	Subject    string
	Department string
	Body       string
}

// Validate checks the submission and returns per-field problems.
func (s *Submission) Validate() map[string]string {
	problems := map[string]string{}
	if len([]rune(s.Name)) < 2 {
		problems["name"] = "name must be at least 2 characters"
	}
	if !emailRe.MatchString(s.Email) {
		problems["email"] = "a valid email address is required"
	}
	if len([]rune(s.Subject)) < 3 {
		problems["subject"] = "subject must be at least 3 characters"
	}
	if len([]rune(s.Body)) < 10 {
		problems["message"] = "message must be at least 10 characters"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// Service owns the persisted inbox.
type Service struct {
	store *jsondoc.Store[Message]
	now   func() time.Time
}

// NewService creates a Service persisting to the given document path.
func NewService(path string) (*Service, error) {
	store, err := jsondoc.New[Message](path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize message store: %w", err)
	}
	return &Service{store: store, now: time.Now}, nil
}

// Add appends a validated submission and returns the stored message.
func (s *Service) Add(sub Submission) (Message, error) {
	msg := Message{
		ID:         uuid.NewString(),
		TS:         s.now().UTC(),
		Name:       sub.Name,
		Email:      sub.Email,
		Subject:    sub.Subject,
		Department: sub.Department,
		Body:       sub.Body,
	}
	err := s.store.Update(func(rows []Message) ([]Message, error) {
		return append(rows, msg), nil
	})
	if err != nil {
		return Message{}, err
	}
	return msg, nil
}

// Latest returns up to limit messages, newest first. limit clamps to [1,50]
// with a default of 5.
func (s *Service) Latest(limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 5
	}
	if limit > 50 {
		limit = 50
	}
	rows, err := s.store.Snapshot()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TS.After(rows[j].TS) })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// UnreadCount returns the number of unread messages.
func (s *Service) UnreadCount() (int, error) {
	count := 0
	err := s.store.View(func(rows []Message) error {
		for _, m := range rows {
			if !m.Read {
				count++
			}
		}
		return nil
	})
	return count, err
}

// MarkRead flips the read flag on one message and returns the remaining
// unread count. A missing id fails with ErrNotFound.
func (s *Service) MarkRead(id string, read bool) (int, error) {
	unread := 0
	err := s.store.Update(func(rows []Message) ([]Message, error) {
		found := false
		for i := range rows {
			if rows[i].ID == id {
				rows[i].Read = read
				found = true
			}
			if !rows[i].Read {
				unread++
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return rows, nil
	})
	if err != nil {
		return 0, err
	}
	return unread, nil
}

// Delete removes one message, reporting how many were deleted (0 or 1).
func (s *Service) Delete(id string) (int, error) {
	deleted := 0
	err := s.store.Update(func(rows []Message) ([]Message, error) {
		out := rows[:0]
		for _, m := range rows {
			if m.ID == id {
				deleted++
				continue
			}
			out = append(out, m)
		}
		return out, nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// DeleteBulk removes the given ids, or everything when all is set.
// Returns the number deleted and the number remaining.
func (s *Service) DeleteBulk(ids []string, all bool) (deleted, remaining int, err error) {
	err = s.store.Update(func(rows []Message) ([]Message, error) {
		if all {
			deleted = len(rows)
			return nil, nil
		}
		drop := make(map[string]bool, len(ids))
		for _, id := range ids {
			drop[id] = true
		}
		out := rows[:0]
		for _, m := range rows {
			if drop[m.ID] {
				deleted++
				continue
			}
			out = append(out, m)
		}
		remaining = len(out)
		return out, nil
	})
	if err != nil {
		return 0, 0, err
	}
	return deleted, remaining, nil
}
