package inventory

import (
	"encoding/json"
	"strings"
)

// Pagination defaults and bounds for list queries.
const (
	DefaultLimit = 1000
	MaxLimit     = 500
	MinLimit     = 1
)

// Filter returns the records whose case-insensitive whole-record JSON
// serialization contains query as a substring. This is a coarse filter
// across all fields, canonical and extra alike, consistent with
// uncontrolled free-text content. An empty query matches everything.
func Filter(records []Record, query string) []Record {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}
	out := make([]Record, 0, len(records))
	for _, r := range records {
		blob, err := json.Marshal(r)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(string(blob)), q) {
			out = append(out, r)
		}
	}
	return out
}

// ClampPage normalizes offset/limit: offset clamps to ≥0; a missing or
// non-positive limit falls back to the default before clamping to
// [MinLimit, MaxLimit].
func ClampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if limit < MinLimit {
		limit = MinLimit
	}
	return offset, limit
}

// Paginate slices records after clamping, preserving store order.
func Paginate(records []Record, offset, limit int) []Record {
	offset, limit = ClampPage(offset, limit)
	if offset >= len(records) {
		return []Record{}
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}
