package inventory

import "strconv"

// NextID returns the smallest unused integer-like id above all existing
// integer-like ids, as a string. Ids whose textual form is not purely digits
// are ignored for the computation and coexist as opaque strings. The first
// allocated id is "1".
//
// The allocator is deterministic and stateless; concurrent callers must
// serialize through the store's critical section to avoid collisions.
func NextID(existing []Record) string {
	maxID := 0
	for _, r := range existing {
		if !isDigits(r.ID) {
			continue
		}
		if n, err := strconv.Atoi(r.ID); err == nil && n > maxID {
			maxID = n
		}
	}
	return strconv.Itoa(maxID + 1)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
