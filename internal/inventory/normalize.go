package inventory

import (
	"strings"
	"time"
)

// aliases maps each canonical field to its single legacy source key.
// Resolution is applied uniformly on read (healing rows persisted under the
// older schema) and on write (accepting legacy-shaped client payloads).
// Fields absent here (ip, os, status) normalize directly.
var aliases = map[string]string{
	"owner":      "user",
	"department": "location",
	"model":      "name",
}

// Truncate trims surrounding whitespace and caps the value at maxLen runes.
func Truncate(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return s
}

// Normalize resolves legacy aliases into empty canonical fields and applies
// the status sentinel. It never fails; unresolvable fields stay "". The
// legacy keys are left in Extra so exports keep passing them through.
func Normalize(r Record) Record {
	out := r.Clone()
	if strings.TrimSpace(out.Owner) == "" {
		out.Owner = out.GetExtra(aliases["owner"])
	}
	if strings.TrimSpace(out.Department) == "" {
		out.Department = out.GetExtra(aliases["department"])
	}
	if strings.TrimSpace(out.Model) == "" {
		out.Model = out.GetExtra(aliases["model"])
	}
	if strings.TrimSpace(out.Status) == "" {
		out.Status = StatusUnknown
	}
	return out
}

// sanitize applies the per-field truncation caps in place.
func sanitize(r *Record) {
	r.ID = strings.TrimSpace(r.ID)
	r.Owner = Truncate(r.Owner, MaxOwnerLen)
	r.Department = Truncate(r.Department, MaxDepartmentLen)
	r.Model = Truncate(r.Model, MaxModelLen)
	r.IP = Truncate(r.IP, MaxIPLen)
	r.OS = Truncate(r.OS, MaxOSLen)
	r.Status = Truncate(r.Status, MaxStatusLen)
}

// fromRow builds a record from one decoded tabular row (lowercase keys,
// string cells). Only canonical columns and their legacy aliases are
// considered; other upload columns are dropped, matching the import
// contract of a full-record replace over the canonical schema.
func fromRow(row map[string]string, now time.Time) Record {
	pick := func(key string) string {
		if v := strings.TrimSpace(row[key]); v != "" {
			return v
		}
		if alias, ok := aliases[key]; ok {
			return strings.TrimSpace(row[alias])
		}
		return ""
	}
	r := Record{
		ID:         strings.TrimSpace(row["id"]),
		Owner:      pick("owner"),
		Department: pick("department"),
		Model:      pick("model"),
		IP:         pick("ip"),
		OS:         pick("os"),
		Status:     pick("status"),
		UpdatedAt:  now,
	}
	sanitize(&r)
	if r.Status == "" {
		r.Status = StatusUnknown
	}
	return r
}
