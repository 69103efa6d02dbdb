// Package inventory implements the canonical asset record set: schema
// normalization over legacy field aliases, integer-like id allocation,
// upsert reconciliation of bulk uploads, and substring filtering.
package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Maximum stored lengths per field, in runes. Values beyond the cap are
// truncated, never rejected.
const (
	MaxOwnerLen      = 120
	MaxDepartmentLen = 120
	MaxModelLen      = 120
	MaxIPLen         = 120
	MaxOSLen         = 80
	MaxStatusLen     = 40
)

// StatusUnknown is the sentinel stored when status is absent or blank.
const StatusUnknown = "unknown"

// ExtraField is a non-canonical key/value pair carried through storage and
// export unchanged. Order is preserved from the source document.
type ExtraField struct {
	Key   string
	Value string
}

// Record is the canonical inventory unit. Unknown keys found in persisted
// documents or legacy rows are retained in Extra in their original order so
// that exports can pass them through.
type Record struct {
	ID         string
	Owner      string
	Department string
	Model      string
	IP         string
	OS         string
	Status     string
	UpdatedAt  time.Time
	Extra      []ExtraField
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	c := r
	if r.Extra != nil {
		c.Extra = make([]ExtraField, len(r.Extra))
		copy(c.Extra, r.Extra)
	}
	return c
}

// GetExtra returns the value of a non-canonical field, or "".
func (r Record) GetExtra(key string) string {
	for _, f := range r.Extra {
		if f.Key == key {
			return f.Value
		}
	}
	return ""
}

// Field returns the value of any column by its lowercase name, canonical or
// extra. Used by the tabular codec when emitting rows.
func (r Record) Field(name string) string {
	switch name {
	case "id":
		return r.ID
	case "owner":
		return r.Owner
	case "department":
		return r.Department
	case "model":
		return r.Model
	case "ip":
		return r.IP
	case "os":
		return r.OS
	case "status":
		return r.Status
	case "updated_at":
		return formatTime(r.UpdatedAt)
	}
	return r.GetExtra(name)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// canonicalKeys lists the fixed serialization order of canonical fields.
var canonicalKeys = []string{"id", "owner", "department", "model", "ip", "os", "status", "updated_at"}

func isCanonicalKey(k string) bool {
	for _, c := range canonicalKeys {
		if k == c {
			return true
		}
	}
	return false
}

// MarshalJSON serializes the record with a stable field order: the canonical
// fields first, then extras in their preserved order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	writeField := func(key, value string) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}
	for _, key := range canonicalKeys {
		if err := writeField(key, r.Field(key)); err != nil {
			return nil, err
		}
	}
	for _, f := range r.Extra {
		if isCanonicalKey(f.Key) {
			continue
		}
		if err := writeField(f.Key, f.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts any flat JSON object. Canonical keys fill their
// fields; everything else lands in Extra in document order. Scalar values of
// any JSON type are coerced to strings so numeric-looking ids written by
// older tooling compare uniformly.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("inventory: record must be a JSON object, got %v", tok)
	}

	*r = Record{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		val := coerceString(raw)
		switch key {
		case "id":
			r.ID = val
		case "owner":
			r.Owner = val
		case "department":
			r.Department = val
		case "model":
			r.Model = val
		case "ip":
			r.IP = val
		case "os":
			r.OS = val
		case "status":
			r.Status = val
		case "updated_at":
			if val != "" {
				// Best effort: legacy rows carry ISO-8601 with offsets.
				if t, err := time.Parse(time.RFC3339, val); err == nil {
					r.UpdatedAt = t
				}
			}
		default:
			r.Extra = append(r.Extra, ExtraField{Key: key, Value: val})
		}
	}
	// Consume closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// coerceString renders any decoded JSON value as a string. Nested values are
// re-serialized compactly; nulls become "".
func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}
