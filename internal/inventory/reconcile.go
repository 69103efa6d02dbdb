package inventory

import "time"

// Reconcile merges a batch of decoded upload rows into the existing set
// using upsert-by-identifier and returns the full merged set plus counts.
//
// Rows are processed sequentially in input order. A row whose id matches an
// existing record replaces that record in place (full-record replace, not a
// sparse patch). A row with an empty id gets one allocated against the
// in-progress set, so repeated empty ids within one batch yield distinct
// consecutive ids. Later rows in the batch can overwrite rows inserted
// earlier in the same batch if they share a resulting id; this ordering is
// part of the contract.
func Reconcile(existing []Record, incoming []map[string]string, now time.Time) (merged []Record, inserted, updated int) {
	merged = make([]Record, len(existing))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	for i, r := range merged {
		index[r.ID] = i
	}

	for _, row := range incoming {
		rec := fromRow(row, now)
		if rec.ID != "" {
			if pos, ok := index[rec.ID]; ok {
				merged[pos] = rec
				updated++
				continue
			}
		}
		if rec.ID == "" {
			rec.ID = NextID(merged)
		}
		merged = append(merged, rec)
		index[rec.ID] = len(merged) - 1
		inserted++
	}
	return merged, inserted, updated
}
