// Package ledger applies changes to a transaction collection and pushes them
// through the optimistic save protocol. Mutations always produce a fresh
// slice; the input collection is never edited in place, which is what makes
// rollback a matter of keeping the old slice header around.
package ledger

import (
	"time"

	"github.com/foresightmx/foresight/internal/model"
)

// AddOrUpdate returns a new collection with candidate applied: if an entry
// with the same id exists it is replaced in position, otherwise the candidate
// is appended. The caller assigns ids; an edit keeps the original id.
func AddOrUpdate(collection []model.Transaction, candidate model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(collection))
	copy(out, collection)
	for i, t := range out {
		if t.ID == candidate.ID {
			out[i] = candidate
			return out
		}
	}
	return append(out, candidate)
}

// Remove returns a new collection without the entry matching id. A missing
// id is a no-op apart from the copy.
func Remove(collection []model.Transaction, id int64) []model.Transaction {
	out := make([]model.Transaction, 0, len(collection))
	for _, t := range collection {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// NextID allocates an id for a new transaction: the current unix-millisecond
// timestamp, nudged past any existing id on the rare collision of two creates
// inside the same millisecond. Timestamp ids are a known weakness for
// multi-device writers; this single-writer client accepts them.
func NextID(collection []model.Transaction, now time.Time) int64 {
	id := now.UnixMilli()
	for {
		taken := false
		for _, t := range collection {
			if t.ID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
		id++
	}
}
