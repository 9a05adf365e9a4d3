package ledger

import (
	"context"

	"github.com/foresightmx/foresight/internal/state"
)

// Mutation edits the working state. It must replace the budget/transaction
// fields with new values (see AddOrUpdate/Remove) rather than editing the
// slices they point at, so the pre-mutation snapshot stays intact.
type Mutation func(*state.AppState)

// PersistFunc saves the state's budget and transactions as one atomic record.
type PersistFunc func(context.Context) error

// Result reports how a mutation ended. Exactly one of the two cases holds:
// Committed with a nil Err, or a rollback with Err carrying the persistence
// failure.
type Result struct {
	Committed bool
	Err       error
}

// RolledBack reports whether the optimistic change was discarded.
func (r Result) RolledBack() bool { return !r.Committed }

// Perform runs one mutation through the optimistic save protocol:
//
//  1. snapshot the current budget and transaction collection
//  2. apply the mutation locally, so the caller can render it immediately
//  3. persist budget+transactions as a single record
//  4. on failure, restore the snapshot and report the error; on success,
//     keep the committed state
//
// Failures are not retried here; the user re-triggers the action. The
// protocol assumes one mutation in flight at a time. Callers serialize
// (the session layer refuses a second concurrent mutation), this function
// does not lock.
func Perform(ctx context.Context, st *state.AppState, mutate Mutation, persist PersistFunc) Result {
	snapshotTxs := st.Transactions
	snapshotBudget := st.Budget

	mutate(st)

	if err := persist(ctx); err != nil {
		st.Transactions = snapshotTxs
		st.Budget = snapshotBudget
		return Result{Err: err}
	}
	return Result{Committed: true}
}
