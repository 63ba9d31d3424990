package turso

import "github.com/relaydb/rdbc"

// execResult accumulates the outcome of one or more statements run in a
// single batch: rows affected sum across every statement, while the last
// insert id is taken from the most recent statement that produced one
// ("last one wins"), matching how a multi-statement batch's rowid is
// normally reported.
type execResult struct {
	rowsAffected  uint64
	lastInsertID  int64
	hasInsertID   bool
}

func (r *execResult) accumulate(rowsAffected uint64, lastInsertID int64, hasInsertID bool) {
	r.rowsAffected += rowsAffected
	if hasInsertID {
		r.lastInsertID = lastInsertID
		r.hasInsertID = true
	}
}

// toExecResult renders the accumulated outcome as an rdbc.ExecResult.
// LastInsertID is stored as I64 rather than U64, preserving SQLite/libsql's
// signed rowid semantics (see rdbc/deviation).
func (r *execResult) toExecResult() rdbc.ExecResult {
	lastInsertID := rdbc.Null()
	if r.hasInsertID {
		lastInsertID = rdbc.NewI64(r.lastInsertID)
	}
	return rdbc.ExecResult{
		RowsAffected: r.rowsAffected,
		LastInsertID: lastInsertID,
	}
}
