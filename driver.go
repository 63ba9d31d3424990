package rdbc

import "context"

// Driver is the polymorphic contract every backend adapter implements. A
// single process may mix multiple Driver implementations behind this one
// contract, dispatched through Go's ordinary interface mechanism.
type Driver interface {
	// Name identifies the backend, e.g. "turso", "postgres", "mysql".
	Name() string

	// Connect opens a Connection from a URI string, equivalent to building
	// a default ConnectOptions and calling SetURI then Connect.
	Connect(ctx context.Context, uri string) (Connection, error)

	// ConnectOpt opens a Connection from an already-validated
	// ConnectOptions value.
	ConnectOpt(ctx context.Context, opts ConnectOptions) (Connection, error)

	// DefaultOption returns a fresh, backend-specific ConnectOptions with
	// its defaults populated (e.g. turso's default is an in-memory
	// database).
	DefaultOption() ConnectOptions

	// Exchange rewrites a SQL string's portable '?' placeholders into this
	// backend's native placeholder syntax, starting the index at 1.
	Exchange(sql string) string
}

// Connection is a live handle to one backend session. States are Open,
// InTransaction, and Closed; every method fails with a clear error once
// Closed. An error from any method does not poison the connection — a
// subsequent valid operation on the same connection must still succeed,
// unless that method was Close itself.
//
// Individual Connections are not safe for concurrent use: the pool
// guarantees exclusive single-task ownership instead.
type Connection interface {
	// GetRows runs sql with params and returns one Row handle per result
	// row. Row cells are lazily materialized into Value on Get.
	GetRows(ctx context.Context, sql string, params []Value) ([]Row, error)

	// GetValues is a convenience wrapper over GetRows that returns each row
	// as an ordered Map keyed by column name.
	GetValues(ctx context.Context, sql string, params []Value) ([]Value, error)

	// Exec runs sql with params for side effects and returns the resulting
	// row count / last insert id.
	Exec(ctx context.Context, sql string, params []Value) (ExecResult, error)

	// Ping verifies the connection is alive, typically via a trivial
	// round-trip query.
	Ping(ctx context.Context) error

	// Close tears the connection down. After Close, every method fails.
	Close(ctx context.Context) error

	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Row is an ordered list of cells produced by a query. Reading a cell
// with Get is destructive: the cell is taken, leaving an
// absent slot behind, so a second Get at the same index fails with
// "already consumed". Reading indices in any order yields the same
// values for cells not yet consumed.
type Row interface {
	MetaData() MetaData

	// Get takes the cell at index i, returning an error if i is out of
	// range or the cell was already consumed.
	Get(i int) (Value, error)
}

// MetaData describes the columns of a Row. ColumnType returns the
// backend's canonical type name for that column: declared schema type
// where the backend's native API exposes one, runtime value type
// otherwise — which of the two a given adapter returns is itself a
// documented deviation (see rdbc/deviation).
type MetaData interface {
	ColumnLen() int
	ColumnName(i int) string
	ColumnType(i int) string
}

// ExecResult is the outcome of Connection.Exec. LastInsertID's
// concrete Value variant (I64, U64, or Null) is backend-dependent and,
// where genuinely unsettled across the ecosystem, is recorded in the
// adapter's deviation registry rather than standardized here.
type ExecResult struct {
	RowsAffected uint64
	LastInsertID Value
}

// ConnectOptions is a polymorphic, backend-specific configuration value.
// Construction and SetURI are expected to run to completion, including
// validation, before Connect is ever called — "startup-only" configuration:
// no field may be mutated to affect an already-open Connection.
type ConnectOptions interface {
	// Connect opens a Connection using the currently configured options.
	Connect(ctx context.Context) (Connection, error)

	// SetURI parses uri and replaces the receiver's fields with the parsed
	// configuration, returning an error if uri is malformed or violates a
	// required invariant (e.g. a remote endpoint missing its auth token).
	// Validation happens here, not lazily at Connect time.
	SetURI(uri string) error
}
