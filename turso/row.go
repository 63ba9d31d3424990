package turso

import "github.com/relaydb/rdbc"

// metaData describes one row's columns: names are shared across every row
// of a result set, but columnTypes is computed fresh per row from that
// row's own cell values, since SQLite columns carry no fixed declared type
// (see DataTypeOf and rdbc/deviation's "column_type reports runtime value
// type, not declared schema type" entry).
type metaData struct {
	columnNames []string
	columnTypes []DataType
}

func (m *metaData) ColumnLen() int { return len(m.columnNames) }

func (m *metaData) ColumnName(i int) string {
	if i < 0 || i >= len(m.columnNames) {
		return ""
	}
	return m.columnNames[i]
}

// ColumnType returns this row's runtime value type for column i (one of
// "NULL", "INTEGER", "REAL", "TEXT", "BLOB"), or "" if i is out of range.
// turso has no declared-schema-type fallback to offer for NULL cells, so
// a NULL cell simply reports "NULL".
func (m *metaData) ColumnType(i int) string {
	if i < 0 || i >= len(m.columnTypes) {
		return ""
	}
	return string(m.columnTypes[i])
}

var _ rdbc.MetaData = (*metaData)(nil)

// row is one result row. Get is destructive: a consumed cell is marked
// absent in consumed, so a second Get at the same index fails, matching
// rdbc.Row's documented contract.
type row struct {
	values   []rdbc.Value
	consumed []bool
	meta     *metaData
}

func newRow(values []rdbc.Value, meta *metaData) *row {
	return &row{values: values, consumed: make([]bool, len(values)), meta: meta}
}

func (r *row) MetaData() rdbc.MetaData { return r.meta }

func (r *row) Get(i int) (rdbc.Value, error) {
	if i < 0 || i >= len(r.values) {
		return rdbc.Value{}, rdbc.ErrColumnOutOfRange(i, len(r.values))
	}
	if r.consumed[i] {
		return rdbc.Value{}, rdbc.ErrAlreadyConsumed(i)
	}
	r.consumed[i] = true
	return r.values[i], nil
}

var _ rdbc.Row = (*row)(nil)
