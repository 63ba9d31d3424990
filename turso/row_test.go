package turso

import (
	"context"
	"testing"

	"github.com/relaydb/rdbc"
)

func TestRowGetIsDestructive(t *testing.T) {
	meta := &metaData{columnNames: []string{"id", "name"}}
	r := newRow([]rdbc.Value{rdbc.NewI64(1), rdbc.NewString("a")}, meta)

	v, err := r.Get(0)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := v.I64(); n != 1 {
		t.Errorf("got %v, want 1", n)
	}

	if _, err := r.Get(0); err == nil {
		t.Fatal("expected already-consumed error on second Get at the same index")
	}

	// the other column is unaffected by consuming index 0.
	v2, err := r.Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := v2.String(); s != "a" {
		t.Errorf("got %v, want a", s)
	}
}

func TestRowGetOutOfRange(t *testing.T) {
	meta := &metaData{columnNames: []string{"id"}}
	r := newRow([]rdbc.Value{rdbc.NewI64(1)}, meta)
	if _, err := r.Get(5); err == nil {
		t.Fatal("expected out-of-range error")
	}
	if _, err := r.Get(-1); err == nil {
		t.Fatal("expected out-of-range error for negative index")
	}
}

func TestMetaDataColumnTypeReportsRuntimeValueType(t *testing.T) {
	meta := &metaData{
		columnNames: []string{"id", "name", "score", "payload", "deleted_at"},
		columnTypes: []DataType{DataTypeInteger, DataTypeText, DataTypeReal, DataTypeBlob, DataTypeNull},
	}
	if meta.ColumnLen() != 5 {
		t.Errorf("ColumnLen() = %d, want 5", meta.ColumnLen())
	}
	if meta.ColumnName(1) != "name" {
		t.Errorf("ColumnName(1) = %q, want name", meta.ColumnName(1))
	}
	want := []string{"INTEGER", "TEXT", "REAL", "BLOB", "NULL"}
	for i, w := range want {
		if got := meta.ColumnType(i); got != w {
			t.Errorf("ColumnType(%d) = %q, want %q", i, got, w)
		}
	}
	if meta.ColumnType(5) != "" {
		t.Errorf("ColumnType(5) (out of range) = %q, want empty", meta.ColumnType(5))
	}
}

func TestEmbeddedQueryColumnTypeReflectsActualCellValue(t *testing.T) {
	ctx := context.Background()
	conn := newEmbeddedConn(t)

	// SQLite columns carry no fixed type: a BLOB-declared column keeps an
	// integer value as INTEGER, and the adapter reports the latter.
	if _, err := conn.Exec(ctx, "create table t (v blob)", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := conn.Exec(ctx, "insert into t (v) values (?)", []rdbc.Value{rdbc.NewI64(7)}); err != nil {
		t.Fatal(err)
	}

	rows, err := conn.GetRows(ctx, "select v from t", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := rows[0].MetaData().ColumnType(0); got != "INTEGER" {
		t.Errorf("ColumnType(0) = %q, want INTEGER (the actual stored value's type)", got)
	}
}
