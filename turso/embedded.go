package turso

import (
	"context"
	sqldriver "database/sql/driver"
	"io"

	"github.com/mattn/go-sqlite3"
	"github.com/relaydb/rdbc"
)

// embeddedConnection talks to a local file or in-memory SQLite database
// directly through mattn/go-sqlite3's database/sql/driver surface, rather
// than going through database/sql: rdbcpool.Pool already provides pooling, so
// the extra layer of database/sql's own pool would be redundant.
type embeddedConnection struct {
	conn       sqldriver.Conn
	tx         sqldriver.Tx
	jsonDetect bool
	closed     bool
}

func connectEmbedded(ctx context.Context, o *ConnectOptions) (rdbc.Connection, error) {
	dsn := ":memory:"
	if !o.InMemory {
		dsn = o.URL
	}
	conn, err := (&sqlite3.SQLiteDriver{}).Open(dsn)
	if err != nil {
		return nil, wrapErr(err, "opening embedded turso database")
	}
	return &embeddedConnection{conn: conn, jsonDetect: o.JSONDetect}, nil
}

func toDriverValues(params []rdbc.Value) ([]sqldriver.Value, error) {
	out := make([]sqldriver.Value, len(params))
	for i, p := range params {
		native, err := valueToNative(p)
		if err != nil {
			return nil, err
		}
		out[i] = native
	}
	return out, nil
}

func (c *embeddedConnection) GetRows(ctx context.Context, sql string, params []rdbc.Value) ([]rdbc.Row, error) {
	if c.closed {
		return nil, rdbc.Errorf("turso: connection is closed")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stmt, err := c.conn.Prepare(sql)
	if err != nil {
		return nil, wrapErr(err, "preparing query")
	}
	defer stmt.Close()

	args, err := toDriverValues(params)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.Query(args)
	if err != nil {
		return nil, wrapErr(err, "running query")
	}
	defer rows.Close()

	cols := rows.Columns()
	dest := make([]sqldriver.Value, len(cols))
	var result []rdbc.Row
	for {
		if err := rows.Next(dest); err != nil {
			if err == io.EOF {
				break
			}
			return nil, wrapErr(err, "reading row")
		}
		values := make([]rdbc.Value, len(cols))
		types := make([]DataType, len(cols))
		for i, d := range dest {
			types[i] = DataTypeOf(d)
			values[i] = nativeToValue(d, c.jsonDetect)
		}
		meta := &metaData{columnNames: cols, columnTypes: types}
		result = append(result, newRow(values, meta))
	}
	return result, nil
}

func (c *embeddedConnection) GetValues(ctx context.Context, sql string, params []rdbc.Value) ([]rdbc.Value, error) {
	rows, err := c.GetRows(ctx, sql, params)
	if err != nil {
		return nil, err
	}
	out := make([]rdbc.Value, len(rows))
	for i, r := range rows {
		meta := r.MetaData()
		keys := make([]rdbc.Value, meta.ColumnLen())
		vals := make([]rdbc.Value, meta.ColumnLen())
		for col := 0; col < meta.ColumnLen(); col++ {
			v, err := r.Get(col)
			if err != nil {
				return nil, err
			}
			keys[col] = rdbc.NewString(meta.ColumnName(col))
			vals[col] = v
		}
		out[i] = rdbc.NewMap(keys, vals)
	}
	return out, nil
}

func (c *embeddedConnection) Exec(ctx context.Context, sql string, params []rdbc.Value) (rdbc.ExecResult, error) {
	if c.closed {
		return rdbc.ExecResult{}, rdbc.Errorf("turso: connection is closed")
	}
	if err := ctx.Err(); err != nil {
		return rdbc.ExecResult{}, err
	}
	stmt, err := c.conn.Prepare(sql)
	if err != nil {
		return rdbc.ExecResult{}, wrapErr(err, "preparing statement")
	}
	defer stmt.Close()

	args, err := toDriverValues(params)
	if err != nil {
		return rdbc.ExecResult{}, err
	}
	res, err := stmt.Exec(args)
	if err != nil {
		return rdbc.ExecResult{}, wrapErr(err, "executing statement")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return rdbc.ExecResult{}, wrapErr(err, "reading rows affected")
	}
	lastID, err := res.LastInsertId()
	hasID := err == nil

	var acc execResult
	acc.accumulate(uint64(affected), lastID, hasID)
	return acc.toExecResult(), nil
}

func (c *embeddedConnection) Ping(ctx context.Context) error {
	if c.closed {
		return rdbc.Errorf("turso: connection is closed")
	}
	_, err := c.GetRows(ctx, "SELECT 1", nil)
	return err
}

// Close tears down the underlying sqlite3 connection. After Close, every
// other method on this Connection fails: the closed flag is checked
// explicitly rather than relied upon to surface through the driver's own
// post-close error behavior.
func (c *embeddedConnection) Close(ctx context.Context) error {
	if c.closed {
		return nil
	}
	c.closed = true
	return wrapErrOrNil(c.conn.Close())
}

func (c *embeddedConnection) Begin(ctx context.Context) error {
	if c.closed {
		return rdbc.Errorf("turso: connection is closed")
	}
	if c.tx != nil {
		return rdbc.Errorf("turso: Begin called while a transaction is already open")
	}
	tx, err := c.conn.Begin()
	if err != nil {
		return wrapErr(err, "beginning transaction")
	}
	c.tx = tx
	return nil
}

func (c *embeddedConnection) Commit(ctx context.Context) error {
	if c.closed {
		return rdbc.Errorf("turso: connection is closed")
	}
	if c.tx == nil {
		return rdbc.Errorf("turso: Commit called with no open transaction")
	}
	err := c.tx.Commit()
	c.tx = nil
	return wrapErrOrNil(err)
}

func (c *embeddedConnection) Rollback(ctx context.Context) error {
	if c.closed {
		return rdbc.Errorf("turso: connection is closed")
	}
	if c.tx == nil {
		return rdbc.Errorf("turso: Rollback called with no open transaction")
	}
	err := c.tx.Rollback()
	c.tx = nil
	return wrapErrOrNil(err)
}

func wrapErrOrNil(err error) error {
	if err == nil {
		return nil
	}
	return wrapErr(err, "turso embedded operation")
}

var _ rdbc.Connection = (*embeddedConnection)(nil)
