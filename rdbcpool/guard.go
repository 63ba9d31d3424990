package rdbcpool

import (
	"context"

	"github.com/relaydb/rdbc"
)

// ConnectionGuard wraps one borrowed rdbc.Connection and forwards every
// Connection method to it. It implements rdbc.Connection itself, so a
// caller that obtained a guard from a Pool (or directly from a
// ConnectionManager) never needs to know the difference.
//
// Once the underlying connection is taken — by Close or by being returned
// to a pool via Release — every further method call fails with "conn is
// drop" rather than panicking on a nil connection.
type ConnectionGuard struct {
	conn    rdbc.Connection
	manager Manager
	pool    *Pool
}

func (g *ConnectionGuard) take() (rdbc.Connection, error) {
	if g.conn == nil {
		return nil, rdbc.ErrConnDrop()
	}
	return g.conn, nil
}

func (g *ConnectionGuard) GetRows(ctx context.Context, sql string, params []rdbc.Value) ([]rdbc.Row, error) {
	c, err := g.take()
	if err != nil {
		return nil, err
	}
	return c.GetRows(ctx, sql, params)
}

func (g *ConnectionGuard) GetValues(ctx context.Context, sql string, params []rdbc.Value) ([]rdbc.Value, error) {
	c, err := g.take()
	if err != nil {
		return nil, err
	}
	return c.GetValues(ctx, sql, params)
}

func (g *ConnectionGuard) Exec(ctx context.Context, sql string, params []rdbc.Value) (rdbc.ExecResult, error) {
	c, err := g.take()
	if err != nil {
		return rdbc.ExecResult{}, err
	}
	return c.Exec(ctx, sql, params)
}

func (g *ConnectionGuard) Ping(ctx context.Context) error {
	c, err := g.take()
	if err != nil {
		return err
	}
	return c.Ping(ctx)
}

// Close takes the underlying connection and closes it outright. A guard
// borrowed from a Pool should normally be returned with Release instead,
// so the connection can be reused; Close is for ending its life for good
// (on a check failure, for instance).
func (g *ConnectionGuard) Close(ctx context.Context) error {
	c, err := g.take()
	if err != nil {
		return err
	}
	g.conn = nil
	return c.Close(ctx)
}

func (g *ConnectionGuard) Begin(ctx context.Context) error {
	c, err := g.take()
	if err != nil {
		return err
	}
	return c.Begin(ctx)
}

func (g *ConnectionGuard) Commit(ctx context.Context) error {
	c, err := g.take()
	if err != nil {
		return err
	}
	return c.Commit(ctx)
}

func (g *ConnectionGuard) Rollback(ctx context.Context) error {
	c, err := g.take()
	if err != nil {
		return err
	}
	return c.Rollback(ctx)
}

// Release gives the connection back to the Pool it was borrowed from, so a
// later Get can reuse it. For a guard opened directly from a
// ConnectionManager (no pool involved), Release just closes it. Call
// Release exactly once per guard; a guard already closed or already
// released is a no-op.
func (g *ConnectionGuard) Release(ctx context.Context) {
	if g.conn == nil {
		return
	}
	if g.pool != nil {
		g.pool.release(ctx, g)
		return
	}
	_ = g.conn.Close(ctx)
	g.conn = nil
}

var _ rdbc.Connection = (*ConnectionGuard)(nil)
