// Package rdbcpool provides a generic, backend-agnostic connection pool
// built on top of the rdbc.Driver/rdbc.Connection contracts: a
// ConnectionManager pairs a Driver with its ConnectOptions, Pool borrows
// and returns connections under a mutex/condition-variable discipline, and
// ConnectionGuard wraps one borrowed connection so a caller always talks to
// the rdbc.Connection interface regardless of whether the underlying
// connection came from a pool.
package rdbcpool

import (
	"context"

	"github.com/relaydb/rdbc"
)

// Manager knows how to open and health-check a Connection. ConnectionManager
// is the only implementation, but Pool is written against this interface so
// a test double can stand in for it.
type Manager interface {
	Connect(ctx context.Context) (rdbc.Connection, error)
	Check(ctx context.Context, conn rdbc.Connection) error
}

// ConnectionManager couples a Driver with the ConnectOptions used to open
// every connection the pool creates. It is immutable after construction:
// changing backend configuration means building a new ConnectionManager.
type ConnectionManager struct {
	driver rdbc.Driver
	option rdbc.ConnectOptions
}

// NewConnectionManager builds a ConnectionManager from a Driver and a URI,
// parsing uri into the driver's default ConnectOptions.
func NewConnectionManager(driver rdbc.Driver, uri string) (ConnectionManager, error) {
	opt := driver.DefaultOption()
	if err := opt.SetURI(uri); err != nil {
		return ConnectionManager{}, rdbc.WrapError(err, "parsing connection uri")
	}
	return ConnectionManager{driver: driver, option: opt}, nil
}

// NewConnectionManagerOption builds a ConnectionManager from an
// already-configured ConnectOptions, skipping URI parsing entirely.
func NewConnectionManagerOption(driver rdbc.Driver, option rdbc.ConnectOptions) ConnectionManager {
	return ConnectionManager{driver: driver, option: option}
}

// DriverType returns the backend name of the underlying Driver.
func (m ConnectionManager) DriverType() string {
	return m.driver.Name()
}

// Connect opens a fresh Connection using the manager's Driver and
// ConnectOptions, satisfying the Manager interface.
func (m ConnectionManager) Connect(ctx context.Context) (rdbc.Connection, error) {
	return m.driver.ConnectOpt(ctx, m.option)
}

// Check verifies a connection is still usable, via Ping.
func (m ConnectionManager) Check(ctx context.Context, conn rdbc.Connection) error {
	return conn.Ping(ctx)
}

// ConnectGuarded opens a fresh Connection and wraps it in a standalone
// ConnectionGuard (not associated with any Pool), so a caller may use the
// same rdbc.Connection-forwarding surface Pool.Get returns without going
// through a pool at all.
func (m ConnectionManager) ConnectGuarded(ctx context.Context) (*ConnectionGuard, error) {
	conn, err := m.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return &ConnectionGuard{conn: conn, manager: m}, nil
}

var _ Manager = ConnectionManager{}
