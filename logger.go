package rdbc

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// QueryStats is the record passed to a Logger after each Connection
// operation completes, keyed to connection-level operations (Exec/GetRows)
// rather than any query-builder value.
type QueryStats struct {
	// Driver is the backend name (Driver.Name()).
	Driver string

	// Operation names the Connection method invoked: "exec", "get_rows",
	// "get_values", "ping", "begin", "commit", "rollback", "close".
	Operation string

	SQL  string
	Args []Value

	Err error

	RowsAffected uint64
	LastInsertID Value

	StartedAt time.Time
	TimeTaken time.Duration
}

// Logger receives a QueryStats after every Connection operation. The core
// never installs one itself — logging, if any, is the caller's
// responsibility, opted into by wrapping a Connection with WithLogger.
type Logger interface {
	LogQuery(ctx context.Context, stats QueryStats)
}

// WithLogger wraps conn so every operation is reported to logger after it
// completes, successful or not. driverName is recorded on every QueryStats
// as Driver, since a Connection itself doesn't know its own adapter name.
func WithLogger(conn Connection, driverName string, logger Logger) Connection {
	return &loggingConnection{conn: conn, driverName: driverName, logger: logger}
}

type loggingConnection struct {
	conn       Connection
	driverName string
	logger     Logger
}

func (l *loggingConnection) report(ctx context.Context, op, sql string, args []Value, started time.Time, err error, rowsAffected uint64, lastInsertID Value) {
	l.logger.LogQuery(ctx, QueryStats{
		Driver:       l.driverName,
		Operation:    op,
		SQL:          sql,
		Args:         args,
		Err:          err,
		RowsAffected: rowsAffected,
		LastInsertID: lastInsertID,
		StartedAt:    started,
		TimeTaken:    time.Since(started),
	})
}

func (l *loggingConnection) GetRows(ctx context.Context, sql string, params []Value) ([]Row, error) {
	started := time.Now()
	rows, err := l.conn.GetRows(ctx, sql, params)
	l.report(ctx, "get_rows", sql, params, started, err, uint64(len(rows)), Null())
	return rows, err
}

func (l *loggingConnection) GetValues(ctx context.Context, sql string, params []Value) ([]Value, error) {
	started := time.Now()
	values, err := l.conn.GetValues(ctx, sql, params)
	l.report(ctx, "get_values", sql, params, started, err, uint64(len(values)), Null())
	return values, err
}

func (l *loggingConnection) Exec(ctx context.Context, sql string, params []Value) (ExecResult, error) {
	started := time.Now()
	res, err := l.conn.Exec(ctx, sql, params)
	l.report(ctx, "exec", sql, params, started, err, res.RowsAffected, res.LastInsertID)
	return res, err
}

func (l *loggingConnection) Ping(ctx context.Context) error {
	started := time.Now()
	err := l.conn.Ping(ctx)
	l.report(ctx, "ping", "", nil, started, err, 0, Null())
	return err
}

func (l *loggingConnection) Close(ctx context.Context) error {
	started := time.Now()
	err := l.conn.Close(ctx)
	l.report(ctx, "close", "", nil, started, err, 0, Null())
	return err
}

func (l *loggingConnection) Begin(ctx context.Context) error {
	started := time.Now()
	err := l.conn.Begin(ctx)
	l.report(ctx, "begin", "", nil, started, err, 0, Null())
	return err
}

func (l *loggingConnection) Commit(ctx context.Context) error {
	started := time.Now()
	err := l.conn.Commit(ctx)
	l.report(ctx, "commit", "", nil, started, err, 0, Null())
	return err
}

func (l *loggingConnection) Rollback(ctx context.Context) error {
	started := time.Now()
	err := l.conn.Rollback(ctx)
	l.report(ctx, "rollback", "", nil, started, err, 0, Null())
	return err
}

var _ Connection = (*loggingConnection)(nil)

// LogrusLogger adapts the standard Logger interface to
// github.com/sirupsen/logrus.
type LogrusLogger struct {
	Entry *logrus.Entry
}

// NewLogrusLogger builds a LogrusLogger around a fresh logrus.Logger with
// the given level.
func NewLogrusLogger(level logrus.Level) *LogrusLogger {
	l := logrus.New()
	l.SetLevel(level)
	return &LogrusLogger{Entry: logrus.NewEntry(l)}
}

func (l *LogrusLogger) LogQuery(ctx context.Context, stats QueryStats) {
	entry := l.Entry.WithFields(logrus.Fields{
		"driver":    stats.Driver,
		"operation": stats.Operation,
		"sql":       stats.SQL,
		"took":      stats.TimeTaken,
	})
	if stats.Err != nil {
		entry.WithError(stats.Err).Warn("rdbc: operation failed")
		return
	}
	entry.Debug("rdbc: operation completed")
}
