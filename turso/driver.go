// Package turso is a representative adapter over SQLite-family databases in
// both their embedded and libsql-remote forms: the same Driver and
// ConnectOptions pair opens either a local/in-memory database via
// mattn/go-sqlite3's database/sql/driver surface, or a remote libsql server
// via a small HTTP/JSON statement pipeline, depending on how the
// ConnectOptions is configured.
package turso

import (
	"context"

	"github.com/relaydb/rdbc"
)

// Driver implements rdbc.Driver for turso-addressed databases.
type Driver struct{}

// New returns a turso Driver. There is no per-driver state: every option
// lives on the ConnectOptions passed to ConnectOpt.
func New() Driver { return Driver{} }

func (Driver) Name() string { return "turso" }

func (d Driver) Connect(ctx context.Context, uri string) (rdbc.Connection, error) {
	opt := d.DefaultOption()
	if err := opt.SetURI(uri); err != nil {
		return nil, err
	}
	return opt.Connect(ctx)
}

func (Driver) ConnectOpt(ctx context.Context, opts rdbc.ConnectOptions) (rdbc.Connection, error) {
	o, ok := opts.(*ConnectOptions)
	if !ok {
		return nil, rdbc.Errorf("turso: ConnectOpt called with a foreign ConnectOptions")
	}
	return o.Connect(ctx)
}

func (Driver) DefaultOption() rdbc.ConnectOptions {
	return DefaultConnectOptions()
}

// Exchange is a pure passthrough: SQLite and libsql both bind parameters
// positionally with '?', the same portable placeholder rdbc.Exchange takes
// as input, so no rewriting is needed.
func (Driver) Exchange(sql string) string { return sql }

var _ rdbc.Driver = Driver{}
