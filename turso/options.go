package turso

import (
	"context"
	"net/url"
	"strings"

	"github.com/relaydb/rdbc"
)

// ConnectOptions configures a turso Connection. A database is addressed in
// one of three ways:
//
//   - in-memory:    turso://:memory:           (or an empty URI)
//   - local file:   turso://path/to/file.db
//   - remote libsql: turso://?url=libsql://host&token=TOKEN
//
// A remote target may also be given directly as a libsql://, https://, or
// http:// URL in the url field, without going through the turso:// scheme.
type ConnectOptions struct {
	URL        string
	AuthToken  string
	InMemory   bool
	JSONDetect bool
}

// DefaultConnectOptions returns the default configuration: an in-memory
// database, matching turso's zero-config default.
func DefaultConnectOptions() *ConnectOptions {
	return &ConnectOptions{InMemory: true}
}

// IsRemote reports whether URL points at a remote libsql server rather
// than a local file or in-memory database.
func (o *ConnectOptions) IsRemote() bool {
	return strings.HasPrefix(o.URL, "libsql://") ||
		strings.HasPrefix(o.URL, "https://") ||
		strings.HasPrefix(o.URL, "http://")
}

// Validate checks that the configured options describe a connectable
// database: URL must be non-empty unless InMemory is set, and a remote URL
// requires an auth token.
func (o *ConnectOptions) Validate() error {
	if o.InMemory {
		return nil
	}
	if o.URL == "" {
		return rdbc.Errorf("turso: no database path, :memory:, or remote url configured")
	}
	if o.IsRemote() && o.AuthToken == "" {
		return rdbc.Errorf("turso: remote url %q requires an auth token", o.URL)
	}
	return nil
}

// SetURI parses a turso:// URI (or a bare libsql/https/http remote URL)
// into the receiver, replacing its current fields.
//
// The path after the scheme is interpreted first: ":memory:" or an empty
// path means in-memory, otherwise it is the local file path. A query
// string of ?url=...&token=... may follow and overrides the path-derived
// url; "url", "token" and "json_detect" ("true" or "1" sets JSONDetect) are
// the only recognized keys, and any other key is an error. Validate runs at
// the end, so a malformed or incomplete configuration fails here rather
// than at Connect time.
func (o *ConnectOptions) SetURI(uri string) error {
	rest := uri
	switch {
	case strings.HasPrefix(rest, "turso://"):
		rest = strings.TrimPrefix(rest, "turso://")
	case strings.HasPrefix(rest, "turso:"):
		return rdbc.Errorf("turso: scheme %q requires \"//\" (turso://...), got bare \"turso:\"", uri)
	}

	path := rest
	query := ""
	if idx := strings.IndexByte(rest, '?'); idx >= 0 {
		path = rest[:idx]
		query = rest[idx+1:]
	}

	*o = ConnectOptions{}

	if path == "" || path == ":memory:" {
		o.InMemory = true
	} else {
		o.URL = path
	}

	if query != "" {
		values, err := url.ParseQuery(query)
		if err != nil {
			return rdbc.WrapError(err, "parsing turso connection query")
		}
		for key := range values {
			if key != "url" && key != "token" && key != "json_detect" {
				return rdbc.Errorf("turso: unrecognized connection parameter %q", key)
			}
		}
		if explicit := values.Get("url"); explicit != "" {
			o.URL = explicit
			o.InMemory = false
		}
		if token := values.Get("token"); token != "" {
			o.AuthToken = token
		}
		if jd := values.Get("json_detect"); jd != "" {
			o.JSONDetect = jd == "true" || jd == "1"
		}
	}

	return o.Validate()
}

// Connect opens a Connection using the currently configured options,
// dispatching to the embedded or remote implementation based on IsRemote.
func (o *ConnectOptions) Connect(ctx context.Context) (rdbc.Connection, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.IsRemote() {
		return connectRemote(ctx, o)
	}
	return connectEmbedded(ctx, o)
}

var _ rdbc.ConnectOptions = (*ConnectOptions)(nil)
