package turso

import "github.com/relaydb/rdbc"

// wrapErr stringifies a foreign error (mattn/go-sqlite3's driver errors, or
// an HTTP/JSON transport error from the remote client) at the adapter
// boundary, same as every other backend adapter.
func wrapErr(err error, context string) error {
	return rdbc.WrapError(err, context)
}
