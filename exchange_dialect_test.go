package rdbc

import (
	"database/sql"
	"flag"
	"testing"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// The Postgres, MySQL and SQL Server DSNs for the parity tests below are off
// by default (unset flags mean "skip"), matching the teacher's own
// integration_test.go convention for tests that need a real server. The
// sqlite case uses a fixed in-memory DSN and always runs.
var (
	postgresDSN  = flag.String("postgres", "", "postgres DSN for dialect parity tests")
	mysqlDSN     = flag.String("mysql", "", "mysql DSN for dialect parity tests")
	sqlserverDSN = flag.String("sqlserver", "", "sqlserver DSN for dialect parity tests")
)

// dialectCase names one backend's native placeholder convention.
// MySQL and SQLite already use bare, unnumbered '?' natively, so their
// Driver.Exchange is the identity function; numbered rewriting only
// applies to Postgres ($N) and SQL Server (@pN). rewrite is nil for the
// identity cases.
type dialectCase struct {
	name    string
	driver  string
	dsn     string
	rewrite func(sql string) string
}

var dialectCases = []dialectCase{
	{name: "sqlite", driver: "sqlite3", dsn: "file::memory:?cache=shared"},
	{name: "postgres", driver: "postgres", rewrite: func(sql string) string { return Exchange("$", 1, sql) }},
	{name: "mysql", driver: "mysql"},
	{name: "sqlserver", driver: "sqlserver", rewrite: func(sql string) string { return Exchange("@p", 1, sql) }},
}

func TestExchangeDialectParity(t *testing.T) {
	dialectCases[1].dsn = *postgresDSN
	dialectCases[2].dsn = *mysqlDSN
	dialectCases[3].dsn = *sqlserverDSN

	for _, tc := range dialectCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if tc.dsn == "" {
				t.Skip("no dsn configured for this dialect")
			}
			db, err := sql.Open(tc.driver, tc.dsn)
			if err != nil {
				t.Fatal(err)
			}
			defer db.Close()

			sql := "SELECT ? + ?"
			if tc.rewrite != nil {
				sql = tc.rewrite(sql)
			}
			row := db.QueryRow(sql, 1, 2)
			var sum int
			if err := row.Scan(&sum); err != nil {
				t.Fatalf("query %q failed against %s: %v", sql, tc.name, err)
			}
			if sum != 3 {
				t.Errorf("got %d, want 3", sum)
			}
		})
	}
}
