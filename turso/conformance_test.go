package turso

import (
	"context"
	"os"
	"testing"

	"github.com/relaydb/rdbc"
)

// conformanceScenario is one literal I/O case run against every mode under
// test, so embedded and remote stay behaviorally identical for the
// conversions this package is responsible for.
type conformanceScenario struct {
	name   string
	param  rdbc.Value
	verify func(t *testing.T, got rdbc.Value)
}

var conformanceScenarios = []conformanceScenario{
	{
		name:  "integer",
		param: rdbc.NewI64(42),
		verify: func(t *testing.T, got rdbc.Value) {
			n, ok := got.I64()
			if !ok || n != 42 {
				t.Errorf("got %#v, want I64(42)", got)
			}
		},
	},
	{
		name:  "real",
		param: rdbc.NewF64(1.5),
		verify: func(t *testing.T, got rdbc.Value) {
			f, ok := got.F64()
			if !ok || f != 1.5 {
				t.Errorf("got %#v, want F64(1.5)", got)
			}
		},
	},
	{
		name:  "text",
		param: rdbc.NewString("plain text"),
		verify: func(t *testing.T, got rdbc.Value) {
			s, ok := got.String()
			if !ok || s != "plain text" {
				t.Errorf("got %#v, want String(plain text)", got)
			}
		},
	},
	{
		name:  "null",
		param: rdbc.Null(),
		verify: func(t *testing.T, got rdbc.Value) {
			if !got.IsNull() {
				t.Errorf("got %#v, want Null", got)
			}
		},
	},
}

// runConformanceSuite binds each scenario's param through a round trip
// ("select ? as v") on conn and checks the returned value, so the same
// assertions can run against both the embedded and the remote connection.
func runConformanceSuite(t *testing.T, ctx context.Context, conn rdbc.Connection) {
	t.Helper()
	for _, sc := range conformanceScenarios {
		t.Run(sc.name, func(t *testing.T) {
			rows, err := conn.GetRows(ctx, "select ? as v", []rdbc.Value{sc.param})
			if err != nil {
				t.Fatal(err)
			}
			if len(rows) != 1 {
				t.Fatalf("got %d rows, want 1", len(rows))
			}
			v, err := rows[0].Get(0)
			if err != nil {
				t.Fatal(err)
			}
			sc.verify(t, v)
		})
	}
}

func TestConformanceEmbedded(t *testing.T) {
	ctx := context.Background()
	conn := newEmbeddedConn(t)
	runConformanceSuite(t, ctx, conn)
}

// TestConformanceRemote runs the same scenarios against a live remote
// server named by RDBC_TURSO_REMOTE_URL (and RDBC_TURSO_REMOTE_TOKEN for
// its auth token), skipping when unset — there is no local fake standing
// in for a real libsql endpoint here.
func TestConformanceRemote(t *testing.T) {
	url := os.Getenv("RDBC_TURSO_REMOTE_URL")
	if url == "" {
		t.Skip("RDBC_TURSO_REMOTE_URL not set, skipping remote conformance run")
	}
	ctx := context.Background()
	opt := &ConnectOptions{URL: url, AuthToken: os.Getenv("RDBC_TURSO_REMOTE_TOKEN")}
	conn, err := opt.Connect(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close(ctx)
	runConformanceSuite(t, ctx, conn)
}
