package rdbc

import (
	"strings"
	"testing"
)

func TestExchangeConcrete(t *testing.T) {
	tests := []struct {
		name      string
		startStr  string
		startNum  uint64
		sql       string
		want      string
	}{
		{
			name:     "three placeholders dollar",
			startStr: "$",
			startNum: 1,
			sql:      "INSERT INTO t VALUES (?, ?, ?)",
			want:     "INSERT INTO t VALUES ($1, $2, $3)",
		},
		{
			name:     "offset start num",
			startStr: "$",
			startNum: 5,
			sql:      "VALUES (?, ?, ?)",
			want:     "VALUES ($5, $6, $7)",
		},
		{
			name:     "escaped question mark",
			startStr: "$",
			startNum: 1,
			sql:      `SELECT '\?' ?`,
			want:     "SELECT '?' $1",
		},
		{
			name:     "at-P placeholder style",
			startStr: "@P",
			startNum: 1,
			sql:      "VALUES (?,?,?,?,?,?,?,?,?,?,?,?)",
			want:     "VALUES (@P1,@P2,@P3,@P4,@P5,@P6,@P7,@P8,@P9,@P10,@P11,@P12)",
		},
		{
			name:     "no placeholders is identity",
			startStr: "$",
			startNum: 1,
			sql:      "SELECT 1",
			want:     "SELECT 1",
		},
		{
			name:     "escape law regardless of prefix",
			startStr: "@P",
			startNum: 99,
			sql:      `\?`,
			want:     "?",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Exchange(tt.startStr, tt.startNum, tt.sql)
			if got != tt.want {
				t.Errorf("Exchange(%q, %d, %q) = %q, want %q", tt.startStr, tt.startNum, tt.sql, got, tt.want)
			}
		})
	}
}

func TestExchangeCountingLaw(t *testing.T) {
	sql := "SELECT * FROM t WHERE a = ? AND b = ? OR c = ?"
	got := Exchange("$", 10, sql)
	want := "SELECT * FROM t WHERE a = $10 AND b = $11 OR c = $12"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if n := strings.Count(sql, "?"); n != 3 {
		t.Fatalf("test sql must contain exactly 3 placeholders, got %d", n)
	}
}

func TestExchangeIdentityWithoutPlaceholders(t *testing.T) {
	samples := []string{
		"",
		"SELECT 1",
		"SELECT 'hello world'",
		"-- a comment\nSELECT 1",
	}
	for _, s := range samples {
		if got := Exchange("$", 1, s); got != s {
			t.Errorf("Exchange on %q should be identity, got %q", s, got)
		}
	}
}

func TestExchangeUTF8Passthrough(t *testing.T) {
	sql := "SELECT '日本語' WHERE id = ?"
	got := Exchange("$", 1, sql)
	want := "SELECT '日本語' WHERE id = $1"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
