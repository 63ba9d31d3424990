// Package deviation governs behavioral differences between backend
// adapters and whatever a caller might naively expect from them: each one
// is recorded as a Deviation with an ApprovalStatus, and Evaluate refuses to
// pass while any entry is Proposed or Rejected, so an unresolved or
// rejected deviation has to be seen before a release ships it.
package deviation

// ApprovalStatus tracks whether a Deviation has been reviewed and, if so,
// what was decided.
type ApprovalStatus int

const (
	// Approved deviations are known, reviewed, and accepted as permanent
	// behavior.
	Approved ApprovalStatus = iota
	// Proposed deviations are known but not yet reviewed; they block
	// Evaluate until resolved one way or the other.
	Proposed
	// Rejected deviations describe behavior the adapter must be fixed to
	// no longer exhibit; their presence in the registry is itself an
	// error.
	Rejected
	// NotADeviation records a behavior that looks surprising but is
	// intentional and requires no governance decision, kept in the
	// registry so the question isn't re-litigated later.
	NotADeviation
)

func (s ApprovalStatus) String() string {
	switch s {
	case Approved:
		return "APPROVED"
	case Proposed:
		return "PROPOSED"
	case Rejected:
		return "REJECTED"
	case NotADeviation:
		return "NOT_A_DEVIATION"
	default:
		return "UNKNOWN"
	}
}

// Deviation records one place where an adapter's behavior diverges from a
// naive expectation, along with its governance status and the scenarios
// that exercise it.
type Deviation struct {
	ID              string
	Title           string
	LinkedScenarios []string
	Status          ApprovalStatus
	Summary         string
	UserImpact      string
	Rationale       string
}

// Registry is the compile-time table of every known deviation for the
// adapters in this module. It currently carries the two deviations the
// turso adapter actually exhibits, plus one settled not-a-deviation entry.
var Registry = []Deviation{
	{
		ID:              "DEV-001",
		Title:           "column_type reports runtime value type, not declared schema type",
		LinkedScenarios: []string{"turso-metadata-column-type"},
		Status:          Approved,
		Summary:         "turso.metaData.ColumnType reports the runtime value type of the cell actually returned for this row (NULL/INTEGER/REAL/TEXT/BLOB), computed fresh per row, rather than the column's declared schema type: the embedded and remote backends only expose a value's runtime kind at the point a row is read.",
		UserImpact:      "Code that inspects MetaData.ColumnType expecting a fixed declared type per column (e.g. to decide how to render a NULL) instead sees the type of whatever value that specific row happens to hold, which can vary row to row under SQLite's dynamic typing.",
		Rationale:       "No declared-type API is available at the row-metadata layer for either backend; exposing a different signal here would mean synthesizing information from a separate schema query per column, adding a round trip no caller asked for.",
	},
	{
		ID:              "DEV-002",
		Title:           "last_insert_id stored as a signed I64 rather than an unsigned U64",
		LinkedScenarios: []string{"turso-exec-last-insert-id"},
		Status:          Proposed,
		Summary:         "ExecResult.LastInsertID from turso's Exec is Value(I64) whenever the backend reports an insert id (Null when it reports none), even though SQLite's own driver result type is untyped and the value is non-negative in the overwhelming majority of cases.",
		UserImpact:      "A caller that expects U64 specifically (to match some other backend's convention) must convert; I64 cannot represent rowids above math.MaxInt64, though SQLite itself never assigns one that large.",
		Rationale:       "SQLite/libsql rowids are defined as signed 64-bit integers at the storage layer, so I64 is the more faithful representation; this is recorded as Proposed rather than Approved because the convention is not yet settled across every adapter in the module.",
	},
	{
		ID:              "DEV-003",
		Title:           "TEXT columns are opportunistically decoded as JSON when json_detect is enabled",
		LinkedScenarios: []string{"turso-value-json-heuristic", "turso-value-boolean-as-integer"},
		Status:          NotADeviation,
		Summary:         "With ConnectOptions.JSONDetect set (the json_detect=true connection parameter), a TEXT value that looks like JSON (rdbc.IsJSONString) is decoded into Array/Map/scalar form rather than returned as a plain String; it is off by default. Independently, boolean values always round-trip as 0/1 integers rather than a dedicated boolean column type.",
		UserImpact:      "A caller who opts into json_detect and stores a literal string that happens to look like JSON (e.g. the four characters \"null\") will read back a decoded value instead of the original text; this is an accepted heuristic behavior, not a bug to fix, and does not affect callers who leave the default off.",
		Rationale:       "SQLite has no native JSON or boolean column type, so any representation choice here is a convention rather than a correctness question; this one matches how the wider SQLite ecosystem already treats TEXT/INTEGER storage classes, and keeping the heuristic opt-in avoids the literal text \"null\" becoming indistinguishable from SQL NULL for callers who never asked for JSON decoding.",
	},
}
