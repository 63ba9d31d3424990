package rdbc

import "strings"

// FormatPgArray renders elems as a Postgres native array literal, e.g.
// {a,"b c",NULL}. A backend whose native wire format understands ARRAY
// types can use this instead of the generic Array-as-JSON-text fallback,
// at the Ext tag "PgArray".
//
// Only string elements are supported; callers format numeric/boolean
// elements to their plain decimal/true/false form themselves before
// calling this.
func FormatPgArray(elems []string) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range elems {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(quotePgArrayElement(e))
	}
	b.WriteByte('}')
	return b.String()
}

func quotePgArrayElement(s string) string {
	if s == "" {
		return `""`
	}
	if !needsPgArrayQuoting(s) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

func needsPgArrayQuoting(s string) bool {
	if strings.EqualFold(s, "null") {
		return true
	}
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '}', ',', '"', '\\', ' ':
			return true
		}
	}
	return false
}

// ParsePgArray parses a single-dimension Postgres array literal back into
// its string elements, honoring double-quoted elements and backslash
// escapes. Nested arrays (multi-dimensional literals) are not supported.
func ParsePgArray(literal string) ([]string, error) {
	s := strings.TrimSpace(literal)
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return nil, Errorf("not a postgres array literal: %q", literal)
	}
	body := s[1 : len(s)-1]
	if body == "" {
		return []string{}, nil
	}

	var elems []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c == '\\' && i+1 < len(body):
			cur.WriteByte(body[i+1])
			i++
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			elems = append(elems, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	elems = append(elems, cur.String())
	return elems, nil
}
