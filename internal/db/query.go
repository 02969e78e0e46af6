package db

import (
	"fmt"
	"strings"
)

// Query is the input for an FT.SEARCH over a hash index.
type Query struct {
	IndexName    string
	Query        string // FT query string, "*" for match-all
	Offset       int
	Limit        int
	ReturnFields []string // empty = all fields
}

// Result is the output of a search operation.
type Result struct {
	Total   int
	Entries []Entry
}

// Entry is a single document hit from a search.
type Entry struct {
	Key    string
	Fields map[string]string
}

// --- FT query clause helpers ---
//
// Callers compose clauses with strings.Join(parts, " ") for AND semantics.

// MatchAll is the FT.SEARCH wildcard query.
const MatchAll = "*"

// TagClause builds "@field:{v1 | v2}", OR semantics within one tag category.
func TagClause(field string, values []string) string {
	if len(values) == 0 {
		return ""
	}
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = tagEscaper.Replace(v)
	}
	return fmt.Sprintf("@%s:{%s}", field, strings.Join(escaped, " | "))
}

// NumericClause builds "@field:[min max]"; nil bounds become -inf/+inf.
func NumericClause(field string, minBound, maxBound *float64) string {
	lo, hi := "-inf", "+inf"
	if minBound != nil {
		lo = fmt.Sprintf("%g", *minBound)
	}
	if maxBound != nil {
		hi = fmt.Sprintf("%g", *maxBound)
	}
	return fmt.Sprintf("@%s:[%s %s]", field, lo, hi)
}

// And joins non-empty clauses into a conjunction, or MatchAll when none remain.
func And(clauses ...string) string {
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if c != "" {
			parts = append(parts, c)
		}
	}
	if len(parts) == 0 {
		return MatchAll
	}
	return strings.Join(parts, " ")
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)
