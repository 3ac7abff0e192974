// Package listquery turns list request parameters into a filtered, paginated query.
//
// A Query carries a Filter (an ordered conjunction of case-insensitive "contains" predicates)
// and normalized Params. Repositories render the same Filter for both the count query and the
// page query so the two always agree on which rows match.
package listquery

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Defaults holds the fallback pagination values.
type Defaults struct {
	Page        int
	PageSize    int
	MaxPageSize int // zero disables the cap
}

// StandardDefaults are page=1, pageSize=10, capped at 100.
var StandardDefaults = Defaults{Page: 1, PageSize: 10, MaxPageSize: 100}

// Params are normalized pagination parameters; both fields are always >= 1.
type Params struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Skip is the number of leading rows to omit.
func (p Params) Skip() int { return (p.Page - 1) * p.PageSize }

// Take is the maximum number of rows to return.
func (p Params) Take() int { return p.PageSize }

// ParseParams reads `page` and `pageSize` from the query string.
// Missing, unparseable or non-positive values fall back to the defaults.
func ParseParams(values url.Values, d Defaults) Params {
	if d.Page < 1 {
		d.Page = 1
	}
	if d.PageSize < 1 {
		d.PageSize = StandardDefaults.PageSize
	}
	p := Params{
		Page:     positiveOr(values.Get("page"), d.Page),
		PageSize: positiveOr(values.Get("pageSize"), d.PageSize),
	}
	if d.MaxPageSize > 0 && p.PageSize > d.MaxPageSize {
		p.PageSize = d.MaxPageSize
	}
	return p
}

func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Contains is a case-insensitive substring predicate on a single column.
type Contains struct {
	Field string
	Value string
}

// Filter is an ordered conjunction of Contains predicates.
type Filter struct {
	predicates []Contains
}

// Contains adds a predicate. Empty values are omitted entirely.
// Field must be a trusted column name; it is rendered into SQL as-is.
func (f Filter) Contains(field, value string) Filter {
	if value == "" {
		return f
	}
	next := make([]Contains, len(f.predicates), len(f.predicates)+1)
	copy(next, f.predicates)
	f.predicates = append(next, Contains{Field: field, Value: value})
	return f
}

// Predicates returns a copy of the predicates in insertion order.
func (f Filter) Predicates() []Contains {
	out := make([]Contains, len(f.predicates))
	copy(out, f.predicates)
	return out
}

// IsEmpty reports whether the filter matches every row.
func (f Filter) IsEmpty() bool { return len(f.predicates) == 0 }

// Where renders the filter as a SQL WHERE clause using positional arguments starting at $startArg.
// An empty filter renders an empty clause.
func (f Filter) Where(startArg int) (string, []any) {
	if f.IsEmpty() {
		return "", nil
	}
	clauses := make([]string, 0, len(f.predicates))
	args := make([]any, 0, len(f.predicates))
	for i, p := range f.predicates {
		clauses = append(clauses, fmt.Sprintf(`%s ILIKE $%d ESCAPE '\'`, p.Field, startArg+i))
		args = append(args, "%"+EscapeLike(p.Value)+"%")
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so value matches literally.
func EscapeLike(value string) string {
	return likeEscaper.Replace(value)
}

// Query is what list repositories receive.
type Query struct {
	Filter Filter
	Params Params
}

// Key returns a stable textual form of the query, used for cache keys.
func (q Query) Key() string {
	var b strings.Builder
	for _, p := range q.Filter.predicates {
		fmt.Fprintf(&b, "%s=%q;", p.Field, p.Value)
	}
	fmt.Fprintf(&b, "page=%d;pageSize=%d", q.Params.Page, q.Params.PageSize)
	return b.String()
}

// Page is one page of results plus the unpaginated total.
type Page[T any] struct {
	Items  []T
	Total  int64
	Params Params
}
