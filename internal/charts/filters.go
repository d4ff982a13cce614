package charts

import (
	"net/url"
	"strconv"
	"strings"
)

// FilterKind distinguishes the two predicate families the chart endpoints
// accept from the query string.
type FilterKind int

const (
	Categorical FilterKind = iota
	Numerical
)

// FilterDef binds a whitelisted request key to a SQL column (or expression).
// Only keys present in a definition list can ever reach a column name; this
// is the injection boundary for the whole chart surface.
type FilterDef struct {
	Key    string
	Column string
	Kind   FilterKind
}

// selectSentinel is the UI placeholder value that must never leak into a
// query; it means "no filter" for both kinds.
const selectSentinel = "Select"

// ApplyFilter appends one predicate to query and its bound values to args.
// Values are always bound as parameters, never interpolated. Anything
// unparseable is a silent no-op, never an error.
func ApplyFilter(query string, args []interface{}, column, raw string, kind FilterKind) (string, []interface{}) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == selectSentinel {
		return query, args
	}
	column = strings.ToLower(column)

	switch kind {
	case Categorical:
		values := splitCSV(raw)
		switch len(values) {
		case 0:
			return query, args
		case 1:
			query += " AND " + column + " = ?"
			args = append(args, values[0])
		default:
			query += " AND " + column + " IN (?" + strings.Repeat(", ?", len(values)-1) + ")"
			for _, v := range values {
				args = append(args, v)
			}
		}
		return query, args

	case Numerical:
		return applyNumericFilter(query, args, column, raw)
	}

	return query, args
}

func applyNumericFilter(query string, args []interface{}, column, raw string) (string, []interface{}) {
	switch {
	case strings.Contains(raw, "-"):
		parts := strings.SplitN(raw, "-", 2)
		min, minOK := parseNumber(parts[0])
		max, maxOK := parseNumber(parts[1])
		switch {
		case minOK && maxOK:
			query += " AND " + column + " BETWEEN ? AND ?"
			args = append(args, min, max)
		case minOK:
			query += " AND " + column + " >= ?"
			args = append(args, min)
		case maxOK:
			query += " AND " + column + " <= ?"
			args = append(args, max)
		}
	case strings.HasPrefix(raw, ">"):
		if n, ok := parseNumber(raw[1:]); ok {
			query += " AND " + column + " > ?"
			args = append(args, n)
		}
	case strings.HasPrefix(raw, "<"):
		if n, ok := parseNumber(raw[1:]); ok {
			query += " AND " + column + " < ?"
			args = append(args, n)
		}
	default:
		if n, ok := parseNumber(raw); ok {
			query += " AND " + column + " = ?"
			args = append(args, n)
		}
	}
	return query, args
}

// ApplyFilters walks the definition list in order and applies every filter
// the request supplied a value for. Request keys without a definition are
// ignored (whitelist semantics).
func ApplyFilters(query string, args []interface{}, defs []FilterDef, values url.Values) (string, []interface{}) {
	for _, def := range defs {
		raw := values.Get(def.Key)
		if raw == "" {
			continue
		}
		query, args = ApplyFilter(query, args, def.Column, raw, def.Kind)
	}
	return query, args
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == selectSentinel {
			continue
		}
		out = append(out, part)
	}
	return out
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
