package datatable

import "strings"

// Filter decides whether a row belongs to a view.
type Filter interface {
	// Evaluate reports whether row passes the filter.
	Evaluate(row Row) (bool, error)

	// Description returns a human readable form of the filter.
	Description() string
}

// FilterRows returns the rows matching a free-text search query, in input
// order. The query is trimmed; an empty query returns rows unchanged.
// A row matches when its id or any of its values contains the query,
// ignoring case.
func FilterRows(rows []Row, query string) []Row {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if matchesLower(r, needle) {
			out = append(out, r)
		}
	}
	return out
}

// MatchesQuery reports whether a single row matches a free-text query.
func MatchesQuery(row Row, query string) bool {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return true
	}
	return matchesLower(row, needle)
}

func matchesLower(row Row, needle string) bool {
	if strings.Contains(strings.ToLower(string(row.ID)), needle) {
		return true
	}
	for _, v := range row.Values {
		if strings.Contains(strings.ToLower(v.Formatted), needle) {
			return true
		}
	}
	return false
}

// ApplyFilter returns the rows for which f evaluates true, in input order.
// A nil filter passes every row.
func ApplyFilter(rows []Row, f Filter) ([]Row, error) {
	if f == nil {
		return rows, nil
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		ok, err := f.Evaluate(r)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}
