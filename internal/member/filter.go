package member

import "strings"

// Matches reports whether query occurs, case-insensitively, in the record's
// name, email or role. An empty query matches every record.
func Matches(r Record, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Email), q) ||
		strings.Contains(strings.ToLower(r.Role), q)
}

// Filter returns the records matching query in their original order.
func Filter(records []Record, query string) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if Matches(r, query) {
			out = append(out, r)
		}
	}
	return out
}
