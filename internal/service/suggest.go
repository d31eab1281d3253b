package service

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/memberadmin/internal/member"
)

// Suggest returns the name/email/role token closest to query by edit
// distance, for hinting when a search matches nothing. It returns "" when
// query is empty or no token is closer than the query's own length.
func Suggest(records []member.Record, query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ""
	}
	best, bestDist := "", len([]rune(q))
	seen := make(map[string]struct{})
	for _, r := range records {
		for _, field := range []string{r.Name, r.Email, r.Role} {
			for _, tok := range tokenize(field) {
				if _, ok := seen[tok]; ok {
					continue
				}
				seen[tok] = struct{}{}
				if d := levenshtein.ComputeDistance(q, tok); d < bestDist {
					best, bestDist = tok, d
				}
			}
		}
	}
	return best
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == '@' || r == '.' || r == '-' || r == '_' || r == '\t'
	})
}
