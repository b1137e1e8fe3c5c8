package retrieval

import "strings"

// expandQuery derives additional query variants from the question using
// deterministic heuristics; no model call is involved. The original
// question always comes first, variants keep their generation order,
// and duplicates are dropped.
func expandQuery(question, ticker string) []string {
	lower := strings.ToLower(question)

	var expansions []string
	if ticker != "" && !strings.Contains(lower, strings.ToLower(ticker)) {
		expansions = append(expansions, ticker+" "+question)
	}
	if !strings.Contains(lower, "10-k") {
		expansions = append(expansions, question+" 10-K filing")
	}
	if strings.Contains(lower, "risk") {
		expansions = append(expansions, question+" risk factors")
	}

	seen := make(map[string]bool, 1+len(expansions))
	queries := make([]string, 0, 1+len(expansions))
	for _, q := range append([]string{question}, expansions...) {
		if seen[q] {
			continue
		}
		seen[q] = true
		queries = append(queries, q)
	}
	return queries
}
