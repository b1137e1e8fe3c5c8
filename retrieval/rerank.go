package retrieval

import (
	"sort"
	"strings"

	"github.com/poiesic/filit/core"
)

// mdaMarkers identify management-discussion sections for the
// trend-analysis boost.
var mdaMarkers = []string{"md&a", "management", "analysis"}

// Boost weights applied on top of token overlap. Tunable, but changing
// them changes ranking behavior across deployments.
const (
	riskSectionBoost = 2
	mdaSectionBoost  = 1
)

// scorePassage computes a lightweight relevance score: the number of
// question tokens appearing as substrings in the passage text, plus a
// section-aware bonus when enabled.
func scorePassage(question string, p core.Passage, task core.TaskType, sectionBoost bool) int {
	text := strings.ToLower(p.Text)

	seen := make(map[string]bool)
	score := 0
	for _, token := range strings.Fields(strings.ToLower(question)) {
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		if strings.Contains(text, token) {
			score++
		}
	}

	if sectionBoost {
		section := strings.ToLower(p.Section())
		switch {
		case task == core.TaskRiskAnalysis && strings.Contains(section, "risk"):
			score += riskSectionBoost
		case task == core.TaskTrendAnalysis && containsAny(section, mdaMarkers):
			score += mdaSectionBoost
		}
	}
	return score
}

// rerank orders passages by descending relevance score and truncates to
// topK. The sort is stable: equal-scored passages keep their fan-out
// order. Scores are written back onto the returned passages.
func rerank(question string, passages []core.Passage, task core.TaskType, topK int, sectionBoost bool) []core.Passage {
	if len(passages) == 0 {
		return passages
	}

	scored := make([]core.Passage, len(passages))
	copy(scored, passages)
	for i := range scored {
		scored[i].Score = float64(scorePassage(question, scored[i], task, sectionBoost))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return truncate(scored, topK)
}

func truncate(passages []core.Passage, topK int) []core.Passage {
	if topK > 0 && len(passages) > topK {
		return passages[:topK]
	}
	return passages
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
