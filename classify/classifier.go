package classify

import (
	"strings"

	"github.com/poiesic/filit/core"
)

// simpleWords are greetings, acknowledgments, and help requests that
// need no retrieval or generation at all.
var simpleWords = map[string]bool{
	"hello": true, "hi": true, "hey": true, "greetings": true,
	"thanks": true, "thank you": true, "thx": true,
	"ok": true, "okay": true, "got it": true,
	"bye": true, "goodbye": true, "see you": true,
	"help": true, "?": true,
}

// categories are evaluated in order; the first keyword hit wins. The
// ordering is a deliberate tie-break: a question mentioning both "risk"
// and "revenue" classifies as risk_analysis. Keep it stable.
var categories = []struct {
	task     core.TaskType
	keywords []string
}{
	{core.TaskRiskAnalysis, []string{
		"risk", "threat", "challenge", "concern", "vulnerability",
		"danger", "exposure", "uncertainty",
	}},
	{core.TaskFinancialMetrics, []string{
		"revenue", "profit", "margin", "earnings", "financial", "income",
		"eps", "ebitda", "cash flow", "debt", "assets", "liabilities",
		"balance sheet", "cost", "expense", "sales",
	}},
	{core.TaskTrendAnalysis, []string{
		"trend", "over time", "change", "growth", "historical",
		"compare year", "yoy", "year over year", "quarter", "qoq",
		"increase", "decrease", "trajectory",
	}},
	{core.TaskSummary, []string{
		"summary", "overview", "summarize", "key points", "main",
		"highlight", "brief", "outlook", "strategy", "business",
	}},
}

// Classify maps a question to its task category. It is pure and does
// no I/O: simple-query detection first, then ordered case-insensitive
// keyword matching, falling back to general.
func Classify(question string) core.TaskType {
	if IsSimple(question) {
		return core.TaskSimple
	}

	q := strings.ToLower(question)
	for _, c := range categories {
		for _, kw := range c.keywords {
			if strings.Contains(q, kw) {
				return c.task
			}
		}
	}
	return core.TaskGeneral
}

// IsSimple reports whether the question is a greeting, acknowledgment,
// or help request. A question qualifies when the whole trimmed
// lowercased string is a simple word, or when it has at most two tokens
// and every token is one.
func IsSimple(question string) bool {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return false
	}
	if simpleWords[q] {
		return true
	}

	words := strings.Fields(q)
	if len(words) == 0 || len(words) > 2 {
		return false
	}
	for _, w := range words {
		if !simpleWords[w] {
			return false
		}
	}
	return true
}
