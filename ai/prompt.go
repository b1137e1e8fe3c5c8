package ai

import (
	"fmt"
	"strings"

	"github.com/poiesic/filit/core"
)

const (
	// maxPromptPassages bounds filing excerpts per prompt; the answer
	// quality gain past three is marginal and the token cost is not.
	maxPromptPassages = 3

	// maxPassageChars truncates each excerpt.
	maxPassageChars = 300
)

// SystemPrompt frames the model as a filings analyst.
const SystemPrompt = `You are a financial analyst. Analyze SEC filings and provide clear, concise answers.
Include key data points and cite sources. Keep responses under 250 words and focus on the most relevant information.`

// BuildUserPrompt assembles the question, company, and numbered filing
// excerpts into a compact prompt.
func BuildUserPrompt(question, ticker string, passages []core.Passage) string {
	var b strings.Builder
	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteString("\nCompany: ")
	b.WriteString(ticker)
	b.WriteString("\n\nSEC Filing Excerpts:\n")
	b.WriteString(formatPassages(passages))
	b.WriteString("\n\nAnswer:")
	return b.String()
}

// formatPassages renders each passage as "[i] FORM: text", truncated
// and capped at maxPromptPassages.
func formatPassages(passages []core.Passage) string {
	if len(passages) == 0 {
		return "No relevant documents found."
	}
	if len(passages) > maxPromptPassages {
		passages = passages[:maxPromptPassages]
	}

	lines := make([]string, 0, len(passages))
	for i, p := range passages {
		formType := p.Metadata["form_type"]
		if formType == "" {
			formType = "10-K"
		}
		text := p.Text
		if len(text) > maxPassageChars {
			text = text[:maxPassageChars]
		}
		lines = append(lines, fmt.Sprintf("[%d] %s: %s", i+1, formType, text))
	}
	return strings.Join(lines, "\n")
}
