package filit

import (
	"fmt"
	"strconv"

	"github.com/poiesic/filit/core"
)

// maxCitations bounds the citation list per answer.
const maxCitations = 5

// greetingAnswer is returned for greetings and other simple queries
// without touching the search engine or the model.
const greetingAnswer = "Hello! I can help you analyze SEC filings for MAG7 stocks. " +
	"Try asking about financial metrics, risks, or business strategies for companies like AAPL, TSLA, NVDA, etc."

// notFoundAnswer is returned when retrieval produced no passages.
func notFoundAnswer(ticker string) string {
	return fmt.Sprintf("I couldn't find relevant information about %s in the SEC filings. "+
		"Please try fetching the latest filings first.", ticker)
}

// credentialAnswer maps a provider to a remediation message for API
// key failures.
func credentialAnswer(provider string) string {
	switch provider {
	case "openai":
		return "OpenAI API key is invalid or expired. Set OPENAI_API_KEY to a valid key from https://platform.openai.com/api-keys"
	case "anthropic":
		return "Anthropic API key is invalid or expired. Set ANTHROPIC_API_KEY to a valid key from https://console.anthropic.com/settings/keys"
	default:
		return fmt.Sprintf("The API key for provider %q is invalid or expired. Please update the configured credentials.", provider)
	}
}

// summarizeFlags renders the retrieval flags as a human-readable
// string carried on every answer.
func summarizeFlags(flags core.RetrievalFlags) string {
	return fmt.Sprintf("rerank=%s, rewrite=%s, cache=%s, section_boost=%s, reranker=builtin",
		onOff(flags.Rerank),
		onOff(flags.QueryRewrite),
		onOff(flags.RetrievalCache),
		onOff(flags.SectionBoost))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// buildCitations points each of the first passages back at its filing.
func buildCitations(ticker string, passages []core.Passage) []core.Citation {
	if len(passages) > maxCitations {
		passages = passages[:maxCitations]
	}

	citations := make([]core.Citation, 0, len(passages))
	for i, p := range passages {
		c := core.Citation{
			Ticker:     ticker,
			FormType:   "10-K",
			ChunkIndex: i,
			Source:     "sec",
		}
		if ft := p.Metadata["form_type"]; ft != "" {
			c.FormType = ft
		}
		if src := p.Metadata["source"]; src != "" {
			c.Source = src
		}
		if year, err := strconv.Atoi(p.Metadata["year"]); err == nil {
			c.Year = year
		}
		citations = append(citations, c)
	}
	return citations
}
