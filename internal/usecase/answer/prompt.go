package answer

import (
	"strconv"
	"strings"

	"github.com/kailas-cloud/searchproxy/internal/domain"
	"github.com/kailas-cloud/searchproxy/internal/domain/search/result"
)

const defaultSystemPrompt = `You are a helpful assistant that answers the user's question using the search results below.
Be concise. Reply in the language of the question. If the results do not contain the answer, say so.

Search results:
`

// formatResults renders results as a numbered block, one title and snippet per entry.
func formatResults(results []result.Text, includeURLs bool) string {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(r.Title())
		b.WriteByte('\n')
		b.WriteString(r.Snippet())
		if includeURLs {
			b.WriteString("\nSource: ")
			b.WriteString(r.URL())
		}
	}
	return b.String()
}

func buildMessages(systemPrompt, query string, results []result.Text, includeURLs bool) []domain.Message {
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}
	return []domain.Message{
		{Role: domain.RoleSystem, Content: systemPrompt + formatResults(results, includeURLs)},
		{Role: domain.RoleUser, Content: query},
	}
}
