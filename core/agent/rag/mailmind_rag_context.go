package rag

import (
	"fmt"
	"strings"
)

// excerptLen bounds per-email body text in the rendered context so the
// prompt stays within token budget.
const excerptLen = 300

// BuildContext renders retrieval results as a text block for prompt
// insertion. An empty result list renders to the empty string; callers
// treat that as "no context available", not an error.
func BuildContext(results []SimilarEmail) string {
	if len(results) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\n--- RELEVANT PAST EMAIL CONTEXT (RAG) ---\n")
	b.WriteString("Here are similar past emails for context:\n\n")

	for i, email := range results {
		fmt.Fprintf(&b, "[Past Email %d] (Similarity: %.1f%%)\n", i+1, email.Similarity*100)
		fmt.Fprintf(&b, "From: %s\n", email.From)
		fmt.Fprintf(&b, "Subject: %s\n", email.Subject)
		fmt.Fprintf(&b, "Content: %s...\n\n", truncate(email.Body, excerptLen))
	}

	b.WriteString("--- END CONTEXT ---\n\n")
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
