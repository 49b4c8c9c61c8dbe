package llm

import (
	"context"
	"fmt"
)

// GenerateReply drafts a short professional reply, informed by the
// retrieval context when one is available.
func (c *Client) GenerateReply(ctx context.Context, subject, snippet, ragContext string) (string, error) {
	systemPrompt := "You are an email assistant. Write a short, polite, professional reply. " +
		"Use the provided context from past emails to inform your response style and content."

	userPrompt := fmt.Sprintf(`%s
Subject: %s

Email Content:
%s

Write a reply message:`, ragContext, subject, truncateBody(snippet, snippetCap))

	return c.CompleteWithSystem(ctx, systemPrompt, userPrompt, 0.4, 300)
}
