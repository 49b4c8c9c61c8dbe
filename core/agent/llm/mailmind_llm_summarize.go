package llm

import (
	"context"
	"fmt"
)

// snippetCap bounds inbound email text to avoid token overload.
const snippetCap = 2000

// SummarizeEmail produces the structured summary shown in the email
// list. ragContext may be empty; similarCount is the number of past
// emails the context was built from.
func (c *Client) SummarizeEmail(ctx context.Context, subject, snippet, from, date, ragContext string, similarCount int) (string, error) {
	contextLine := ""
	if similarCount > 0 {
		contextLine = fmt.Sprintf("🔍 Context: Based on %d previous emails from this sender", similarCount)
	}

	prompt := fmt.Sprintf(`You are an email assistant with access to past email context.

%s

Summarize this email clearly in this format:

📩 From: ...
📅 Received Date: ...
⏳ Deadline: (if mentioned)
📌 Summary: (2-3 lines)
%s

Email:

Subject: %s
From: %s
Received: %s

Body:
%s`, ragContext, contextLine, subject, from, date, truncateBody(snippet, snippetCap))

	return c.Complete(ctx, prompt, 0.3, 500)
}
