package llm

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
)

// FollowUp is a reminder suggestion for an email that may need one.
type FollowUp struct {
	Reminder          string `json:"reminder"`
	DaysUntilFollowUp int    `json:"days_until_follow_up"`
}

// defaultFollowUp is returned whenever the model output cannot be
// parsed; a generic reminder beats no reminder.
func defaultFollowUp(subject string) *FollowUp {
	return &FollowUp{
		Reminder:          "Follow up on: " + subject,
		DaysUntilFollowUp: 3,
	}
}

// GenerateFollowUp asks the model for a follow-up reminder. Transport
// failures propagate; unparseable output degrades to a default.
func (c *Client) GenerateFollowUp(ctx context.Context, subject, snippet, from, date string) (*FollowUp, error) {
	systemPrompt := `You are an email assistant. Generate a concise follow-up reminder. ` +
		`Return ONLY a JSON object with this structure: {"reminder": "short reminder text", "days_until_follow_up": number}. ` +
		`No markdown, no extra text.`

	userPrompt := fmt.Sprintf(`Generate a follow-up reminder for this email:

Subject: %s
From: %s
Date: %s
Content: %s

Consider: Does this need a reply? Is it time-sensitive? When should I follow up?`,
		subject, from, date, truncateBody(snippet, snippetCap))

	resp, err := c.CompleteWithSystem(ctx, systemPrompt, userPrompt, 0.3, 150)
	if err != nil {
		return nil, err
	}

	return parseFollowUp(resp, subject), nil
}

func parseFollowUp(resp, subject string) *FollowUp {
	raw := extractJSONObject(stripJSONFences(resp))
	if raw == "" {
		return defaultFollowUp(subject)
	}

	var result FollowUp
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return defaultFollowUp(subject)
	}

	if result.Reminder == "" {
		result.Reminder = "Follow up on: " + subject
	}
	if result.DaysUntilFollowUp <= 0 {
		result.DaysUntilFollowUp = 3
	}
	return &result
}
