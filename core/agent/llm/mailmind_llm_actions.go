package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"mailmind_server/core/domain"
	"mailmind_server/pkg/logger"
)

// ActionPlan is the model's full triage of one email: what it says,
// whether to reply, what to schedule, and how urgent it is.
type ActionPlan struct {
	Summary           string `json:"summary"`
	NeedsReply        bool   `json:"needs_reply"`
	ReplyDraft        string `json:"reply_draft,omitempty"`
	HasEvent          bool   `json:"has_event"`
	EventDetails      string `json:"event_details,omitempty"`
	TaskTitle         string `json:"task_title"`
	Priority          string `json:"priority"`
	SuggestedFollowUp string `json:"suggested_follow_up,omitempty"`
	CanAutoArchive    bool   `json:"can_auto_archive"`
}

// BuildActionPlan runs the two-step "handle this for me" flow: first an
// analysis completion that triages the email, then, when the analysis
// says a reply is needed but did not draft one, a second completion to
// draft it. A failed reply draft is non-fatal; the plan stands.
func (c *Client) BuildActionPlan(ctx context.Context, subject, content, ragContext string) (*ActionPlan, error) {
	systemPrompt := fmt.Sprintf(`You are an AI email assistant with access to past email context. Analyze the email and create an action plan.

%s

Return ONLY a valid JSON object with this EXACT structure (no markdown, no code blocks, no extra text):
{
  "summary": "Brief 2-line summary of the email",
  "needs_reply": true,
  "reply_draft": "Draft reply text here",
  "has_event": false,
  "event_details": "",
  "task_title": "Actionable task title (3-6 words)",
  "priority": "medium",
  "suggested_follow_up": "Follow-up action or empty string",
  "can_auto_archive": false
}

CRITICAL RULES:
- Return ONLY the JSON object
- No markdown formatting
- No explanations before or after
- needs_reply, has_event, can_auto_archive must be boolean
- priority must be one of: "high", "medium", "low"`, ragContext)

	resp, err := c.CompleteWithSystem(ctx, systemPrompt, content, 0.2, 600)
	if err != nil {
		return nil, err
	}

	plan := parseActionPlan(resp, subject)

	if plan.NeedsReply && strings.TrimSpace(plan.ReplyDraft) == "" {
		reply, err := c.CompleteWithSystem(ctx,
			"You are a professional email assistant. Write a polite, concise reply. Return ONLY the reply text, no extra formatting.",
			"Write a professional reply to this email:\n\n"+content,
			0.4, 300)
		if err != nil {
			logger.WithError(err).Warn("reply draft generation failed, returning plan without draft")
		} else {
			plan.ReplyDraft = reply
		}
	}

	return plan, nil
}

// parseActionPlan recovers a plan from model output, falling back to a
// conservative default plan when the output is not valid JSON.
func parseActionPlan(resp, subject string) *ActionPlan {
	raw := extractJSONObject(stripJSONFences(resp))
	if raw == "" {
		return defaultActionPlan(subject)
	}

	var plan ActionPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return defaultActionPlan(subject)
	}

	if plan.Summary == "" {
		plan.Summary = "Email received: " + subject
	}
	if plan.TaskTitle == "" {
		plan.TaskTitle = "Review: " + truncateBody(subject, 30)
	}
	if plan.ReplyDraft == "null" {
		plan.ReplyDraft = ""
	}
	plan.Priority = domain.NormalizePriority(plan.Priority)
	return &plan
}

func defaultActionPlan(subject string) *ActionPlan {
	return &ActionPlan{
		Summary:   "Email received: " + subject,
		TaskTitle: "Review: " + truncateBody(subject, 30),
		Priority:  domain.PriorityMedium,
	}
}
