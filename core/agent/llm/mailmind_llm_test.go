package llm

import (
	"testing"

	"mailmind_server/core/domain"
)

func TestStripJSONFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripJSONFences(tt.input); got != tt.want {
				t.Errorf("stripJSONFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	if got := extractJSONObject(`Sure! Here it is: {"reminder": "x"} Hope that helps.`); got != `{"reminder": "x"}` {
		t.Errorf("unexpected extraction: %q", got)
	}
	if got := extractJSONObject("no json here"); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestExtractJSONArray(t *testing.T) {
	if got := extractJSONArray("events: [{\"title\":\"x\"}] done"); got != `[{"title":"x"}]` {
		t.Errorf("unexpected extraction: %q", got)
	}
	if got := extractJSONArray("{}"); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestParseFollowUp(t *testing.T) {
	fu := parseFollowUp("```json\n{\"reminder\": \"Chase the invoice\", \"days_until_follow_up\": 5}\n```", "Invoice")
	if fu.Reminder != "Chase the invoice" || fu.DaysUntilFollowUp != 5 {
		t.Errorf("unexpected parse: %+v", fu)
	}

	fu = parseFollowUp("I could not produce JSON, sorry.", "Invoice")
	if fu.Reminder != "Follow up on: Invoice" || fu.DaysUntilFollowUp != 3 {
		t.Errorf("expected defaults, got %+v", fu)
	}

	fu = parseFollowUp(`{"reminder": "", "days_until_follow_up": 0}`, "Invoice")
	if fu.Reminder != "Follow up on: Invoice" || fu.DaysUntilFollowUp != 3 {
		t.Errorf("empty fields should get defaults, got %+v", fu)
	}
}

func TestParseActionPlan(t *testing.T) {
	resp := `{"summary": "Client asks for Q1 numbers", "needs_reply": true, "reply_draft": "On it.",
"has_event": false, "task_title": "Send Q1 numbers", "priority": "high", "can_auto_archive": false}`

	plan := parseActionPlan(resp, "Q1 numbers")
	if plan.Summary != "Client asks for Q1 numbers" {
		t.Errorf("unexpected summary: %q", plan.Summary)
	}
	if !plan.NeedsReply || plan.ReplyDraft != "On it." {
		t.Errorf("unexpected reply fields: %+v", plan)
	}
	if plan.Priority != domain.PriorityHigh {
		t.Errorf("expected high priority, got %q", plan.Priority)
	}
}

func TestParseActionPlanDefaults(t *testing.T) {
	plan := parseActionPlan("not json at all", "Status update")
	if plan.Summary != "Email received: Status update" {
		t.Errorf("unexpected default summary: %q", plan.Summary)
	}
	if plan.NeedsReply || plan.HasEvent || plan.CanAutoArchive {
		t.Error("default plan should not request any action")
	}
	if plan.Priority != domain.PriorityMedium {
		t.Errorf("expected medium priority, got %q", plan.Priority)
	}
}

func TestParseActionPlanBadPriority(t *testing.T) {
	plan := parseActionPlan(`{"summary": "x", "task_title": "y", "priority": "urgent!!"}`, "s")
	if plan.Priority != domain.PriorityMedium {
		t.Errorf("unknown priority should clamp to medium, got %q", plan.Priority)
	}
}

func TestParseActionPlanNullDraft(t *testing.T) {
	plan := parseActionPlan(`{"summary": "x", "task_title": "y", "priority": "low", "reply_draft": "null"}`, "s")
	if plan.ReplyDraft != "" {
		t.Errorf("literal \"null\" draft should be cleared, got %q", plan.ReplyDraft)
	}
}

func TestParseEvents(t *testing.T) {
	resp := "```json\n[{\"title\": \"Standup\", \"date\": \"2026-09-01\", \"time\": \"09:30\", \"type\": \"meeting\"}]\n```"
	events := parseEvents(resp)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Title != "Standup" || events[0].Time != "09:30" {
		t.Errorf("unexpected event: %+v", events[0])
	}

	if events := parseEvents("no events mentioned"); len(events) != 0 {
		t.Errorf("expected empty list, got %+v", events)
	}
	if events := parseEvents("[]"); len(events) != 0 {
		t.Errorf("expected empty list for [], got %+v", events)
	}
}

func TestTruncateBody(t *testing.T) {
	if got := truncateBody("short", 100); got != "short" {
		t.Errorf("short body should pass through, got %q", got)
	}
	long := make([]byte, 150)
	for i := range long {
		long[i] = 'a'
	}
	if got := truncateBody(string(long), 100); len(got) != 100 {
		t.Errorf("expected 100 chars, got %d", len(got))
	}
}
