package llm

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
)

// ExtractedEvent is one calendar event found in an email.
type ExtractedEvent struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// ExtractCalendarEvents finds meetings, deadlines, appointments and
// reminders in an email. Unparseable model output yields an empty
// list, not an error.
func (c *Client) ExtractCalendarEvents(ctx context.Context, subject, body string) ([]ExtractedEvent, error) {
	prompt := fmt.Sprintf(`Extract calendar events from this email. Return ONLY a JSON array of events.

Email:
%s

%s

Extract:
- Meetings (with date, time if mentioned)
- Deadlines (with date)
- Appointments (with date, time)
- Reminders (with date)

Return format:
[
  {
    "title": "Meeting with client",
    "date": "2026-02-25",
    "time": "14:00",
    "type": "meeting",
    "description": "Discuss Q1 budget"
  }
]

If no events found, return empty array [].
IMPORTANT: Return ONLY valid JSON, no other text.`, subject, truncateBody(body, 3000))

	resp, err := c.Complete(ctx, prompt, 0.3, 500)
	if err != nil {
		return nil, err
	}

	return parseEvents(resp), nil
}

func parseEvents(resp string) []ExtractedEvent {
	raw := extractJSONArray(stripJSONFences(resp))
	if raw == "" {
		return []ExtractedEvent{}
	}

	var events []ExtractedEvent
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		return []ExtractedEvent{}
	}
	return events
}
