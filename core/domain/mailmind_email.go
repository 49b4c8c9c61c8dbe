package domain

import "time"

// Email is the client-facing email payload MailMind operates on.
// The server does not own mailbox state; callers pass the emails they
// want processed (summarized, replied to, indexed, searched).
type Email struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Body    string `json:"body,omitempty"`
	Snippet string `json:"snippet,omitempty"`
	From    string `json:"from"`
	Date    string `json:"date,omitempty"`
}

// Content returns the best available body text for an email.
func (e *Email) Content() string {
	if e.Snippet != "" {
		return e.Snippet
	}
	return e.Body
}

// Priority levels assigned by the action planner.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// NormalizePriority clamps an LLM-reported priority to a known level.
func NormalizePriority(p string) string {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p
	default:
		return PriorityMedium
	}
}

// CalendarEvent is an event extracted from an email or created by the client.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Time        string    `json:"time,omitempty"`
	Type        string    `json:"type"` // meeting, deadline, appointment, reminder
	Description string    `json:"description,omitempty"`
	EmailID     string    `json:"email_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
