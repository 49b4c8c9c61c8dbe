package in

import (
	"context"

	"mailmind_server/core/domain"
)

// CalendarService is the inbound port for calendar routes.
type CalendarService interface {
	// ExtractEvents pulls calendar events out of an email with the LLM.
	ExtractEvents(ctx context.Context, subject, body string) ([]domain.CalendarEvent, error)

	// In-memory event cache, rebuildable from emails at any time.
	ListEvents() []domain.CalendarEvent
	AddEvent(ev domain.CalendarEvent) (*domain.CalendarEvent, error)
	DeleteEvent(id string) error
}
