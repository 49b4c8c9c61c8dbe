package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"mailmind_server/core/agent/llm"
	"mailmind_server/core/domain"
	"mailmind_server/pkg/apperr"
)

type extractor interface {
	ExtractCalendarEvents(ctx context.Context, subject, body string) ([]llm.ExtractedEvent, error)
}

// Service extracts events from emails and keeps a small in-memory
// event cache. The cache is a convenience for the client UI; it is
// rebuildable from emails at any time and is not persisted.
type Service struct {
	extractor extractor

	mu     sync.RWMutex
	events []domain.CalendarEvent

	now func() time.Time
}

func NewService(client *llm.Client) *Service {
	s := &Service{now: time.Now}
	if client != nil {
		s.extractor = client
	}
	return s
}

func (s *Service) ExtractEvents(ctx context.Context, subject, body string) ([]domain.CalendarEvent, error) {
	if s.extractor == nil {
		return []domain.CalendarEvent{}, apperr.ConfigError("calendar extraction LLM not configured")
	}

	extracted, err := s.extractor.ExtractCalendarEvents(ctx, subject, body)
	if err != nil {
		return nil, err
	}

	events := make([]domain.CalendarEvent, 0, len(extracted))
	for _, e := range extracted {
		events = append(events, domain.CalendarEvent{
			ID:          uuid.NewString(),
			Title:       e.Title,
			Date:        e.Date,
			Time:        e.Time,
			Type:        e.Type,
			Description: e.Description,
			CreatedAt:   s.now(),
		})
	}
	return events, nil
}

func (s *Service) ListEvents() []domain.CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CalendarEvent, len(s.events))
	copy(out, s.events)
	return out
}

func (s *Service) AddEvent(ev domain.CalendarEvent) (*domain.CalendarEvent, error) {
	if ev.Title == "" {
		return nil, apperr.MissingField("title")
	}
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	ev.CreatedAt = s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return &ev, nil
}

func (s *Service) DeleteEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, ev := range s.events {
		if ev.ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("calendar event")
}
