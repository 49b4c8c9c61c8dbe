package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"mailmind_server/core/agent/llm"
	"mailmind_server/core/domain"
	"mailmind_server/pkg/apperr"
)

type fakeExtractor struct {
	events   []llm.ExtractedEvent
	failWith error
}

func (f *fakeExtractor) ExtractCalendarEvents(_ context.Context, _, _ string) ([]llm.ExtractedEvent, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.events, nil
}

func newTestService(e extractor) *Service {
	s := &Service{now: func() time.Time { return time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC) }}
	s.extractor = e
	return s
}

func TestExtractEvents(t *testing.T) {
	svc := newTestService(&fakeExtractor{events: []llm.ExtractedEvent{
		{Title: "Budget meeting", Date: "2026-03-01", Time: "14:00", Type: "meeting", Description: "Q1 review"},
		{Title: "Report due", Date: "2026-03-05", Type: "deadline"},
	}})

	events, err := svc.ExtractEvents(context.Background(), "Planning", "see attached")
	if err != nil {
		t.Fatalf("ExtractEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].ID == "" || events[1].ID == "" {
		t.Error("extracted events should get generated IDs")
	}
	if events[0].Title != "Budget meeting" || events[0].Time != "14:00" {
		t.Errorf("unexpected first event: %+v", events[0])
	}
	if events[1].Type != "deadline" {
		t.Errorf("Type = %q, want deadline", events[1].Type)
	}
}

func TestExtractEventsFailurePropagates(t *testing.T) {
	svc := newTestService(&fakeExtractor{failWith: errors.New("model down")})
	if _, err := svc.ExtractEvents(context.Background(), "s", "b"); err == nil {
		t.Fatal("expected error")
	}
}

func TestEventCRUD(t *testing.T) {
	svc := newTestService(nil)

	ev, err := svc.AddEvent(domain.CalendarEvent{Title: "Standup", Date: "2026-02-26", Time: "09:30", Type: "meeting"})
	if err != nil {
		t.Fatalf("AddEvent: %v", err)
	}
	if ev.ID == "" {
		t.Error("AddEvent should assign an ID")
	}
	if ev.CreatedAt.IsZero() {
		t.Error("AddEvent should set CreatedAt")
	}

	list := svc.ListEvents()
	if len(list) != 1 || list[0].ID != ev.ID {
		t.Fatalf("ListEvents = %+v, want the added event", list)
	}

	if err := svc.DeleteEvent(ev.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if got := svc.ListEvents(); len(got) != 0 {
		t.Errorf("ListEvents after delete = %+v, want empty", got)
	}
}

func TestAddEventRequiresTitle(t *testing.T) {
	svc := newTestService(nil)
	_, err := svc.AddEvent(domain.CalendarEvent{Date: "2026-02-26"})
	if err == nil {
		t.Fatal("expected error for missing title")
	}
	if ae := apperr.AsAppError(err); ae == nil || ae.Code != "MISSING_FIELD" {
		t.Errorf("error = %v, want MISSING_FIELD", err)
	}
}

func TestDeleteEventNotFound(t *testing.T) {
	svc := newTestService(nil)
	err := svc.DeleteEvent("nope")
	if ae := apperr.AsAppError(err); ae == nil || ae.Code != "NOT_FOUND" {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestListEventsReturnsCopy(t *testing.T) {
	svc := newTestService(nil)
	if _, err := svc.AddEvent(domain.CalendarEvent{Title: "A"}); err != nil {
		t.Fatal(err)
	}

	list := svc.ListEvents()
	list[0].Title = "mutated"

	if svc.ListEvents()[0].Title != "A" {
		t.Error("ListEvents should return a copy")
	}
}

func TestParseDeadline(t *testing.T) {
	// 2026-02-25 is a Wednesday
	now := time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		want time.Time
		ok   bool
	}{
		{"today", "please finish this today", now, true},
		{"tomorrow", "due Tomorrow morning", now.AddDate(0, 0, 1), true},
		{"this week", "needed this week", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), true},
		{"next week", "let's sync next week", now.AddDate(0, 0, 7), true},
		{"day month", "deadline is 5 Mar", time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"day month long form", "by 12 September please", time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), true},
		{"iso date", "submit by 2026-04-30", time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC), true},
		{"no date", "thanks for the update", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDeadline(tt.text, now)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractTime(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"12-hour with minutes", "call at 2:00 PM", "14:00", true},
		{"24-hour", "meeting at 14:30", "14:30", true},
		{"bare meridiem", "let's do 2pm", "14:00", true},
		{"midnight", "flight at 12am", "00:00", true},
		{"noon", "lunch at 12pm", "12:00", true},
		{"morning", "starts 9:15 am", "09:15", true},
		{"no time", "see you there", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTime(tt.text)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ExtractTime(%q) = %q, %v, want %q, %v", tt.text, got, ok, tt.want, tt.ok)
			}
		})
	}
}
