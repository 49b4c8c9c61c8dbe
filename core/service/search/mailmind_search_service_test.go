package search

import (
	"testing"

	"mailmind_server/core/domain"
)

var testEmails = []domain.Email{
	{ID: "1", Subject: "[Apollo] Launch checklist", From: "Alice <alice@corp.com>", Snippet: "final review before launch", Date: "2026-02-10T09:00:00Z"},
	{ID: "2", Subject: "Re: [Apollo] Launch checklist", From: "Bob <bob@corp.com>", Snippet: "looks good to me", Date: "2026-02-11T14:30:00Z"},
	{ID: "3", Subject: "Invoice: February", From: "billing@vendor.io", Snippet: "your invoice is attached", Date: "2026-02-15"},
	{ID: "4", Subject: "Lunch on Friday?", From: "Alice <alice@corp.com>", Snippet: "new place downtown", Date: "2026-02-20T12:00:00Z"},
}

func TestFilterEmails(t *testing.T) {
	svc := NewService()

	tests := []struct {
		name    string
		filter  Filter
		wantIDs []string
	}{
		{"no filters", Filter{}, []string{"1", "2", "3", "4"}},
		{"query matches subject", Filter{Query: "invoice"}, []string{"3"}},
		{"query matches snippet", Filter{Query: "downtown"}, []string{"4"}},
		{"query matches from", Filter{Query: "vendor.io"}, []string{"3"}},
		{"query is case-insensitive", Filter{Query: "APOLLO"}, []string{"1", "2"}},
		{"sender", Filter{Sender: "alice"}, []string{"1", "4"}},
		{"subject", Filter{Subject: "launch"}, []string{"1", "2"}},
		{"date from", Filter{DateFrom: "2026-02-15"}, []string{"3", "4"}},
		{"date to includes whole day", Filter{DateTo: "2026-02-11"}, []string{"1", "2"}},
		{"date range", Filter{DateFrom: "2026-02-11", DateTo: "2026-02-15"}, []string{"2", "3"}},
		{"combined", Filter{Query: "launch", Sender: "bob"}, []string{"2"}},
		{"no match", Filter{Query: "nonexistent"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.FilterEmails(testEmails, tt.filter)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d emails, want %d: %+v", len(got), len(tt.wantIDs), got)
			}
			for i, e := range got {
				if e.ID != tt.wantIDs[i] {
					t.Errorf("result[%d].ID = %s, want %s", i, e.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestFilterEmailsUnparseableDatesExcluded(t *testing.T) {
	svc := NewService()
	emails := []domain.Email{
		{ID: "1", Subject: "a", Date: "not a date"},
		{ID: "2", Subject: "b", Date: "2026-02-10"},
	}

	got := svc.FilterEmails(emails, Filter{DateFrom: "2026-01-01"})
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("got %+v, want only email 2", got)
	}
}

func TestGroupBySender(t *testing.T) {
	svc := NewService()
	grouped := svc.GroupBySender(testEmails)

	if len(grouped["Alice"]) != 2 {
		t.Errorf("Alice group = %d emails, want 2", len(grouped["Alice"]))
	}
	if len(grouped["Bob"]) != 1 {
		t.Errorf("Bob group = %d emails, want 1", len(grouped["Bob"]))
	}
	// bare address has no display name part before "<"
	if len(grouped["billing@vendor.io"]) != 1 {
		t.Errorf("bare-address group missing: %v", keys(grouped))
	}
}

func TestGroupBySenderUnknown(t *testing.T) {
	svc := NewService()
	grouped := svc.GroupBySender([]domain.Email{{ID: "1", From: ""}})
	if len(grouped["Unknown"]) != 1 {
		t.Errorf("empty sender should group under Unknown: %v", keys(grouped))
	}
}

func TestGroupByProject(t *testing.T) {
	svc := NewService()
	grouped := svc.GroupByProject(testEmails)

	if len(grouped["Apollo"]) != 2 {
		t.Errorf("Apollo group = %d, want 2 (bracket tag wins over Re: prefix)", len(grouped["Apollo"]))
	}
	if len(grouped["Invoice"]) != 1 {
		t.Errorf("Invoice group = %d, want 1 (colon prefix)", len(grouped["Invoice"]))
	}
	if got, ok := grouped["Uncategorized"]; !ok || len(got) != 1 {
		t.Errorf("Uncategorized = %v, want the lunch email", got)
	}
}

func TestGroupByProjectAlwaysHasUncategorized(t *testing.T) {
	svc := NewService()
	grouped := svc.GroupByProject(nil)
	if _, ok := grouped["Uncategorized"]; !ok {
		t.Error("Uncategorized bucket should always exist")
	}
}

func TestThread(t *testing.T) {
	svc := NewService()
	emails := []domain.Email{
		{ID: "1", Subject: "Budget review", Date: "2026-02-12T10:00:00Z"},
		{ID: "2", Subject: "Re: Budget review", Date: "2026-02-12T11:00:00Z"},
		{ID: "3", Subject: "Fwd: Budget review", Date: "2026-02-12T09:00:00Z"},
		{ID: "4", Subject: "Something else", Date: "2026-02-12T08:00:00Z"},
	}

	thread := svc.Thread(emails, emails[1])
	if len(thread) != 3 {
		t.Fatalf("thread size = %d, want 3", len(thread))
	}
	wantOrder := []string{"3", "1", "2"}
	for i, e := range thread {
		if e.ID != wantOrder[i] {
			t.Errorf("thread[%d].ID = %s, want %s (oldest first)", i, e.ID, wantOrder[i])
		}
	}
}

func TestNormalizeSubject(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Re: Hello", "Hello"},
		{"RE: Hello", "Hello"},
		{"Fwd: Hello", "Hello"},
		{"Fw: Hello", "Hello"},
		{"  Hello  ", "Hello"},
		{"Regarding things", "Regarding things"},
	}
	for _, tt := range tests {
		if got := normalizeSubject(tt.in); got != tt.want {
			t.Errorf("normalizeSubject(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func keys(m map[string][]domain.Email) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
