package search

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"mailmind_server/core/domain"
)

// Filter narrows a caller-supplied email list. All text matches are
// case-insensitive substring matches; date bounds are inclusive and
// DateTo extends to the end of its day.
type Filter struct {
	Query    string `json:"query,omitempty"`
	Sender   string `json:"sender,omitempty"`
	Subject  string `json:"subject,omitempty"`
	DateFrom string `json:"date_from,omitempty"`
	DateTo   string `json:"date_to,omitempty"`
}

// Service filters and groups emails the client already holds. The
// server keeps no mailbox of its own, so every operation is pure.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

func (s *Service) FilterEmails(emails []domain.Email, f Filter) []domain.Email {
	filtered := make([]domain.Email, 0, len(emails))
	filtered = append(filtered, emails...)

	if f.Query != "" {
		query := strings.ToLower(f.Query)
		filtered = keep(filtered, func(e domain.Email) bool {
			text := strings.ToLower(e.Subject + " " + e.From + " " + e.Snippet)
			return strings.Contains(text, query)
		})
	}

	if f.Sender != "" {
		sender := strings.ToLower(f.Sender)
		filtered = keep(filtered, func(e domain.Email) bool {
			return strings.Contains(strings.ToLower(e.From), sender)
		})
	}

	if f.Subject != "" {
		subject := strings.ToLower(f.Subject)
		filtered = keep(filtered, func(e domain.Email) bool {
			return strings.Contains(strings.ToLower(e.Subject), subject)
		})
	}

	if f.DateFrom != "" {
		if from, ok := parseDate(f.DateFrom); ok {
			filtered = keep(filtered, func(e domain.Email) bool {
				d, ok := parseDate(e.Date)
				return ok && !d.Before(from)
			})
		}
	}

	if f.DateTo != "" {
		if to, ok := parseDate(f.DateTo); ok {
			// inclusive through the end of the given day
			to = to.AddDate(0, 0, 1).Add(-time.Millisecond)
			filtered = keep(filtered, func(e domain.Email) bool {
				d, ok := parseDate(e.Date)
				return ok && !d.After(to)
			})
		}
	}

	return filtered
}

func keep(emails []domain.Email, pred func(domain.Email) bool) []domain.Email {
	out := emails[:0]
	for _, e := range emails {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// GroupBySender buckets emails under the sender's display name, the
// part before an angle-bracketed address.
func (s *Service) GroupBySender(emails []domain.Email) map[string][]domain.Email {
	grouped := make(map[string][]domain.Email)
	for _, e := range emails {
		name := strings.TrimSpace(strings.SplitN(e.From, "<", 2)[0])
		if name == "" {
			name = "Unknown"
		}
		grouped[name] = append(grouped[name], e)
	}
	return grouped
}

var (
	bracketProject = regexp.MustCompile(`\[([^\]]+)\]`)
	colonProject   = regexp.MustCompile(`^([^:]+):`)
)

// GroupByProject buckets emails by the project tag in the subject:
// "[Project] ..." first, then "Project: ...". Untagged emails land in
// "Uncategorized", which is always present in the result.
func (s *Service) GroupByProject(emails []domain.Email) map[string][]domain.Email {
	grouped := map[string][]domain.Email{
		"Uncategorized": {},
	}
	for _, e := range emails {
		project := "Uncategorized"
		if m := bracketProject.FindStringSubmatch(e.Subject); m != nil {
			project = m[1]
		} else if m := colonProject.FindStringSubmatch(e.Subject); m != nil {
			project = strings.TrimSpace(m[1])
		}
		grouped[project] = append(grouped[project], e)
	}
	return grouped
}

var replyPrefix = regexp.MustCompile(`(?i)^(re:|fwd?:)\s*`)

func normalizeSubject(subject string) string {
	return strings.TrimSpace(replyPrefix.ReplaceAllString(subject, ""))
}

// Thread returns every email sharing the current email's subject once
// Re:/Fwd: prefixes are stripped, oldest first. Emails without a
// parseable date sort last.
func (s *Service) Thread(emails []domain.Email, current domain.Email) []domain.Email {
	subject := normalizeSubject(current.Subject)

	thread := make([]domain.Email, 0)
	for _, e := range emails {
		if normalizeSubject(e.Subject) == subject {
			thread = append(thread, e)
		}
	}

	sort.SliceStable(thread, func(i, j int) bool {
		di, oki := parseDate(thread[i].Date)
		dj, okj := parseDate(thread[j].Date)
		if oki != okj {
			return oki
		}
		return di.Before(dj)
	})
	return thread
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
