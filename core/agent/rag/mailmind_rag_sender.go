package rag

import (
	"regexp"
	"strings"
)

// Sender-filter correctness depends on stored and query-time senders
// normalizing identically, so address extraction lives here as one
// shared function rather than inline regexes at each call site.

var addressPattern = regexp.MustCompile(`[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)

// NormalizeAddress reduces a free-form sender string to a bare, lowered
// email address. "Display Name <alice@x.com>" becomes "alice@x.com".
// When no address-shaped substring is present, the trimmed lowercased
// whole string is used so two equally malformed senders still match
// each other.
func NormalizeAddress(sender string) string {
	lower := strings.ToLower(strings.TrimSpace(sender))
	if match := addressPattern.FindString(lower); match != "" {
		return match
	}
	return lower
}
