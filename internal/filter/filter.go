// Package filter decides whether a pull request is eligible for a digest.
// Every match is a case-insensitive substring match: a filter label "wip"
// matches a label named "status:wip".
package filter

import (
	"slices"
	"strings"

	"github.com/faizalzakaria/slack-pull-reminder/internal/config"
	"github.com/faizalzakaria/slack-pull-reminder/internal/models"
)

// Eligible reports whether pr passes every predicate.
func Eligible(pr models.PullRequest, cfg config.FilterConfig) bool {
	return IsOpen(pr.State) &&
		IsAllowedAuthor(pr.Author, cfg.Usernames) &&
		HasValidTitle(pr.Title, cfg.IgnoreWords) &&
		HasValidLabels(pr.Labels, cfg.FilterLabels)
}

func IsOpen(state string) bool {
	return strings.EqualFold(state, models.StateOpen)
}

// IsAllowedAuthor is an exact, case-insensitive membership test.
func IsAllowedAuthor(author string, usernames []string) bool {
	if len(usernames) == 0 {
		return true
	}
	return slices.Contains(usernames, strings.ToLower(author))
}

// IsAllowedRepository is an exact, case-insensitive membership test.
func IsAllowedRepository(name string, repositories []string) bool {
	if len(repositories) == 0 {
		return true
	}
	return slices.Contains(repositories, strings.ToLower(name))
}

// HasValidTitle rejects titles containing any ignored word.
func HasValidTitle(title string, ignoreWords []string) bool {
	lower := strings.ToLower(title)
	for _, word := range ignoreWords {
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}

// HasValidLabels requires at least one label containing a filter label.
func HasValidLabels(labels []string, filterLabels []string) bool {
	if len(filterLabels) == 0 {
		return true
	}
	for _, label := range labels {
		if ContainsAny(label, filterLabels) {
			return true
		}
	}
	return false
}

// ContainsAny reports whether lowercase s contains any of the lowercase needles.
func ContainsAny(s string, needles []string) bool {
	lower := strings.ToLower(s)
	for _, needle := range needles {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}
