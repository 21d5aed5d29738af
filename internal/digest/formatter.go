// Package digest renders eligible pull requests into chat lines and groups
// those lines into header-prefixed messages.
package digest

import (
	"fmt"
	"time"

	"github.com/faizalzakaria/slack-pull-reminder/internal/config"
	"github.com/faizalzakaria/slack-pull-reminder/internal/models"
	"github.com/faizalzakaria/slack-pull-reminder/internal/reviews"
)

const approvedSuffix = " - *approved*"

// messageSource is the subset of i18n.Translations used for headers.
type messageSource interface {
	GetMessage(messageID string, count int, templateData interface{}) string
}

type Formatter struct {
	strategy config.ApprovalStrategy
	messages messageSource
	now      func() time.Time
}

type Option func(*Formatter)

// WithClock replaces the clock used for pull request ages. The default clock
// reports UTC.
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) {
		f.now = now
	}
}

func NewFormatter(strategy config.ApprovalStrategy, messages messageSource, opts ...Option) *Formatter {
	f := &Formatter{
		strategy: strategy,
		messages: messages,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Line renders one pull request.
func (f *Formatter) Line(pr models.PullRequest, approved bool) string {
	line := fmt.Sprintf("*[%s/%s]* <%s|%s by %s> - *since %d day(s)*",
		pr.Owner, pr.Repository, pr.URL, pr.Title, pr.Author, AgeDays(f.now(), pr.CreatedAt))

	switch f.strategy {
	case config.StrategyLabel:
		if approved {
			line += approvedSuffix
		}
	default:
		line += " - " + reviews.Summarize(pr.Reviews)
	}
	return line
}

// Build turns a collection into the digests to send, skipping empty ones.
// The review strategy yields a needs-review and an approved digest; the
// label strategy yields a single digest over every line.
func (f *Formatter) Build(c models.Collection) []models.Digest {
	if f.strategy == config.StrategyLabel {
		return f.nonEmpty(f.digest(models.GroupNeedsReview, c.All))
	}
	return f.nonEmpty(
		f.digest(models.GroupNeedsReview, c.NeedsReview),
		f.digest(models.GroupApproved, c.Approved),
	)
}

// Header returns the message prefix for group.
func (f *Formatter) Header(group models.Group) string {
	id := "digest_needs_review_header"
	if group == models.GroupApproved {
		id = "digest_approved_header"
	}
	return "\n" + f.messages.GetMessage(id, 0, nil) + " \n\n"
}

func (f *Formatter) digest(group models.Group, lines []string) models.Digest {
	return models.Digest{
		Group:  group,
		Header: f.Header(group),
		Lines:  lines,
	}
}

func (f *Formatter) nonEmpty(digests ...models.Digest) []models.Digest {
	out := make([]models.Digest, 0, len(digests))
	for _, d := range digests {
		if len(d.Lines) > 0 {
			out = append(out, d)
		}
	}
	return out
}
