package services

import (
	"context"
	"fmt"
	"time"

	"github.com/faizalzakaria/slack-pull-reminder/internal/approval"
	"github.com/faizalzakaria/slack-pull-reminder/internal/chat"
	"github.com/faizalzakaria/slack-pull-reminder/internal/config"
	"github.com/faizalzakaria/slack-pull-reminder/internal/filter"
	"github.com/faizalzakaria/slack-pull-reminder/internal/logger"
	"github.com/faizalzakaria/slack-pull-reminder/internal/models"
	"github.com/faizalzakaria/slack-pull-reminder/internal/vcs"
	"golang.org/x/sync/errgroup"
)

// digestFormatter defines the methods needed by ReminderService to render lines and messages.
type digestFormatter interface {
	Line(pr models.PullRequest, approved bool) string
	Build(c models.Collection) []models.Digest
}

type ReminderService struct {
	source     vcs.PullRequestSource
	notifier   chat.Notifier
	classifier approval.Classifier
	formatter  digestFormatter
	config     *config.Config
}

type ReminderOption func(*ReminderService)

func WithSource(source vcs.PullRequestSource) ReminderOption {
	return func(s *ReminderService) {
		s.source = source
	}
}

func WithNotifier(notifier chat.Notifier) ReminderOption {
	return func(s *ReminderService) {
		s.notifier = notifier
	}
}

func WithClassifier(classifier approval.Classifier) ReminderOption {
	return func(s *ReminderService) {
		s.classifier = classifier
	}
}

func WithFormatter(formatter digestFormatter) ReminderOption {
	return func(s *ReminderService) {
		s.formatter = formatter
	}
}

func WithConfig(cfg *config.Config) ReminderOption {
	return func(s *ReminderService) {
		s.config = cfg
	}
}

func NewReminderService(opts ...ReminderOption) *ReminderService {
	s := &ReminderService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Collect scans every allowed repository of the organization and returns the
// eligible pull request lines grouped by approval, in visitation order. The
// first fetch error aborts the scan.
func (s *ReminderService) Collect(ctx context.Context) (models.Collection, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	repos, err := s.source.ListRepositories(ctx, s.config.Organization)
	if err != nil {
		return models.Collection{}, err
	}

	allowed := make([]models.Repository, 0, len(repos))
	for _, repo := range repos {
		if filter.IsAllowedRepository(repo.Name, s.config.Filters.Repositories) {
			allowed = append(allowed, repo)
		}
	}

	log.Info("scanning repositories",
		"organization", s.config.Organization,
		"repositories", len(allowed),
		"skipped", len(repos)-len(allowed),
		"parallelism", s.config.Parallelism)

	results := make([]models.Collection, len(allowed))
	if s.config.Parallelism <= 1 {
		for i, repo := range allowed {
			if results[i], err = s.scanRepository(ctx, repo); err != nil {
				return models.Collection{}, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.config.Parallelism)
		for i, repo := range allowed {
			g.Go(func() error {
				c, err := s.scanRepository(gctx, repo)
				if err != nil {
					return err
				}
				results[i] = c
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return models.Collection{}, err
		}
	}

	var out models.Collection
	for _, c := range results {
		out.Append(c)
	}

	log.Info("scan finished",
		"organization", s.config.Organization,
		"count", len(out.All),
		"approved", len(out.Approved),
		"duration_ms", time.Since(start).Milliseconds())

	return out, nil
}

func (s *ReminderService) scanRepository(ctx context.Context, repo models.Repository) (models.Collection, error) {
	ctx = logger.With(ctx, "repo", repo.FullName())
	log := logger.FromContext(ctx)

	var c models.Collection

	pulls, err := s.source.ListOpenPullRequests(ctx, repo.Owner, repo.Name)
	if err != nil {
		return c, err
	}

	for _, pr := range pulls {
		// Skip unwanted authors before spending API calls on their reviews.
		if !filter.IsAllowedAuthor(pr.Author, s.config.Filters.Usernames) {
			continue
		}
		if !filter.Eligible(pr, s.config.Filters) {
			log.Debug("pull request filtered out", "pr_number", pr.Number)
			continue
		}

		if s.classifier.NeedsReviews() {
			reviews, err := s.source.ListReviews(ctx, repo.Owner, repo.Name, pr.Number)
			if err != nil {
				return c, err
			}
			pr.Reviews = reviews
		}

		if err := pr.Validate(); err != nil {
			logger.Warn(ctx, "skipping malformed pull request",
				"pr_number", pr.Number,
				"error", err)
			continue
		}

		approved := s.classifier.IsApproved(pr)
		c.Add(s.formatter.Line(pr, approved), approved)
	}

	log.Debug("repository scanned",
		"pulls", len(pulls),
		"count", len(c.All))

	return c, nil
}

// BuildDigests scans the organization and renders the non-empty digests.
func (s *ReminderService) BuildDigests(ctx context.Context) ([]models.Digest, error) {
	c, err := s.Collect(ctx)
	if err != nil {
		return nil, err
	}
	return s.formatter.Build(c), nil
}

// Dispatch sends the digests in order and stops at the first failure.
func (s *ReminderService) Dispatch(ctx context.Context, digests []models.Digest) error {
	for i, d := range digests {
		if err := s.notifier.Send(ctx, d.Text()); err != nil {
			logger.Error(ctx, "digest delivery failed", err,
				"group", string(d.Group),
				"pending", len(digests)-i-1)
			return fmt.Errorf("failed to send %s digest: %w", d.Group, err)
		}
		logger.Info(ctx, "digest delivered",
			"group", string(d.Group),
			"count", len(d.Lines))
	}
	return nil
}
