// Package providers builds the concrete reminder graph from configuration.
package providers

import (
	"context"
	"fmt"

	"github.com/faizalzakaria/slack-pull-reminder/internal/approval"
	"github.com/faizalzakaria/slack-pull-reminder/internal/chat"
	"github.com/faizalzakaria/slack-pull-reminder/internal/chat/slack"
	"github.com/faizalzakaria/slack-pull-reminder/internal/config"
	"github.com/faizalzakaria/slack-pull-reminder/internal/digest"
	"github.com/faizalzakaria/slack-pull-reminder/internal/i18n"
	"github.com/faizalzakaria/slack-pull-reminder/internal/logger"
	"github.com/faizalzakaria/slack-pull-reminder/internal/services"
	"github.com/faizalzakaria/slack-pull-reminder/internal/vcs"
	"github.com/faizalzakaria/slack-pull-reminder/internal/vcs/github"
)

// NewVCSClient creates the pull request source for the configured GitHub host.
func NewVCSClient(cfg *config.Config) (vcs.PullRequestSource, error) {
	client, err := github.NewGitHubClient(cfg.GitHubToken, cfg.GitHubBaseURL)
	if err != nil {
		return nil, fmt.Errorf("error creating GitHub client: %w", err)
	}
	return client, nil
}

// NewNotifier creates the Slack notifier for the configured channel.
func NewNotifier(cfg *config.Config, client chat.HTTPClient) chat.Notifier {
	return slack.NewSlackClient(cfg.SlackAPIURL, cfg.SlackToken, cfg.SlackChannel, client)
}

// NewReminderService wires the source, the notifier, the classifier and the
// formatter selected by cfg.
func NewReminderService(ctx context.Context, cfg *config.Config, t *i18n.Translations) (*services.ReminderService, error) {
	classifier, err := approval.New(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	source, err := NewVCSClient(cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "reminder service configured",
		"organization", cfg.Organization,
		"strategy", string(cfg.Strategy),
		"channel", cfg.SlackChannel,
		"enterprise", cfg.GitHubBaseURL != "")

	return services.NewReminderService(
		services.WithConfig(cfg),
		services.WithSource(source),
		services.WithNotifier(NewNotifier(cfg, nil)),
		services.WithClassifier(classifier),
		services.WithFormatter(digest.NewFormatter(cfg.Strategy, t)),
	), nil
}
