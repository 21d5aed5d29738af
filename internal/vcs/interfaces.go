package vcs

import (
	"context"

	"github.com/faizalzakaria/slack-pull-reminder/internal/models"
)

// PullRequestSource lists what the reminder scans in an organization.
type PullRequestSource interface {
	// ListRepositories lists every repository of the organization, in API order.
	ListRepositories(ctx context.Context, org string) ([]models.Repository, error)
	// ListOpenPullRequests lists the open pull requests of a repository without their reviews.
	ListOpenPullRequests(ctx context.Context, owner, repo string) ([]models.PullRequest, error)
	// ListReviews lists the submitted reviews of a pull request in submission order.
	ListReviews(ctx context.Context, owner, repo string, number int) ([]models.Review, error)
}
