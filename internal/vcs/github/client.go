package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	domainErrors "github.com/faizalzakaria/slack-pull-reminder/internal/errors"
	"github.com/faizalzakaria/slack-pull-reminder/internal/logger"
	"github.com/faizalzakaria/slack-pull-reminder/internal/models"
	"github.com/faizalzakaria/slack-pull-reminder/internal/vcs"
	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

var _ vcs.PullRequestSource = (*GitHubClient)(nil)

const perPage = 100

type PullRequestsService interface {
	List(ctx context.Context, owner, repo string, opts *github.PullRequestListOptions) ([]*github.PullRequest, *github.Response, error)
	ListReviews(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.PullRequestReview, *github.Response, error)
}

type RepositoriesService interface {
	ListByOrg(ctx context.Context, org string, opts *github.RepositoryListByOrgOptions) ([]*github.Repository, *github.Response, error)
}

type GitHubClient struct {
	prService   PullRequestsService
	repoService RepositoriesService
}

// NewGitHubClient authenticates with token. A non-empty baseURL points the
// client at a GitHub Enterprise server.
func NewGitHubClient(token, baseURL string) (*GitHubClient, error) {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, domainErrors.ErrInvalidConfig.WithError(err).
				WithContext("detail", fmt.Sprintf("GITHUB_BASE_URL %q is not a valid URL", baseURL))
		}
	}

	return NewGitHubClientWithServices(client.PullRequests, client.Repositories), nil
}

func NewGitHubClientWithServices(prService PullRequestsService, repoService RepositoriesService) *GitHubClient {
	return &GitHubClient{
		prService:   prService,
		repoService: repoService,
	}
}

func (ghc *GitHubClient) ListRepositories(ctx context.Context, org string) ([]models.Repository, error) {
	log := logger.FromContext(ctx)

	opts := &github.RepositoryListByOrgOptions{
		Type:        "all",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var repos []models.Repository
	for {
		page, resp, err := ghc.repoService.ListByOrg(ctx, org, opts)
		if err != nil {
			log.Error("failed to list organization repositories",
				"error", err,
				"organization", org,
				"page", opts.Page)
			return nil, mapError(resp, err, domainErrors.ErrOrganizationNotFound).
				WithContext("operation", "list repositories").
				WithContext("organization", org)
		}

		for _, repo := range page {
			repos = append(repos, models.Repository{
				Owner: org,
				Name:  repo.GetName(),
			})
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	log.Debug("organization repositories listed",
		"organization", org,
		"count", len(repos))

	return repos, nil
}

func (ghc *GitHubClient) ListOpenPullRequests(ctx context.Context, owner, repo string) ([]models.PullRequest, error) {
	log := logger.FromContext(ctx)

	opts := &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var pulls []models.PullRequest
	for {
		page, resp, err := ghc.prService.List(ctx, owner, repo, opts)
		if err != nil {
			log.Error("failed to list pull requests",
				"error", err,
				"repo", fmt.Sprintf("%s/%s", owner, repo))
			return nil, mapError(resp, err, domainErrors.ErrRepositoryNotFound).
				WithContext("operation", "list pull requests").
				WithContext("repo", fmt.Sprintf("%s/%s", owner, repo))
		}

		for _, pr := range page {
			pulls = append(pulls, toPullRequest(owner, repo, pr))
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	log.Debug("open pull requests listed",
		"repo", fmt.Sprintf("%s/%s", owner, repo),
		"count", len(pulls))

	return pulls, nil
}

func (ghc *GitHubClient) ListReviews(ctx context.Context, owner, repo string, number int) ([]models.Review, error) {
	opts := &github.ListOptions{PerPage: perPage}

	var reviews []models.Review
	for {
		page, resp, err := ghc.prService.ListReviews(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, mapError(resp, err, domainErrors.ErrRepositoryNotFound).
				WithContext("operation", "list reviews").
				WithContext("repo", fmt.Sprintf("%s/%s", owner, repo)).
				WithContext("pr_number", number)
		}

		for _, review := range page {
			reviews = append(reviews, models.Review{
				Reviewer: review.GetUser().GetLogin(),
				State:    models.ReviewState(review.GetState()),
			})
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return reviews, nil
}

func toPullRequest(owner, repo string, pr *github.PullRequest) models.PullRequest {
	labels := make([]string, len(pr.Labels))
	for i, label := range pr.Labels {
		labels[i] = label.GetName()
	}

	return models.PullRequest{
		Owner:      owner,
		Repository: repo,
		Number:     pr.GetNumber(),
		Title:      pr.GetTitle(),
		URL:        pr.GetHTMLURL(),
		Author:     pr.GetUser().GetLogin(),
		CreatedAt:  pr.GetCreatedAt().Time,
		State:      pr.GetState(),
		Labels:     labels,
	}
}

// mapError turns a go-github failure into a typed error. notFound is used for 404s.
func mapError(resp *github.Response, err error, notFound *domainErrors.AppError) *domainErrors.AppError {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return domainErrors.ErrGitHubRateLimit.WithError(err)
	}

	if resp != nil && resp.Response != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domainErrors.ErrGitHubTokenInvalid.WithError(err)
		case http.StatusForbidden:
			return domainErrors.ErrGitHubInsufficientPerms.WithError(err)
		case http.StatusNotFound:
			return notFound.WithError(err)
		case http.StatusTooManyRequests:
			return domainErrors.ErrGitHubRateLimit.
				WithError(err).
				WithContext("retry_after", resp.Header.Get("Retry-After"))
		}
	}

	return domainErrors.ErrFetchPullRequests.WithError(err)
}
