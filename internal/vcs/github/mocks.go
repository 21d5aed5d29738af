package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockPRService struct {
	mock.Mock
}

func (m *MockPRService) List(ctx context.Context, owner, repo string, opts *github.PullRequestListOptions) ([]*github.PullRequest, *github.Response, error) {
	args := m.Called(ctx, owner, repo, opts)
	if args.Get(1) == nil {
		return args.Get(0).([]*github.PullRequest), nil, args.Error(2)
	}
	return args.Get(0).([]*github.PullRequest), args.Get(1).(*github.Response), args.Error(2)
}

func (m *MockPRService) ListReviews(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.PullRequestReview, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, opts)
	if args.Get(1) == nil {
		return args.Get(0).([]*github.PullRequestReview), nil, args.Error(2)
	}
	return args.Get(0).([]*github.PullRequestReview), args.Get(1).(*github.Response), args.Error(2)
}

type MockRepoService struct {
	mock.Mock
}

func (m *MockRepoService) ListByOrg(ctx context.Context, org string, opts *github.RepositoryListByOrgOptions) ([]*github.Repository, *github.Response, error) {
	args := m.Called(ctx, org, opts)
	if args.Get(1) == nil {
		return args.Get(0).([]*github.Repository), nil, args.Error(2)
	}
	return args.Get(0).([]*github.Repository), args.Get(1).(*github.Response), args.Error(2)
}
