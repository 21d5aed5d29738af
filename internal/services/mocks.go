package services

import (
	"context"

	"github.com/faizalzakaria/slack-pull-reminder/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockPullRequestSource struct {
	mock.Mock
}

func (m *MockPullRequestSource) ListRepositories(ctx context.Context, org string) ([]models.Repository, error) {
	args := m.Called(ctx, org)
	return args.Get(0).([]models.Repository), args.Error(1)
}

func (m *MockPullRequestSource) ListOpenPullRequests(ctx context.Context, owner, repo string) ([]models.PullRequest, error) {
	args := m.Called(ctx, owner, repo)
	return args.Get(0).([]models.PullRequest), args.Error(1)
}

func (m *MockPullRequestSource) ListReviews(ctx context.Context, owner, repo string, number int) ([]models.Review, error) {
	args := m.Called(ctx, owner, repo, number)
	return args.Get(0).([]models.Review), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, text string) error {
	args := m.Called(ctx, text)
	return args.Error(0)
}
