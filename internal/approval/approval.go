// Package approval splits eligible pull requests into "approved" and
// "needs review". The two strategies are alternatives, never combined.
package approval

import (
	"github.com/faizalzakaria/slack-pull-reminder/internal/config"
	"github.com/faizalzakaria/slack-pull-reminder/internal/filter"
	"github.com/faizalzakaria/slack-pull-reminder/internal/models"
)

const approvedLabel = "approved"

// Classifier decides whether a pull request is ready to merge.
type Classifier interface {
	Strategy() config.ApprovalStrategy
	IsApproved(pr models.PullRequest) bool
	// NeedsReviews tells the caller whether reviews must be fetched before
	// IsApproved can be answered.
	NeedsReviews() bool
}

// New returns the classifier for strategy.
func New(strategy config.ApprovalStrategy) (Classifier, error) {
	s, err := config.ParseApprovalStrategy(string(strategy))
	if err != nil {
		return nil, err
	}

	if s == config.StrategyLabel {
		return LabelClassifier{}, nil
	}
	return ReviewClassifier{}, nil
}

// ReviewClassifier approves a pull request with at least one APPROVED review.
// Change requests from other reviewers do not override it.
type ReviewClassifier struct{}

func (ReviewClassifier) Strategy() config.ApprovalStrategy { return config.StrategyReview }

func (ReviewClassifier) NeedsReviews() bool { return true }

func (ReviewClassifier) IsApproved(pr models.PullRequest) bool {
	for _, review := range pr.Reviews {
		if review.State == models.ReviewApproved {
			return true
		}
	}
	return false
}

// LabelClassifier approves a pull request carrying a label that contains "approved".
type LabelClassifier struct{}

func (LabelClassifier) Strategy() config.ApprovalStrategy { return config.StrategyLabel }

func (LabelClassifier) NeedsReviews() bool { return false }

func (LabelClassifier) IsApproved(pr models.PullRequest) bool {
	for _, label := range pr.Labels {
		if filter.ContainsAny(label, []string{approvedLabel}) {
			return true
		}
	}
	return false
}
