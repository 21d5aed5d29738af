package models

import (
	"time"

	domainErrors "github.com/faizalzakaria/slack-pull-reminder/internal/errors"
)

// ReviewState is the state GitHub reports for a single review.
type ReviewState string

const (
	ReviewApproved         ReviewState = "APPROVED"
	ReviewChangesRequested ReviewState = "CHANGES_REQUESTED"
	ReviewCommented        ReviewState = "COMMENTED"
	ReviewDismissed        ReviewState = "DISMISSED"
	ReviewPending          ReviewState = "PENDING"
)

const StateOpen = "open"

type (
	// Repository identifies a repository inside the scanned organization.
	Repository struct {
		Owner string
		Name  string
	}

	// PullRequest is the normalized view of a fetched pull request.
	PullRequest struct {
		Owner      string
		Repository string
		Number     int
		Title      string
		URL        string
		Author     string
		CreatedAt  time.Time
		State      string
		Labels     []string
		Reviews    []Review
	}

	// Review is one submitted review on a pull request.
	Review struct {
		Reviewer string
		State    ReviewState
	}
)

// FullName returns owner/name.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// Validate reports missing fields that would make classification or
// formatting of the record unreliable.
func (pr PullRequest) Validate() error {
	missing := func(field string) error {
		return domainErrors.ErrMalformedPullRequest.
			WithContext("field", field).
			WithContext("repo", pr.Owner+"/"+pr.Repository).
			WithContext("pr_number", pr.Number)
	}

	if pr.Author == "" {
		return missing("author")
	}
	if pr.URL == "" {
		return missing("url")
	}
	if pr.CreatedAt.IsZero() {
		return missing("created_at")
	}
	for _, label := range pr.Labels {
		if label == "" {
			return missing("label.name")
		}
	}
	for _, review := range pr.Reviews {
		if review.Reviewer == "" {
			return missing("review.user")
		}
		if review.State == "" {
			return missing("review.state")
		}
	}
	return nil
}
