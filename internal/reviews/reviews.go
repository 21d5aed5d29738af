package reviews

import (
	"fmt"
	"strings"

	"github.com/faizalzakaria/slack-pull-reminder/internal/models"
)

const (
	ApprovedMarker         = ":white_check_mark:"
	ChangesRequestedMarker = ":o:"
	WarningMarker          = ":warning:"

	NoReviews = "No reviews " + WarningMarker
)

// renderOrder fixes the order of the state groups in a summary.
var renderOrder = []struct {
	state  models.ReviewState
	marker string
}{
	{models.ReviewApproved, ApprovedMarker},
	{models.ReviewChangesRequested, ChangesRequestedMarker},
}

// Summarize renders approvals and change requests as one status line.
// Other review states are ignored. Each reviewer is listed once per state,
// in the order first seen.
func Summarize(reviews []models.Review) string {
	groups := make([]string, 0, len(renderOrder))
	for _, entry := range renderOrder {
		reviewers := reviewersWithState(reviews, entry.state)
		if len(reviewers) == 0 {
			continue
		}
		groups = append(groups, fmt.Sprintf("%s by %s", entry.marker, strings.Join(reviewers, ", ")))
	}

	if len(groups) == 0 {
		return NoReviews
	}
	return "Reviews: " + strings.Join(groups, ", ")
}

func reviewersWithState(reviews []models.Review, state models.ReviewState) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range reviews {
		if r.State != state {
			continue
		}
		if _, ok := seen[r.Reviewer]; ok {
			continue
		}
		seen[r.Reviewer] = struct{}{}
		out = append(out, "@"+r.Reviewer)
	}
	return out
}
