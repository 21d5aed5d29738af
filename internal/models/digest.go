package models

import "strings"

// Group is the approval bucket a digest line belongs to.
type Group string

const (
	GroupNeedsReview Group = "needs_review"
	GroupApproved    Group = "approved"
)

// Collection holds the formatted lines produced by one scan, in visitation order.
type Collection struct {
	NeedsReview []string
	Approved    []string
	// All keeps every eligible line regardless of group.
	All []string
}

// Add routes a line into its group.
func (c *Collection) Add(line string, approved bool) {
	if approved {
		c.Approved = append(c.Approved, line)
	} else {
		c.NeedsReview = append(c.NeedsReview, line)
	}
	c.All = append(c.All, line)
}

// Append concatenates another collection after this one.
func (c *Collection) Append(other Collection) {
	c.NeedsReview = append(c.NeedsReview, other.NeedsReview...)
	c.Approved = append(c.Approved, other.Approved...)
	c.All = append(c.All, other.All...)
}

// Digest is one chat message: a header followed by its lines.
type Digest struct {
	Group  Group
	Header string
	Lines  []string
}

func (d Digest) Text() string {
	return d.Header + strings.Join(d.Lines, "\n")
}
