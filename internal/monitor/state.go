package monitor

import (
	"fmt"

	"github.com/acampbell/toolbelt/internal/githubapi"
)

// PrIdentity uniquely keys a tracked pull request for the lifetime of the
// monitor process. Titles and other display attributes are never part of the
// key.
type PrIdentity struct {
	Repo   string
	Number int
}

func (id PrIdentity) String() string {
	return fmt.Sprintf("%s#%d", id.Repo, id.Number)
}

// PrState is the last-observed snapshot of a pull request, used as the diff
// base for the next poll. All Last* IDs are non-decreasing across polls
// because the upstream assigns IDs monotonically and a tracked PR's history
// only grows.
type PrState struct {
	MergeableState      githubapi.MergeableState
	ReviewDecision      string
	LastCheckRunID      int64
	CIAllCompleted      bool
	LastReviewID        int64
	LastIssueCommentID  int64
	LastReviewCommentID int64
}

// PrRef is the immutable reference handed to hooks.
type PrRef struct {
	Repo   string
	Number int
}

// URL returns the browser link for the pull request.
func (r PrRef) URL() string {
	return fmt.Sprintf("https://github.com/%s/pull/%d", r.Repo, r.Number)
}

// ReviewWithComments pairs a review with its new inline comments, ordered
// ascending by comment ID.
type ReviewWithComments struct {
	Review   githubapi.Review
	Comments []githubapi.ReviewComment
}
