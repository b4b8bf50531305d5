package githubapi

import "strings"

// MergeableState is GitHub's computed merge-readiness classification for a
// pull request's head against its base.
type MergeableState string

const (
	MergeableStateUnknown  MergeableState = "unknown"
	MergeableStateClean    MergeableState = "clean"
	MergeableStateDirty    MergeableState = "dirty"
	MergeableStateUnstable MergeableState = "unstable"
	MergeableStateBlocked  MergeableState = "blocked"
	MergeableStateBehind   MergeableState = "behind"
	MergeableStateHasHooks MergeableState = "has_hooks"
)

func (s MergeableState) String() string {
	return string(s)
}

func (s MergeableState) IsValid() bool {
	switch s {
	case MergeableStateUnknown, MergeableStateClean, MergeableStateDirty,
		MergeableStateUnstable, MergeableStateBlocked, MergeableStateBehind,
		MergeableStateHasHooks:
		return true
	}
	return false
}

// CheckRunStatus is the lifecycle stage of a single check run.
type CheckRunStatus string

const (
	CheckRunStatusQueued     CheckRunStatus = "queued"
	CheckRunStatusInProgress CheckRunStatus = "in_progress"
	CheckRunStatusCompleted  CheckRunStatus = "completed"
)

// CheckRunConclusion is the result of a completed check run. Empty until the
// run completes.
type CheckRunConclusion string

const (
	CheckRunConclusionSuccess        CheckRunConclusion = "success"
	CheckRunConclusionFailure        CheckRunConclusion = "failure"
	CheckRunConclusionNeutral        CheckRunConclusion = "neutral"
	CheckRunConclusionCancelled      CheckRunConclusion = "cancelled"
	CheckRunConclusionSkipped        CheckRunConclusion = "skipped"
	CheckRunConclusionStale          CheckRunConclusion = "stale"
	CheckRunConclusionActionRequired CheckRunConclusion = "action_required"
	CheckRunConclusionTimedOut       CheckRunConclusion = "timed_out"
)

// User is a GitHub account referenced by reviews and comments.
type User struct {
	Login string `json:"login"`
	Type  string `json:"type"`
}

// SearchIssueItem is one result from the issue search endpoint, restricted to
// pull requests by the queries this package issues.
type SearchIssueItem struct {
	Title         string `json:"title"`
	HTMLURL       string `json:"html_url"`
	RepositoryURL string `json:"repository_url"`
	Number        int    `json:"number"`
	State         string `json:"state"`
	Draft         bool   `json:"draft"`
	CreatedAt     string `json:"created_at"`
	PullRequest   struct {
		URL string `json:"url"`
	} `json:"pull_request"`
}

// RepoFullName derives "owner/name" from the item's repository API URL.
func (s SearchIssueItem) RepoFullName() string {
	if _, after, ok := strings.Cut(s.RepositoryURL, "/repos/"); ok {
		return after
	}
	parts := strings.Split(strings.Trim(s.RepositoryURL, "/"), "/")
	if len(parts) >= 2 {
		return strings.Join(parts[len(parts)-2:], "/")
	}
	return s.RepositoryURL
}

type searchIssuesResponse struct {
	Items []SearchIssueItem `json:"items"`
}

// PullRequestDetails is the subset of the pull request resource the toolbelt
// consumes.
type PullRequestDetails struct {
	MergeableState MergeableState `json:"mergeable_state"`
	ReviewDecision string         `json:"review_decision"`
	Head           struct {
		SHA string `json:"sha"`
	} `json:"head"`
	Base struct {
		Repo struct {
			FullName string `json:"full_name"`
		} `json:"repo"`
	} `json:"base"`
}

// Review is a reviewer's top-level verdict on a pull request.
type Review struct {
	ID    int64  `json:"id"`
	State string `json:"state"`
	User  User   `json:"user"`
}

// ReviewComment is an inline code comment attached to a review.
type ReviewComment struct {
	ID                  int64  `json:"id"`
	PullRequestReviewID int64  `json:"pull_request_review_id"`
	InReplyToID         int64  `json:"in_reply_to_id"`
	User                User   `json:"user"`
	HTMLURL             string `json:"html_url"`
	Body                string `json:"body"`
}

// IssueComment is a timeline-level comment on the pull request conversation.
type IssueComment struct {
	ID      int64  `json:"id"`
	User    User   `json:"user"`
	HTMLURL string `json:"html_url"`
	Body    string `json:"body"`
}

// CheckRun is a single CI check result reported against a commit SHA.
type CheckRun struct {
	ID         int64              `json:"id"`
	Name       string             `json:"name"`
	Status     CheckRunStatus     `json:"status"`
	Conclusion CheckRunConclusion `json:"conclusion"`
}

type checkRunsResponse struct {
	CheckRuns []CheckRun `json:"check_runs"`
}
