package monitor

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	clog "github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/acampbell/toolbelt/internal/githubapi"
)

// DefaultConcurrency bounds how many pull requests are processed at once
// within a single poll cycle.
const DefaultConcurrency = 4

// Monitor tracks the user's open pull requests, diffs each poll against the
// previously observed state, and fires lifecycle events on the configured
// hooks exactly once per transition.
type Monitor struct {
	client      githubapi.Client
	username    string
	hooks       Hooks
	store       *Store
	concurrency int
	log         *clog.Logger
}

// New creates a Monitor with an empty state store. The store is owned by the
// Monitor; nothing else mutates it.
func New(client githubapi.Client, username string, hooks Hooks, concurrency int) *Monitor {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Monitor{
		client:      client,
		username:    username,
		hooks:       hooks,
		store:       NewStore(),
		concurrency: concurrency,
		log:         clog.Default().WithPrefix("monitor"),
	}
}

// PollOnce runs one poll cycle: discover currently-relevant PRs, fetch their
// detail, diff against stored state, fire events, and reconcile the store.
// A failure while processing one PR is logged and leaves that PR's stored
// snapshot untouched; only a failed discovery fails the whole cycle.
func (m *Monitor) PollOnce(ctx context.Context) error {
	items, err := m.client.SearchOpenAuthoredPRs(ctx, m.username)
	if err != nil {
		return fmt.Errorf("failed to search open pull requests: %w", err)
	}

	// Every PR in the result set counts as seen, even if its processing
	// fails below: it is still open, so its prior snapshot must survive.
	seen := make(map[PrIdentity]struct{}, len(items))
	for _, item := range items {
		seen[PrIdentity{Repo: item.RepoFullName(), Number: item.Number}] = struct{}{}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for _, item := range items {
		item := item
		id := PrIdentity{Repo: item.RepoFullName(), Number: item.Number}
		g.Go(func() error {
			if err := m.processPR(gctx, id, item); err != nil {
				m.log.Warn("Skipping pull request this cycle",
					"repo", id.Repo, "number", id.Number, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, id := range m.store.RemoveNotIn(seen) {
		m.log.Debug("Removed stale PR state", "repo", id.Repo, "number", id.Number)
	}
	return nil
}

// processPR fetches the current detail for one pull request, diffs it against
// the stored snapshot, dispatches events, and commits the new snapshot. The
// first observation of an identity only records a baseline and fires nothing.
func (m *Monitor) processPR(ctx context.Context, id PrIdentity, item githubapi.SearchIssueItem) error {
	details, err := m.client.PullRequestDetails(ctx, item.PullRequest.URL)
	if err != nil {
		return err
	}

	reviews, err := m.client.Reviews(ctx, id.Repo, id.Number)
	if err != nil {
		return err
	}
	issueComments, err := m.client.IssueComments(ctx, id.Repo, id.Number)
	if err != nil {
		return err
	}
	reviewComments, err := m.client.ReviewComments(ctx, id.Repo, id.Number)
	if err != nil {
		return err
	}
	checkRuns, err := m.client.CheckRuns(ctx, id.Repo, details.Head.SHA)
	if err != nil {
		return err
	}

	current := PrState{
		MergeableState: details.MergeableState,
		ReviewDecision: details.ReviewDecision,
		LastCheckRunID: maxID(checkRuns, func(r githubapi.CheckRun) int64 { return r.ID }),
		CIAllCompleted: allCompleted(checkRuns),
		LastReviewID:   maxID(reviews, func(r githubapi.Review) int64 { return r.ID }),
		LastIssueCommentID: maxID(issueComments,
			func(c githubapi.IssueComment) int64 { return c.ID }),
		LastReviewCommentID: maxID(reviewComments,
			func(c githubapi.ReviewComment) int64 { return c.ID }),
	}

	previous, ok := m.store.Get(id)
	if !ok {
		m.store.Put(id, current)
		m.log.Debug("Initialized PR state", "repo", id.Repo, "number", id.Number)
		return nil
	}

	// Hooks run after the diff and before the state commit, so a slow or
	// failing hook cannot corrupt the next cycle's diff base.
	ref := PrRef{Repo: id.Repo, Number: id.Number}
	m.dispatchMergeableChange(ctx, ref, previous, current)
	m.dispatchNewReviews(ctx, ref, reviews, reviewComments, previous)
	m.dispatchNewIssueComments(ctx, ref, issueComments, previous.LastIssueCommentID)
	m.dispatchCICompletion(ctx, ref, previous, current, checkRuns)

	m.store.Put(id, current)
	return nil
}

// dispatchMergeableChange fires only on the transition into a conflict, not on
// every mergeable-state change and not while the PR stays dirty.
func (m *Monitor) dispatchMergeableChange(ctx context.Context, pr PrRef, previous, current PrState) {
	if current.MergeableState == previous.MergeableState {
		return
	}
	if current.MergeableState == githubapi.MergeableStateDirty {
		m.hooks.OnMergeConflict(ctx, pr)
	}
}

// dispatchNewReviews groups comments newer than the previous snapshot by
// their owning review and fires a single OnNewReview with all entries,
// ordered by review ID. Comments whose review is not among the fetched
// reviews are dropped.
func (m *Monitor) dispatchNewReviews(ctx context.Context, pr PrRef, reviews []githubapi.Review, reviewComments []githubapi.ReviewComment, previous PrState) {
	var newReviews []githubapi.Review
	for _, review := range reviews {
		if review.ID > previous.LastReviewID {
			newReviews = append(newReviews, review)
		}
	}
	var newComments []githubapi.ReviewComment
	for _, comment := range reviewComments {
		if comment.ID > previous.LastReviewCommentID {
			newComments = append(newComments, comment)
		}
	}
	if len(newReviews) == 0 && len(newComments) == 0 {
		return
	}

	reviewByID := make(map[int64]githubapi.Review, len(reviews))
	for _, review := range reviews {
		reviewByID[review.ID] = review
	}

	reviewIDs := make(map[int64]struct{})
	for _, review := range newReviews {
		reviewIDs[review.ID] = struct{}{}
	}
	for _, comment := range newComments {
		reviewIDs[comment.PullRequestReviewID] = struct{}{}
	}

	slices.SortFunc(newComments, func(a, b githubapi.ReviewComment) int {
		return cmp.Compare(a.ID, b.ID)
	})
	grouped := make(map[int64][]githubapi.ReviewComment)
	for _, comment := range newComments {
		grouped[comment.PullRequestReviewID] = append(grouped[comment.PullRequestReviewID], comment)
	}

	sortedIDs := make([]int64, 0, len(reviewIDs))
	for reviewID := range reviewIDs {
		sortedIDs = append(sortedIDs, reviewID)
	}
	slices.Sort(sortedIDs)

	var entries []ReviewWithComments
	for _, reviewID := range sortedIDs {
		review, ok := reviewByID[reviewID]
		if !ok {
			continue
		}
		entries = append(entries, ReviewWithComments{
			Review:   review,
			Comments: grouped[reviewID],
		})
	}
	if len(entries) == 0 {
		return
	}
	m.hooks.OnNewReview(ctx, pr, entries)
}

func (m *Monitor) dispatchNewIssueComments(ctx context.Context, pr PrRef, comments []githubapi.IssueComment, lastCommentID int64) {
	var newComments []githubapi.IssueComment
	for _, comment := range comments {
		if comment.ID > lastCommentID {
			newComments = append(newComments, comment)
		}
	}
	if len(newComments) == 0 {
		return
	}
	slices.SortFunc(newComments, func(a, b githubapi.IssueComment) int {
		return cmp.Compare(a.ID, b.ID)
	})
	m.hooks.OnNewIssueComment(ctx, pr, newComments)
}

// dispatchCICompletion is edge-triggered on "every check run completed": it
// fires when that holds now and did not hold on the previous snapshot.
func (m *Monitor) dispatchCICompletion(ctx context.Context, pr PrRef, previous, current PrState, checkRuns []githubapi.CheckRun) {
	if !current.CIAllCompleted || previous.CIAllCompleted {
		return
	}
	hasFailure := slices.ContainsFunc(checkRuns, func(run githubapi.CheckRun) bool {
		return run.Conclusion == githubapi.CheckRunConclusionFailure
	})
	m.hooks.OnCIStatusChange(ctx, pr, hasFailure)
}

func allCompleted(runs []githubapi.CheckRun) bool {
	if len(runs) == 0 {
		return false
	}
	for _, run := range runs {
		if run.Status != githubapi.CheckRunStatusCompleted {
			return false
		}
	}
	return true
}

func maxID[T any](items []T, id func(T) int64) int64 {
	var highest int64
	for _, item := range items {
		if v := id(item); v > highest {
			highest = v
		}
	}
	return highest
}
