package monitor

import (
	"context"

	clog "github.com/charmbracelet/log"

	"github.com/acampbell/toolbelt/internal/githubapi"
)

// Hooks receives pull request lifecycle events from the monitor and performs
// side effects. Each method is a one-way notification fired at most once per
// transition per poll; the monitor never consumes a result from a hook.
// Implementations own their own error boundary: a failed side effect must be
// handled internally and must never surface to the monitor.
type Hooks interface {
	// OnMergeConflict fires when a pull request transitions into an
	// unresolved merge conflict.
	OnMergeConflict(ctx context.Context, pr PrRef)

	// OnNewReview fires once per poll with all reviews (and their inline
	// comments) observed since the previous poll, ordered by review ID.
	OnNewReview(ctx context.Context, pr PrRef, reviews []ReviewWithComments)

	// OnNewIssueComment fires once per poll with all new conversation
	// comments, ordered by comment ID.
	OnNewIssueComment(ctx context.Context, pr PrRef, comments []githubapi.IssueComment)

	// OnCIStatusChange fires when all check runs complete, having not all
	// been complete on the previous poll.
	OnCIStatusChange(ctx context.Context, pr PrRef, hasFailure bool)
}

// LoggingHooks emits a structured log line per event and never fails.
type LoggingHooks struct {
	log *clog.Logger
}

var _ Hooks = &LoggingHooks{}

// NewLoggingHooks creates hooks that only log.
func NewLoggingHooks() *LoggingHooks {
	return &LoggingHooks{
		log: clog.Default().WithPrefix("monitor"),
	}
}

func (h *LoggingHooks) OnMergeConflict(_ context.Context, pr PrRef) {
	h.log.Info("Merge conflict detected", "repo", pr.Repo, "number", pr.Number, "url", pr.URL())
}

func (h *LoggingHooks) OnNewReview(_ context.Context, pr PrRef, reviews []ReviewWithComments) {
	comments := 0
	for _, entry := range reviews {
		comments += len(entry.Comments)
	}
	h.log.Info("New reviews",
		"repo", pr.Repo,
		"number", pr.Number,
		"reviews", len(reviews),
		"comments", comments,
	)
}

func (h *LoggingHooks) OnNewIssueComment(_ context.Context, pr PrRef, comments []githubapi.IssueComment) {
	h.log.Info("New comments", "repo", pr.Repo, "number", pr.Number, "comments", len(comments))
}

func (h *LoggingHooks) OnCIStatusChange(_ context.Context, pr PrRef, hasFailure bool) {
	h.log.Info("CI checks completed", "repo", pr.Repo, "number", pr.Number, "hasFailure", hasFailure)
}
