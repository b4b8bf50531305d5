package monitor

import (
	"cmp"
	"context"
	"slices"
	"strings"

	clog "github.com/charmbracelet/log"

	"github.com/acampbell/toolbelt/internal/githubapi"
)

// AgentHooksConfig controls which repositories the agent hooks act on and how
// the coding agent is addressed.
type AgentHooksConfig struct {
	// RepoPrefix scopes side effects to repositories whose full name starts
	// with this prefix, e.g. "myorg/". Empty disables all side effects.
	RepoPrefix string
	// Mention is the handle prepended to posted comments, e.g. "@cursor".
	Mention string
	// BotLogins are the review authors whose thread-starting comments get a
	// reply.
	BotLogins []string
}

// AgentHooks posts comments back to the pull request to nudge a coding agent:
// a conversation comment on merge conflicts and CI failures, and a reply to
// unanswered bot review threads. HTTP failures are logged and swallowed so a
// failed side effect never aborts a poll cycle.
type AgentHooks struct {
	client githubapi.Client
	cfg    AgentHooksConfig
	log    *clog.Logger
}

var _ Hooks = &AgentHooks{}

// NewAgentHooks creates hooks that drive a coding agent via PR comments.
func NewAgentHooks(client githubapi.Client, cfg AgentHooksConfig) *AgentHooks {
	return &AgentHooks{
		client: client,
		cfg:    cfg,
		log:    clog.Default().WithPrefix("agent"),
	}
}

func (h *AgentHooks) inScope(pr PrRef) bool {
	return h.cfg.RepoPrefix != "" && strings.HasPrefix(pr.Repo, h.cfg.RepoPrefix)
}

func (h *AgentHooks) isBot(login string) bool {
	return slices.Contains(h.cfg.BotLogins, login)
}

func (h *AgentHooks) OnMergeConflict(ctx context.Context, pr PrRef) {
	if !h.inScope(pr) {
		h.log.Info("Skipping merge conflict hook", "url", pr.URL())
		return
	}

	body := h.cfg.Mention + " address the merge conflicts"
	if err := h.client.CreateIssueComment(ctx, pr.Repo, pr.Number, body); err != nil {
		h.log.Error("Failed to comment on merge conflict", "url", pr.URL(), "error", err)
		return
	}
	h.log.Info("Posted merge conflict comment", "url", pr.URL())
}

func (h *AgentHooks) OnNewReview(ctx context.Context, pr PrRef, reviews []ReviewWithComments) {
	if !h.inScope(pr) {
		h.log.Info("Skipping review hook", "url", pr.URL())
		return
	}

	body := h.cfg.Mention + " determine if this needs to be fixed and update the code if so. Avoid scope creep"
	for _, entry := range reviews {
		for _, starter := range h.unansweredBotThreads(entry.Comments) {
			if err := h.client.CreateReviewCommentReply(ctx, pr.Repo, pr.Number, starter.ID, body); err != nil {
				h.log.Error("Failed to reply to review comment",
					"comment", starter.ID, "url", pr.URL(), "error", err)
				continue
			}
			h.log.Info("Replied to review comment", "comment", starter.ID, "url", pr.URL())
		}
	}
}

// unansweredBotThreads returns bot-authored thread-starting comments that no
// bot has replied to yet, ordered ascending by ID.
func (h *AgentHooks) unansweredBotThreads(comments []githubapi.ReviewComment) []githubapi.ReviewComment {
	var starters []githubapi.ReviewComment
	for _, comment := range comments {
		if comment.InReplyToID != 0 || !h.isBot(comment.User.Login) {
			continue
		}
		answered := slices.ContainsFunc(comments, func(reply githubapi.ReviewComment) bool {
			return reply.InReplyToID == comment.ID && h.isBot(reply.User.Login)
		})
		if !answered {
			starters = append(starters, comment)
		}
	}
	slices.SortFunc(starters, func(a, b githubapi.ReviewComment) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return starters
}

func (h *AgentHooks) OnNewIssueComment(_ context.Context, _ PrRef, _ []githubapi.IssueComment) {
	// Conversation comments require no agent action.
}

func (h *AgentHooks) OnCIStatusChange(ctx context.Context, pr PrRef, hasFailure bool) {
	if !h.inScope(pr) {
		h.log.Info("Skipping CI hook", "url", pr.URL())
		return
	}
	if !hasFailure {
		h.log.Info("CI passed; no action", "url", pr.URL())
		return
	}

	body := h.cfg.Mention + " investigate and fix the CI failure"
	if err := h.client.CreateIssueComment(ctx, pr.Repo, pr.Number, body); err != nil {
		h.log.Error("Failed to comment on CI failure", "url", pr.URL(), "error", err)
		return
	}
	h.log.Info("Posted CI failure comment", "url", pr.URL())
}
