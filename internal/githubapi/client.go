package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cli/go-gh/v2/pkg/api"
)

const (
	apiBaseURL = "https://api.github.com"
	pageSize   = 100
)

// Client is the GitHub API surface the toolbelt depends on. Implementations
// own authentication, rate-limit handling, and pagination.
type Client interface {
	// CurrentUserLogin returns the login of the authenticated user.
	CurrentUserLogin(ctx context.Context) (string, error)

	// SearchOpenAuthoredPRs returns the user's open, non-draft, not yet
	// approved pull requests across all repositories.
	SearchOpenAuthoredPRs(ctx context.Context, username string) ([]SearchIssueItem, error)

	// SearchReviewRequestedPRs returns open pull requests where the user's
	// review is requested.
	SearchReviewRequestedPRs(ctx context.Context, username string) ([]SearchIssueItem, error)

	// PullRequestDetails fetches a single pull request by its API URL.
	PullRequestDetails(ctx context.Context, prURL string) (PullRequestDetails, error)

	// Reviews returns all reviews on a pull request.
	Reviews(ctx context.Context, repo string, number int) ([]Review, error)

	// IssueComments returns all conversation comments on a pull request.
	IssueComments(ctx context.Context, repo string, number int) ([]IssueComment, error)

	// ReviewComments returns all inline review comments on a pull request.
	ReviewComments(ctx context.Context, repo string, number int) ([]ReviewComment, error)

	// CheckRuns returns the check runs reported against a commit SHA.
	CheckRuns(ctx context.Context, repo string, sha string) ([]CheckRun, error)

	// CreateIssueComment posts a comment on the pull request conversation.
	CreateIssueComment(ctx context.Context, repo string, number int, body string) error

	// CreateReviewCommentReply replies to an inline review comment thread.
	CreateReviewCommentReply(ctx context.Context, repo string, number int, commentID int64, body string) error
}

// RESTClient implements Client on top of the go-gh REST client. When token is
// empty, go-gh resolves credentials from the environment and the gh CLI
// configuration.
type RESTClient struct {
	log  *clog.Logger
	rest *api.RESTClient
}

var _ Client = &RESTClient{}

// New creates a RESTClient authenticated with the given token.
func New(token string, timeout time.Duration) (*RESTClient, error) {
	rest, err := api.NewRESTClient(api.ClientOptions{
		AuthToken: token,
		Timeout:   timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub REST client: %w", err)
	}
	return &RESTClient{
		log:  clog.Default().WithPrefix("github"),
		rest: rest,
	}, nil
}

func (c *RESTClient) CurrentUserLogin(ctx context.Context) (string, error) {
	var user struct {
		Login string `json:"login"`
	}
	if err := c.rest.DoWithContext(ctx, http.MethodGet, "user", nil, &user); err != nil {
		return "", fmt.Errorf("failed to fetch authenticated user: %w", err)
	}
	return user.Login, nil
}

func (c *RESTClient) SearchOpenAuthoredPRs(ctx context.Context, username string) ([]SearchIssueItem, error) {
	query := fmt.Sprintf("is:pr is:open author:%s archived:false -draft:true -review:approved", username)
	return c.searchIssues(ctx, query)
}

func (c *RESTClient) SearchReviewRequestedPRs(ctx context.Context, username string) ([]SearchIssueItem, error) {
	query := fmt.Sprintf("is:pr is:open review-requested:%s archived:false", username)
	return c.searchIssues(ctx, query)
}

// searchIssues pages through the issue search endpoint until an empty page.
func (c *RESTClient) searchIssues(ctx context.Context, query string) ([]SearchIssueItem, error) {
	var all []SearchIssueItem
	for page := 1; ; page++ {
		path := fmt.Sprintf("search/issues?q=%s&per_page=%d&page=%d&sort=updated",
			url.QueryEscape(query), pageSize, page)
		c.log.Debug("Searching issues", "query", query, "page", page)

		var payload searchIssuesResponse
		if err := c.rest.DoWithContext(ctx, http.MethodGet, path, nil, &payload); err != nil {
			return nil, fmt.Errorf("failed to search pull requests (page %d): %w", page, err)
		}
		if len(payload.Items) == 0 {
			return all, nil
		}
		all = append(all, payload.Items...)
	}
}

func (c *RESTClient) PullRequestDetails(ctx context.Context, prURL string) (PullRequestDetails, error) {
	var details PullRequestDetails
	if err := c.rest.DoWithContext(ctx, http.MethodGet, prURL, nil, &details); err != nil {
		return PullRequestDetails{}, fmt.Errorf("failed to fetch pull request %s: %w", prURL, err)
	}
	return details, nil
}

func (c *RESTClient) Reviews(ctx context.Context, repo string, number int) ([]Review, error) {
	return pagedGet[Review](ctx, c, fmt.Sprintf("%s/repos/%s/pulls/%d/reviews", apiBaseURL, repo, number))
}

func (c *RESTClient) IssueComments(ctx context.Context, repo string, number int) ([]IssueComment, error) {
	return pagedGet[IssueComment](ctx, c, fmt.Sprintf("%s/repos/%s/issues/%d/comments", apiBaseURL, repo, number))
}

func (c *RESTClient) ReviewComments(ctx context.Context, repo string, number int) ([]ReviewComment, error) {
	return pagedGet[ReviewComment](ctx, c, fmt.Sprintf("%s/repos/%s/pulls/%d/comments", apiBaseURL, repo, number))
}

func (c *RESTClient) CheckRuns(ctx context.Context, repo string, sha string) ([]CheckRun, error) {
	path := fmt.Sprintf("%s/repos/%s/commits/%s/check-runs?per_page=%d", apiBaseURL, repo, sha, pageSize)
	var payload checkRunsResponse
	if err := c.rest.DoWithContext(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch check runs for %s@%s: %w", repo, sha, err)
	}
	return payload.CheckRuns, nil
}

func (c *RESTClient) CreateIssueComment(ctx context.Context, repo string, number int, body string) error {
	path := fmt.Sprintf("%s/repos/%s/issues/%d/comments", apiBaseURL, repo, number)
	return c.postJSON(ctx, path, map[string]string{"body": body})
}

func (c *RESTClient) CreateReviewCommentReply(ctx context.Context, repo string, number int, commentID int64, body string) error {
	path := fmt.Sprintf("%s/repos/%s/pulls/%d/comments/%d/replies", apiBaseURL, repo, number, commentID)
	return c.postJSON(ctx, path, map[string]string{"body": body})
}

func (c *RESTClient) postJSON(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	var response any
	if err := c.rest.DoWithContext(ctx, http.MethodPost, path, bytes.NewReader(payload), &response); err != nil {
		return fmt.Errorf("failed to post to %s: %w", path, err)
	}
	return nil
}

// pagedGet follows a list resource's pagination until an empty page.
func pagedGet[T any](ctx context.Context, c *RESTClient, listURL string) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		path := fmt.Sprintf("%s?per_page=%d&page=%d", listURL, pageSize, page)
		var items []T
		if err := c.rest.DoWithContext(ctx, http.MethodGet, path, nil, &items); err != nil {
			return nil, fmt.Errorf("failed to fetch %s (page %d): %w", listURL, page, err)
		}
		if len(items) == 0 {
			return all, nil
		}
		all = append(all, items...)
	}
}
