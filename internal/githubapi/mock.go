package githubapi

import (
	"context"
	"fmt"
	"sync"
)

// PostedIssueComment records a CreateIssueComment call.
type PostedIssueComment struct {
	Repo   string
	Number int
	Body   string
}

// PostedReply records a CreateReviewCommentReply call.
type PostedReply struct {
	Repo      string
	Number    int
	CommentID int64
	Body      string
}

// MockClient implements Client for testing. Fixture data is keyed per pull
// request; errors can be injected globally or per resource. Safe for
// concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Fixture data
	Login            string
	SearchResults    []SearchIssueItem
	ReviewRequested  []SearchIssueItem
	Details          map[string]PullRequestDetails // by PR API URL
	ReviewsByPR      map[string][]Review           // by "repo#number"
	IssueCommentsBy  map[string][]IssueComment
	ReviewCommentsBy map[string][]ReviewComment
	CheckRunsBySHA   map[string][]CheckRun

	// Injected errors
	LoginErr       error
	SearchErr      error
	DetailsErrs    map[string]error // by PR API URL
	ReviewsErr     error
	CommentsErr    error
	CheckRunsErr   error
	PostCommentErr error
	PostReplyErr   error

	// Recorded writes
	IssueCommentsPosted []PostedIssueComment
	RepliesPosted       []PostedReply

	// Call counts
	SearchCalls int
}

var _ Client = &MockClient{}

// PrKey builds the fixture key used by the per-PR maps.
func PrKey(repo string, number int) string {
	return fmt.Sprintf("%s#%d", repo, number)
}

func (m *MockClient) CurrentUserLogin(context.Context) (string, error) {
	return m.Login, m.LoginErr
}

func (m *MockClient) SearchOpenAuthoredPRs(context.Context, string) ([]SearchIssueItem, error) {
	m.mu.Lock()
	m.SearchCalls++
	m.mu.Unlock()
	return m.SearchResults, m.SearchErr
}

func (m *MockClient) SearchReviewRequestedPRs(context.Context, string) ([]SearchIssueItem, error) {
	return m.ReviewRequested, m.SearchErr
}

func (m *MockClient) PullRequestDetails(_ context.Context, prURL string) (PullRequestDetails, error) {
	if err := m.DetailsErrs[prURL]; err != nil {
		return PullRequestDetails{}, err
	}
	return m.Details[prURL], nil
}

func (m *MockClient) Reviews(_ context.Context, repo string, number int) ([]Review, error) {
	return m.ReviewsByPR[PrKey(repo, number)], m.ReviewsErr
}

func (m *MockClient) IssueComments(_ context.Context, repo string, number int) ([]IssueComment, error) {
	return m.IssueCommentsBy[PrKey(repo, number)], m.CommentsErr
}

func (m *MockClient) ReviewComments(_ context.Context, repo string, number int) ([]ReviewComment, error) {
	return m.ReviewCommentsBy[PrKey(repo, number)], m.CommentsErr
}

func (m *MockClient) CheckRuns(_ context.Context, _ string, sha string) ([]CheckRun, error) {
	return m.CheckRunsBySHA[sha], m.CheckRunsErr
}

func (m *MockClient) CreateIssueComment(_ context.Context, repo string, number int, body string) error {
	if m.PostCommentErr != nil {
		return m.PostCommentErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IssueCommentsPosted = append(m.IssueCommentsPosted, PostedIssueComment{
		Repo:   repo,
		Number: number,
		Body:   body,
	})
	return nil
}

func (m *MockClient) CreateReviewCommentReply(_ context.Context, repo string, number int, commentID int64, body string) error {
	if m.PostReplyErr != nil {
		return m.PostReplyErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RepliesPosted = append(m.RepliesPosted, PostedReply{
		Repo:      repo,
		Number:    number,
		CommentID: commentID,
		Body:      body,
	})
	return nil
}
