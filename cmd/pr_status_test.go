package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acampbell/toolbelt/internal/githubapi"
)

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetContext(context.Background())
	return cmd, buf
}

func statusSearchItem(repo string, number int, title string) githubapi.SearchIssueItem {
	item := githubapi.SearchIssueItem{
		Title:         title,
		RepositoryURL: "https://api.github.com/repos/" + repo,
		Number:        number,
		CreatedAt:     "2026-08-20T10:00:00Z",
	}
	item.PullRequest.URL = "https://api.github.com/repos/" + repo + "/pulls/1"
	return item
}

func TestRunPRStatus_RendersTable(t *testing.T) {
	item := statusSearchItem("myorg/widget", 42, "Add retry budget")
	var details githubapi.PullRequestDetails
	details.MergeableState = githubapi.MergeableStateClean
	details.ReviewDecision = "REVIEW_REQUIRED"
	details.Head.SHA = "sha-1"
	details.Base.Repo.FullName = "myorg/widget"

	client := &githubapi.MockClient{
		SearchResults: []githubapi.SearchIssueItem{item},
		Details: map[string]githubapi.PullRequestDetails{
			item.PullRequest.URL: details,
		},
		CheckRunsBySHA: map[string][]githubapi.CheckRun{
			"sha-1": {
				{ID: 1, Status: githubapi.CheckRunStatusCompleted, Conclusion: githubapi.CheckRunConclusionSuccess},
			},
		},
	}

	cmd, buf := newTestCommand()
	require.NoError(t, runPRStatusWithClient(cmd, client, "octocat"))

	out := buf.String()
	assert.Contains(t, out, "myorg/widget")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "Add retry budget")
	assert.Contains(t, out, "clean")
	assert.Contains(t, out, "review_required")
	assert.Contains(t, out, "success")
}

func TestRunPRStatus_Empty(t *testing.T) {
	client := &githubapi.MockClient{}

	cmd, buf := newTestCommand()
	require.NoError(t, runPRStatusWithClient(cmd, client, "octocat"))

	assert.Contains(t, buf.String(), "No pull requests found.")
}

func TestRunPRStatus_SkipsFailingDetail(t *testing.T) {
	good := statusSearchItem("myorg/widget", 1, "Good PR")
	bad := statusSearchItem("myorg/gadget", 2, "Bad PR")
	bad.PullRequest.URL = "https://api.github.com/repos/myorg/gadget/pulls/2"

	var details githubapi.PullRequestDetails
	details.MergeableState = githubapi.MergeableStateClean

	client := &githubapi.MockClient{
		SearchResults: []githubapi.SearchIssueItem{good, bad},
		Details: map[string]githubapi.PullRequestDetails{
			good.PullRequest.URL: details,
		},
		DetailsErrs: map[string]error{
			bad.PullRequest.URL: assert.AnError,
		},
	}

	cmd, buf := newTestCommand()
	require.NoError(t, runPRStatusWithClient(cmd, client, "octocat"))

	out := buf.String()
	assert.Contains(t, out, "Good PR")
	assert.NotContains(t, out, "Bad PR")
}

func TestRunPRReviews_RendersTable(t *testing.T) {
	item := statusSearchItem("myorg/widget", 9, "Please review")
	var details githubapi.PullRequestDetails
	details.MergeableState = githubapi.MergeableStateBlocked

	client := &githubapi.MockClient{
		ReviewRequested: []githubapi.SearchIssueItem{item},
		Details: map[string]githubapi.PullRequestDetails{
			item.PullRequest.URL: details,
		},
	}

	cmd, buf := newTestCommand()
	require.NoError(t, runPRReviewsWithClient(cmd, client, "octocat"))

	out := buf.String()
	assert.Contains(t, out, "Please review")
	assert.Contains(t, out, "blocked")
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{
			name:   "string shorter than maxLen",
			input:  "hello",
			maxLen: 10,
			want:   "hello",
		},
		{
			name:   "string longer than maxLen",
			input:  "hello world",
			maxLen: 8,
			want:   "hello...",
		},
		{
			name:   "maxLen less than 3",
			input:  "hello",
			maxLen: 2,
			want:   "he",
		},
		{
			name:   "empty string",
			input:  "",
			maxLen: 10,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateString(tt.input, tt.maxLen))
		})
	}
}
