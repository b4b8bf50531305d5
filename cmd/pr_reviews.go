package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/acampbell/toolbelt/internal/githubapi"
)

var prReviewsUserFlag string

var prReviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Show pull requests waiting on your review",
	Long:  `Show a table of open pull requests where your review has been requested.`,
	Args:  cobra.NoArgs,
	RunE:  runPRReviews,
}

func init() {
	prReviewsCmd.Flags().StringVar(&prReviewsUserFlag, "user", "", "GitHub login (default: authenticated user)")
	prCmd.AddCommand(prReviewsCmd)
}

func runPRReviews(cmd *cobra.Command, _ []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}
	return runPRReviewsWithClient(cmd, client, prReviewsUserFlag)
}

func runPRReviewsWithClient(cmd *cobra.Command, client githubapi.Client, username string) error {
	ctx := cmd.Context()

	if username == "" {
		var err error
		username, err = client.CurrentUserLogin(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve GitHub user: %w", err)
		}
	}

	items, err := client.SearchReviewRequestedPRs(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to list review requests: %w", err)
	}

	rows := buildPRRows(ctx, client, items)
	return outputPRTable(cmd, rows)
}
