package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	clog "github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/acampbell/toolbelt/internal/githubapi"
)

var prStatusUserFlag string

var prStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of your open pull requests",
	Long: `Show a table of your open, non-draft, not-yet-approved pull requests
with mergeability, review decision, and a CI rollup per PR.`,
	Args: cobra.NoArgs,
	RunE: runPRStatus,
}

func init() {
	prStatusCmd.Flags().StringVar(&prStatusUserFlag, "user", "", "GitHub login (default: authenticated user)")
	prCmd.AddCommand(prStatusCmd)
}

func runPRStatus(cmd *cobra.Command, _ []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}
	return runPRStatusWithClient(cmd, client, prStatusUserFlag)
}

func runPRStatusWithClient(cmd *cobra.Command, client githubapi.Client, username string) error {
	ctx := cmd.Context()

	if username == "" {
		var err error
		username, err = client.CurrentUserLogin(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve GitHub user: %w", err)
		}
	}

	items, err := client.SearchOpenAuthoredPRs(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to list pull requests: %w", err)
	}

	rows := buildPRRows(ctx, client, items)
	return outputPRTable(cmd, rows)
}

// newAPIClient builds the real GitHub client from config and environment.
func newAPIClient() (githubapi.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return githubapi.New(githubToken(), cfg.GitHub.Timeout)
}

// buildPRRows fetches per-PR detail and produces table rows sorted by
// repository. A PR whose detail fetch fails is skipped with a warning.
func buildPRRows(ctx context.Context, client githubapi.Client, items []githubapi.SearchIssueItem) [][]string {
	log := clog.Default().WithPrefix("pr")

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		repo := item.RepoFullName()

		details, err := client.PullRequestDetails(ctx, item.PullRequest.URL)
		if err != nil {
			log.Warn("Skipping pull request", "repo", repo, "number", item.Number, "error", err)
			continue
		}

		ci := "-"
		if details.Head.SHA != "" {
			runs, err := client.CheckRuns(ctx, repo, details.Head.SHA)
			if err != nil {
				log.Warn("Failed to fetch check runs", "repo", repo, "number", item.Number, "error", err)
			} else if len(runs) > 0 {
				ci = githubapi.SummarizeCIStatus(runs).String()
			}
		}

		opened := ""
		if createdAt, err := time.Parse(time.RFC3339, item.CreatedAt); err == nil {
			opened = humanize.Time(createdAt)
		}

		decision := details.ReviewDecision
		if decision == "" {
			decision = "-"
		}

		rows = append(rows, []string{
			repo,
			fmt.Sprintf("%d", item.Number),
			truncateString(item.Title, 40),
			opened,
			string(details.MergeableState),
			strings.ToLower(decision),
			ci,
		})
	}

	slices.SortStableFunc(rows, func(a, b []string) int {
		return strings.Compare(a[0], b[0])
	})
	return rows
}

// outputPRTable renders a lipgloss table to stdout.
func outputPRTable(cmd *cobra.Command, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No pull requests found.")
		return err
	}

	// Define colors
	purple := lipgloss.Color("99")
	gray := lipgloss.Color("245")
	lightGray := lipgloss.Color("241")

	headerStyle := lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	oddRowStyle := cellStyle.Foreground(gray)
	evenRowStyle := cellStyle.Foreground(lightGray)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return evenRowStyle
			default:
				return oddRowStyle
			}
		}).
		Headers("Repo", "#", "Title", "Opened", "Mergeable", "Review", "CI").
		Rows(rows...)

	_, err := fmt.Fprintln(cmd.OutOrStdout(), t)
	return err
}

// truncateString truncates a string to maxLen characters, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
