package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/acampbell/toolbelt/internal/config"
	"github.com/acampbell/toolbelt/internal/githubapi"
	"github.com/acampbell/toolbelt/internal/monitor"
)

var (
	monitorUserFlag     string
	monitorHooksFlag    string
	monitorIntervalFlag time.Duration
)

var prMonitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch your open pull requests for activity",
	Long: `Watch your open, non-draft, not-yet-approved pull requests and react to activity.

Each polling cycle is diffed against the previous one; merge conflicts, new
reviews, new comments, and CI completion each fire exactly once per transition.

Hooks decide what happens on an event:
  logging  log each event (default)
  agent    additionally post comments that nudge a coding agent, scoped to
           repositories matching the configured agent.repo_prefix

Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runPRMonitor,
}

func init() {
	prMonitorCmd.Flags().StringVar(&monitorUserFlag, "user", "", "GitHub login to monitor (default: authenticated user)")
	prMonitorCmd.Flags().StringVar(&monitorHooksFlag, "hooks", "", "Hooks variant: logging or agent (default: from config)")
	prMonitorCmd.Flags().DurationVar(&monitorIntervalFlag, "interval", 0, "Pause between polling cycles (default: from config)")
	prCmd.AddCommand(prMonitorCmd)
}

func runPRMonitor(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := githubapi.New(githubToken(), cfg.GitHub.Timeout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	username := monitorUserFlag
	if username == "" {
		username, err = client.CurrentUserLogin(ctx)
		if err != nil {
			return fmt.Errorf("failed to resolve GitHub user: %w", err)
		}
	}

	hooks, variant, err := buildHooks(client, cfg)
	if err != nil {
		return err
	}

	interval := cfg.Monitor.Interval
	if monitorIntervalFlag > 0 {
		interval = monitorIntervalFlag
	}

	mon := monitor.New(client, username, hooks, cfg.Monitor.Concurrency)
	runner := monitor.NewRunner(mon, interval)

	clog.Info("Starting PR monitor", "user", username, "interval", interval, "hooks", variant)
	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	clog.Info("PR monitor stopped")
	return nil
}

// buildHooks resolves the hooks variant from the flag (if set) or config.
func buildHooks(client githubapi.Client, cfg config.Config) (monitor.Hooks, config.HookVariant, error) {
	variant := cfg.Monitor.Hooks
	if monitorHooksFlag != "" {
		variant = config.HookVariant(monitorHooksFlag)
	}

	switch variant {
	case config.HooksAgent:
		return monitor.NewAgentHooks(client, monitor.AgentHooksConfig{
			RepoPrefix: cfg.Agent.RepoPrefix,
			Mention:    cfg.Agent.Mention,
			BotLogins:  cfg.Agent.BotLogins,
		}), variant, nil
	case config.HooksLogging, "":
		return monitor.NewLoggingHooks(), config.HooksLogging, nil
	default:
		return nil, variant, fmt.Errorf("unknown hooks variant %q", variant)
	}
}
