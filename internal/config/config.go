package config

import (
	"errors"
	"fmt"
	"time"
)

// HookVariant selects the hooks implementation the monitor dispatches to.
type HookVariant string

const (
	HooksLogging HookVariant = "logging"
	HooksAgent   HookVariant = "agent"
)

func (v HookVariant) IsValid() bool {
	switch v {
	case HooksLogging, HooksAgent:
		return true
	}
	return false
}

// Config represents the complete toolbelt configuration.
type Config struct {
	Agent   AgentConfig   `toml:"agent"`
	GitHub  GitHubConfig  `toml:"github"`
	Monitor MonitorConfig `toml:"monitor"`
}

// Validate checks that all config values are valid.
// Returns an error describing the first invalid value found.
func (c Config) Validate() error {
	if c.GitHub.Timeout < 0 {
		return errors.New("github.timeout cannot be negative")
	}
	if c.Monitor.Interval < 0 {
		return errors.New("monitor.interval cannot be negative")
	}
	if c.Monitor.Concurrency < 0 {
		return errors.New("monitor.concurrency cannot be negative")
	}
	if c.Monitor.Hooks != "" && !c.Monitor.Hooks.IsValid() {
		return fmt.Errorf("monitor.hooks must be one of %q or %q", HooksLogging, HooksAgent)
	}
	return nil
}

// GitHubConfig configures GitHub API access.
type GitHubConfig struct {
	Timeout time.Duration `toml:"timeout"` // Timeout per API call (e.g., "10s")
}

// MonitorConfig configures the PR activity monitor.
type MonitorConfig struct {
	Concurrency int           `toml:"concurrency"` // PRs processed at once per poll cycle
	Hooks       HookVariant   `toml:"hooks"`       // "logging" or "agent"
	Interval    time.Duration `toml:"interval"`    // Pause between poll cycles (e.g., "30s")
}

// AgentConfig configures the agent hooks variant.
type AgentConfig struct {
	// BotLogins are review authors whose unanswered threads get a reply.
	BotLogins []string `toml:"bot_logins"`
	// Mention is the handle prepended to posted comments.
	Mention string `toml:"mention"`
	// RepoPrefix scopes agent side effects, e.g. "myorg/". Empty disables them.
	RepoPrefix string `toml:"repo_prefix"`
}
