package config

import "time"

// DefaultConfig returns sensible defaults for all configuration.
func DefaultConfig() Config {
	return Config{
		Agent: AgentConfig{
			BotLogins: []string{
				"cursor[bot]",
				"copilot-pull-request-reviewer[bot]",
			},
			Mention:    "@cursor",
			RepoPrefix: "",
		},
		GitHub: GitHubConfig{
			Timeout: 10 * time.Second,
		},
		Monitor: MonitorConfig{
			Concurrency: 4,
			Hooks:       HooksLogging,
			Interval:    30 * time.Second,
		},
	}
}
