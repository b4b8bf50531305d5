package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// GitHub defaults
	assert.Equal(t, 10*time.Second, cfg.GitHub.Timeout)

	// Monitor defaults
	assert.Equal(t, 4, cfg.Monitor.Concurrency)
	assert.Equal(t, HooksLogging, cfg.Monitor.Hooks)
	assert.Equal(t, 30*time.Second, cfg.Monitor.Interval)

	// Agent defaults
	assert.Equal(t, "@cursor", cfg.Agent.Mention)
	assert.Empty(t, cfg.Agent.RepoPrefix)
	assert.Contains(t, cfg.Agent.BotLogins, "cursor[bot]")

	// Default config should be valid
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: "",
		},
		{
			name: "negative github timeout",
			modify: func(c *Config) {
				c.GitHub.Timeout = -1 * time.Second
			},
			wantErr: "github.timeout cannot be negative",
		},
		{
			name: "negative monitor interval",
			modify: func(c *Config) {
				c.Monitor.Interval = -1 * time.Second
			},
			wantErr: "monitor.interval cannot be negative",
		},
		{
			name: "negative concurrency",
			modify: func(c *Config) {
				c.Monitor.Concurrency = -1
			},
			wantErr: "monitor.concurrency cannot be negative",
		},
		{
			name: "unknown hooks variant",
			modify: func(c *Config) {
				c.Monitor.Hooks = "pager"
			},
			wantErr: "monitor.hooks must be one of",
		},
		{
			name: "empty hooks variant is valid",
			modify: func(c *Config) {
				c.Monitor.Hooks = ""
			},
			wantErr: "",
		},
		{
			name: "agent hooks variant is valid",
			modify: func(c *Config) {
				c.Monitor.Hooks = HooksAgent
			},
			wantErr: "",
		},
		{
			name: "zero timeout is valid",
			modify: func(c *Config) {
				c.GitHub.Timeout = 0
			},
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestHookVariant_IsValid(t *testing.T) {
	assert.True(t, HooksLogging.IsValid())
	assert.True(t, HooksAgent.IsValid())
	assert.False(t, HookVariant("").IsValid())
	assert.False(t, HookVariant("pager").IsValid())
}

func TestConfigPaths(t *testing.T) {
	paths := ConfigPaths("/work/project", "/home/user")

	assert.Equal(t, []string{
		"/home/user/.config/toolbelt/config.toml",
		"/work/project/.toolbelt.toml",
	}, paths)
}
