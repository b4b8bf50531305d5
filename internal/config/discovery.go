package config

import "path/filepath"

// ConfigPaths returns candidate config file paths, ordered from lowest to
// highest priority: the user-level config, then a per-directory override.
func ConfigPaths(cwd string, homeDir string) []string {
	return []string{
		filepath.Join(homeDir, ".config", "toolbelt", "config.toml"),
		filepath.Join(cwd, ".toolbelt.toml"),
	}
}
