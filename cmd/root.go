package cmd

import "github.com/spf13/cobra"

// Version is set at build time via ldflags.
var Version = "n/a"

var rootCmd = &cobra.Command{
	Use:   "toolbelt",
	Short: "Personal developer productivity toolbelt",
	Long:  `Toolbelt wraps everyday git and GitHub workflows: PR dashboards and a PR activity monitor.`,
}

func init() {
	rootCmd.Version = Version
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
