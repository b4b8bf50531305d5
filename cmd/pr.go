package cmd

import "github.com/spf13/cobra"

var prCmd = &cobra.Command{
	Use:   "pr",
	Short: "Work with pull requests",
	Long:  `Commands for inspecting and monitoring your GitHub pull requests.`,
}

func init() {
	rootCmd.AddCommand(prCmd)
}
