package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stack-advisor",
	Short: "Service discovery and recommendation engine for codebases",
	Long: `Stack Advisor profiles a project directory (languages, frameworks,
dependencies, infrastructure markers), matches the profile against a catalog of
auxiliary services and developer tooling, and recommends what to set up next:
databases, caches, monitoring, error tracking, build and test tooling.

For every recommendation it derives a ready-to-use configuration per
environment and resolves port, exclusivity and dependency conflicts between
the recommended services.`,
	Version: "1.0.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
