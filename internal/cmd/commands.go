package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/petrarca/stack-advisor/internal/catalog"
	"github.com/petrarca/stack-advisor/internal/commands"
	"github.com/petrarca/stack-advisor/internal/config"
	"github.com/petrarca/stack-advisor/internal/engine"
	"github.com/petrarca/stack-advisor/internal/spec"
	"github.com/spf13/cobra"
)

var commandsFormat string
var commandsOutput string
var commandsCatalogDir string

var commandsCmd = &cobra.Command{
	Use:   "commands [path]",
	Short: "Show install and start commands for recommended services",
	Long: `Run discovery on the project and print the install and start commands
for every enabled service configuration.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCommands,
}

func init() {
	rootCmd.AddCommand(commandsCmd)
	setupOutputFlags(commandsCmd, &commandsFormat, &commandsOutput)
	commandsCmd.Flags().StringVar(&commandsCatalogDir, "catalog", "", "Directory with a custom descriptor catalog (default: embedded)")
}

// CommandsResult is the output for the commands command
type CommandsResult struct {
	Commands []commands.CommandSet `json:"commands"`
	Count    int                   `json:"count"`
}

func (r *CommandsResult) ToJSON() interface{} {
	return r
}

func (r *CommandsResult) ToText(w io.Writer) {
	fmt.Fprintf(w, "=== Service Commands (%d) ===\n\n", r.Count)
	for _, c := range r.Commands {
		fmt.Fprintf(w, "%s\n", c.DescriptorName)
		if c.Install != "" {
			fmt.Fprintf(w, "  install: %s\n", c.Install)
		}
		if c.Start != "" {
			fmt.Fprintf(w, "  start:   %s\n", c.Start)
		}
		fmt.Fprintln(w)
	}
}

func runCommands(cmd *cobra.Command, args []string) {
	logger := config.LoadSettings().ConfigureLogger()
	absPath := resolveProjectPath(args, logger)

	projectConfig, err := config.LoadProjectConfig(absPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading project config: %v\n", err)
		os.Exit(1)
	}

	opts := engine.Options{
		Version:    spec.Version,
		Properties: projectConfig.Properties,
	}
	if commandsCatalogDir != "" {
		cat, err := catalog.LoadExternal(commandsCatalogDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
			os.Exit(1)
		}
		opts.Catalog = cat
	}

	result, err := engine.Discover(cmd.Context(), absPath, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Discovery failed: %v\n", err)
		os.Exit(1)
	}

	sets := commands.ForConfigurations(result.Configurations)
	OutputToFile(&CommandsResult{Commands: sets, Count: len(sets)}, commandsFormat, commandsOutput)
}
