package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"github.com/petrarca/stack-advisor/internal/catalog"
	"github.com/petrarca/stack-advisor/internal/config"
	"github.com/petrarca/stack-advisor/internal/engine"
	"github.com/petrarca/stack-advisor/internal/progress"
	"github.com/petrarca/stack-advisor/internal/report"
	"github.com/petrarca/stack-advisor/internal/spec"
	"github.com/spf13/cobra"
)

var (
	settings    *config.Settings
	showSummary bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover [path]",
	Short: "Discover recommended services for a project",
	Long: `Discover profiles the project directory, scores it against the service
catalog and produces tiered recommendations with per-environment
configurations.

Examples:
  stack-advisor discover /path/to/project
  stack-advisor discover --summary /path/to/project
  stack-advisor discover --exclude vendor,node_modules /path/to/project
  stack-advisor discover --catalog ./custom-catalog /path/to/project
  stack-advisor discover -o - /path/to/project`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)

	// Initialize settings with defaults and environment variables
	settings = config.LoadSettings()

	discoverCmd.Flags().StringVarP(&settings.OutputFile, "output", "o", settings.OutputFile, "Output file path, - for stdout")
	discoverCmd.Flags().BoolVar(&settings.PrettyPrint, "pretty", settings.PrettyPrint, "Pretty print JSON output")
	discoverCmd.Flags().BoolVarP(&settings.Verbose, "verbose", "v", settings.Verbose, "Show discovery progress")
	discoverCmd.Flags().BoolVar(&showSummary, "summary", false, "Print a human-readable summary after the run")
	discoverCmd.Flags().StringSliceVar(&settings.ExcludePatterns, "exclude", settings.ExcludePatterns, "Patterns to exclude (supports glob patterns, can be specified multiple times)")
	discoverCmd.Flags().IntVar(&settings.MaxDepth, "max-depth", settings.MaxDepth, "Maximum directory depth to scan (0 = default)")
	discoverCmd.Flags().StringVar(&settings.CatalogDir, "catalog", settings.CatalogDir, "Directory with a custom descriptor catalog (default: embedded)")
	discoverCmd.Flags().BoolVar(&settings.NoCodeStats, "no-code-stats", settings.NoCodeStats, "Disable code statistics")
	discoverCmd.Flags().BoolVar(&settings.NoGitInfo, "no-git-info", settings.NoGitInfo, "Disable git repository metadata")
	discoverCmd.Flags().BoolVar(&settings.DetectLicenses, "detect-licenses", settings.DetectLicenses, "Detect project licenses")

	// Logging flags - use defaults from environment variables
	discoverCmd.Flags().String("log-level", settings.LogLevel.String(), "Log level: debug, info, warn, error")
	discoverCmd.Flags().String("log-format", settings.LogFormat, "Log format: text or json")
	discoverCmd.Flags().String("log-file", settings.LogFile, "Log file path (default: stderr)")
}

// configureLogging sets up logging based on command flags
func configureLogging(cmd *cobra.Command) *slog.Logger {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logFormat, _ := cmd.Flags().GetString("log-format")
	logFile, _ := cmd.Flags().GetString("log-file")

	if level, err := config.ParseLogLevel(logLevel); err == nil {
		settings.LogLevel = level
	}
	settings.LogFormat = logFormat
	settings.LogFile = logFile

	logger := settings.ConfigureLogger()
	slog.SetDefault(logger)
	return logger
}

// resolveProjectPath resolves and validates the project path from args
func resolveProjectPath(args []string, logger *slog.Logger) string {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	path = strings.TrimSpace(path)
	absPath, err := filepath.Abs(path)
	if err != nil {
		logger.Error("Invalid path", "error", err)
		os.Exit(1)
	}

	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		logger.Error("Path does not exist", "path", absPath)
		os.Exit(1)
	}
	if err == nil && !info.IsDir() {
		logger.Error("Path is not a directory", "path", absPath)
		os.Exit(1)
	}
	return absPath
}

func runDiscover(cmd *cobra.Command, args []string) {
	logger := configureLogging(cmd)
	absPath := resolveProjectPath(args, logger)

	// Handle special case: -o - means stdout
	if settings.OutputFile == "-" {
		settings.OutputFile = ""
	}

	projectConfig, err := config.LoadProjectConfig(absPath)
	if err != nil {
		logger.Error("Failed to load project config", "error", err)
		os.Exit(1)
	}

	excludes := projectConfig.MergeExcludes(settings.ExcludePatterns)

	catalogDir := settings.CatalogDir
	if catalogDir == "" {
		catalogDir = projectConfig.CatalogDir
	}

	maxDepth := settings.MaxDepth
	if maxDepth == 0 {
		maxDepth = projectConfig.MaxDepth
	}

	opts := engine.Options{
		MaxDepth:         maxDepth,
		ExcludePatterns:  excludes,
		DetectLicenses:   settings.DetectLicenses,
		CollectGitInfo:   !settings.NoGitInfo,
		CollectCodeStats: !settings.NoCodeStats,
		Version:          spec.Version,
		Properties:       projectConfig.Properties,
	}

	if catalogDir != "" {
		cat, err := catalog.LoadExternal(catalogDir)
		if err != nil {
			logger.Error("Failed to load catalog", "dir", catalogDir, "error", err)
			os.Exit(1)
		}
		opts.Catalog = cat
	}

	if settings.Verbose {
		opts.Progress = progress.New(true, progress.NewSimpleHandler(os.Stderr))
	}

	fmt.Fprintf(os.Stderr, "Discovering: %s\n", absPath)
	logger.Debug("Starting discovery",
		"path", absPath,
		"exclude_patterns", excludes,
		"code_stats", !settings.NoCodeStats)

	result, err := engine.Discover(cmd.Context(), absPath, opts)
	if err != nil {
		logger.Error("Discovery failed", "error", err)
		os.Exit(1)
	}

	var jsonData []byte
	if settings.PrettyPrint {
		jsonData, err = json.MarshalIndent(result, "", "  ")
	} else {
		jsonData, err = json.Marshal(result)
	}
	if err != nil {
		logger.Error("Failed to marshal result", "error", err)
		os.Exit(1)
	}

	if settings.OutputFile != "" {
		if err := os.WriteFile(settings.OutputFile, jsonData, 0644); err != nil {
			logger.Error("Failed to write output file", "error", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Results written to %s\n", settings.OutputFile)
	} else {
		fmt.Println(string(jsonData))
	}

	if showSummary {
		report.NewRenderer().Render(os.Stderr, result)
	}
}
