package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"log/slog"
)

// Settings holds all advisor configuration
type Settings struct {
	// Output settings
	OutputFile  string
	PrettyPrint bool

	// Discovery behavior
	ExcludePatterns []string
	MaxDepth        int
	CatalogDir      string // external catalog override, empty = embedded
	NoCodeStats     bool   // disable code statistics (enabled by default)
	NoGitInfo       bool   // disable git metadata collection
	DetectLicenses  bool
	Verbose         bool
	Debug           bool

	// Logging
	LogLevel  slog.Level
	LogFormat string // "text" or "json"
	LogFile   string // Optional: write logs to file instead of stderr
}

// DefaultSettings returns default configuration
func DefaultSettings() *Settings {
	return &Settings{
		OutputFile:      "stack-advisor.json",
		PrettyPrint:     true,
		ExcludePatterns: []string{},
		MaxDepth:        0, // 0 = profiler default
		NoCodeStats:     false,
		NoGitInfo:       false,
		DetectLicenses:  true,
		Verbose:         false,
		Debug:           false,
		LogLevel:        slog.LevelError, // only errors by default
		LogFormat:       "text",
		LogFile:         "", // Empty = stderr
	}
}

// LoadSettings creates settings from defaults and applies environment variable overrides
func LoadSettings() *Settings {
	settings := DefaultSettings()

	if outputFile := os.Getenv("STACK_ADVISOR_OUTPUT"); outputFile != "" {
		settings.OutputFile = outputFile
	}

	if excludePatterns := os.Getenv("STACK_ADVISOR_EXCLUDE"); excludePatterns != "" {
		settings.ExcludePatterns = strings.Split(excludePatterns, ",")
		for i, pattern := range settings.ExcludePatterns {
			settings.ExcludePatterns[i] = strings.TrimSpace(pattern)
		}
	}

	if maxDepth := os.Getenv("STACK_ADVISOR_MAX_DEPTH"); maxDepth != "" {
		if depth, err := strconv.Atoi(maxDepth); err == nil && depth > 0 {
			settings.MaxDepth = depth
		}
	}

	if catalogDir := os.Getenv("STACK_ADVISOR_CATALOG_DIR"); catalogDir != "" {
		settings.CatalogDir = catalogDir
	}

	if pretty := os.Getenv("STACK_ADVISOR_PRETTY"); pretty != "" {
		settings.PrettyPrint = strings.ToLower(pretty) == "true"
	}

	if noCodeStats := os.Getenv("STACK_ADVISOR_NO_CODE_STATS"); noCodeStats != "" {
		settings.NoCodeStats = strings.ToLower(noCodeStats) == "true"
	}

	if noGitInfo := os.Getenv("STACK_ADVISOR_NO_GIT_INFO"); noGitInfo != "" {
		settings.NoGitInfo = strings.ToLower(noGitInfo) == "true"
	}

	if licenses := os.Getenv("STACK_ADVISOR_DETECT_LICENSES"); licenses != "" {
		settings.DetectLicenses = strings.ToLower(licenses) == "true"
	}

	// Logging settings
	if logLevel := os.Getenv("STACK_ADVISOR_LOG_LEVEL"); logLevel != "" {
		if level, err := ParseLogLevel(logLevel); err == nil {
			settings.LogLevel = level
		}
	}

	if logFormat := os.Getenv("STACK_ADVISOR_LOG_FORMAT"); logFormat != "" {
		settings.LogFormat = logFormat
	}

	if logFile := os.Getenv("STACK_ADVISOR_LOG_FILE"); logFile != "" {
		settings.LogFile = logFile
	}

	if verbose := os.Getenv("STACK_ADVISOR_VERBOSE"); verbose != "" {
		settings.Verbose = strings.ToLower(verbose) == "true"
	}

	if debug := os.Getenv("STACK_ADVISOR_DEBUG"); debug != "" {
		settings.Debug = strings.ToLower(debug) == "true"
	}

	return settings
}

// ParseLogLevel converts string log level to slog.Level
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// ConfigureLogger sets up the global logger based on settings
func (s *Settings) ConfigureLogger() *slog.Logger {
	var handler slog.Handler

	// Set output destination
	var output io.Writer = os.Stderr
	if s.LogFile != "" {
		file, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			// Fallback to stderr if file can't be opened
			fmt.Fprintf(os.Stderr, "Warning: Cannot open log file %s: %v\n", s.LogFile, err)
			output = os.Stderr
		} else {
			output = file
		}
	}

	opts := &slog.HandlerOptions{
		Level: s.LogLevel,
	}

	if s.LogFormat == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
