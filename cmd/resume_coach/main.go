// Package main provides the resume_coach CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-coach/internal/config"
	"github.com/jonathan/resume-coach/internal/logger"
)

var (
	configPath string
	debugLogs  bool
	jsonLogs   bool

	zlog = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "resume_coach",
	Short: "Match structured resume profiles against job requirements",
	Long: "resume_coach evaluates a structured resume profile against a structured list of job requirements, " +
		"reporting a met/gap verdict with evidence for each requirement and an overall 0-100 score.",
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		l, err := logger.New(jsonLogs, debugLogs)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		zlog = l
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = zlog.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVar(&debugLogs, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Emit logs as JSON")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveConfig layers flag values over the environment, then the config file,
// then built-in defaults, and validates the result.
func resolveConfig(flags config.Config) (config.Config, error) {
	var fileCfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = *loaded
	}

	env := config.FromEnv()
	lower := env.MergeWithDefaults(fileCfg)
	merged := flags.MergeWithDefaults(lower)
	merged.Verbose = flags.Verbose || fileCfg.Verbose

	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}
