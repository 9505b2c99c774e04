package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-coach/internal/config"
	"github.com/jonathan/resume-coach/internal/matching"
	"github.com/jonathan/resume-coach/internal/observability"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a resume profile against job requirements",
	Long:  "Evaluate every requirement in a JobRequirements file against a ResumeProfile file and write the MatchResult JSON.",
	RunE:  runMatch,
}

var (
	matchProfileFile      string
	matchRequirementsFile string
	matchOutputFile       string
	matchEliteEmployers   []string
	matchVerbose          bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchProfileFile, "profile", "p", "", "Path to ResumeProfile JSON file")
	matchCmd.Flags().StringVarP(&matchRequirementsFile, "requirements", "r", "", "Path to JobRequirements JSON file")
	matchCmd.Flags().StringVarP(&matchOutputFile, "out", "o", "", "Path to output MatchResult JSON file (default: stdout)")
	matchCmd.Flags().StringSliceVar(&matchEliteEmployers, "elite-employers", nil, "Comma-separated employer tokens that satisfy company requirements")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print a summary of the result")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(config.Config{
		Profile:        matchProfileFile,
		Requirements:   matchRequirementsFile,
		Out:            matchOutputFile,
		EliteEmployers: matchEliteEmployers,
		Verbose:        matchVerbose,
	})
	if err != nil {
		return err
	}
	if cfg.Profile == "" || cfg.Requirements == "" {
		return fmt.Errorf("--profile and --requirements are required")
	}

	profileData, err := os.ReadFile(cfg.Profile)
	if err != nil {
		return fmt.Errorf("failed to read profile file: %w", err)
	}
	profile, err := matching.DecodeProfile(profileData)
	if err != nil {
		return fmt.Errorf("invalid profile %s: %w", cfg.Profile, err)
	}

	jobData, err := os.ReadFile(cfg.Requirements)
	if err != nil {
		return fmt.Errorf("failed to read requirements file: %w", err)
	}
	job, err := matching.DecodeJob(jobData)
	if err != nil {
		return fmt.Errorf("invalid requirements %s: %w", cfg.Requirements, err)
	}

	matcher := matching.New(matching.WithEmployerTokens(cfg.EliteEmployers))
	result := matcher.Match(profile, job)

	zlog.Debug("match complete",
		zap.String("company", job.Company),
		zap.String("role_title", job.RoleTitle),
		zap.Int("requirements", result.Summary.Total),
		zap.Int("score", result.Score),
	)

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	// The summary goes to stderr when the JSON itself is on stdout
	summaryOut := cmd.ErrOrStderr()
	if cfg.Out == "" {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes)); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	} else {
		if err := os.WriteFile(cfg.Out, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		summaryOut = cmd.OutOrStdout()
		_, _ = fmt.Fprintf(summaryOut, "Score: %d/100\nOutput: %s\n", result.Score, cfg.Out)
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(summaryOut)
		printer.PrintJobRequirements(job)
		printer.PrintMatchResult(result)
		printer.PrintMustHaveGaps(result)
	}

	return nil
}
