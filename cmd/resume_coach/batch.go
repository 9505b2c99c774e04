package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-coach/internal/config"
	"github.com/jonathan/resume-coach/internal/matching"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Match many profile/requirements pairs",
	Long:  "Read a JSON array of MatchRequest objects ({\"profile\": ..., \"job\": ...}) and write the array of MatchResults in the same order.",
	RunE:  runBatch,
}

var (
	batchInputFile      string
	batchOutputFile     string
	batchConcurrency    int
	batchEliteEmployers []string
)

func init() {
	batchCmd.Flags().StringVarP(&batchInputFile, "in", "i", "", "Path to JSON array of MatchRequest objects")
	batchCmd.Flags().StringVarP(&batchOutputFile, "out", "o", "", "Path to output JSON array of MatchResults (default: stdout)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "Maximum matches evaluated in parallel")
	batchCmd.Flags().StringSliceVar(&batchEliteEmployers, "elite-employers", nil, "Comma-separated employer tokens that satisfy company requirements")

	_ = batchCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(config.Config{
		Out:            batchOutputFile,
		Concurrency:    batchConcurrency,
		EliteEmployers: batchEliteEmployers,
	})
	if err != nil {
		return err
	}
	if batchInputFile == "" {
		return fmt.Errorf("--in is required")
	}

	data, err := os.ReadFile(batchInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	reqs, err := matching.DecodeBatch(data, 0)
	if err != nil {
		return fmt.Errorf("invalid batch %s: %w", batchInputFile, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	matcher := matching.New(matching.WithEmployerTokens(cfg.EliteEmployers))
	results, err := matching.MatchAll(ctx, matcher, reqs, cfg.Concurrency)
	if err != nil {
		return fmt.Errorf("batch match failed: %w", err)
	}

	zlog.Info("batch complete",
		zap.Int("requests", len(results)),
		zap.Int("concurrency", cfg.Concurrency),
		zap.Duration("elapsed", time.Since(start)),
	)

	jsonBytes, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if cfg.Out == "" {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes)); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(cfg.Out, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Matched %d requests\nOutput: %s\n", len(results), cfg.Out)
	return nil
}
