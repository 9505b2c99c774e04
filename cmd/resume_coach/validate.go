package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-coach/internal/schemas"
	definitions "github.com/jonathan/resume-coach/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate profile or requirements JSON against its schema",
	Long:  "Check a ResumeProfile and/or JobRequirements JSON file against the embedded JSON schemas and report every field error.",
	RunE:  runValidate,
}

var (
	validateProfileFile      string
	validateRequirementsFile string
)

func init() {
	validateCmd.Flags().StringVar(&validateProfileFile, "profile", "", "Path to ResumeProfile JSON file")
	validateCmd.Flags().StringVar(&validateRequirementsFile, "requirements", "", "Path to JobRequirements JSON file")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if validateProfileFile == "" && validateRequirementsFile == "" {
		return fmt.Errorf("at least one of --profile or --requirements is required")
	}

	failed := false
	for _, target := range []struct {
		schema string
		path   string
	}{
		{definitions.ResumeProfile, validateProfileFile},
		{definitions.JobRequirements, validateRequirementsFile},
	} {
		if target.path == "" {
			continue
		}
		if err := reportValidation(cmd, target.schema, target.path); err != nil {
			failed = true
		}
	}

	if failed {
		return fmt.Errorf("validation failed")
	}
	return nil
}

// reportValidation validates one file and prints the outcome
func reportValidation(cmd *cobra.Command, schema, path string) error {
	out := cmd.OutOrStdout()
	err := schemas.ValidateFile(schema, path)
	if err == nil {
		_, _ = fmt.Fprintf(out, "Validation passed: %s\n", path)
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintf(out, "Validation failed: %s\n", path)
		for _, fe := range validationErr.Errors {
			_, _ = fmt.Fprintf(out, "  - %s: %s\n", fe.Field, fe.Message)
		}
		return err
	}

	_, _ = fmt.Fprintf(out, "Validation error: %s: %v\n", path, err)
	return err
}
