package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const testProfile = `{
	"skills": ["Go", "Distributed Systems"],
	"tools": ["Kubernetes"],
	"companies": ["Google", "Acme"],
	"scale_claims": [{"metric": "requests/day", "value": 5000000, "context": "payments API"}],
	"years_experience": 7
}`

const testRequirements = `{
	"company": "Initech",
	"role_title": "Staff Engineer",
	"requirements": [
		{"text": "5+ years experience", "type": "must_have", "category": "experience", "min_years": 5},
		{"text": "Operated services at 1M requests/day", "category": "scale", "min_scale": {"metric": "requests/day", "value": 1000000}},
		{"text": "Distributed systems", "category": "skill", "extracted_skill": "distributed systems"},
		{"text": "Big tech background", "category": "company"},
		{"text": "Terraform", "type": "must_have", "category": "tool"},
		{"text": "Published author", "type": "must_have", "category": "publications"}
	]
}`

// writeFile writes content under a fresh temp dir and returns its path
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// resetFlags restores every package-level flag variable to its zero value
func resetFlags(t *testing.T) {
	t.Helper()
	configPath = ""
	matchProfileFile, matchRequirementsFile, matchOutputFile = "", "", ""
	matchEliteEmployers = nil
	matchVerbose = false
	batchInputFile, batchOutputFile = "", ""
	batchConcurrency = 0
	batchEliteEmployers = nil
	validateProfileFile, validateRequirementsFile = "", ""

	for _, key := range []string{"DATABASE_URL", "REDIS_ADDR", "REDIS_PASSWORD", "CACHE_TTL", "ELITE_EMPLOYERS", "PORT", "MATCH_CONCURRENCY"} {
		t.Setenv(key, "")
	}
}

// capture redirects cmd output into buffers for the duration of the test
func capture(t *testing.T, cmd *cobra.Command) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
	})
	return &out, &errOut
}
