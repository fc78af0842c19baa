package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/vacancy-matching/internal/schemas"
	schemadefs "github.com/jonathan/vacancy-matching/schemas"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleRequestID = "5d3c2a10-7b6e-4f00-8a00-000000000001"

// resetFlags restores every flag to its default so runs do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("VACANCY_DATABASE_URL", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// writeDataset copies the example dataset with WFA windows removed, so the
// English-preferring available profile is eligible on any date.
func writeDataset(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../schemas/testdata/example_dataset.json")
	require.NoError(t, err)

	var ds map[string]any
	require.NoError(t, json.Unmarshal(data, &ds))
	for _, p := range ds["profiles"].([]any) {
		profile := p.(map[string]any)
		delete(profile, "wfa_start_date")
		delete(profile, "wfa_end_date")
	}

	out, err := json.Marshal(ds)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, out, 0644))
	return path
}

func TestMatchCommand_MissingRequestFlag(t *testing.T) {
	_, err := executeCommand(t, "match", "--dataset", "unused.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request")
}

func TestMatchCommand_InvalidRequestID(t *testing.T) {
	_, err := executeCommand(t, "match", "--request", "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request ID")
}

func TestMatchCommand_InvalidMax(t *testing.T) {
	_, err := executeCommand(t, "match", "--request", exampleRequestID, "--max", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid input")
}

func TestMatchCommand_RequiresDatabaseWithoutDataset(t *testing.T) {
	_, err := executeCommand(t, "match", "--request", exampleRequestID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestMatchCommand_DatasetRun(t *testing.T) {
	dataset := writeDataset(t)
	outPath := filepath.Join(t.TempDir(), "run.json")

	stdout, err := executeCommand(t, "match",
		"--request", exampleRequestID,
		"--max", "5",
		"--dataset", dataset,
		"--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 1 matches")

	require.NoError(t, schemas.ValidateJSON("../../schemas/match_run.schema.json", outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var run matchRun
	require.NoError(t, json.Unmarshal(data, &run))
	assert.Equal(t, exampleRequestID, run.RequestID.String())
	assert.Equal(t, 5, run.Max)
	require.Len(t, run.Matches, 1)
	assert.Equal(t, "9e1f4b20-3c2d-4e00-9b00-000000000001", run.Matches[0].ProfileID.String())
	assert.Equal(t, "PENDING", run.Matches[0].MatchStatus.Code)
}

func TestMatchCommand_DatasetRunToStdout(t *testing.T) {
	stdout, err := executeCommand(t, "match", "--request", exampleRequestID, "--dataset", writeDataset(t))
	require.NoError(t, err)

	var run matchRun
	require.NoError(t, json.Unmarshal([]byte(stdout), &run))
	assert.Equal(t, 10, run.Max)
	assert.Len(t, run.Matches, 1)
}

func TestMatchCommand_UnknownRequest(t *testing.T) {
	_, err := executeCommand(t, "match",
		"--request", "00000000-0000-4000-8000-000000000099",
		"--dataset", writeDataset(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestVerifyCodesCommand_Dataset(t *testing.T) {
	stdout, err := executeCommand(t, "verify-codes", "--dataset", writeDataset(t))
	require.NoError(t, err)
	assert.Contains(t, stdout, "All configured codes resolved")
}

func TestVerifyCodesCommand_ReportsMissingCodes(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("codes:\n  match_status_pending_approval: NOPE\n"), 0644))

	_, err := executeCommand(t, "verify-codes", "--config", cfgPath, "--dataset", writeDataset(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOPE")
}

func TestMigrateCommand_RequiresDatabaseURL(t *testing.T) {
	_, err := executeCommand(t, "migrate", "up")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestMigrateCommand_RejectsUnknownDirection(t *testing.T) {
	resetFlags(rootCmd)
	t.Setenv("VACANCY_DATABASE_URL", "postgres://localhost:1/none")
	rootCmd.SetArgs([]string{"migrate", "sideways"})
	rootCmd.SetOut(&bytes.Buffer{})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")
}

func TestMigrateCommand_Args(t *testing.T) {
	_, err := executeCommand(t, "migrate")
	require.Error(t, err)
}

func TestMatchCommand_VerboseSummary(t *testing.T) {
	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() { rootCmd.SetErr(nil) })

	resetFlags(rootCmd)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("VACANCY_DATABASE_URL", "")
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"match", "--request", exampleRequestID, "--dataset", writeDataset(t), "--verbose"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, stderr.String(), "STAFFING REQUEST")
	assert.Contains(t, stderr.String(), "Created 1 matches")
}

func TestMatchCommand_DatasetRunOutsideRepository(t *testing.T) {
	dataset := writeDataset(t)
	outPath := filepath.Join(t.TempDir(), "run.json")
	t.Chdir(t.TempDir())

	_, err := executeCommand(t, "match", "--request", exampleRequestID, "--dataset", dataset, "--out", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.NoError(t, schemas.ValidateDocument("match_run.schema.json", schemadefs.MatchRun, data))
}
