package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/vacancy-matching/internal/observability"
	"github.com/jonathan/vacancy-matching/internal/schemas"
	"github.com/jonathan/vacancy-matching/internal/types"
	schemadefs "github.com/jonathan/vacancy-matching/schemas"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Run matching for one staffing request",
	Long:  "Finds up to --max eligible profiles for a request, persists them as pending-approval matches and writes the run artifact as JSON.",
	RunE:  runMatch,
}

var (
	matchRequest string
	matchMax     int
	matchDataset string
	matchOutput  string
	matchVerbose bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchRequest, "request", "r", "", "Staffing request ID (required)")
	matchCmd.Flags().IntVarP(&matchMax, "max", "m", 10, "Maximum number of matches to create")
	matchCmd.Flags().StringVarP(&matchDataset, "dataset", "d", "", "Run against a JSON dataset file instead of the database")
	matchCmd.Flags().StringVarP(&matchOutput, "out", "o", "", "Path to output match run JSON file (default stdout)")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print a run summary to stderr")

	if err := matchCmd.MarkFlagRequired("request"); err != nil {
		panic(fmt.Sprintf("failed to mark request flag as required: %v", err))
	}

	rootCmd.AddCommand(matchCmd)
}

// matchRun is the JSON artifact written by the match command.
type matchRun struct {
	RequestID uuid.UUID     `json:"request_id"`
	Max       int           `json:"max"`
	RunAt     time.Time     `json:"run_at"`
	Matches   []types.Match `json:"matches"`
}

func runMatch(cmd *cobra.Command, _ []string) error {
	input := types.FindMatchesRequest{Max: matchMax}
	id, err := uuid.Parse(matchRequest)
	if err != nil {
		return fmt.Errorf("invalid request ID %q: %w", matchRequest, err)
	}
	input.RequestID = id
	if err := input.Validate(); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	b, err := openBackend(ctx, cfg, matchDataset)
	if err != nil {
		return err
	}
	defer b.Close()

	engine, _, err := newEngine(ctx, cfg, logger, b)
	if err != nil {
		return err
	}

	matches, err := engine.FindMatches(ctx, input.RequestID, input.Max)
	if err != nil {
		return err
	}

	if matchVerbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		if len(matches) > 0 {
			printer.PrintRequest(matches[0].Request)
		}
		printer.PrintMatches(matches)
	}

	data, err := json.MarshalIndent(matchRun{
		RequestID: input.RequestID,
		Max:       input.Max,
		RunAt:     time.Now().UTC(),
		Matches:   matches,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal match run: %w", err)
	}

	if err := schemas.ValidateDocument("match_run.schema.json", schemadefs.MatchRun, data); err != nil {
		return fmt.Errorf("match run failed schema validation: %w", err)
	}

	if matchOutput == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(matchOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", matchOutput, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d matches to %s\n", len(matches), matchOutput)
	return nil
}
