package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var verifyDataset string

var verifyCodesCmd = &cobra.Command{
	Use:   "verify-codes",
	Short: "Check that every configured code exists in the reference data",
	RunE:  runVerifyCodes,
}

func init() {
	verifyCodesCmd.Flags().StringVarP(&verifyDataset, "dataset", "d", "", "Check a JSON dataset file instead of the database")
	rootCmd.AddCommand(verifyCodesCmd)
}

func runVerifyCodes(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	b, err := openBackend(ctx, cfg, verifyDataset)
	if err != nil {
		return err
	}
	defer b.Close()

	if err := verifyCodes(ctx, b.store, cfg.Codes); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "All configured codes resolved")
	return nil
}
