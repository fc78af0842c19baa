package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/vacancy-matching/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back database migrations",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{db.MigrateUp, db.MigrateDown},
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	if err := db.Migrate(cfg.DatabaseURL, args[0]); err != nil {
		return err
	}
	logger.Info("migrations applied")
	fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s\n", args[0])
	return nil
}
