package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jonathan/vacancy-matching/internal/logging"
	"github.com/jonathan/vacancy-matching/internal/lookup"
	"github.com/jonathan/vacancy-matching/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that runs matching for staffing requests on POST /requests/{id}/matches.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, cfg, "")
	if err != nil {
		return err
	}
	defer b.Close()

	engine, cache, err := newEngine(ctx, cfg, logger, b)
	if err != nil {
		return err
	}

	if cfg.Lookup.RefreshSchedule != "" {
		refresher := lookup.NewRefresher(cache, cfg.Lookup.RefreshSchedule, logging.WithComponent(logger, "lookup"))
		if err := refresher.Start(ctx); err != nil {
			return err
		}
		defer refresher.Stop()
	}

	srv, err := server.New(server.Config{
		Port:      cfg.Port,
		Matcher:   engine,
		Health:    b.db,
		RateLimit: cfg.RateLimit,
		Logger:    logging.WithComponent(logger, "server"),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("matching engine ready",
		zap.Bool("transactional", cfg.Matching.Transactional),
		zap.Bool("serialize_runs", cfg.Matching.SerializeRuns),
		zap.Bool("events", cfg.NATSURL != ""))
	return srv.Start(ctx)
}
