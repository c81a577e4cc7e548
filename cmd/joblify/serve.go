package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joblify/joblify/internal/billing"
	"github.com/joblify/joblify/internal/config"
	"github.com/joblify/joblify/internal/db"
	"github.com/joblify/joblify/internal/llm"
	"github.com/joblify/joblify/internal/logger"
	"github.com/joblify/joblify/internal/server"
)

var (
	servePort     int
	serveJSONLogs bool
	serveDebug    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the recruiter, application intake, scoring and billing endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveJSONLogs, "json-logs", true, "Emit logs as JSON")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(serveJSONLogs, serveDebug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	llmClient, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = llmClient.Close() }()

	srv, err := server.New(server.Config{
		Port:                servePort,
		StripeWebhookSecret: cfg.StripeWebhookSecret,
	}, server.Deps{
		Store:         database,
		UserStore:     database,
		LLM:           llmClient,
		StripeBackend: billing.NewStripeBackend(cfg.StripeSecretKey),
		Logger:        log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
