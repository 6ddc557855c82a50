package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/memoapi/internal/config"
	"github.com/memoapi/internal/db"
	"github.com/memoapi/internal/http"
	"github.com/memoapi/internal/logger"
	"github.com/memoapi/internal/metrics"
	"github.com/memoapi/internal/service"
	"github.com/memoapi/internal/supabase"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "memo-api",
		Short: "Per-user memo API backed by Supabase authentication",
		Long: `memo-api serves a JSON API for creating, listing, updating and deleting
memos. Users authenticate against Supabase; each memo is visible only to its owner.`,
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate(`{{printf "memo-api version %s\n" .Version}}`)

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// bootstrap loads configuration, installs the logger and opens the database
func bootstrap() (*config.Config, *slog.Logger, *db.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.InitLogger(cfg.Environment, cfg.UseJSONLogs())

	database, err := db.Open(cfg.Database, logger.NewGormLogger(log, cfg.Environment))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	log.Info("database connected", "driver", database.Driver())
	return cfg, log, database, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, database, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close()

			monitor, err := database.StartMonitor(cfg.Database.MonitorSchedule, log)
			if err != nil {
				return fmt.Errorf("failed to start database monitor: %w", err)
			}
			defer monitor.Stop()

			m := metrics.New()
			authClient := supabase.NewClient(cfg.Supabase, m, log)
			memoService := service.NewMemoService(database, log)

			server := http.NewServer(cfg, database, authClient, memoService, m, log)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := server.Run(ctx); err != nil {
				log.Error("server error", "error", err)
				return err
			}
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the memos table and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, database, err := bootstrap()
			if err != nil {
				return err
			}
			defer database.Close()

			if err := database.Migrate(); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			log.Info("database migrated")
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("memo-api version %s\n", version)
		},
	}
}

