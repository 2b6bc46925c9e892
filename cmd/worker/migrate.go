package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/config"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/logging"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/storage/postgres"
)

var migrateTimeout time.Duration

// migrateCmd applies schema.sql against the configured database.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE:  runMigrate,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the database schema",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), postgres.Schema())
	},
}

func init() {
	migrateCmd.Flags().DurationVar(&migrateTimeout, "timeout", 30*time.Second, "overall migration timeout")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.Init(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.App.StorageBackend != "postgres" {
		return fmt.Errorf("migrate needs STORAGE_BACKEND=postgres, got %q", cfg.App.StorageBackend)
	}

	db, err := postgres.NewConnection(cfg.Database.PostgresDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
	defer cancel()

	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}
	logger.Sugar().Infow("schema applied", "database", cfg.Database.Name)
	return nil
}
