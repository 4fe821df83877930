package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fourpaws/shelter-hub/internal/infrastructure/persistence/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the Postgres schema (animals, adoptions)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := setupLogger(cfg)

		if !cfg.DatabaseEnabled() {
			return errors.New("DATABASE_URL is required for migrate")
		}

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		ctx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
		defer cancel()

		log.Info("connecting to database...")
		conn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL, poolOptions(cfg))
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer conn.Close()

		migrator := postgres.NewMigrator(conn)

		if down, _ := cmd.Flags().GetBool("down"); down {
			if err := migrator.Rollback(ctx); err != nil {
				return fmt.Errorf("failed to roll back: %w", err)
			}
			log.Info("last migration rolled back")
			return nil
		}

		applied, err := migrator.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		status, err := migrator.Status(ctx)
		if err != nil {
			return err
		}
		for _, m := range status {
			fmt.Fprintf(cmd.OutOrStdout(), "%03d %-20s applied=%t\n", m.Version, m.Name, m.IsApplied)
		}

		log.Info("database schema is up to date", "applied", applied)
		return nil
	},
}

func init() {
	migrateCmd.Flags().Bool("down", false, "Roll back the last applied migration")
	rootCmd.AddCommand(migrateCmd)
}
