package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fourpaws/shelter-hub/config"
)

var rootCmd = &cobra.Command{
	Use:   "shelter",
	Short: "Shelter hub: animals, adoptions and the information board",
	Long: `shelter runs the Four Paws demo: it lists the animals, sorts them,
adopts two of them, prints the information board and round-trips the
shelter through a snapshot file.

Postgres, Redis and the Redis event bus are used when configured
through DATABASE_URL, REDIS_URL and EVENT_BUS.`,
	SilenceUsage: true,
	RunE:         runDemoCmd,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("snapshot", "", "Snapshot file (overrides SHELTER_SNAPSHOT_PATH)")
	rootCmd.PersistentFlags().String("board-file", "", "Text file appended to the board (overrides SHELTER_BOARD_FILE)")
}

// loadConfig reads the environment and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if v, _ := cmd.Flags().GetString("snapshot"); v != "" {
		cfg.Shelter.SnapshotPath = v
	}
	if v, _ := cmd.Flags().GetString("board-file"); v != "" {
		cfg.Shelter.BoardFile = v
	}

	return cfg, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// setupLogger настраивает структурированное логирование.
func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Observability.LogLevel),
	}
	if cfg.App.Debug && cfg.Observability.LogLevel == "info" {
		opts.Level = slog.LevelDebug
	}

	// Логи идут в stderr, чтобы не смешиваться с выводом доски.
	if cfg.IsProduction() || cfg.Observability.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
