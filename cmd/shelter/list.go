package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fourpaws/shelter-hub/internal/domain/animal"
	"github.com/fourpaws/shelter-hub/internal/domain/shared"
	"github.com/fourpaws/shelter-hub/internal/infrastructure/persistence/postgres"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the animal catalogue stored in Postgres",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log := setupLogger(cfg)

		opts, err := listOptions(cmd, cfg.Shelter.Name)
		if err != nil {
			return err
		}

		if !cfg.DatabaseEnabled() {
			return errors.New("DATABASE_URL is required for list")
		}

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
		defer cancel()

		log.Info("connecting to database...")
		conn, err := postgres.NewConnectionFromURL(connectCtx, cfg.Database.URL, poolOptions(cfg))
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer conn.Close()

		animals, err := postgres.NewAnimalRepository(conn).List(ctx, opts)
		if err != nil {
			return fmt.Errorf("failed to list animals: %w", err)
		}

		printCatalog(cmd.OutOrStdout(), opts, animals)
		return nil
	},
}

func init() {
	addListFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().String("sort", animal.SortByIndex, "Sort field: index, name or age")
	cmd.Flags().String("shelter", "", "Shelter name (defaults to SHELTER_NAME, \"all\" for every shelter)")
	cmd.Flags().Int("limit", animal.DefaultListOptions().Limit, "Maximum number of animals")
	cmd.Flags().Int("offset", 0, "Number of animals to skip")
}

// listOptions собирает параметры списка из флагов и проверяет их.
func listOptions(cmd *cobra.Command, defaultShelter string) (animal.ListOptions, error) {
	opts := animal.DefaultListOptions()
	opts.SortBy, _ = cmd.Flags().GetString("sort")
	opts.Limit, _ = cmd.Flags().GetInt("limit")
	opts.Offset, _ = cmd.Flags().GetInt("offset")

	opts.Shelter, _ = cmd.Flags().GetString("shelter")
	switch opts.Shelter {
	case "":
		opts.Shelter = defaultShelter
	case "all":
		opts.Shelter = ""
	}

	if err := opts.Validate(); err != nil {
		if shared.IsValidation(err) {
			_ = cmd.Usage()
		}
		return animal.ListOptions{}, err
	}
	return opts, nil
}

func printCatalog(out io.Writer, opts animal.ListOptions, animals []animal.Animal) {
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = animal.SortByIndex
	}

	fmt.Fprintf(out, "Catalogue sorted by %s (%d):\n", sortBy, len(animals))
	for _, a := range animals {
		fmt.Fprintln(out, a)
	}
}
