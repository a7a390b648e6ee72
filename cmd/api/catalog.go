package main

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"nostalgiajars/pkg/catalog"
	"nostalgiajars/pkg/catalog/postgres"
	"nostalgiajars/pkg/catalog/static"
	"nostalgiajars/pkg/config"
	"nostalgiajars/pkg/logger"
)

// loadCatalog reads the catalog from Postgres when DATABASE_URL is set and
// from the embedded document otherwise.
func loadCatalog(ctx context.Context, log *logger.Logger, cfg config.Config, migrate bool) (*catalog.Catalog, error) {
	if cfg.DatabaseURL == "" {
		log.Info(ctx, "using embedded catalog")
		return static.Load()
	}
	src, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	if migrate {
		if err := src.Migrate(); err != nil {
			return nil, err
		}
	}
	c, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "loaded catalog from postgres", "products", c.Len())
	return c, nil
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply catalog schema and seed migrations to DATABASE_URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is not set")
			}
			src, err := postgres.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer src.Close()
			if err := src.Migrate(); err != nil {
				return err
			}
			log.Info(cmd.Context(), "migrations applied")
			return nil
		},
	}
}

func newCatalogCommand() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the catalog as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			c, err := loadCatalog(cmd.Context(), log, cfg, false)
			if err != nil {
				return err
			}
			products := c.Products()
			if category != "" {
				cat, err := catalog.ParseCategory(category)
				if err != nil {
					return err
				}
				products = c.ByCategory(cat)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(products)
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only list products of this category (spicy|mild)")
	return cmd
}
