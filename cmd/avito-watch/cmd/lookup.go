package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/temirkanov/avito-watch/pkg/logger"
)

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List marketplace categories",
		Example: `  avito-watch categories
  avito-watch categories --output json`,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			log := logger.New(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
			market, closeTransport := newMarket(cfg, log)
			defer closeTransport()

			categories, err := market.Categories(lookupCtx(cobraCmd))
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(categories)
			}
			return printCategoriesTable(categories)
		},
	}
}

func locationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locations <query>",
		Short: "Search marketplace locations by name",
		Example: `  avito-watch locations Москва
  avito-watch locations Казань --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			log := logger.New(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
			market, closeTransport := newMarket(cfg, log)
			defer closeTransport()

			locations, err := market.Locations(lookupCtx(cobraCmd), args[0])
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(locations)
			}
			return printLocationsTable(locations)
		},
	}
}

func lookupCtx(cobraCmd *cobra.Command) context.Context {
	if ctx := cobraCmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
