package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/temirkanov/avito-watch/internal/chat"
	"github.com/temirkanov/avito-watch/pkg/logger"
)

func searchCmd() *cobra.Command {
	var (
		query     string
		category  string
		location  string
		priceFrom int
		priceTo   int
		sortBy    string
		page      int
		perPage   int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search marketplace listings",
		Long: "Runs a one-shot listing search against the marketplace API.\n" +
			"Category and location take human names and are resolved to IDs\n" +
			"the same way chat input is.",
		Example: `  avito-watch search --query "iphone 13"
  avito-watch search --query "iphone 13" --category Электроника --location Москва \
    --price-from 50000 --price-to 80000 --output json`,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			log := logger.New(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
			market, closeTransport := newMarket(cfg, log)
			defer closeTransport()

			ctx := cobraCmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			resolver := chat.NewResolver(market)
			criteria, err := resolver.Criteria(ctx, chat.SearchQuery{
				Query:     query,
				Category:  category,
				Location:  location,
				PriceFrom: priceFrom,
				PriceTo:   priceTo,
			})
			if err != nil {
				return err
			}
			criteria.SortBy = sortBy
			criteria.Page = page
			criteria.PerPage = perPage

			result, err := market.Search(ctx, criteria)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(result)
			}
			return printItemsTable(result.Items)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "search keywords")
	cmd.Flags().StringVar(&category, "category", "", "category name")
	cmd.Flags().StringVar(&location, "location", "", "location name")
	cmd.Flags().IntVar(&priceFrom, "price-from", 0, "minimum price")
	cmd.Flags().IntVar(&priceTo, "price-to", 0, "maximum price")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort order (default date)")
	cmd.Flags().IntVar(&page, "page", 0, "result page (default 1)")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "page size (default 50)")

	return cmd
}
