package chat

import (
	"fmt"
	"strings"

	"github.com/temirkanov/avito-watch/internal/avito"
	"github.com/temirkanov/avito-watch/internal/notify"
	"github.com/temirkanov/avito-watch/internal/watch"
)

const maxShownResults = 5

// FormatSearchResults renders the top search results as a plain-text reply.
func FormatSearchResults(items []avito.Item) string {
	if len(items) == 0 {
		return "Nothing found for your query."
	}

	var b strings.Builder
	b.WriteString("Search results:\n\n")

	shown := items
	if len(shown) > maxShownResults {
		shown = shown[:maxShownResults]
	}

	for _, item := range shown {
		fmt.Fprintf(&b, "%s\n", item.Title)
		fmt.Fprintf(&b, "Price: %.2f ₽\n", item.Price)
		if item.Location != "" {
			fmt.Fprintf(&b, "Location: %s\n", item.Location)
		}
		fmt.Fprintf(&b, "ID: %s\n\n", item.ID)
	}

	b.WriteString("Send a listing ID to start tracking it.")
	return b.String()
}

// FormatWatchList renders a user's tracked items as a numbered list; the
// numbers match the "remove <n>" command.
func FormatWatchList(items []watch.TrackedItem) string {
	if len(items) == 0 {
		return "You have no tracked listings."
	}

	var b strings.Builder
	b.WriteString("Your tracked listings:\n\n")
	for i, item := range items {
		fmt.Fprintf(&b, "%d. ID: %s - last price: %.2f ₽\n", i+1, item.ItemID, item.LastPrice)
	}
	return b.String()
}

// FormatPriceChange renders a price-change event as a reply body.
func FormatPriceChange(event notify.PriceChange) string {
	var b strings.Builder
	b.WriteString("Price change on a tracked listing!\n")
	fmt.Fprintf(&b, "ID: %s\n", event.ItemID)
	if event.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", event.Title)
	}
	verb := "rose"
	if event.Direction == notify.DirectionDecreased {
		verb = "dropped"
	}
	fmt.Fprintf(&b, "Price %s by %.2f%%\n", verb, abs(event.PctChange))
	fmt.Fprintf(&b, "From %.2f ₽ to %.2f ₽", event.OldPrice, event.NewPrice)
	return b.String()
}

// FormatItemRemoval renders a removal event as a reply body.
func FormatItemRemoval(event notify.ItemRemoval) string {
	return fmt.Sprintf(
		"Listing %s is no longer available and was removed from tracking",
		event.ItemID,
	)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
