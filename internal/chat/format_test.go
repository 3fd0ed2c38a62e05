package chat_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/temirkanov/avito-watch/internal/avito"
	"github.com/temirkanov/avito-watch/internal/chat"
	"github.com/temirkanov/avito-watch/internal/notify"
	"github.com/temirkanov/avito-watch/internal/watch"
)

func TestFormatSearchResults(t *testing.T) {
	t.Parallel()

	items := []avito.Item{
		{ID: "101", Title: "iPhone 13", Price: 45000, Location: "Москва"},
		{ID: "102", Title: "iPhone 12", Price: 30000},
	}

	got := chat.FormatSearchResults(items)

	assert.Contains(t, got, "iPhone 13")
	assert.Contains(t, got, "Price: 45000.00 ₽")
	assert.Contains(t, got, "Location: Москва")
	assert.Contains(t, got, "ID: 101")
	assert.Contains(t, got, "ID: 102")
	assert.Contains(t, got, "Send a listing ID")
}

func TestFormatSearchResults_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Nothing found for your query.", chat.FormatSearchResults(nil))
}

func TestFormatSearchResults_CapsAtFive(t *testing.T) {
	t.Parallel()

	items := make([]avito.Item, 8)
	for i := range items {
		items[i] = avito.Item{ID: string(rune('a' + i)), Title: "x", Price: 1}
	}

	got := chat.FormatSearchResults(items)
	assert.Equal(t, 5, strings.Count(got, "ID: "))
}

func TestFormatWatchList(t *testing.T) {
	t.Parallel()

	items := []watch.TrackedItem{
		{ItemID: "101", LastPrice: 45000},
		{ItemID: "102", LastPrice: 30000},
	}

	got := chat.FormatWatchList(items)

	// Numbers line up with the "remove <n>" command.
	assert.Contains(t, got, "1. ID: 101")
	assert.Contains(t, got, "2. ID: 102")
	assert.Contains(t, got, "45000.00 ₽")
}

func TestFormatWatchList_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "You have no tracked listings.", chat.FormatWatchList(nil))
}

func TestFormatPriceChange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event notify.PriceChange
		want  []string
	}{
		{
			name: "increase",
			event: notify.PriceChange{
				ItemID:    "101",
				Title:     "GPU",
				OldPrice:  100,
				NewPrice:  110,
				PctChange: 10,
				Direction: notify.DirectionIncreased,
			},
			want: []string{"ID: 101", "Title: GPU", "rose by 10.00%", "From 100.00 ₽ to 110.00 ₽"},
		},
		{
			name: "decrease shows positive percentage",
			event: notify.PriceChange{
				ItemID:    "101",
				OldPrice:  100,
				NewPrice:  90,
				PctChange: -10,
				Direction: notify.DirectionDecreased,
			},
			want: []string{"dropped by 10.00%", "From 100.00 ₽ to 90.00 ₽"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := chat.FormatPriceChange(tt.event)
			for _, want := range tt.want {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestFormatItemRemoval(t *testing.T) {
	t.Parallel()

	got := chat.FormatItemRemoval(notify.ItemRemoval{ItemID: "101"})
	assert.Contains(t, got, "101")
	assert.Contains(t, got, "no longer available")
}
