package chat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirkanov/avito-watch/internal/chat"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		want    chat.Command
		wantErr string
	}{
		{
			name: "numeric id tracks",
			text: "183716401",
			want: chat.Command{Kind: chat.KindTrack, ItemID: "183716401"},
		},
		{
			name: "numeric id with surrounding spaces",
			text: "  42  ",
			want: chat.Command{Kind: chat.KindTrack, ItemID: "42"},
		},
		{
			name: "remove by index",
			text: "remove 2",
			want: chat.Command{Kind: chat.KindRemove, Index: 2},
		},
		{
			name:    "remove with non-numeric index",
			text:    "remove abc",
			wantErr: "invalid remove index",
		},
		{
			name:    "remove with zero index",
			text:    "remove 0",
			wantErr: "invalid remove index",
		},
		{
			name: "full pipe-delimited search",
			text: "iphone 13|Электроника|Москва|50000|80000",
			want: chat.Command{Kind: chat.KindSearch, Search: chat.SearchQuery{
				Query:     "iphone 13",
				Category:  "Электроника",
				Location:  "Москва",
				PriceFrom: 50000,
				PriceTo:   80000,
			}},
		},
		{
			name: "search with blank segments",
			text: "iphone||Москва||80000",
			want: chat.Command{Kind: chat.KindSearch, Search: chat.SearchQuery{
				Query:    "iphone",
				Location: "Москва",
				PriceTo:  80000,
			}},
		},
		{
			name: "search with trailing segments omitted",
			text: "ssd|Электроника",
			want: chat.Command{Kind: chat.KindSearch, Search: chat.SearchQuery{
				Query:    "ssd",
				Category: "Электроника",
			}},
		},
		{
			name: "segments are trimmed",
			text: " ssd | Электроника | Москва ",
			want: chat.Command{Kind: chat.KindSearch, Search: chat.SearchQuery{
				Query:    "ssd",
				Category: "Электроника",
				Location: "Москва",
			}},
		},
		{
			name:    "search with empty query",
			text:    "|Электроника",
			wantErr: "search query must not be empty",
		},
		{
			name:    "search with invalid price",
			text:    "ssd|||cheap",
			wantErr: `invalid price "cheap"`,
		},
		{
			name:    "search with negative price",
			text:    "ssd|||-5",
			wantErr: `invalid price "-5"`,
		},
		{
			name: "plain phrase is query-only search",
			text: "gaming laptop",
			want: chat.Command{Kind: chat.KindSearch, Search: chat.SearchQuery{
				Query: "gaming laptop",
			}},
		},
		{
			name: "empty input",
			text: "   ",
			want: chat.Command{Kind: chat.KindUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := chat.Parse(tt.text)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
