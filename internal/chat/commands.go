// Package chat parses the free-form message shapes the chat frontend
// forwards and formats reply bodies for it. The frontend itself (transport,
// sessions, delivery) is an external collaborator.
package chat

import (
	"fmt"
	"strconv"
	"strings"
)

// CommandKind discriminates parsed commands.
type CommandKind int

// Command kinds.
const (
	// KindUnknown marks input matching no known shape.
	KindUnknown CommandKind = iota
	// KindTrack is a bare numeric listing id to start tracking.
	KindTrack
	// KindRemove is "remove <n>", untracking the n-th listed item.
	KindRemove
	// KindSearch is the pipe-delimited search form.
	KindSearch
)

// SearchQuery holds the parsed pipe-delimited search input. Category and
// Location are human names, resolved to ids separately. Zero prices mean
// unset.
type SearchQuery struct {
	Query     string
	Category  string
	Location  string
	PriceFrom int
	PriceTo   int
}

// Command is one parsed chat message.
type Command struct {
	Kind   CommandKind
	ItemID string
	Index  int
	Search SearchQuery
}

// Parse interprets one chat message. Recognized shapes:
//
//	"183716401"                        track listing by id
//	"remove 2"                         untrack the 2nd listed item
//	"iphone 13|Электроника|Москва|50000|80000"  search (trailing segments optional)
//
// Anything else parses as KindUnknown.
func Parse(text string) (Command, error) {
	text = strings.TrimSpace(text)

	if isDigits(text) {
		return Command{Kind: KindTrack, ItemID: text}, nil
	}

	if rest, ok := strings.CutPrefix(text, "remove "); ok {
		index, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || index < 1 {
			return Command{}, fmt.Errorf("invalid remove index %q", rest)
		}
		return Command{Kind: KindRemove, Index: index}, nil
	}

	if strings.Contains(text, "|") {
		search, err := parseSearch(text)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindSearch, Search: search}, nil
	}

	if text != "" {
		// A plain phrase is a query-only search.
		return Command{Kind: KindSearch, Search: SearchQuery{Query: text}}, nil
	}

	return Command{Kind: KindUnknown}, nil
}

func parseSearch(text string) (SearchQuery, error) {
	parts := strings.Split(text, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	search := SearchQuery{Query: parts[0]}
	if search.Query == "" {
		return SearchQuery{}, fmt.Errorf("search query must not be empty")
	}

	if len(parts) > 1 {
		search.Category = parts[1]
	}
	if len(parts) > 2 {
		search.Location = parts[2]
	}

	var err error
	if search.PriceFrom, err = parsePrice(parts, 3); err != nil {
		return SearchQuery{}, err
	}
	if search.PriceTo, err = parsePrice(parts, 4); err != nil {
		return SearchQuery{}, err
	}

	return search, nil
}

func parsePrice(parts []string, index int) (int, error) {
	if index >= len(parts) || parts[index] == "" {
		return 0, nil
	}
	price, err := strconv.Atoi(parts[index])
	if err != nil || price < 0 {
		return 0, fmt.Errorf("invalid price %q", parts[index])
	}
	return price, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
