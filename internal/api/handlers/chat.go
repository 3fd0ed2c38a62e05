package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/temirkanov/avito-watch/internal/avito"
	"github.com/temirkanov/avito-watch/internal/chat"
	"github.com/temirkanov/avito-watch/internal/watch"
)

// ChatHandler turns raw chat messages into actions and plain-text replies
// the frontend sends back verbatim.
type ChatHandler struct {
	registry *watch.Registry
	market   avito.MarketClient
	resolver *chat.Resolver
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(registry *watch.Registry, market avito.MarketClient) *ChatHandler {
	return &ChatHandler{
		registry: registry,
		market:   market,
		resolver: chat.NewResolver(market),
	}
}

// ChatMessageInput is one forwarded chat message.
type ChatMessageInput struct {
	Body struct {
		UserID int64  `json:"user_id" doc:"Chat user ID"`
		Text   string `json:"text" minLength:"1" doc:"Raw message text" example:"iphone 13|Электроника|Москва|50000|80000"`
	}
}

// ChatMessageOutput carries the reply body for the frontend.
type ChatMessageOutput struct {
	Body struct {
		Reply string `json:"reply" doc:"Plain-text reply to send to the user"`
	}
}

const chatHelpText = "Send me search keywords, optionally as " +
	"query|category|location|price from|price to.\n" +
	"Send a listing ID to start tracking it, or \"remove <n>\" to stop " +
	"tracking the n-th listing from your list."

// Message parses one chat message, performs the command, and returns the
// reply text. User-level mistakes (bad index, full watch list) come back as
// replies, not HTTP errors; only upstream failures surface as errors.
func (h *ChatHandler) Message(ctx context.Context, input *ChatMessageInput) (*ChatMessageOutput, error) {
	cmd, err := chat.Parse(input.Body.Text)
	if err != nil {
		return chatReply(err.Error() + "\n\n" + chatHelpText), nil
	}

	switch cmd.Kind {
	case chat.KindTrack:
		return h.track(ctx, input.Body.UserID, cmd.ItemID)
	case chat.KindRemove:
		return h.remove(input.Body.UserID, cmd.Index), nil
	case chat.KindSearch:
		return h.search(ctx, cmd.Search)
	default:
		return chatReply(chatHelpText), nil
	}
}

func (h *ChatHandler) track(ctx context.Context, userID int64, itemID string) (*ChatMessageOutput, error) {
	item, err := h.market.GetItem(ctx, itemID)
	if err != nil {
		return nil, mapMarketError(err)
	}
	if item == nil {
		return chatReply(fmt.Sprintf("Listing %s was not found.", itemID)), nil
	}

	if err := h.registry.Add(userID, item.ID, item.Price); err != nil {
		switch {
		case errors.Is(err, watch.ErrWatchLimit):
			return chatReply("Your watch list is full. Remove a listing first with \"remove <n>\"."), nil
		case errors.Is(err, watch.ErrDuplicate):
			return chatReply("You are already tracking that listing."), nil
		case errors.Is(err, watch.ErrInvalidPrice):
			return chatReply("That listing has no usable price, so it cannot be tracked."), nil
		default:
			return nil, huma.Error500InternalServerError(err.Error())
		}
	}

	reply := fmt.Sprintf("Now tracking: %s\nCurrent price: %.2f ₽", item.Title, item.Price)
	return chatReply(reply), nil
}

func (h *ChatHandler) remove(userID int64, index int) *ChatMessageOutput {
	itemID, ok := h.registry.RemoveAt(userID, index)
	if !ok {
		return chatReply(fmt.Sprintf("There is no listing number %d on your list.", index))
	}

	reply := fmt.Sprintf("Stopped tracking listing %s.\n\n%s",
		itemID, chat.FormatWatchList(h.registry.List(userID)))
	return chatReply(reply)
}

func (h *ChatHandler) search(ctx context.Context, q chat.SearchQuery) (*ChatMessageOutput, error) {
	criteria, err := h.resolver.Criteria(ctx, q)
	if err != nil {
		return nil, mapMarketError(err)
	}

	result, err := h.market.Search(ctx, criteria)
	if err != nil {
		return nil, mapMarketError(err)
	}

	return chatReply(chat.FormatSearchResults(result.Items)), nil
}

func chatReply(text string) *ChatMessageOutput {
	out := &ChatMessageOutput{}
	out.Body.Reply = text
	return out
}

// RegisterChatRoutes registers the chat-message endpoint with the Huma API.
func RegisterChatRoutes(api huma.API, h *ChatHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "chat-message",
		Method:      http.MethodPost,
		Path:        "/api/v1/chat/message",
		Summary:     "Process a chat message",
		Description: "Parses a forwarded chat message, performs the command, and returns the reply text.",
		Tags:        []string{"chat"},
		Errors: []int{
			http.StatusBadGateway,
			http.StatusGatewayTimeout,
		},
	}, h.Message)
}
