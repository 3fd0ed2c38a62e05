// Package watch implements the per-user price-watch registry and the
// periodic poll loop that turns price movements into notification events.
package watch

import (
	"errors"
	"sync"

	"github.com/temirkanov/avito-watch/internal/metrics"
)

// Registry errors.
var (
	// ErrWatchLimit is returned when a user's watch set is at capacity.
	ErrWatchLimit = errors.New("watch limit reached")
	// ErrInvalidPrice is returned for a non-positive starting price. Rejecting
	// these at insertion keeps the poll loop's percentage math away from a
	// zero denominator.
	ErrInvalidPrice = errors.New("price must be positive")
	// ErrDuplicate is returned when the item is already tracked by the user.
	ErrDuplicate = errors.New("item already tracked")
)

// TrackedItem is one listing a user monitors, with the last price a
// notification was issued for.
type TrackedItem struct {
	ItemID    string  `json:"item_id"`
	LastPrice float64 `json:"last_price"`
}

// Entry is a registry row flattened for cycle iteration.
type Entry struct {
	UserID    int64
	ItemID    string
	LastPrice float64
}

// Registry maps users to their tracked items. All mutation goes through one
// mutex so the chat-facing API and the poll loop cannot interleave a
// half-applied update; readers get copies, never live references.
type Registry struct {
	mu         sync.Mutex
	maxPerUser int
	users      map[int64][]TrackedItem
	total      int
}

// NewRegistry creates a registry allowing maxPerUser tracked items per user.
func NewRegistry(maxPerUser int) *Registry {
	return &Registry{
		maxPerUser: maxPerUser,
		users:      make(map[int64][]TrackedItem),
	}
}

// Add starts tracking itemID for userID at the given price. The capacity
// bound is enforced here, at insertion, not at poll time.
func (r *Registry) Add(userID int64, itemID string, price float64) error {
	if price <= 0 {
		return ErrInvalidPrice
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.users[userID]
	if len(items) >= r.maxPerUser {
		return ErrWatchLimit
	}
	for i := range items {
		if items[i].ItemID == itemID {
			return ErrDuplicate
		}
	}

	r.users[userID] = append(items, TrackedItem{ItemID: itemID, LastPrice: price})
	r.total++
	metrics.TrackedItems.Set(float64(r.total))
	return nil
}

// Remove stops tracking itemID for userID. Returns false when the item was
// not tracked.
func (r *Registry) Remove(userID int64, itemID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.users[userID]
	for i := range items {
		if items[i].ItemID == itemID {
			r.users[userID] = append(items[:i], items[i+1:]...)
			if len(r.users[userID]) == 0 {
				delete(r.users, userID)
			}
			r.total--
			metrics.TrackedItems.Set(float64(r.total))
			return true
		}
	}
	return false
}

// RemoveAt removes the 1-based index-th tracked item, matching the numbered
// list shown to chat users. Returns the removed item id.
func (r *Registry) RemoveAt(userID int64, index int) (string, bool) {
	r.mu.Lock()
	items := r.users[userID]
	if index < 1 || index > len(items) {
		r.mu.Unlock()
		return "", false
	}
	itemID := items[index-1].ItemID
	r.mu.Unlock()

	return itemID, r.Remove(userID, itemID)
}

// List returns the user's tracked items in insertion order.
func (r *Registry) List(userID int64) []TrackedItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.users[userID]
	out := make([]TrackedItem, len(items))
	copy(out, items)
	return out
}

// UpdatePrice rewrites the stored price for a tracked item. A no-op when
// the item was removed concurrently.
func (r *Registry) UpdatePrice(userID int64, itemID string, price float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.users[userID]
	for i := range items {
		if items[i].ItemID == itemID {
			items[i].LastPrice = price
			return
		}
	}
}

// Snapshot returns a copy of every tracked item across all users. The poll
// loop iterates this copy so concurrent removals never invalidate iteration.
func (r *Registry) Snapshot() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]Entry, 0, r.total)
	for userID, items := range r.users {
		for i := range items {
			entries = append(entries, Entry{
				UserID:    userID,
				ItemID:    items[i].ItemID,
				LastPrice: items[i].LastPrice,
			})
		}
	}
	return entries
}

// Len returns the number of items userID tracks.
func (r *Registry) Len(userID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users[userID])
}
