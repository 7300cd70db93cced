package cache

import (
	"context"
	"sync"
	"time"

	"github.com/aurelia-jewelry/aurelia/internal/cart"
)

// CartSlotStore is the durable cart slot. Values are the serialized line
// sequence, one key per cart session. When Redis is disabled it degrades to
// a process-local map so carts still behave, just without durability.
type CartSlotStore struct {
	ttl time.Duration

	mu    sync.Mutex
	local map[string][]cart.Line
}

// NewCartSlotStore creates the slot store with the configured idle TTL.
func NewCartSlotStore(ttlHours int) *CartSlotStore {
	if ttlHours <= 0 {
		ttlHours = 168
	}
	return &CartSlotStore{
		ttl:   time.Duration(ttlHours) * time.Hour,
		local: make(map[string][]cart.Line),
	}
}

// Load reads the persisted line sequence for a session.
func (s *CartSlotStore) Load(ctx context.Context, sessionID string) ([]cart.Line, error) {
	if !Enabled() {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.local[sessionID], nil
	}
	var lines []cart.Line
	found, err := GetJSON(ctx, slotKey(sessionID), &lines)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return lines, nil
}

// Save writes the line sequence, refreshing the TTL.
func (s *CartSlotStore) Save(ctx context.Context, sessionID string, lines []cart.Line) error {
	if !Enabled() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.local[sessionID] = lines
		return nil
	}
	return SetJSON(ctx, slotKey(sessionID), lines, s.ttl)
}

// Delete erases the slot.
func (s *CartSlotStore) Delete(ctx context.Context, sessionID string) error {
	if !Enabled() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.local, sessionID)
		return nil
	}
	return Del(ctx, slotKey(sessionID))
}

func slotKey(sessionID string) string {
	return "cart:slot:" + sessionID
}
