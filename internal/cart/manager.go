package cart

import (
	"context"
	"sync"

	"github.com/aurelia-jewelry/aurelia/internal/logger"
)

// Manager hands out one Store per cart session and keeps it for the process
// lifetime. Rehydration from the durable slot happens exactly once, on first
// access.
type Manager struct {
	mu        sync.Mutex
	stores    map[string]*Store
	persister Persister
	stock     StockChecker
	opts      Options
}

// NewManager creates a manager over the given collaborators.
func NewManager(persister Persister, stock StockChecker, opts Options) *Manager {
	return &Manager{
		stores:    make(map[string]*Store),
		persister: persister,
		stock:     stock,
		opts:      opts,
	}
}

// Get returns the store for a session, creating and rehydrating it on first
// use. A slot read failure starts the session empty; the cart stays usable.
func (m *Manager) Get(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store
	}
	store := NewStore(sessionID, m.persister, m.stock, m.opts)
	lines, err := m.persister.Load(ctx, sessionID)
	if err != nil {
		logger.Warnw("cart slot read failed", "session_id", sessionID, "error", err)
	} else if len(lines) > 0 {
		store.rehydrate(lines)
	}
	m.stores[sessionID] = store
	return store
}
