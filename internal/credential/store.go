// Package credential keeps per-claim passwords on the local machine.
//
// A password is stored in plaintext keyed by claim id and sent with every
// request for that claim. The API enforces access; nothing here is a secret
// store.
package credential

import (
	"context"
	"sync"
)

// Store is the narrow interface the rest of the client depends on.
//
// Get reports ok == false when no password is stored for id. A stored empty
// password is returned as ("", true).
type Store interface {
	Get(ctx context.Context, id string) (string, bool)
	Set(ctx context.Context, id, password string) error
	Clear(ctx context.Context, id string) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	passwords map[string]string
	mu        sync.RWMutex
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{passwords: make(map[string]string)}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, id string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pw, ok := m.passwords[id]
	return pw, ok
}

// Set implements Store.
func (m *MemoryStore) Set(_ context.Context, id, password string) error {
	if err := validateID(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passwords[id] = password
	return nil
}

// Clear implements Store.
func (m *MemoryStore) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.passwords, id)
	return nil
}
