package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore keeps login transactions in process memory. Transactions
// live for one OAuth round trip only, so no external store backs this;
// a restart simply forces users to restart login.
type MemoryStore struct {
	mu  sync.Mutex
	txs map[string]Transaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		txs: make(map[string]Transaction),
	}
}

func (m *MemoryStore) Create(_ context.Context, tx Transaction) error {
	if tx.ID == "" || tx.State == "" {
		return fmt.Errorf("session: missing transaction id or state")
	}
	if !tx.ExpiresAt.After(time.Now()) {
		return fmt.Errorf("session: expires_at must be in the future")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked()
	m.txs[tx.ID] = tx
	return nil
}

func (m *MemoryStore) Consume(_ context.Context, id string) (*Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, ok := m.txs[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.txs, id)

	if time.Now().After(tx.ExpiresAt) {
		return nil, ErrNotFound
	}
	return &tx, nil
}

// sweepLocked drops expired transactions. Called under mu on every
// Create so abandoned flows cannot accumulate.
func (m *MemoryStore) sweepLocked() {
	now := time.Now()
	for id, tx := range m.txs {
		if now.After(tx.ExpiresAt) {
			delete(m.txs, id)
		}
	}
}
