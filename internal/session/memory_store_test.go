package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreConsumeOnce(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tx := Transaction{
		ID:        "txn-1",
		State:     "state-1",
		Provider:  "ucl",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Minute),
	}
	if err := store.Create(ctx, tx); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Consume(ctx, "txn-1")
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if got.State != "state-1" || got.Provider != "ucl" {
		t.Errorf("Consume returned %+v", got)
	}

	// Second consume must fail: the transaction is single-use.
	if _, err := store.Consume(ctx, "txn-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Consume: got %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreUnknownID(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.Consume(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Consume: got %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tx := Transaction{
		ID:        "txn-1",
		State:     "state-1",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(10 * time.Millisecond),
	}
	if err := store.Create(ctx, tx); err != nil {
		t.Fatalf("Create: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := store.Consume(ctx, "txn-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Consume after expiry: got %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreRejectsInvalid(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	tests := []struct {
		name string
		tx   Transaction
	}{
		{
			name: "missing id",
			tx:   Transaction{State: "s", ExpiresAt: time.Now().Add(time.Minute)},
		},
		{
			name: "missing state",
			tx:   Transaction{ID: "t", ExpiresAt: time.Now().Add(time.Minute)},
		},
		{
			name: "already expired",
			tx:   Transaction{ID: "t", State: "s", ExpiresAt: time.Now().Add(-time.Minute)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Create(ctx, tt.tx); err == nil {
				t.Error("Create accepted invalid transaction")
			}
		})
	}
}
