package session

import (
	"context"
	"errors"
	"time"
)

// Transaction is one in-flight OAuth login. It holds only the
// anti-forgery state token; nothing here outlives the flow.
type Transaction struct {
	ID        string    // opaque identifier carried by the client cookie
	State     string    // anti-forgery token sent as the `state` parameter
	Provider  string    // provider this flow was initiated against
	CreatedAt time.Time
	ExpiresAt time.Time // absolute expiry; expired transactions are invalid
}

var ErrNotFound = errors.New("session: transaction not found")

// Store holds in-flight login transactions. Consume is single-shot:
// a transaction is compared once at callback time and discarded,
// whatever the outcome of the comparison.
type Store interface {
	Create(ctx context.Context, tx Transaction) error
	Consume(ctx context.Context, id string) (*Transaction, error)
}
