package resolver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Gabrieljbor/conni-ucl-backend/internal/auth"
)

// Account is the in-memory account record. It mirrors the fields of the
// Firestore document so reconciliation behavior can be exercised without
// a live project.
type Account struct {
	ID          string
	Email       string
	DisplayName string
	UCLVerified bool
	AuthMethod  string
	UCLData     Verification
	TokenScope  string
	CreatedAt   time.Time
	LastLogin   time.Time
	Onboarded   bool
}

// MemoryResolver implements the reconciliation contract over a
// mutex-guarded map. Used by tests and firebase-less local runs.
type MemoryResolver struct {
	mu        sync.Mutex
	accounts  map[string]*Account // keyed by account id
	directory map[string]string   // email -> pre-existing directory uid
	now       func() time.Time
}

func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{
		accounts:  make(map[string]*Account),
		directory: make(map[string]string),
		now:       time.Now,
	}
}

// SeedDirectoryUser registers a directory-only user, simulating an
// account created through regular (non-UCL) signup.
func (m *MemoryResolver) SeedDirectoryUser(email, uid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.directory[email] = uid
}

// Account returns a copy of the stored record, if any.
func (m *MemoryResolver) Account(id string) (Account, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return Account{}, false
	}
	return *acc, true
}

// Len reports how many account records exist.
func (m *MemoryResolver) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accounts)
}

func (m *MemoryResolver) Resolve(_ context.Context, profile *auth.Profile) (*Resolution, error) {

	if profile == nil || profile.Email == "" {
		return nil, fmt.Errorf("resolver: profile email is required")
	}

	// The whole find-or-create happens under one lock, the in-memory
	// equivalent of the Firestore transaction.
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now().UTC()
	verification := newVerification(profile, now)

	for _, acc := range m.accounts {
		if acc.Email == profile.Email {
			acc.UCLData = verification
			acc.LastLogin = now
			acc.TokenScope = profile.TokenScope
			acc.Onboarded = true
			return &Resolution{AccountID: acc.ID, Created: false}, nil
		}
	}

	uid, ok := m.directory[profile.Email]
	if !ok {
		uid = uuid.NewString()
		m.directory[profile.Email] = uid
	}

	m.accounts[uid] = &Account{
		ID:          uid,
		Email:       profile.Email,
		DisplayName: profile.FullName,
		UCLVerified: true,
		AuthMethod:  authMethodUCL,
		UCLData:     verification,
		TokenScope:  profile.TokenScope,
		CreatedAt:   now,
		LastLogin:   now,
		Onboarded:   false,
	}

	return &Resolution{AccountID: uid, Created: true}, nil
}
