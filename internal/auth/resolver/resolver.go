package resolver

import (
	"context"
	"time"

	"github.com/Gabrieljbor/conni-ucl-backend/internal/auth"
)

// Resolution is the outcome of reconciling a provider profile against
// the user store: the account identifier and whether it was created by
// this login.
type Resolution struct {
	AccountID string
	Created   bool
}

// Resolver determines which account a verified provider profile belongs
// to, creating one if needed. It is the ONLY place where profile-to-
// account mapping logic lives. Implementations must perform the
// find-or-create as a single conditional write: two concurrent logins
// for the same email must never yield two accounts.
type Resolver interface {
	Resolve(ctx context.Context, profile *auth.Profile) (*Resolution, error)
}

// Verification is the profile-verification block stored on the account
// record. It is overwritten in full on every successful login.
type Verification struct {
	Department string    `firestore:"department"`
	FullName   string    `firestore:"full_name"`
	UPI        string    `firestore:"upi"`
	IsStudent  bool      `firestore:"is_student"`
	VerifiedAt time.Time `firestore:"verified_at"`
	AuthMethod string    `firestore:"auth_method"`
	TokenScope string    `firestore:"token_scope"`
}

const authMethodUCL = "ucl_oauth"

func newVerification(p *auth.Profile, now time.Time) Verification {
	return Verification{
		Department: p.Department,
		FullName:   p.FullName,
		UPI:        p.UPI,
		IsStudent:  p.IsStudent,
		VerifiedAt: now,
		AuthMethod: authMethodUCL,
		TokenScope: p.TokenScope,
	}
}
