package resolver

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Gabrieljbor/conni-ucl-backend/internal/auth"
)

func testProfile() *auth.Profile {
	p := &auth.Profile{
		Provider:   "ucl",
		Email:      "alice@ucl.ac.uk",
		FullName:   "Alice Example",
		Department: "Computer Science",
		UPI:        "aexam01",
		IsStudent:  true,
		TokenScope: "user_profile",
	}
	return p
}

func TestResolveCreatesNewAccount(t *testing.T) {
	r := NewMemoryResolver()

	res, err := r.Resolve(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.Created {
		t.Error("Created = false, want true for first login")
	}

	acc, ok := r.Account(res.AccountID)
	if !ok {
		t.Fatal("account record not stored")
	}
	if acc.Onboarded {
		t.Error("new account must start with onboarding incomplete")
	}
	if acc.Email != "alice@ucl.ac.uk" || acc.DisplayName != "Alice Example" {
		t.Errorf("account = %+v", acc)
	}
	if !acc.UCLVerified || acc.AuthMethod != "ucl_oauth" {
		t.Errorf("verification fields = %+v", acc)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestResolveIsIdempotentPerEmail(t *testing.T) {
	r := NewMemoryResolver()
	ctx := context.Background()

	first, err := r.Resolve(ctx, testProfile())
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}

	created, _ := r.Account(first.AccountID)

	// Second login with refreshed attributes.
	p := testProfile()
	p.Department = "Mathematics"
	p.TokenScope = "user_profile user_email"

	second, err := r.Resolve(ctx, p)
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}

	if second.Created {
		t.Error("second login must not report a created account")
	}
	if second.AccountID != first.AccountID {
		t.Errorf("AccountID changed: %q -> %q", first.AccountID, second.AccountID)
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want exactly 1 account", r.Len())
	}

	acc, _ := r.Account(second.AccountID)
	if !acc.Onboarded {
		t.Error("existing account must be forced onboarding-complete")
	}
	if acc.UCLData.Department != "Mathematics" {
		t.Errorf("verification block not refreshed: %+v", acc.UCLData)
	}
	if acc.TokenScope != "user_profile user_email" {
		t.Errorf("token scope not refreshed: %q", acc.TokenScope)
	}

	// Fields outside the verification block stay untouched.
	if acc.Email != created.Email || acc.DisplayName != created.DisplayName {
		t.Errorf("identity fields changed: %+v", acc)
	}
	if !acc.CreatedAt.Equal(created.CreatedAt) {
		t.Error("created_at must be preserved on update")
	}
	if !acc.LastLogin.After(created.LastLogin) && !acc.LastLogin.Equal(created.LastLogin) {
		t.Error("last_login must move forward")
	}
}

func TestResolveReusesDirectoryUser(t *testing.T) {
	r := NewMemoryResolver()
	r.SeedDirectoryUser("alice@ucl.ac.uk", "uid-from-signup")

	res, err := r.Resolve(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	// A prior non-UCL signup owns this email: reuse its identifier but
	// still treat the login as account creation (no UCL account doc yet).
	if res.AccountID != "uid-from-signup" {
		t.Errorf("AccountID = %q, want reused directory uid", res.AccountID)
	}
	if !res.Created {
		t.Error("Created = false, want true when no account record existed")
	}
}

func TestResolveRejectsEmptyEmail(t *testing.T) {
	r := NewMemoryResolver()

	p := testProfile()
	p.Email = ""
	if _, err := r.Resolve(context.Background(), p); err == nil {
		t.Error("Resolve accepted a profile without email")
	}

	if _, err := r.Resolve(context.Background(), nil); err == nil {
		t.Error("Resolve accepted a nil profile")
	}
}

func TestResolveConcurrentFirstLogins(t *testing.T) {
	r := NewMemoryResolver()
	ctx := context.Background()

	const flows = 32

	var wg sync.WaitGroup
	ids := make([]string, flows)
	createdCount := make([]bool, flows)

	for i := 0; i < flows; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := r.Resolve(ctx, testProfile())
			if err != nil {
				t.Errorf("Resolve: %v", err)
				return
			}
			ids[i] = res.AccountID
			createdCount[i] = res.Created
		}(i)
	}
	wg.Wait()

	if r.Len() != 1 {
		t.Fatalf("Len = %d, want exactly 1 account after %d racing logins", r.Len(), flows)
	}

	created := 0
	for i := 1; i < flows; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("divergent account ids: %q vs %q", ids[i], ids[0])
		}
	}
	for _, c := range createdCount {
		if c {
			created++
		}
	}
	if created != 1 {
		t.Errorf("created reported %d times, want exactly 1", created)
	}
}

func TestVerificationBlock(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := newVerification(testProfile(), now)

	if v.AuthMethod != "ucl_oauth" {
		t.Errorf("AuthMethod = %q", v.AuthMethod)
	}
	if !v.VerifiedAt.Equal(now) {
		t.Errorf("VerifiedAt = %v", v.VerifiedAt)
	}
	if v.Department != "Computer Science" || v.UPI != "aexam01" || !v.IsStudent {
		t.Errorf("verification = %+v", v)
	}
}
