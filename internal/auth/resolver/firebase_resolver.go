package resolver

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	fbauth "firebase.google.com/go/v4/auth"

	"github.com/Gabrieljbor/conni-ucl-backend/internal/auth"
	"github.com/Gabrieljbor/conni-ucl-backend/internal/logger"
)

const usersCollection = "users"

// FirebaseResolver reconciles profiles against Firestore account
// documents, using Firebase Auth as the user directory for identifiers.
type FirebaseResolver struct {
	store     *firestore.Client
	directory *fbauth.Client
	now       func() time.Time
}

func NewFirebaseResolver(store *firestore.Client, directory *fbauth.Client) *FirebaseResolver {
	return &FirebaseResolver{
		store:     store,
		directory: directory,
		now:       time.Now,
	}
}

// Resolve runs the find-or-create inside one Firestore transaction so
// that concurrent first logins for the same email cannot both create an
// account: the losing transaction sees the winner's document on retry
// and takes the update path instead.
func (r *FirebaseResolver) Resolve(ctx context.Context, profile *auth.Profile) (*Resolution, error) {

	if profile == nil || profile.Email == "" {
		return nil, fmt.Errorf("resolver: profile email is required")
	}

	var res Resolution

	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {

		now := r.now().UTC()
		verification := newVerification(profile, now)

		query := r.store.Collection(usersCollection).
			Where("email", "==", profile.Email).
			Limit(1)

		docs, err := tx.Documents(query).GetAll()
		if err != nil {
			return fmt.Errorf("account lookup: %w", err)
		}

		if len(docs) > 0 {
			// Existing account: refresh verification and last login only,
			// and force onboarding complete. Everything else is preserved.
			res = Resolution{AccountID: docs[0].Ref.ID, Created: false}
			return tx.Update(docs[0].Ref, []firestore.Update{
				{Path: "ucl_data", Value: verification},
				{Path: "last_login", Value: now},
				{Path: "ucl_token_scope", Value: profile.TokenScope},
				{Path: "isOnboarded", Value: true},
			})
		}

		// No account document: resolve the identifier via the user
		// directory, reusing an existing directory user (e.g. a prior
		// non-UCL signup) before creating one.
		uid, err := r.directoryUID(ctx, profile)
		if err != nil {
			return err
		}

		res = Resolution{AccountID: uid, Created: true}
		ref := r.store.Collection(usersCollection).Doc(uid)
		return tx.Set(ref, map[string]any{
			"email":           profile.Email,
			"display_name":    profile.FullName,
			"ucl_verified":    true,
			"auth_method":     authMethodUCL,
			"ucl_data":        verification,
			"ucl_token_scope": profile.TokenScope,
			"created_at":      now,
			"last_login":      now,
			"isOnboarded":     false,
		}, firestore.MergeAll)
	})

	if err != nil {
		return nil, err
	}

	logger.Info("account resolved", map[string]any{
		"account_id": res.AccountID,
		"created":    res.Created,
	})

	return &res, nil
}

func (r *FirebaseResolver) directoryUID(ctx context.Context, profile *auth.Profile) (string, error) {

	user, err := r.directory.GetUserByEmail(ctx, profile.Email)
	if err == nil {
		logger.Info("reusing existing directory user", map[string]any{
			"uid": user.UID,
		})
		return user.UID, nil
	}
	if !fbauth.IsUserNotFound(err) {
		return "", fmt.Errorf("directory lookup: %w", err)
	}

	created, err := r.directory.CreateUser(ctx, (&fbauth.UserToCreate{}).
		Email(profile.Email).
		EmailVerified(true). // institutional email, verified upstream
		DisplayName(profile.FullName))
	if err != nil {
		return "", fmt.Errorf("directory create: %w", err)
	}

	logger.Info("created directory user", map[string]any{
		"uid": created.UID,
	})
	return created.UID, nil
}
