package firebase

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	fb "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// callTimeout bounds credential-minting calls against Firebase.
const callTimeout = 30 * time.Second

// Client is the process-scoped handle to the external user store. It is
// constructed once at startup and injected into request handlers; no
// per-request reinitialization.
type Client struct {
	Auth      *fbauth.Client
	Firestore *firestore.Client
}

// New initializes the Firebase Admin SDK. Credentials come from the
// inline service-account JSON when set (production), else from the
// credentials file (local development).
func New(ctx context.Context, serviceAccountJSON, serviceAccountFile string) (*Client, error) {

	var cred option.ClientOption
	if serviceAccountJSON != "" {
		cred = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		cred = option.WithCredentialsFile(serviceAccountFile)
	}

	app, err := fb.NewApp(ctx, nil, cred)
	if err != nil {
		return nil, fmt.Errorf("firebase: app init: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: auth client: %w", err)
	}

	storeClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: firestore client: %w", err)
	}

	return &Client{
		Auth:      authClient,
		Firestore: storeClient,
	}, nil
}

// MintCustomToken mints a single-use sign-in credential scoped to the
// given account identifier.
func (c *Client) MintCustomToken(ctx context.Context, uid string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	token, err := c.Auth.CustomToken(ctx, uid)
	if err != nil {
		return "", fmt.Errorf("firebase: custom token: %w", err)
	}
	return token, nil
}

func (c *Client) Close() error {
	return c.Firestore.Close()
}
