package ucl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/Gabrieljbor/conni-ucl-backend/internal/auth"
	"github.com/Gabrieljbor/conni-ucl-backend/internal/auth/provider"
	"github.com/Gabrieljbor/conni-ucl-backend/internal/logger"
)

// Compile-time check that Provider implements provider.OAuthProvider.
var _ provider.OAuthProvider = (*Provider)(nil)

const providerName = "ucl"

const defaultBaseURL = "https://uclapi.com"

const (
	authorizePath = "/oauth/authorise/"
	tokenPath     = "/oauth/token"
	userDataPath  = "/oauth/user/data"
)

// requestTimeout bounds every outbound call to the UCL API.
const requestTimeout = 30 * time.Second

type authScheme int

const (
	authQueryToken authScheme = iota
	authBearerHeader
)

// profileVariant is one (endpoint, auth-scheme) combination to try when
// fetching the user profile. The UCL API has shifted these over time, so
// the canonical form is probed first and a short fixed list of known
// alternates after it, short-circuiting on the first success.
type profileVariant struct {
	path   string
	scheme authScheme
}

var profileVariants = []profileVariant{
	{userDataPath, authQueryToken},
	{userDataPath, authBearerHeader},
	{userDataPath + ".json", authQueryToken},
}

// Provider drives the UCL API OAuth flow. The token endpoint is not RFC
// 6749 compliant (no grant_type, token returned under "token"), so the
// exchange and profile calls are made directly rather than through
// oauth2.Config.Exchange.
type Provider struct {
	clientID     string
	clientSecret string
	redirectURL  string
	baseURL      string
	oauthConfig  *oauth2.Config
	httpClient   *http.Client
}

// Option customizes the provider; used by tests to point at a fake API.
type Option func(*Provider)

func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		p.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		p.httpClient = client
	}
}

func New(clientID, clientSecret, redirectURL string, opts ...Option) (*Provider, error) {

	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("ucl oauth config missing required fields")
	}

	p := &Provider{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		baseURL:      defaultBaseURL,
		httpClient:   &http.Client{Timeout: requestTimeout},
	}

	for _, opt := range opts {
		opt(p)
	}

	p.oauthConfig = &oauth2.Config{
		ClientID:    clientID,
		RedirectURL: redirectURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:  p.baseURL + authorizePath,
			TokenURL: p.baseURL + tokenPath,
		},
	}

	return p, nil
}

// Name returns the provider identifier used by the registry.
func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL builds the UCL authorization URL carrying the state token.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauthConfig.AuthCodeURL(state)
}

func (p *Provider) ExchangeCode(ctx context.Context, code string) (*provider.Token, error) {

	form := url.Values{
		"client_id":     {p.clientID},
		"client_secret": {p.clientSecret},
		"code":          {code},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.baseURL+tokenPath,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, auth.ErrNetwork(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		logger.Error("ucl token exchange transport failure", map[string]any{
			"error": err.Error(),
		})
		return nil, auth.ErrNetwork(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("ucl token exchange failed", map[string]any{
			"status": resp.StatusCode,
		})
		return nil, auth.ErrTokenExchange(resp.StatusCode)
	}

	var body struct {
		OK    bool   `json:"ok"`
		Token string `json:"token"`
		Scope string `json:"scope"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, auth.ErrNetwork(fmt.Errorf("ucl token response decode: %w", err))
	}

	if body.Token == "" {
		return nil, auth.ErrNoAccessToken()
	}

	logger.Info("ucl token obtained", map[string]any{
		"token": logger.Truncate(body.Token, 10),
		"scope": body.Scope,
	})

	return &provider.Token{
		AccessToken: body.Token,
		Scope:       body.Scope,
	}, nil
}

func (p *Provider) FetchProfile(ctx context.Context, token *provider.Token) (*auth.Profile, error) {

	lastStatus := 0
	var lastErr error

	for _, variant := range profileVariants {
		profile, status, err := p.fetchProfileVariant(ctx, variant, token)
		if err == nil {
			return profile, nil
		}

		if status != 0 {
			lastStatus = status
		} else {
			lastErr = err
		}

		logger.Warn("ucl profile variant failed", map[string]any{
			"path":   variant.path,
			"scheme": int(variant.scheme),
			"status": status,
			"error":  err.Error(),
		})
	}

	if lastStatus != 0 {
		return nil, auth.ErrProfileFetch(lastStatus)
	}
	return nil, auth.ErrNetwork(lastErr)
}

// fetchProfileVariant performs one profile request. A non-zero status is
// returned whenever the API answered, so the caller can distinguish
// upstream rejections from transport failures.
func (p *Provider) fetchProfileVariant(
	ctx context.Context,
	variant profileVariant,
	token *provider.Token,
) (*auth.Profile, int, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+variant.path, nil)
	if err != nil {
		return nil, 0, err
	}

	q := url.Values{"client_secret": {p.clientSecret}}
	switch variant.scheme {
	case authQueryToken:
		q.Set("token", token.AccessToken)
	case authBearerHeader:
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("ucl profile fetch returned %d", resp.StatusCode)
	}

	var body struct {
		Email      string `json:"email"`
		FullName   string `json:"full_name"`
		Department string `json:"department"`
		UPI        string `json:"upi"`
		IsStudent  *bool  `json:"is_student"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, 0, fmt.Errorf("ucl profile response decode: %w", err)
	}

	// The UCL API omits is_student for some token scopes; treat absence
	// as student, matching how the mobile app interprets it.
	isStudent := true
	if body.IsStudent != nil {
		isStudent = *body.IsStudent
	}

	profile := &auth.Profile{
		Provider:   providerName,
		Email:      body.Email,
		FullName:   body.FullName,
		Department: body.Department,
		UPI:        body.UPI,
		IsStudent:  isStudent,
		TokenScope: token.Scope,
	}
	profile.Normalize()

	logger.Info("ucl profile fetched", map[string]any{
		"email_present": profile.Email != "",
		"department":    profile.Department,
		"is_student":    profile.IsStudent,
	})

	return profile, resp.StatusCode, nil
}
