package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gabrieljbor/conni-ucl-backend/internal/auth"
	"github.com/Gabrieljbor/conni-ucl-backend/internal/auth/provider"
	"github.com/Gabrieljbor/conni-ucl-backend/internal/auth/resolver"
	"github.com/Gabrieljbor/conni-ucl-backend/internal/config"
	"github.com/Gabrieljbor/conni-ucl-backend/internal/logger"
	"github.com/Gabrieljbor/conni-ucl-backend/internal/session"
)

// CredentialMinter mints a one-time sign-in credential scoped to an
// account identifier. Implemented by the firebase client.
type CredentialMinter interface {
	MintCustomToken(ctx context.Context, uid string) (string, error)
}

type Handler struct {
	cfg       config.Config
	providers *provider.Registry
	txns      session.Store
	codec     *session.Codec

	// resolver and minter are nil when the user store failed to
	// initialize; the service still serves /health and static routes.
	resolver resolver.Resolver
	minter   CredentialMinter
}

func NewHandler(
	cfg config.Config,
	registry *provider.Registry,
	txns session.Store,
	codec *session.Codec,
	res resolver.Resolver,
	minter CredentialMinter,
) *Handler {
	return &Handler{
		cfg:       cfg,
		providers: registry,
		txns:      txns,
		codec:     codec,
		resolver:  res,
		minter:    minter,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/login/:provider", h.login)
	r.GET("/callback", h.callback)
	r.GET("/success", h.success)
	r.GET("/health", h.health)
	r.GET("/", h.index)
	r.GET("/.well-known/apple-app-site-association", h.appleAppSiteAssociation)
	r.GET("/.well-known/assetlinks.json", h.assetLinks)
}

func (h *Handler) login(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	txnID, err := session.GenerateID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to initiate login",
		})
		return
	}
	state, err := session.GenerateID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to initiate login",
		})
		return
	}

	now := time.Now()
	tx := session.Transaction{
		ID:        txnID,
		State:     state,
		Provider:  providerName,
		CreatedAt: now,
		ExpiresAt: now.Add(session.TTL),
	}
	if err := h.txns.Create(c.Request.Context(), tx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to initiate login",
		})
		return
	}

	session.SetCookie(c.Writer, h.codec.Encode(txnID))

	c.Redirect(http.StatusFound, p.AuthCodeURL(state))
}

func (h *Handler) callback(c *gin.Context) {
	redirectURL, ferr := h.runCallback(c)
	if ferr != nil {
		logger.Error("callback failed", map[string]any{
			"kind":            string(ferr.Kind),
			"upstream_status": ferr.UpstreamStatus,
			"error":           ferr.Error(),
		})
		c.JSON(ferr.Status, gin.H{"error": ferr.Message})
		return
	}

	if h.cfg.ResponseMode == config.ResponseModeRedirect {
		c.Redirect(http.StatusFound, redirectURL)
		return
	}
	h.renderAppOpenPage(c, redirectURL)
}

// runCallback drives the authorization-code flow to completion. Every
// step failure is terminal: the typed error is returned, no partial
// account state is persisted, and the user restarts from /login.
func (h *Handler) runCallback(c *gin.Context) (string, *auth.FlowError) {

	tx := h.consumeTransaction(c)
	if tx == nil || tx.State == "" || tx.State != c.Query("state") {
		return "", auth.ErrInvalidState()
	}

	if c.Query("result") != "allowed" {
		return "", auth.ErrAccessDenied()
	}

	code := c.Query("code")
	if code == "" {
		return "", auth.ErrMissingCode()
	}

	p, err := h.providers.Get(tx.Provider)
	if err != nil {
		return "", auth.AsFlowError(err)
	}

	ctx := c.Request.Context()

	token, err := p.ExchangeCode(ctx, code)
	if err != nil {
		return "", auth.AsFlowError(err)
	}

	profile, err := p.FetchProfile(ctx, token)
	if err != nil {
		return "", auth.AsFlowError(err)
	}

	if h.cfg.RequireStudent && !profile.IsStudent {
		return "", auth.ErrNotEligible()
	}

	if profile.Email == "" {
		return "", auth.ErrNoEmail()
	}

	if h.resolver == nil || h.minter == nil {
		return "", auth.ErrReconciliation(errors.New("user store not initialized"))
	}

	res, err := h.resolver.Resolve(ctx, profile)
	if err != nil {
		return "", auth.ErrReconciliation(err)
	}

	credential, err := h.minter.MintCustomToken(ctx, res.AccountID)
	if err != nil {
		return "", auth.ErrCredentialMint(err)
	}

	action := "login"
	if res.Created {
		action = "signup"
	}

	logger.Info("login flow completed", map[string]any{
		"account_id": res.AccountID,
		"action":     action,
		"token":      logger.Truncate(credential, 10),
	})

	return h.successURL(credential, action), nil
}

// consumeTransaction reads, verifies and discards the login transaction
// referenced by the client cookie. The cookie is cleared regardless of
// outcome; a transaction is only ever compared once.
func (h *Handler) consumeTransaction(c *gin.Context) *session.Transaction {
	defer session.ClearCookie(c.Writer)

	cookie, err := c.Request.Cookie(session.CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	txnID, ok := h.codec.Decode(cookie.Value)
	if !ok {
		return nil
	}

	tx, err := h.txns.Consume(c.Request.Context(), txnID)
	if err != nil {
		return nil
	}
	return tx
}

func (h *Handler) successURL(credential, action string) string {
	q := url.Values{
		"token":  {credential},
		"action": {action},
	}
	return h.cfg.PublicBaseURL + "/success?" + q.Encode()
}
