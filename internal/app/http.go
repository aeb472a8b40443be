package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Gabrieljbor/conni-ucl-backend/internal/auth/handler"
	"github.com/Gabrieljbor/conni-ucl-backend/internal/auth/provider"
	"github.com/Gabrieljbor/conni-ucl-backend/internal/auth/provider/ucl"
	"github.com/Gabrieljbor/conni-ucl-backend/internal/auth/resolver"
	"github.com/Gabrieljbor/conni-ucl-backend/internal/config"
	"github.com/Gabrieljbor/conni-ucl-backend/internal/middleware"
	"github.com/Gabrieljbor/conni-ucl-backend/internal/session"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra := setupInfra(ctx, cfg)

	// ----------------------------
	// Dependencies
	// ----------------------------

	txnStore := session.NewMemoryStore()
	txnCodec := session.NewCodec(cfg.SecretKey)

	uclProvider, err := ucl.New(cfg.UCLClientID, cfg.UCLClientSecret, cfg.RedirectURI)
	if err != nil {
		return nil, nil, err
	}

	registry := provider.NewRegistry(uclProvider)

	var accountResolver resolver.Resolver
	var minter handler.CredentialMinter
	if infra.Firebase != nil {
		accountResolver = resolver.NewFirebaseResolver(
			infra.Firebase.Firestore,
			infra.Firebase.Auth,
		)
		minter = infra.Firebase
	}

	authHandler := handler.NewHandler(
		cfg,
		registry,
		txnStore,
		txnCodec,
		accountResolver,
		minter,
	)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLog())

	authHandler.RegisterRoutes(router)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if infra.Firebase != nil {
			return infra.Firebase.Close()
		}
		return nil
	}, nil
}
