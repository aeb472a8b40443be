package app

import (
	"context"

	"github.com/Gabrieljbor/conni-ucl-backend/internal/config"
	"github.com/Gabrieljbor/conni-ucl-backend/internal/firebase"
	"github.com/Gabrieljbor/conni-ucl-backend/internal/logger"
)

type Infra struct {
	// Firebase is nil when initialization failed. The server still
	// starts so /health can report the degraded state; login callbacks
	// fail with a typed error until credentials are fixed.
	Firebase *firebase.Client
}

func setupInfra(ctx context.Context, cfg config.Config) *Infra {

	fb, err := firebase.New(
		ctx,
		cfg.FirebaseServiceAccount,
		cfg.FirebaseServiceAccountFile,
	)
	if err != nil {
		logger.Warn("firebase initialization failed, callbacks will be rejected", map[string]any{
			"error": err.Error(),
		})
		return &Infra{}
	}

	logger.Info("firebase ready", nil)

	return &Infra{Firebase: fb}
}
