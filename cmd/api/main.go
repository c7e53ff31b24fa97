package main

import (
	"net/http"
	"time"

	"cultivo-console/internal/adapters/auth/identity"
	"cultivo-console/internal/config"
	"cultivo-console/internal/platform/logger"
	"cultivo-console/internal/ports/auth"
	"cultivo-console/internal/router"
)

// @title Cultivo Console API
// @version 1.0
// @description API de ciclo de vida de cultivos: ubicaciones, etapas e historial.
// @BasePath /
func main() {
	cfg := config.Load()
	log := logger.NewFromEnv()

	var verifier auth.AuthVerifier
	if cfg.IdentityBaseURL != "" {
		client, err := identity.NewClient(identity.Config{
			BaseURL: cfg.IdentityBaseURL,
			APIKey:  cfg.IdentityAPIKey,
			Timeout: cfg.IdentityTimeout,
		})
		if err != nil {
			log.Error("identity client init failed", map[string]any{"error": err.Error()})
			return
		}
		verifier = identity.NewVerifier(client)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
	}
}
