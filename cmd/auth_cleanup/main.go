package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/pkg/logger"
	"blogapi/internal/repository"
)

const auditRetention = 90 * 24 * time.Hour

// Prunes expired refresh tokens and old audit events. Intended to run as a
// periodic job (cron or similar).
func main() {
	_ = godotenv.Load()

	log := logger.New("auth_cleanup")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	ctx := context.Background()

	tokens, err := repository.NewRefreshTokenRepository(db).DeleteExpired(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cleanup refresh_tokens failed")
	}

	events, err := repository.NewAuditRepository(db).DeleteOlderThan(ctx, time.Now().Add(-auditRetention))
	if err != nil {
		log.Fatal().Err(err).Msg("cleanup audit_events failed")
	}

	log.Info().Int64("refresh_tokens", tokens).Int64("audit_events", events).Msg("auth cleanup completed")
}
