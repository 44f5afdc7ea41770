package app

import (
	"log"

	"github.com/mrozdorothy3-debug/swed/domain"
	"github.com/mrozdorothy3-debug/swed/internal/config"
	"github.com/mrozdorothy3-debug/swed/internal/infrastructure/auth"
	"github.com/mrozdorothy3-debug/swed/internal/infrastructure/database"
	"github.com/mrozdorothy3-debug/swed/internal/infrastructure/repositories"
	"github.com/mrozdorothy3-debug/swed/internal/infrastructure/userstore"
	"github.com/mrozdorothy3-debug/swed/internal/services"
)

// Container wires the client-side services: the user-store API client, the
// durable session blob, the inactivity-aware session manager and the
// wire-transfer flow.
type Container struct {
	Config *config.Config

	UserStore    domain.UserStore
	SessionStore domain.SessionStore
	Sessions     domain.SessionManager
	Transfers    domain.TransferFlow
}

// NewContainer builds the client dependency graph. The session blob lives in
// Redis when a Redis address is configured, otherwise in a local file.
func NewContainer(cfg *config.Config, sink domain.EventSink) *Container {
	client := userstore.NewClient(cfg.APIBaseURL, cfg.APITimeout)

	var blob domain.SessionStore
	if cfg.RedisAddr != "" {
		rc := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		blob = repositories.NewRedisSessionStore(rc.Client, cfg.StorageKey)
		log.Printf("session blob: redis %s key %s", cfg.RedisAddr, cfg.StorageKey)
	} else {
		blob = repositories.NewFileSessionStore(cfg.StoragePath, cfg.StorageKey)
	}

	sessions := services.NewSessionService(client, blob, services.NewScheduler(), sink, services.SessionServiceConfig{
		WarnAfter:   cfg.WarnAfter,
		ExpireAfter: cfg.ExpireAfter,
	})

	pin := auth.NewFixedPinVerifier(cfg.Pin, cfg.PinMaxAttempts, cfg.PinLockout)
	transfers := services.NewTransferService(client, pin, sink, services.TransferServiceConfig{
		FallbackFee: cfg.FallbackFee,
		MaxAmount:   cfg.MaxAmount,
	})

	return &Container{
		Config:       cfg,
		UserStore:    client,
		SessionStore: blob,
		Sessions:     sessions,
		Transfers:    transfers,
	}
}
