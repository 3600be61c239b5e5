package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/folio/internal/auth"
	"github.com/MrSnakeDoc/folio/internal/config"
	"github.com/MrSnakeDoc/folio/internal/content"
	"github.com/MrSnakeDoc/folio/internal/logger"
	"github.com/MrSnakeDoc/folio/internal/redis"
	redisstore "github.com/MrSnakeDoc/folio/internal/store/redis"
	"github.com/MrSnakeDoc/folio/internal/store/sqlite"
)

// Stores bundles the content facade and the authenticator for the
// configured mode. The SQLite slot is always opened: it is the whole store
// in local mode and the fallback copy in hosted mode.
type Stores struct {
	Facade *content.Facade
	Auth   auth.Authenticator
	// Local is the passphrase authenticator, nil in hosted mode.
	Local *auth.LocalAuthenticator
	// Redis is the hosted store client, nil in local mode.
	Redis *goredis.Client

	slot *sqlite.Store
	log  logger.Logger
}

// OpenStores connects the stores selected by cfg. An unreachable hosted
// store is not fatal: reads fall back to the local copy until it answers.
func OpenStores(ctx context.Context, cfg *config.Config, log logger.Logger) (*Stores, error) {
	slot, err := sqlite.Open(ctx, cfg.LocalDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	local := content.NewLocalBackend(slot, log)

	s := &Stores{slot: slot, log: log}

	if !cfg.HostedMode() {
		log.Info("hosted store not configured, serving the local document",
			logger.String("path", cfg.LocalDBPath))
		s.Facade = content.NewFacade(local, local, log)
		s.Local = auth.NewLocalAuthenticator(cfg.LocalPassphrase, cfg.SessionTTL)
		s.Auth = s.Local
		return s, nil
	}

	opts := redis.ConnectOptions{
		URL:            cfg.StoreURL,
		Password:       cfg.StoreKey,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}
	client, err := redis.NewClient(opts)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("invalid hosted store settings: %w", err)
	}
	s.Redis = client

	if err := redis.WaitReady(client, opts, log); err != nil {
		log.Warn("hosted store not reachable yet, reads will use the local copy",
			logger.Error(err))
	}

	store := redisstore.NewStore(client)
	s.Facade = content.NewFacade(content.NewHostedBackend(store, log), local, log)

	hosted := auth.NewHostedAuthenticator(store, cfg.SessionTTL, log)
	if cfg.AdminEmail != "" {
		if err := hosted.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Warn("failed to bootstrap admin account", logger.Error(err))
		}
	}
	s.Auth = hosted

	return s, nil
}

// Close releases the store connections.
func (s *Stores) Close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.log.Warnf("failed to close redis: %v", err)
		} else {
			s.log.Info("✅ Redis closed cleanly")
		}
	}
	if err := s.slot.Close(); err != nil {
		s.log.Warnf("failed to close local store: %v", err)
	}
}
