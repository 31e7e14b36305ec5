package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gogotex/useradmin/handlers"
	"github.com/gogotex/useradmin/internal/audit"
	"github.com/gogotex/useradmin/internal/config"
	"github.com/gogotex/useradmin/internal/database"
	"github.com/gogotex/useradmin/internal/identity"
	"github.com/gogotex/useradmin/internal/profiles"
	"github.com/gogotex/useradmin/internal/sessions"
	"github.com/gogotex/useradmin/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// stores holds the process-wide provider handles, created once at startup.
type stores struct {
	mongo      *database.Mongo
	identities handlers.IdentityStore
	profiles   profiles.Repository
	sessions   sessions.Repository
	audit      audit.Recorder
}

// openStores connects to Mongo when MONGODB_URI is set and falls back to
// in-memory stores otherwise. Refresh sessions prefer Redis when available.
func openStores(ctx context.Context, cfg *config.Config, rdb *redis.Client) (*stores, error) {
	st := &stores{}
	if cfg.MongoDB.URI == "" {
		logger.Warn("MONGODB_URI not set; using in-memory stores, data is lost on restart")
		st.identities = identity.NewMemoryProvider()
		st.profiles = profiles.NewMemoryRepository()
		st.audit = audit.NewMemoryRecorder()
	} else {
		m, err := connectWithRetry(ctx, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		st.mongo = m
		st.identities = identity.NewMongoProvider(ctx, m.Collection(cfg.Collections.Identities))
		st.profiles = profiles.NewMongoRepository(m.Collection(cfg.Collections.Profiles))
		st.audit = audit.NewMongoRecorder(m.Collection(cfg.Collections.Audit))
		logger.Infof("using MongoDB database %q", cfg.MongoDB.Database)
	}

	switch {
	case rdb != nil:
		st.sessions = sessions.NewRedisRepository(rdb, "")
		logger.Infof("using Redis for session storage")
	case st.mongo != nil:
		st.sessions = sessions.NewMongoRepository(ctx, st.mongo.Collection(cfg.Collections.Sessions))
		logger.Infof("using MongoDB for session storage")
	default:
		st.sessions = sessions.NewMemoryRepository()
	}
	return st, nil
}

// connectWithRetry tolerates startup races with the database container.
func connectWithRetry(ctx context.Context, cfg config.MongoDBConfig) (*database.Mongo, error) {
	const maxAttempts = 5
	backoff := time.Second
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		m, err := database.ConnectMongo(ctx, cfg)
		if err == nil {
			return m, nil
		}
		lastErr = err
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	return nil, fmt.Errorf("could not connect to MongoDB after %d attempts: %w", maxAttempts, lastErr)
}

// Ping reports storage readiness. In-memory stores are always ready.
func (s *stores) Ping(ctx context.Context) error {
	if s.mongo == nil {
		return nil
	}
	return s.mongo.Ping(ctx)
}

func (s *stores) Close() {
	if s.mongo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.mongo.Close(ctx); err != nil {
		logger.Warnf("mongo disconnect: %v", err)
	}
}
