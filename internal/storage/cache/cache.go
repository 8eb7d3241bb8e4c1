// Package cache puts a Redis read-through cache in front of profile reads.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aarthiksaathi/aarthik-be/internal/metrics"
	"github.com/aarthiksaathi/aarthik-be/internal/models"
	"github.com/aarthiksaathi/aarthik-be/internal/storage"
)

const keyPrefix = "profile:"

var _ storage.Store = (*Store)(nil)

// Store decorates a storage.Store. User operations pass straight through;
// profiles are cached as JSON for ttl and rewritten on every save. Redis
// failures are logged and never fail a request.
type Store struct {
	storage.Store
	client  redis.Cmdable
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New wraps next with a profile cache backed by client.
func New(next storage.Store, client redis.Cmdable, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) *Store {
	return &Store{Store: next, client: client, ttl: ttl, logger: logger, metrics: m}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

// Close closes the wrapped store and the Redis client when it owns one.
func (s *Store) Close() {
	s.Store.Close()
	if c, ok := s.client.(io.Closer); ok {
		if err := c.Close(); err != nil {
			s.logger.Warn("close redis client", "error", err)
		}
	}
}

// Ping checks the wrapped store. An unreachable Redis only degrades reads, so
// it is logged rather than reported.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		s.logger.WarnContext(ctx, "redis ping failed", "error", err)
	}
	if p, ok := s.Store.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

func key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}

// GetProfile serves from Redis when possible and fills the cache on a miss.
// Absent profiles are not cached.
func (s *Store) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	raw, err := s.client.Get(ctx, key(userID)).Bytes()
	switch {
	case err == nil:
		var p models.Profile
		jerr := json.Unmarshal(raw, &p)
		if jerr == nil {
			s.metrics.IncrementCacheHit()
			return p, nil
		}
		s.logger.WarnContext(ctx, "discarding undecodable cached profile", "user_id", userID, "error", jerr)
	case errors.Is(err, redis.Nil):
	default:
		s.logger.WarnContext(ctx, "profile cache read failed", "user_id", userID, "error", err)
	}

	s.metrics.IncrementCacheMiss()
	p, err := s.Store.GetProfile(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}
	s.put(ctx, p)
	return p, nil
}

// UpsertProfile saves through to the wrapped store, then refreshes the cache.
func (s *Store) UpsertProfile(ctx context.Context, userID int64, form models.ProfileForm) (models.Profile, error) {
	p, err := s.Store.UpsertProfile(ctx, userID, form)
	if err != nil {
		return models.Profile{}, err
	}
	s.put(ctx, p)
	return p, nil
}

// put writes p, falling back to deleting the key so a stale entry cannot outlive a save.
func (s *Store) put(ctx context.Context, p models.Profile) {
	raw, err := json.Marshal(p)
	if err == nil {
		err = s.client.Set(ctx, key(p.UserID), raw, s.ttl).Err()
	}
	if err == nil {
		return
	}
	s.logger.WarnContext(ctx, "profile cache write failed", "user_id", p.UserID, "error", err)
	if err := s.client.Del(ctx, key(p.UserID)).Err(); err != nil {
		s.logger.ErrorContext(ctx, "profile cache invalidation failed", "user_id", p.UserID, "error", err)
	}
}
