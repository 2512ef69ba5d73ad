package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/campusboard/campusboard-api/pkg/errors"
)

type cacheRepository interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type cacheMetrics interface {
	RecordCacheOperation(operation, result string)
}

// CacheService is a thin policy layer over the cache store: it owns
// the TTL, an enabled switch, and hit/miss accounting.
type CacheService struct {
	store   cacheRepository
	ttl     time.Duration
	enabled bool
	metrics cacheMetrics
	logger  *zap.Logger
}

// NewCacheService constructs CacheService. A nil store disables caching.
func NewCacheService(store cacheRepository, ttl time.Duration, enabled bool, metrics cacheMetrics, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{
		store:   store,
		ttl:     ttl,
		enabled: enabled && store != nil,
		metrics: metrics,
		logger:  logger,
	}
}

// Enabled reports whether the cache is usable.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled
}

// Get loads a cached value into dest.
func (s *CacheService) Get(ctx context.Context, key string, dest any) error {
	if !s.Enabled() {
		return appErrors.ErrCacheMiss
	}

	err := s.store.Get(ctx, key, dest)
	switch {
	case err == nil:
		s.record("get", "hit")
		return nil
	case errors.Is(err, appErrors.ErrCacheMiss):
		s.record("get", "miss")
		return err
	default:
		s.record("get", "error")
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return err
	}
}

// Set stores a value under the configured TTL.
func (s *CacheService) Set(ctx context.Context, key string, value any) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.store.Set(ctx, key, value, s.ttl); err != nil {
		s.record("set", "error")
		return err
	}
	s.record("set", "ok")
	return nil
}

// Invalidate removes the given keys.
func (s *CacheService) Invalidate(ctx context.Context, keys ...string) error {
	if !s.Enabled() || len(keys) == 0 {
		return nil
	}
	if err := s.store.Delete(ctx, keys...); err != nil {
		s.record("delete", "error")
		return err
	}
	s.record("delete", "ok")
	return nil
}

func (s *CacheService) record(operation, result string) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(operation, result)
	}
}
