package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/campusboard/campusboard-api/pkg/errors"
)

type mapCacheStore struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func (m *mapCacheStore) Get(ctx context.Context, key string, dest any) error {
	value, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	*dest.(*string) = value
	return nil
}

func (m *mapCacheStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if m.values == nil {
		m.values = make(map[string]string)
		m.ttls = make(map[string]time.Duration)
	}
	m.values[key] = value.(string)
	m.ttls[key] = ttl
	return nil
}

func (m *mapCacheStore) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

type countingMetrics struct {
	operations map[string]int
}

func (c *countingMetrics) RecordCacheOperation(operation, result string) {
	if c.operations == nil {
		c.operations = make(map[string]int)
	}
	c.operations[operation+":"+result]++
}

func TestCacheServiceRoundTrip(t *testing.T) {
	store := &mapCacheStore{}
	metrics := &countingMetrics{}
	svc := NewCacheService(store, 30*time.Second, true, metrics, zap.NewNop())

	require.True(t, svc.Enabled())
	require.NoError(t, svc.Set(context.Background(), "k", "v"))
	assert.Equal(t, 30*time.Second, store.ttls["k"])

	var got string
	require.NoError(t, svc.Get(context.Background(), "k", &got))
	assert.Equal(t, "v", got)
	assert.Equal(t, 1, metrics.operations["get:hit"])

	require.NoError(t, svc.Invalidate(context.Background(), "k"))
	err := svc.Get(context.Background(), "k", &got)
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
	assert.Equal(t, 1, metrics.operations["get:miss"])
}

func TestCacheServiceDisabled(t *testing.T) {
	svc := NewCacheService(&mapCacheStore{}, time.Second, false, nil, zap.NewNop())

	assert.False(t, svc.Enabled())
	var got string
	assert.ErrorIs(t, svc.Get(context.Background(), "k", &got), appErrors.ErrCacheMiss)
	assert.NoError(t, svc.Set(context.Background(), "k", "v"))
	assert.NoError(t, svc.Invalidate(context.Background(), "k"))
}

func TestCacheServiceNilReceiver(t *testing.T) {
	var svc *CacheService
	assert.False(t, svc.Enabled())
}

func TestCacheServiceNilStoreDisables(t *testing.T) {
	svc := NewCacheService(nil, time.Second, true, nil, zap.NewNop())
	assert.False(t, svc.Enabled())
}
