package cache_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelinkhq/carebundle/internal/cache"
	"github.com/carelinkhq/carebundle/internal/domain/profile"
)

func newRedisCache(t *testing.T) *cache.RedisCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisCache(client, 0)
}

func TestRedisCache_SetGetRoundTrip(t *testing.T) {
	c := newRedisCache(t)
	ctx := context.Background()
	patientID := uuid.New()
	key := cache.Key(patientID, 365, true)

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	p := &profile.NeedsProfile{PatientID: patientID, EpisodeType: profile.EpisodePostAcute}
	require.NoError(t, c.Set(ctx, key, p))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, patientID, got.PatientID)
	assert.Equal(t, profile.EpisodePostAcute, got.EpisodeType)
}

func TestRedisCache_InvalidateSweepsOnlyThePatient(t *testing.T) {
	c := newRedisCache(t)
	ctx := context.Background()
	patientID := uuid.New()
	other := uuid.New()

	p := &profile.NeedsProfile{PatientID: patientID}
	require.NoError(t, c.Set(ctx, cache.Key(patientID, 365, true), p))
	require.NoError(t, c.Set(ctx, cache.Key(patientID, 90, false), p))
	require.NoError(t, c.Set(ctx, cache.Key(other, 365, true), &profile.NeedsProfile{PatientID: other}))

	require.NoError(t, c.Invalidate(ctx, patientID))

	_, ok, err := c.Get(ctx, cache.Key(patientID, 365, true))
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = c.Get(ctx, cache.Key(patientID, 90, false))
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Get(ctx, cache.Key(other, 365, true))
	require.NoError(t, err)
	assert.True(t, ok, "other patients' entries survive the sweep")
}

func TestRedisCache_InvalidateNoKeysIsANoOp(t *testing.T) {
	c := newRedisCache(t)
	require.NoError(t, c.Invalidate(context.Background(), uuid.New()))
}
