package cache_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelinkhq/carebundle/internal/cache"
	"github.com/carelinkhq/carebundle/internal/domain/profile"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := cache.NewMemoryCache()
	ctx := context.Background()
	patientID := uuid.New()
	key := cache.Key(patientID, 365, true)

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	p := &profile.NeedsProfile{PatientID: patientID, EpisodeType: profile.EpisodeChronic}
	require.NoError(t, c.Set(ctx, key, p))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, patientID, got.PatientID)
}

func TestMemoryCache_InvalidateSweepsAllOptionVariants(t *testing.T) {
	c := cache.NewMemoryCache()
	ctx := context.Background()
	patientID := uuid.New()
	other := uuid.New()

	p := &profile.NeedsProfile{PatientID: patientID}
	require.NoError(t, c.Set(ctx, cache.Key(patientID, 365, true), p))
	require.NoError(t, c.Set(ctx, cache.Key(patientID, 180, false), p))
	require.NoError(t, c.Set(ctx, cache.Key(other, 365, true), &profile.NeedsProfile{PatientID: other}))

	require.NoError(t, c.Invalidate(ctx, patientID))

	_, ok, _ := c.Get(ctx, cache.Key(patientID, 365, true))
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, cache.Key(patientID, 180, false))
	assert.False(t, ok)

	// Other patients' entries survive.
	_, ok, _ = c.Get(ctx, cache.Key(other, 365, true))
	assert.True(t, ok)
}

func TestKey_VariantsAreDistinct(t *testing.T) {
	patientID := uuid.New()

	keys := map[string]bool{
		cache.Key(patientID, 365, true):  true,
		cache.Key(patientID, 365, false): true,
		cache.Key(patientID, 180, true):  true,
	}
	assert.Len(t, keys, 3)
}
