package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roblox-pass-proxy/internal/cache"
	"roblox-pass-proxy/internal/model"
)

type fakeLister struct {
	universes []model.Universe
	soft      []model.MirrorError
	username  string
	err       error
	calls     int
}

func (f *fakeLister) ByUser(ctx context.Context, userID int64) ([]model.Universe, []model.MirrorError, string, error) {
	f.calls++
	return f.universes, f.soft, f.username, f.err
}

func TestUniverseService_Discover(t *testing.T) {
	lister := &fakeLister{
		universes: []model.Universe{
			{UniverseID: 10, Name: "Obby", Source: "games-v2"},
			{UniverseID: 20, Name: "Tycoon", Source: "playergames-json"},
		},
		soft: []model.MirrorError{
			{URL: "https://a", Error: "timeout"},
			{URL: "https://b", Error: "empty result"},
			{URL: "https://c", Error: "status 500"},
			{URL: "https://d", Error: "status 429"},
		},
	}
	svc := NewUniverseService(lister, cache.NewMemoryCache(), 120*time.Second)

	payload, err := svc.Discover(context.Background(), 123, DefaultLimit)
	require.NoError(t, err)

	assert.Equal(t, 2, payload.Count)
	assert.False(t, payload.Cached)
	assert.Len(t, payload.ErrorsSample, 3, "diagnostics truncated to a fixed sample")
	assert.Equal(t, "https://a", payload.ErrorsSample[0].URL)
}

func TestUniverseService_ProfileFallback(t *testing.T) {
	lister := &fakeLister{username: "builderman"}
	svc := NewUniverseService(lister, cache.NewMemoryCache(), 120*time.Second)

	payload, err := svc.Discover(context.Background(), 123, DefaultLimit)
	require.NoError(t, err)

	assert.False(t, payload.Cached)
	require.Equal(t, 1, payload.Count)
	assert.Equal(t, "builderman", payload.Data[0].Name)
	assert.Equal(t, "profile-fallback", payload.Data[0].Source)
}

func TestUniverseService_EmptyWithoutFallback(t *testing.T) {
	svc := NewUniverseService(&fakeLister{}, cache.NewMemoryCache(), 120*time.Second)

	payload, err := svc.Discover(context.Background(), 123, DefaultLimit)
	require.NoError(t, err)

	assert.Equal(t, 0, payload.Count)
	assert.NotNil(t, payload.Data, "data is an empty list, not null")
	assert.NotNil(t, payload.ErrorsSample)
}

func TestUniverseService_CacheHitSetsCached(t *testing.T) {
	lister := &fakeLister{universes: []model.Universe{{UniverseID: 10, Name: "Obby", Source: "games-v2"}}}
	svc := NewUniverseService(lister, cache.NewMemoryCache(), 120*time.Second)

	first, err := svc.Discover(context.Background(), 123, DefaultLimit)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := svc.Discover(context.Background(), 123, DefaultLimit)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Data, second.Data)
	assert.Equal(t, 1, lister.calls)
}

func TestUniverseService_LimitClamp(t *testing.T) {
	var many []model.Universe
	for i := int64(1); i <= 10; i++ {
		many = append(many, model.Universe{UniverseID: i, Source: "games-v2"})
	}
	svc := NewUniverseService(&fakeLister{universes: many}, cache.NewMemoryCache(), 120*time.Second)

	payload, err := svc.Discover(context.Background(), 123, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, payload.Count)
	assert.Len(t, payload.Data, 3)
}
