package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, 120*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 8*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "roblox-proxy/1.0", cfg.Upstream.UserAgent)
	assert.Equal(t, "https://users.roproxy.com", cfg.Upstream.UsersBaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("UPSTREAM_GAMES_URL", "http://localhost:1234")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Type)
	assert.Equal(t, "cache.internal:6379", cfg.Cache.RedisAddress())
	assert.Equal(t, "http://localhost:1234", cfg.Upstream.GamesBaseURL)
}
