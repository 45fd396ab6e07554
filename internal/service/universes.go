package service

import (
	"context"
	"encoding/json"
	"time"

	"roblox-pass-proxy/internal/cache"
	"roblox-pass-proxy/internal/metrics"
	"roblox-pass-proxy/internal/model"
	"roblox-pass-proxy/internal/source"
)

// errorsSampleLimit truncates the mirror diagnostics in the response.
const errorsSampleLimit = 3

// UniverseService discovers the universes a user owns across mirrors.
type UniverseService struct {
	lister source.UniverseLister
	cache  cache.Cache
	ttl    time.Duration
}

// NewUniverseService creates the discovery service.
func NewUniverseService(lister source.UniverseLister, c cache.Cache, ttl time.Duration) *UniverseService {
	return &UniverseService{lister: lister, cache: c, ttl: ttl}
}

// Discover returns the user's universes merged across mirrors. The payload's
// Cached flag reports whether it was served from the cache. When every
// mirror failed or came back empty but the profile fallback recovered a
// display name, the result carries a single synthetic record so callers
// still learn the username.
func (s *UniverseService) Discover(ctx context.Context, userID int64, limit int) (*model.UniversePayload, error) {
	key := UniverseCacheKey(userID, limit)
	if body, err := s.cache.Get(ctx, key); err == nil {
		var payload model.UniversePayload
		if err := json.Unmarshal(body, &payload); err == nil {
			metrics.CacheHits.WithLabelValues("universes").Inc()
			payload.Cached = true
			return &payload, nil
		}
		// Undecodable entry: drop it and recompute.
		_ = s.cache.Delete(ctx, key)
	}
	metrics.CacheMisses.WithLabelValues("universes").Inc()

	universes, soft, username, err := s.lister.ByUser(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}

	if len(universes) == 0 && username != "" {
		universes = append(universes, model.Universe{
			Name:   username,
			Source: "profile-fallback",
		})
	}

	clamped := ClampLimit(limit)
	if len(universes) > clamped {
		universes = universes[:clamped]
	}
	if universes == nil {
		universes = []model.Universe{}
	}

	if len(soft) > errorsSampleLimit {
		soft = soft[:errorsSampleLimit]
	}
	if soft == nil {
		soft = []model.MirrorError{}
	}

	payload := &model.UniversePayload{
		Count:        len(universes),
		Data:         universes,
		Cached:       false,
		ErrorsSample: soft,
	}

	if body, err := json.Marshal(payload); err == nil {
		_ = s.cache.Set(ctx, key, body, s.ttl)
	}

	return payload, nil
}
