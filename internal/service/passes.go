package service

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"roblox-pass-proxy/internal/cache"
	"roblox-pass-proxy/internal/metrics"
	"roblox-pass-proxy/internal/model"
	"roblox-pass-proxy/internal/source"
	"roblox-pass-proxy/pkg/apierror"
)

// PassService aggregates passes across the source adapters and caches the
// marshaled payloads.
type PassService struct {
	users     source.UserResolver
	inventory source.InventoryPasses
	catalog   source.CatalogSearch
	universe  source.UniversePasses
	cache     cache.Cache
	ttl       time.Duration
}

// NewPassService creates the aggregator.
func NewPassService(
	users source.UserResolver,
	inventory source.InventoryPasses,
	catalog source.CatalogSearch,
	universe source.UniversePasses,
	c cache.Cache,
	ttl time.Duration,
) *PassService {
	return &PassService{
		users:     users,
		inventory: inventory,
		catalog:   catalog,
		universe:  universe,
		cache:     c,
		ttl:       ttl,
	}
}

// Aggregate returns the marshaled pass payload for q plus whether it was
// served from the cache. A cache hit returns the stored bytes verbatim.
// Requests with neither selector are rejected before any upstream call.
func (s *PassService) Aggregate(ctx context.Context, q Query) ([]byte, bool, error) {
	if q.UserID == nil && q.UniverseID == nil {
		return nil, false, apierror.BadRequest("provide userId or universeId")
	}

	key := q.CacheKey()
	if body, err := s.cache.Get(ctx, key); err == nil {
		metrics.CacheHits.WithLabelValues("passes").Inc()
		return body, true, nil
	}
	metrics.CacheMisses.WithLabelValues("passes").Inc()

	payload, err := s.aggregate(ctx, q)
	if err != nil {
		return nil, false, translate(err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, false, translate(err)
	}

	_ = s.cache.Set(ctx, key, body, s.ttl)
	return body, false, nil
}

func (s *PassService) aggregate(ctx context.Context, q Query) (*model.PassPayload, error) {
	var (
		passes  []model.Pass
		skipped int
		err     error
	)

	switch {
	case q.UniverseID != nil:
		passes, skipped, err = s.universe.ByUniverse(ctx, *q.UniverseID)
		if err != nil {
			return nil, err
		}

	default:
		passes, skipped, err = s.byUser(ctx, *q.UserID, q.Include)
		if err != nil {
			return nil, err
		}
	}

	sortPasses(passes)

	limit := ClampLimit(q.Limit)
	if len(passes) > limit {
		passes = passes[:limit]
	}
	if passes == nil {
		passes = []model.Pass{}
	}

	return &model.PassPayload{
		Count:   len(passes),
		Data:    passes,
		Skipped: skipped,
	}, nil
}

// byUser fetches the selected branches concurrently. The branches share no
// data, so order only matters at the final sorted merge.
func (s *PassService) byUser(ctx context.Context, userID int64, include string) ([]model.Pass, int, error) {
	set := ParseIncludes(include)

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		passes   []model.Pass
		skipped  int
		firstErr error
	)

	collect := func(found []model.Pass, dropped int, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		passes = append(passes, found...)
		skipped += dropped
	}

	if set[IncludeGamepass] {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collect(s.inventory.GamepassesByCreator(ctx, userID))
		}()
	}

	if set[IncludeUGC] {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// The catalog is keyed by name, so resolve the id first.
			username, err := s.users.Username(ctx, userID)
			if err != nil {
				collect(nil, 0, err)
				return
			}
			collect(s.catalog.UGCByCreatorName(ctx, username))
		}()
	}

	wg.Wait()

	if firstErr != nil {
		return nil, 0, firstErr
	}
	return passes, skipped, nil
}

// sortPasses orders ascending by (price treated as 0 when nil, id). This is
// contract behavior, not cosmetics: callers rely on cheapest-first output.
func sortPasses(passes []model.Pass) {
	sort.SliceStable(passes, func(i, j int) bool {
		pi, pj := priceOrZero(passes[i]), priceOrZero(passes[j])
		if pi != pj {
			return pi < pj
		}
		return passes[i].ID < passes[j].ID
	})
}

func priceOrZero(p model.Pass) int64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}
