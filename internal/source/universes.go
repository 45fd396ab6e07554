package source

import (
	"context"
	"fmt"
	"log"

	"roblox-pass-proxy/internal/model"
	"roblox-pass-proxy/internal/upstream"
)

// Mirror describes one candidate endpoint for the user-universes query.
// Mirrors disagree about both the envelope (top-level list field) and the
// per-item key names, so each one carries its own mapping table; keys are
// probed in priority order.
type Mirror struct {
	Name      string
	URLFor    func(userID int64) string
	Envelopes []string
	IDKeys    []string
	PlaceKeys []string
	NameKeys  []string
}

// DefaultMirrors builds the production candidate list against the given
// mirror base URLs, in trust order.
func DefaultMirrors(gamesBase, apisBase, wwwBase string) []Mirror {
	return []Mirror{
		{
			Name: "games-v2",
			URLFor: func(userID int64) string {
				return fmt.Sprintf("%s/v2/users/%d/games?accessFilter=Public&limit=50", gamesBase, userID)
			},
			Envelopes: []string{"data"},
			IDKeys:    []string{"id", "universeId"},
			PlaceKeys: []string{"rootPlaceId", "placeId"},
			NameKeys:  []string{"name"},
		},
		{
			Name: "apis-universes",
			URLFor: func(userID int64) string {
				return fmt.Sprintf("%s/universes/v1/users/%d/games?limit=50", apisBase, userID)
			},
			Envelopes: []string{"data", "games"},
			IDKeys:    []string{"universeId", "id", "rootPlaceId", "universe_id"},
			PlaceKeys: []string{"placeId", "rootPlaceId", "place_id"},
			NameKeys:  []string{"name", "Name"},
		},
		{
			Name: "playergames-json",
			URLFor: func(userID int64) string {
				return fmt.Sprintf("%s/users/profile/playergames-json?userId=%d", wwwBase, userID)
			},
			Envelopes: []string{"Games", "games"},
			IDKeys:    []string{"universeId", "id", "rootPlaceId", "universe_id"},
			PlaceKeys: []string{"placeId", "rootPlaceId", "place_id"},
			NameKeys:  []string{"name", "Name"},
		},
	}
}

// GamesAdapter merges user-universe listings across unreliable mirrors.
type GamesAdapter struct {
	client   *upstream.Client
	mirrors  []Mirror
	fallback UserResolver
}

var _ UniverseLister = (*GamesAdapter)(nil)

// NewGamesAdapter creates a multi-mirror adapter. fallback is the profile
// resolver consulted only when every mirror fails or comes back empty.
func NewGamesAdapter(client *upstream.Client, mirrors []Mirror, fallback UserResolver) *GamesAdapter {
	return &GamesAdapter{client: client, mirrors: mirrors, fallback: fallback}
}

// ByUser queries every mirror in order, tolerating individual failures, and
// merges the results deduplicated by universe id (first occurrence wins).
// When no mirror produced a record, the profile fallback recovers a display
// name so callers still have something to show.
func (a *GamesAdapter) ByUser(ctx context.Context, userID int64) ([]model.Universe, []model.MirrorError, string, error) {
	var (
		universes []model.Universe
		soft      []model.MirrorError
		seen      = make(map[int64]bool)
	)

	for _, m := range a.mirrors {
		url := m.URLFor(userID)

		var body map[string]interface{}
		if err := a.client.GetJSON(ctx, url, &body); err != nil {
			soft = append(soft, model.MirrorError{URL: url, Error: err.Error()})
			continue
		}

		items := extractList(body, m.Envelopes)
		if len(items) == 0 {
			soft = append(soft, model.MirrorError{URL: url, Error: "empty result"})
			continue
		}

		for _, raw := range items {
			item, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			universeID, ok := firstInt(item, m.IDKeys)
			if !ok || seen[universeID] {
				continue
			}
			seen[universeID] = true

			u := model.Universe{
				UniverseID: universeID,
				Source:     m.Name,
			}
			if placeID, ok := firstInt(item, m.PlaceKeys); ok {
				u.PlaceID = &placeID
			}
			if name, ok := firstString(item, m.NameKeys); ok {
				u.Name = name
			}
			universes = append(universes, u)
		}
	}

	username := ""
	if len(universes) == 0 && a.fallback != nil {
		name, err := a.fallback.Username(ctx, userID)
		if err != nil {
			log.Printf("universes: profile fallback failed for user %d: %v", userID, err)
		} else {
			username = name
		}
	}

	return universes, soft, username, nil
}

// extractList returns the first non-empty list found under the candidate
// envelope keys.
func extractList(body map[string]interface{}, envelopes []string) []interface{} {
	for _, key := range envelopes {
		if list, ok := body[key].([]interface{}); ok && len(list) > 0 {
			return list
		}
	}
	return nil
}

// firstInt probes keys in priority order for a numeric value.
func firstInt(item map[string]interface{}, keys []string) (int64, bool) {
	for _, key := range keys {
		switch v := item[key].(type) {
		case float64:
			return int64(v), true
		case int64:
			return v, true
		}
	}
	return 0, false
}

// firstString probes keys in priority order for a non-empty string.
func firstString(item map[string]interface{}, keys []string) (string, bool) {
	for _, key := range keys {
		if s, ok := item[key].(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}
