package source

import (
	"context"
	"fmt"

	"roblox-pass-proxy/internal/model"
	"roblox-pass-proxy/internal/upstream"
)

const universePassLimit = 100

// UniversePassAdapter lists the gamepasses sold inside a universe.
type UniversePassAdapter struct {
	client  *upstream.Client
	baseURL string
}

var _ UniversePasses = (*UniversePassAdapter)(nil)

// NewUniversePassAdapter creates an adapter for the develop game-passes endpoint.
func NewUniversePassAdapter(client *upstream.Client, baseURL string) *UniversePassAdapter {
	return &UniversePassAdapter{client: client, baseURL: baseURL}
}

type universePassResponse struct {
	Data []struct {
		ID    *int64 `json:"id"`
		Name  string `json:"name"`
		Price *int64 `json:"price"`
	} `json:"data"`
}

// ByUniverse returns the universe's passes up to the endpoint's own limit.
// A nil price is a valid free/unpriced pass; a missing id is not usable and
// the entry is dropped.
func (a *UniversePassAdapter) ByUniverse(ctx context.Context, universeID int64) ([]model.Pass, int, error) {
	url := fmt.Sprintf("%s/v1/universes/%d/game-passes?limit=%d", a.baseURL, universeID, universePassLimit)

	var body universePassResponse
	if err := a.client.GetJSON(ctx, url, &body); err != nil {
		return nil, 0, err
	}

	var passes []model.Pass
	skipped := 0
	for _, row := range body.Data {
		if row.ID == nil {
			skipped++
			continue
		}
		uid := universeID
		passes = append(passes, model.Pass{
			ID:         *row.ID,
			Name:       row.Name,
			Price:      row.Price,
			Type:       model.PassTypeGamepass,
			UniverseID: &uid,
			Source:     "universe",
		})
	}

	return passes, skipped, nil
}
