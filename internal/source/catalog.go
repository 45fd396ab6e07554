package source

import (
	"context"
	"fmt"
	"net/url"

	"roblox-pass-proxy/internal/model"
	"roblox-pass-proxy/internal/upstream"
)

// Clothing category in the catalog search API.
const catalogClothingCategory = 3

// CatalogAdapter searches the catalog for UGC items by creator name. The
// catalog API is keyed by name, not id, so callers resolve the name first.
type CatalogAdapter struct {
	client  *upstream.Client
	baseURL string
}

var _ CatalogSearch = (*CatalogAdapter)(nil)

// NewCatalogAdapter creates an adapter for the catalog search endpoint.
func NewCatalogAdapter(client *upstream.Client, baseURL string) *CatalogAdapter {
	return &CatalogAdapter{client: client, baseURL: baseURL}
}

type catalogSearchResponse struct {
	Data []struct {
		ID    *int64 `json:"id"`
		Name  string `json:"name"`
		Price *int64 `json:"price"`
	} `json:"data"`
}

// UGCByCreatorName returns the creator's priced items. Entries missing an id
// or a price are ambiguous (offsale, free, or broken rows) and are dropped.
// An empty username short-circuits without an upstream call.
func (a *CatalogAdapter) UGCByCreatorName(ctx context.Context, username string) ([]model.Pass, int, error) {
	if username == "" {
		return nil, 0, nil
	}

	u := fmt.Sprintf("%s/v1/search/items/details?Category=%d&CreatorName=%s",
		a.baseURL, catalogClothingCategory, url.QueryEscape(username))

	var body catalogSearchResponse
	if err := a.client.GetJSON(ctx, u, &body); err != nil {
		return nil, 0, err
	}

	var passes []model.Pass
	skipped := 0
	for _, row := range body.Data {
		if row.ID == nil || row.Price == nil {
			skipped++
			continue
		}
		name := row.Name
		if name == "" {
			name = "UGC"
		}
		passes = append(passes, model.Pass{
			ID:     *row.ID,
			Name:   name,
			Price:  row.Price,
			Type:   model.PassTypeUGC,
			Source: "catalog",
		})
	}

	return passes, skipped, nil
}
