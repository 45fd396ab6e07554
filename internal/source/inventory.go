package source

import (
	"context"
	"fmt"
	"log"

	"roblox-pass-proxy/internal/model"
	"roblox-pass-proxy/internal/upstream"
)

// Gamepass asset type on the platform.
const gamepassAssetTypeID = 34

const inventoryPageSize = 100

// maxInventoryPages bounds pagination against a misbehaving paginator that
// keeps claiming more data.
const maxInventoryPages = 10

// InventoryAdapter pages through a user's inventory and keeps the gamepasses
// they created themselves.
type InventoryAdapter struct {
	client  *upstream.Client
	baseURL string
}

var _ InventoryPasses = (*InventoryAdapter)(nil)

// NewInventoryAdapter creates an adapter for the legacy inventory list endpoint.
func NewInventoryAdapter(client *upstream.Client, baseURL string) *InventoryAdapter {
	return &InventoryAdapter{client: client, baseURL: baseURL}
}

// The legacy endpoint nests everything under Data.Items with PascalCase keys.
type inventoryPage struct {
	Data *struct {
		Items []inventoryEntry `json:"Items"`
	} `json:"Data"`
}

type inventoryEntry struct {
	Item *struct {
		AssetID *int64 `json:"AssetId"`
		Name    string `json:"Name"`
	} `json:"Item"`
	Creator *struct {
		ID *int64 `json:"Id"`
	} `json:"Creator"`
	Product *struct {
		PriceInRobux *int64 `json:"PriceInRobux"`
	} `json:"Product"`
}

// GamepassesByCreator fetches pages until one comes back empty, capped at
// maxInventoryPages requests. Passes merely owned (purchased) by the user
// are filtered out; structurally broken entries are skipped and counted.
func (a *InventoryAdapter) GamepassesByCreator(ctx context.Context, userID int64) ([]model.Pass, int, error) {
	var passes []model.Pass
	skipped := 0

	for page := 1; page <= maxInventoryPages; page++ {
		url := fmt.Sprintf(
			"%s/users/inventory/list-json?assetTypeId=%d&cursor=&itemsPerPage=%d&pageNumber=%d&userId=%d",
			a.baseURL, gamepassAssetTypeID, inventoryPageSize, page, userID,
		)

		var body inventoryPage
		if err := a.client.GetJSON(ctx, url, &body); err != nil {
			return nil, skipped, err
		}

		if body.Data == nil || len(body.Data.Items) == 0 {
			break
		}

		for _, entry := range body.Data.Items {
			if entry.Creator == nil || entry.Creator.ID == nil || *entry.Creator.ID != userID {
				continue
			}
			if entry.Item == nil || entry.Item.AssetID == nil || entry.Product == nil {
				skipped++
				continue
			}
			passes = append(passes, model.Pass{
				ID:     *entry.Item.AssetID,
				Name:   entry.Item.Name,
				Price:  entry.Product.PriceInRobux,
				Type:   model.PassTypeGamepass,
				Source: "inventory",
			})
		}
	}

	if skipped > 0 {
		log.Printf("inventory: skipped %d malformed entries for user %d", skipped, userID)
	}
	return passes, skipped, nil
}
