package model

// PassType distinguishes the two item id spaces. Gamepass ids and UGC asset
// ids come from separate counters on the platform, so identity is (type, id).
type PassType string

const (
	PassTypeGamepass PassType = "Gamepass"
	PassTypeUGC      PassType = "UGC"
)

// Pass is the canonical record for a purchasable item, normalized from
// whatever shape the upstream mirror returned it in.
type Pass struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Price      *int64   `json:"price"`
	Type       PassType `json:"type"`
	UniverseID *int64   `json:"universeId,omitempty"`
	Source     string   `json:"source,omitempty"`
}

// PassPayload is the response body for pass queries.
type PassPayload struct {
	Count   int    `json:"count"`
	Data    []Pass `json:"data"`
	Skipped int    `json:"skipped"`
}
