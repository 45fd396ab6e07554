package source

import (
	"context"

	"roblox-pass-proxy/internal/model"
)

// Adapters wrap one upstream capability each and normalize its response
// shape into the canonical models. "No data" is never an error: adapters
// return empty slices for it and reserve errors for failures of the call
// itself. The int return on list adapters counts malformed entries that were
// skipped, so data-quality tolerance stays observable.

// UserResolver resolves a user id to a display name.
type UserResolver interface {
	// Username returns "" (not an error) when the profile has no usable name.
	Username(ctx context.Context, userID int64) (string, error)
}

// InventoryPasses lists gamepasses created by a user.
type InventoryPasses interface {
	// GamepassesByCreator paginates the user inventory and keeps only
	// passes whose creator is the queried user.
	GamepassesByCreator(ctx context.Context, userID int64) ([]model.Pass, int, error)
}

// CatalogSearch lists priced UGC items by creator name.
type CatalogSearch interface {
	UGCByCreatorName(ctx context.Context, username string) ([]model.Pass, int, error)
}

// UniversePasses lists the gamepasses sold inside one universe.
type UniversePasses interface {
	ByUniverse(ctx context.Context, universeID int64) ([]model.Pass, int, error)
}

// UniverseLister discovers the universes owned by a user across several
// mirrors. Per-mirror failures are soft and come back as diagnostics; the
// third return value is a best-effort display name recovered by the profile
// fallback when every mirror failed or was empty.
type UniverseLister interface {
	ByUser(ctx context.Context, userID int64) ([]model.Universe, []model.MirrorError, string, error)
}
