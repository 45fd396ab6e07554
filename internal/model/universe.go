package model

// Universe identifies a published experience. PlaceID is the root place when
// the mirror exposed one; Source names the mirror the record came from.
type Universe struct {
	UniverseID int64  `json:"universeId"`
	PlaceID    *int64 `json:"placeId"`
	Name       string `json:"name"`
	Source     string `json:"source"`
}

// MirrorError records a soft failure from a single universe mirror. Mirrors
// fail independently; these are diagnostics, not request errors.
type MirrorError struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// UniversePayload is the response body for universe-discovery queries.
type UniversePayload struct {
	Count        int           `json:"count"`
	Data         []Universe    `json:"data"`
	Cached       bool          `json:"cached"`
	ErrorsSample []MirrorError `json:"errors_sample"`
}
