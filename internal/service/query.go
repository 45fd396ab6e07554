package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Recognized include tokens. Anything else in the include list is ignored.
const (
	IncludeGamepass = "gamepass"
	IncludeUGC      = "ugc"
)

// DefaultInclude is applied when the caller sends no include parameter.
const DefaultInclude = "gamepass,ugc"

// Limit bounds for response sizes. DefaultLimit applies when the caller
// sends no limit parameter; requested limits are clamped to
// [MinLimit, MaxLimit].
const (
	DefaultLimit = 50
	MinLimit     = 1
	MaxLimit     = 200
)

// Query is a normalized pass request. UniverseID takes precedence over
// UserID when both are set.
type Query struct {
	UserID     *int64
	UniverseID *int64
	Include    string
	Limit      int
}

// ParseIncludes splits a comma-separated include list into the set of
// recognized tokens. Tokens are trimmed and lowercased; unknown ones are
// dropped.
func ParseIncludes(raw string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Split(raw, ",") {
		switch strings.ToLower(strings.TrimSpace(tok)) {
		case IncludeGamepass:
			set[IncludeGamepass] = true
		case IncludeUGC:
			set[IncludeUGC] = true
		}
	}
	return set
}

// ClampLimit bounds a requested limit to [MinLimit, MaxLimit].
func ClampLimit(limit int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// CacheKey builds the canonical cache key for a pass query. Two logically
// identical requests must produce the same key, so include tokens are
// normalized and sorted and the limit is clamped before keying.
func (q Query) CacheKey() string {
	user, universe := "-", "-"
	if q.UserID != nil {
		user = strconv.FormatInt(*q.UserID, 10)
	}
	if q.UniverseID != nil {
		universe = strconv.FormatInt(*q.UniverseID, 10)
	}

	set := ParseIncludes(q.Include)
	tokens := make([]string, 0, len(set))
	for tok := range set {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)

	return fmt.Sprintf("passes:user=%s:universe=%s:include=%s:limit=%d",
		user, universe, strings.Join(tokens, "+"), ClampLimit(q.Limit))
}

// UniverseCacheKey builds the canonical cache key for a universe-discovery
// query.
func UniverseCacheKey(userID int64, limit int) string {
	return fmt.Sprintf("universes:user=%d:limit=%d", userID, ClampLimit(limit))
}
