package handler

import (
	"context"
	"net/http"
	"strconv"

	"roblox-pass-proxy/internal/service"
	"roblox-pass-proxy/pkg/apierror"
	"roblox-pass-proxy/pkg/response"
)

// PassAggregator is the slice of the pass service the handler needs.
type PassAggregator interface {
	Aggregate(ctx context.Context, q service.Query) ([]byte, bool, error)
}

// PassHandler handles pass-query HTTP requests.
type PassHandler struct {
	passes PassAggregator
}

// NewPassHandler creates a new pass handler.
func NewPassHandler(passes PassAggregator) *PassHandler {
	return &PassHandler{passes: passes}
}

// GetPasses handles GET /passes
//
// Query parameters: userId or universeId (one required), include
// (comma-separated, default "gamepass,ugc"), limit (default 50, clamped to
// [1,200]).
func (h *PassHandler) GetPasses(w http.ResponseWriter, r *http.Request) {
	q := service.Query{
		Include: service.DefaultInclude,
		Limit:   service.DefaultLimit,
	}

	params := r.URL.Query()

	userID, ok := optionalInt64(w, params.Get("userId"), "userId")
	if !ok {
		return
	}
	q.UserID = userID

	universeID, ok := optionalInt64(w, params.Get("universeId"), "universeId")
	if !ok {
		return
	}
	q.UniverseID = universeID

	if raw := params.Get("include"); raw != "" {
		q.Include = raw
	}

	if raw := params.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, apierror.BadRequest("limit must be an integer"))
			return
		}
		q.Limit = limit
	}

	body, cached, err := h.passes.Aggregate(r.Context(), q)
	if err != nil {
		response.Error(w, err)
		return
	}

	setCacheHeader(w, cached)
	response.Raw(w, http.StatusOK, body)
}

// optionalInt64 parses an optional integer query parameter. A parse failure
// writes a 400 and returns ok=false.
func optionalInt64(w http.ResponseWriter, raw, name string) (*int64, bool) {
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.Error(w, apierror.BadRequest(name+" must be an integer"))
		return nil, false
	}
	return &value, true
}

func setCacheHeader(w http.ResponseWriter, cached bool) {
	if cached {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
}
