package handler

import (
	"context"
	"net/http"
	"strconv"

	"roblox-pass-proxy/internal/model"
	"roblox-pass-proxy/internal/service"
	"roblox-pass-proxy/pkg/apierror"
	"roblox-pass-proxy/pkg/response"
)

// UniverseDiscoverer is the slice of the universe service the handler needs.
type UniverseDiscoverer interface {
	Discover(ctx context.Context, userID int64, limit int) (*model.UniversePayload, error)
}

// UniverseHandler handles universe-discovery HTTP requests.
type UniverseHandler struct {
	universes UniverseDiscoverer
}

// NewUniverseHandler creates a new universe handler.
func NewUniverseHandler(universes UniverseDiscoverer) *UniverseHandler {
	return &UniverseHandler{universes: universes}
}

// GetUniverses handles GET /universes
//
// Query parameters: userId (required), limit (default 50, clamped to [1,200]).
func (h *UniverseHandler) GetUniverses(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	raw := params.Get("userId")
	if raw == "" {
		response.Error(w, apierror.BadRequest("provide userId"))
		return
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.Error(w, apierror.BadRequest("userId must be an integer"))
		return
	}

	limit := service.DefaultLimit
	if raw := params.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			response.Error(w, apierror.BadRequest("limit must be an integer"))
			return
		}
	}

	payload, err := h.universes.Discover(r.Context(), userID, limit)
	if err != nil {
		response.Error(w, err)
		return
	}

	setCacheHeader(w, payload.Cached)
	response.JSON(w, http.StatusOK, payload)
}
