package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roblox-pass-proxy/internal/service"
	"roblox-pass-proxy/pkg/apierror"
)

type fakeAggregator struct {
	body   []byte
	cached bool
	err    error
	lastQ  service.Query
	calls  int
}

func (f *fakeAggregator) Aggregate(ctx context.Context, q service.Query) ([]byte, bool, error) {
	f.calls++
	f.lastQ = q
	return f.body, f.cached, f.err
}

func TestPassHandler_Defaults(t *testing.T) {
	agg := &fakeAggregator{body: []byte(`{"count":0,"data":[],"skipped":0}`)}
	h := NewPassHandler(agg)

	req := httptest.NewRequest(http.MethodGet, "/passes?userId=123", nil)
	rec := httptest.NewRecorder()
	h.GetPasses(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	require.NotNil(t, agg.lastQ.UserID)
	assert.Equal(t, int64(123), *agg.lastQ.UserID)
	assert.Nil(t, agg.lastQ.UniverseID)
	assert.Equal(t, service.DefaultInclude, agg.lastQ.Include)
	assert.Equal(t, service.DefaultLimit, agg.lastQ.Limit)
}

func TestPassHandler_ExplicitParams(t *testing.T) {
	agg := &fakeAggregator{body: []byte(`{"count":0,"data":[],"skipped":0}`), cached: true}
	h := NewPassHandler(agg)

	req := httptest.NewRequest(http.MethodGet, "/passes?universeId=999&include=ugc&limit=5", nil)
	rec := httptest.NewRecorder()
	h.GetPasses(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	require.NotNil(t, agg.lastQ.UniverseID)
	assert.Equal(t, int64(999), *agg.lastQ.UniverseID)
	assert.Equal(t, "ugc", agg.lastQ.Include)
	assert.Equal(t, 5, agg.lastQ.Limit)
}

func TestPassHandler_BadParams(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "non-numeric userId", url: "/passes?userId=abc"},
		{name: "non-numeric universeId", url: "/passes?universeId=xyz"},
		{name: "non-numeric limit", url: "/passes?userId=1&limit=lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := &fakeAggregator{}
			h := NewPassHandler(agg)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			h.GetPasses(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, agg.calls, "rejected before reaching the aggregator")
		})
	}
}

func TestPassHandler_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "missing selector", err: apierror.BadRequest("provide userId or universeId"), wantStatus: http.StatusBadRequest},
		{name: "upstream failure", err: apierror.BadGateway("upstream error"), wantStatus: http.StatusBadGateway},
		{name: "anything else", err: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewPassHandler(&fakeAggregator{err: tt.err})

			req := httptest.NewRequest(http.MethodGet, "/passes?userId=123", nil)
			rec := httptest.NewRecorder()
			h.GetPasses(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error.Code)
		})
	}
}
