package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roblox-pass-proxy/internal/model"
	"roblox-pass-proxy/internal/upstream"
)

func testClient() *upstream.Client {
	return upstream.New(upstream.Config{
		Timeout:   5 * time.Second,
		UserAgent: "roblox-proxy/1.0",
	})
}

func TestInventoryAdapter_FilterAndSkip(t *testing.T) {
	const userID = 123

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageNumber") != "1" {
			fmt.Fprint(w, `{"Data":{"Items":[]}}`)
			return
		}
		// One created pass, one purchased pass, one malformed entry.
		fmt.Fprint(w, `{"Data":{"Items":[
			{"Item":{"AssetId":11,"Name":"VIP"},"Creator":{"Id":123},"Product":{"PriceInRobux":50}},
			{"Item":{"AssetId":12,"Name":"Other"},"Creator":{"Id":456},"Product":{"PriceInRobux":25}},
			{"Creator":{"Id":123},"Product":{"PriceInRobux":10}}
		]}}`)
	}))
	defer ts.Close()

	adapter := NewInventoryAdapter(testClient(), ts.URL)
	passes, skipped, err := adapter.GamepassesByCreator(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, passes, 1, "purchased passes are filtered out")
	assert.Equal(t, int64(11), passes[0].ID)
	assert.Equal(t, "VIP", passes[0].Name)
	assert.Equal(t, int64(50), *passes[0].Price)
	assert.Equal(t, model.PassTypeGamepass, passes[0].Type)
	assert.Equal(t, 1, skipped, "malformed entry is skipped and counted")
}

func TestInventoryAdapter_PaginationStopsOnEmptyPage(t *testing.T) {
	var requests int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("pageNumber")
		atomic.AddInt32(&requests, 1)
		if page == "1" || page == "2" {
			fmt.Fprintf(w, `{"Data":{"Items":[
				{"Item":{"AssetId":%s00,"Name":"P"},"Creator":{"Id":123},"Product":{"PriceInRobux":5}}
			]}}`, page)
			return
		}
		fmt.Fprint(w, `{"Data":{"Items":[]}}`)
	}))
	defer ts.Close()

	adapter := NewInventoryAdapter(testClient(), ts.URL)
	passes, _, err := adapter.GamepassesByCreator(context.Background(), 123)
	require.NoError(t, err)

	assert.Len(t, passes, 2)
	assert.EqualValues(t, 3, requests, "stops on the first empty page")
}

func TestInventoryAdapter_PageCap(t *testing.T) {
	var requests int32
	// A paginator that never runs out of items.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&requests, 1)
		fmt.Fprintf(w, `{"Data":{"Items":[
			{"Item":{"AssetId":%d,"Name":"P"},"Creator":{"Id":123},"Product":{"PriceInRobux":5}}
		]}}`, n)
	}))
	defer ts.Close()

	adapter := NewInventoryAdapter(testClient(), ts.URL)
	passes, _, err := adapter.GamepassesByCreator(context.Background(), 123)
	require.NoError(t, err)

	assert.EqualValues(t, 10, requests, "hard cap regardless of claimed data")
	assert.Len(t, passes, 10)
}

func TestInventoryAdapter_UpstreamFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	adapter := NewInventoryAdapter(testClient(), ts.URL)
	_, _, err := adapter.GamepassesByCreator(context.Background(), 123)

	var httpErr *upstream.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
}
