package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roblox-pass-proxy/internal/model"
)

func TestCatalogAdapter_DropsUnpricedAndUnidentified(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "builderman", r.URL.Query().Get("CreatorName"))
		fmt.Fprint(w, `{"data":[
			{"id":501,"name":"Cool Shirt","price":20},
			{"id":502,"name":"Offsale Shirt"},
			{"name":"Broken Row","price":5},
			{"id":503,"price":15}
		]}`)
	}))
	defer ts.Close()

	adapter := NewCatalogAdapter(testClient(), ts.URL)
	passes, skipped, err := adapter.UGCByCreatorName(context.Background(), "builderman")
	require.NoError(t, err)

	require.Len(t, passes, 2)
	assert.Equal(t, int64(501), passes[0].ID)
	assert.Equal(t, model.PassTypeUGC, passes[0].Type)
	assert.Equal(t, "UGC", passes[1].Name, "nameless items get the placeholder name")
	assert.Equal(t, 2, skipped)
}

func TestCatalogAdapter_EmptyUsernameShortCircuits(t *testing.T) {
	var requests int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer ts.Close()

	adapter := NewCatalogAdapter(testClient(), ts.URL)
	passes, skipped, err := adapter.UGCByCreatorName(context.Background(), "")
	require.NoError(t, err)

	assert.Empty(t, passes)
	assert.Zero(t, skipped)
	assert.Zero(t, requests, "no upstream call without a username")
}

func TestCatalogAdapter_EscapesCreatorName(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("CreatorName")
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer ts.Close()

	adapter := NewCatalogAdapter(testClient(), ts.URL)
	_, _, err := adapter.UGCByCreatorName(context.Background(), "name with spaces&x=1")
	require.NoError(t, err)
	assert.Equal(t, "name with spaces&x=1", gotQuery)
}
