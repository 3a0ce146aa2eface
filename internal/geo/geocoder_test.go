package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseLookup(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		json.NewEncoder(w).Encode(map[string]string{"display_name": "10 Downing Street, London"})
	}))
	defer srv.Close()

	g := New(srv.URL)
	ctx := context.Background()

	addr, err := g.ReverseLookup(ctx, 51.5034, -0.1276)
	require.NoError(t, err)
	assert.Equal(t, "10 Downing Street, London", addr)

	// Nearby repeat comes from cache.
	_, err = g.ReverseLookup(ctx, 51.5034, -0.1276)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestReverseLookupFailures(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := New(srv.URL).ReverseLookup(context.Background(), 1, 2)
		assert.Error(t, err)
	})

	t.Run("empty display name", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{})
		}))
		defer srv.Close()

		_, err := New(srv.URL).ReverseLookup(context.Background(), 1, 2)
		assert.Error(t, err)
	})
}
