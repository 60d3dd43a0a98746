package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasmregistry/codemap/pkg/errors"
)

func TestGetJSON(t *testing.T) {
	t.Run("decodes successful response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"code_id": "42", "creator": "juno1abc"}`))
		}))
		defer server.Close()

		var result struct {
			CodeID  string `json:"code_id"`
			Creator string `json:"creator"`
		}

		client := New("mainnet")
		err := client.GetJSON(context.Background(), server.URL, &result)
		require.NoError(t, err)
		assert.Equal(t, "42", result.CodeID)
		assert.Equal(t, "juno1abc", result.Creator)
	})

	t.Run("maps non-2xx status to APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream unavailable"))
		}))
		defer server.Close()

		var result map[string]any
		client := New("testnet")
		err := client.GetJSON(context.Background(), server.URL, &result)
		require.Error(t, err)

		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "testnet", apiErr.Network)
		assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		assert.Equal(t, server.URL, apiErr.Endpoint)
		assert.Contains(t, apiErr.Message, "upstream unavailable")
	})

	t.Run("maps 404 to not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		var result map[string]any
		client := New("mainnet")
		err := client.GetJSON(context.Background(), server.URL, &result)
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("wraps malformed JSON in ParseError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code_infos": [`))
		}))
		defer server.Close()

		var result map[string]any
		client := New("mainnet")
		err := client.GetJSON(context.Background(), server.URL, &result)
		require.Error(t, err)

		var parseErr *errors.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "json", parseErr.Format)
	})

	t.Run("wraps connection failure in APIError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // close immediately so the request fails

		var result map[string]any
		client := New("mainnet")
		err := client.GetJSON(context.Background(), server.URL, &result)
		require.Error(t, err)

		var apiErr *errors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "mainnet", apiErr.Network)
		assert.Zero(t, apiErr.StatusCode)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(time.Second)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var result map[string]any
		client := New("mainnet")
		err := client.GetJSON(ctx, server.URL, &result)
		require.Error(t, err)
	})
}

func TestNew(t *testing.T) {
	t.Run("default client", func(t *testing.T) {
		client := New("mainnet")
		require.NotNil(t, client)
		assert.Equal(t, "mainnet", client.Network())
		assert.Equal(t, DefaultHTTPTimeout, client.http.Timeout)
	})

	t.Run("custom HTTP client", func(t *testing.T) {
		hc := &http.Client{Timeout: 5 * time.Second}
		client := New("testnet", WithHTTPClient(hc))
		assert.Same(t, hc, client.http)
	})
}
