package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimClient_Reverse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.Equal(t, "15.4755", r.URL.Query().Get("lat"))
		assert.Equal(t, "120.5963", r.URL.Query().Get("lon"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name":"Brgy. San Vicente, Tarlac City","address":{"city":"Tarlac City"}}`))
	}))
	defer server.Close()

	client := NewNominatimClient(server.URL+"/", "test-agent", time.Second)
	place, err := client.Reverse(context.Background(), 15.4755, 120.5963)
	require.NoError(t, err)
	assert.Equal(t, "Brgy. San Vicente, Tarlac City", place.DisplayName)
	assert.Equal(t, "Tarlac City", place.Address["city"])
}

func TestNominatimClient_Errors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := NewNominatimClient(server.URL, "", time.Second).Reverse(context.Background(), 1, 2)
		assert.Error(t, err)
	})

	t.Run("geocoder error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
		}))
		defer server.Close()

		_, err := NewNominatimClient(server.URL, "", time.Second).Reverse(context.Background(), 1, 2)
		assert.ErrorContains(t, err, "Unable to geocode")
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		_, err := NewNominatimClient(server.URL, "", time.Second).Reverse(context.Background(), 1, 2)
		assert.Error(t, err)
	})
}
