package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dwikikusuma/shop-assist/internal/catalog/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAll(t *testing.T) {
	t.Run("decodes products from the feed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"_id":"p1","name":"Oak Sofa","category":"sofa","color":"brown","price":100,"stock":4,"description":"solid oak"},
				{"_id":"p2","name":"Floor Lamp","category":"lighting","color":"black","price":50.5,"stock":0,"description":""}
			]`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		products, err := client.FetchAll(context.Background())
		require.NoError(t, err)

		require.Len(t, products, 2)
		assert.Equal(t, "p1", products[0].ID)
		assert.Equal(t, "Oak Sofa", products[0].Name)
		assert.Equal(t, 100.0, products[0].Price)
		assert.Equal(t, 50.5, products[1].Price)
	})

	t.Run("non-2xx status -> ErrUnavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		_, err := client.FetchAll(context.Background())
		assert.ErrorIs(t, err, app.ErrUnavailable)
	})

	t.Run("transport failure -> ErrUnavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // connection refused from here on

		client := NewClient(srv.URL, time.Second)
		_, err := client.FetchAll(context.Background())
		assert.ErrorIs(t, err, app.ErrUnavailable)
	})

	t.Run("malformed body -> ErrUnavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"an array"}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second)
		_, err := client.FetchAll(context.Background())
		assert.ErrorIs(t, err, app.ErrUnavailable)
	})

	t.Run("context cancellation propagates", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		client := NewClient(srv.URL, 5*time.Second)
		_, err := client.FetchAll(ctx)
		assert.ErrorIs(t, err, app.ErrUnavailable)
	})
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	client := NewClient("http://example.com/", time.Second)
	assert.Equal(t, "http://example.com", client.baseURL)
}
