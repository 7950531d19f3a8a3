package app

import (
	"context"
	"testing"
	"time"

	"github.com/dwikikusuma/shop-assist/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	products []domain.Product
	err      error
	calls    int
}

func (f *fakeFetcher) FetchAll(ctx context.Context) ([]domain.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func sampleCatalog() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Oak Sofa", Category: "sofa", Color: "brown", Price: 100},
		{ID: "p2", Name: "Floor Lamp", Category: "lighting", Color: "black", Price: 50},
		{ID: "p3", Name: "Velvet Armchair", Category: "chair", Color: "Brown", Price: 75},
	}
}

func TestSearch(t *testing.T) {
	svc := NewService(&fakeFetcher{products: sampleCatalog()}, 0)
	ctx := context.Background()

	t.Run("matches name, category, or color", func(t *testing.T) {
		results, err := svc.Search(ctx, "brown")
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "p1", results[0].ID)
		assert.Equal(t, "p3", results[1].ID)
	})

	t.Run("case-insensitive", func(t *testing.T) {
		results, err := svc.Search(ctx, "SOFA")
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "p1", results[0].ID)
	})

	t.Run("empty query matches everything in catalog order", func(t *testing.T) {
		results, err := svc.Search(ctx, "")
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, []string{"p1", "p2", "p3"}, []string{results[0].ID, results[1].ID, results[2].ID})
	})

	t.Run("no match -> empty set, not an error", func(t *testing.T) {
		results, err := svc.Search(ctx, "hovercraft")
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestGet(t *testing.T) {
	svc := NewService(&fakeFetcher{products: sampleCatalog()}, 0)

	p, err := svc.Get(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, "Floor Lamp", p.Name)

	_, err = svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchErrorsPropagate(t *testing.T) {
	svc := NewService(&fakeFetcher{err: ErrUnavailable}, 0)
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = svc.Search(ctx, "sofa")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = svc.Get(ctx, "p1")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCache(t *testing.T) {
	t.Run("zero TTL fetches every time", func(t *testing.T) {
		fetcher := &fakeFetcher{products: sampleCatalog()}
		svc := NewService(fetcher, 0)

		_, err := svc.List(context.Background())
		require.NoError(t, err)
		_, err = svc.List(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 2, fetcher.calls)
	})

	t.Run("fresh cache serves repeated reads", func(t *testing.T) {
		fetcher := &fakeFetcher{products: sampleCatalog()}
		svc := NewService(fetcher, time.Minute)

		for i := 0; i < 5; i++ {
			_, err := svc.Search(context.Background(), "sofa")
			require.NoError(t, err)
		}

		assert.Equal(t, 1, fetcher.calls)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		fetcher := &fakeFetcher{err: ErrUnavailable}
		svc := NewService(fetcher, time.Minute)

		_, err := svc.List(context.Background())
		require.Error(t, err)

		fetcher.err = nil
		fetcher.products = sampleCatalog()

		products, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, products, 3)
	})
}
