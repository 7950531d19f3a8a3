package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/shop-assist/internal/cart/app"
	catalogapp "github.com/dwikikusuma/shop-assist/internal/catalog/app"
)

// CatalogServiceReader bridges the catalog service into the cart context's
// CatalogReader port.
type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) Get(ctx context.Context, productID string) (cartapp.Product, error) {
	p, err := r.svc.Get(ctx, productID)
	if err != nil {
		return cartapp.Product{}, err
	}

	return cartapp.Product{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
	}, nil
}
