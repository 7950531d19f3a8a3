package app

import (
	"context"

	"github.com/dwikikusuma/shop-assist/internal/cart/domain"
)

// Store holds one cart per session. Implementations must serialize Append
// and Drain per session: no caller may observe a partially drained cart.
type Store interface {
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	Append(ctx context.Context, sessionID string, item domain.LineItem) error

	// Drain returns the current cart and clears it as one atomic step.
	Drain(ctx context.Context, sessionID string) (domain.Cart, error)
}

// CatalogReader resolves a product id against the live catalog.
type CatalogReader interface {
	Get(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID    string
	Name  string
	Price float64
}
