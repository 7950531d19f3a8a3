package app

import (
	"context"

	"github.com/dwikikusuma/shop-assist/internal/catalog/domain"
)

// Fetcher reads the full product list from the upstream catalog. Every call
// is a fresh round-trip; caching sits above this port.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]domain.Product, error)
}
