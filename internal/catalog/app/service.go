package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dwikikusuma/shop-assist/internal/catalog/domain"
)

var (
	// ErrUnavailable wraps any transport or HTTP failure reaching the
	// catalog. It is always recoverable at the operation boundary.
	ErrUnavailable = errors.New("catalog unavailable")

	ErrNotFound = errors.New("product not found")
)

type Service struct {
	fetcher  Fetcher
	cacheTTL time.Duration

	mu        sync.RWMutex
	cached    []domain.Product
	fetchedAt time.Time
}

// NewService wraps a Fetcher with an optional read-through cache. A zero
// cacheTTL disables caching: every List/Search hits the upstream.
func NewService(fetcher Fetcher, cacheTTL time.Duration) *Service {
	return &Service{
		fetcher:  fetcher,
		cacheTTL: cacheTTL,
	}
}

// List returns the full catalog in upstream order.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.catalog(ctx)
}

// Search filters the catalog with a case-insensitive substring match against
// name, category, and color. An empty query matches everything. Catalog
// order is preserved and the full match set is returned.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	products, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(strings.ToLower(p.Color), q) {
			matched = append(matched, p)
		}
	}

	return matched, nil
}

// Get looks up a single product by id from a current catalog read.
func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	products, err := s.catalog(ctx)
	if err != nil {
		return domain.Product{}, err
	}

	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}

	return domain.Product{}, ErrNotFound
}

func (s *Service) catalog(ctx context.Context) ([]domain.Product, error) {
	if s.cacheTTL <= 0 {
		return s.fetcher.FetchAll(ctx)
	}

	s.mu.RLock()
	if s.cached != nil && time.Since(s.fetchedAt) < s.cacheTTL {
		products := s.cached
		s.mu.RUnlock()
		return products, nil
	}
	s.mu.RUnlock()

	products, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = products
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	return products, nil
}
