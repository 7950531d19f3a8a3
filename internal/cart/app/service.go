package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dwikikusuma/shop-assist/internal/cart/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

const DefaultPaymentMethod = "credit_card"

type Service struct {
	store   Store
	catalog CatalogReader

	// Rejecting zero/negative quantities is a configuration rule, not a
	// hard-coded check.
	requirePositiveQty bool
}

func NewService(store Store, catalog CatalogReader, requirePositiveQty bool) *Service {
	return &Service{
		store:              store,
		catalog:            catalog,
		requirePositiveQty: requirePositiveQty,
	}
}

// Add resolves productID against a current catalog read and appends a new
// line item with a snapshot of the product. Adds of the same product are not
// merged into an existing line.
func (s *Service) Add(ctx context.Context, sessionID, productID string, quantity int) (domain.LineItem, error) {
	if s.requirePositiveQty && quantity < 1 {
		return domain.LineItem{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return domain.LineItem{}, err
	}

	item := domain.LineItem{
		Product: domain.Snapshot{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
		},
		Quantity: quantity,
	}

	if err := s.store.Append(ctx, sessionID, item); err != nil {
		return domain.LineItem{}, err
	}

	return item, nil
}

// Checkout drains the session cart and builds a receipt. The drain is atomic
// in the store, so a failed empty-cart checkout mutates nothing and no
// concurrent Add can land between total computation and clear.
func (s *Service) Checkout(ctx context.Context, sessionID, paymentMethod string) (domain.Receipt, error) {
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	cart, err := s.store.Drain(ctx, sessionID)
	if err != nil {
		return domain.Receipt{}, err
	}
	if cart.Empty() {
		return domain.Receipt{}, ErrEmptyCart
	}

	lines := make([]domain.ReceiptLine, 0, len(cart.Items))
	for _, it := range cart.Items {
		lines = append(lines, domain.ReceiptLine{
			Name:      it.Product.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Product.UnitPrice,
			LineTotal: it.Product.UnitPrice * float64(it.Quantity),
		})
	}

	return domain.Receipt{
		ID:            uuid.NewString(),
		PaymentMethod: paymentMethod,
		Total:         cart.Total(),
		Lines:         lines,
	}, nil
}

// Refund acknowledges a refund request. Nothing is stored and no purchase
// history is checked; a real system would link this to an order ledger.
func (s *Service) Refund(productName, reason string) string {
	return fmt.Sprintf("Refund request for %q submitted. Reason: %s", productName, reason)
}
