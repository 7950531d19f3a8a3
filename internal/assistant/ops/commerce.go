package ops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	cartapp "github.com/dwikikusuma/shop-assist/internal/cart/app"
	catalogapp "github.com/dwikikusuma/shop-assist/internal/catalog/app"
)

// RegisterCommerce wires the five commerce operations into the registry.
func RegisterCommerce(r *Registry, catalog *catalogapp.Service, cart *cartapp.Service) {
	r.Register(Operation{
		Name:        "list_products",
		Description: "Fetch the full list of available products from the store catalog.",
		Handler: func(ctx context.Context, sessionID string, args json.RawMessage) Result {
			products, err := catalog.List(ctx)
			if err != nil {
				return mapError(err)
			}
			return success(map[string]any{"data": products})
		},
	})

	r.Register(Operation{
		Name:        "search_products",
		Description: "Search products by name, category, or color.",
		Params: []Field{
			{Name: "query", Type: "string", Description: "Search term matched against product name, category, and color.", Required: true},
		},
		Handler: func(ctx context.Context, sessionID string, args json.RawMessage) Result {
			var in struct {
				Query string `json:"query"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errResult(err.Error())
			}

			results, err := catalog.Search(ctx, in.Query)
			if err != nil {
				return mapError(err)
			}
			return success(map[string]any{"results": results})
		},
	})

	r.Register(Operation{
		Name:        "add_to_cart",
		Description: "Add a product to the shopping cart by its id.",
		Params: []Field{
			{Name: "product_id", Type: "string", Description: "Catalog id of the product.", Required: true},
			{Name: "quantity", Type: "integer", Description: "How many to add; defaults to 1."},
		},
		Handler: func(ctx context.Context, sessionID string, args json.RawMessage) Result {
			var in struct {
				ProductID string `json:"product_id"`
				Quantity  *int   `json:"quantity"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errResult(err.Error())
			}
			if in.ProductID == "" {
				return errResult("product_id is required")
			}

			qty := 1
			if in.Quantity != nil {
				qty = *in.Quantity
			}

			item, err := cart.Add(ctx, sessionID, in.ProductID, qty)
			if err != nil {
				return mapError(err)
			}
			return success(map[string]any{
				"message": fmt.Sprintf("%s added to cart.", item.Product.Name),
			})
		},
	})

	r.Register(Operation{
		Name:        "checkout_cart",
		Description: "Check out the shopping cart: computes the total, clears the cart, and returns a receipt.",
		Params: []Field{
			{Name: "payment_method", Type: "string", Description: `Payment method; defaults to "credit_card".`},
		},
		Handler: func(ctx context.Context, sessionID string, args json.RawMessage) Result {
			var in struct {
				PaymentMethod string `json:"payment_method"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errResult(err.Error())
			}

			receipt, err := cart.Checkout(ctx, sessionID, in.PaymentMethod)
			if err != nil {
				return mapError(err)
			}
			return success(map[string]any{
				"message":         "Checkout complete.",
				"total_amount":    receipt.Total,
				"payment_method":  receipt.PaymentMethod,
				"purchased_items": receipt.Lines,
			})
		},
	})

	r.Register(Operation{
		Name:        "request_refund",
		Description: "Submit a refund request for a purchased product.",
		Params: []Field{
			{Name: "product_name", Type: "string", Description: "Name of the product to refund.", Required: true},
			{Name: "reason", Type: "string", Description: "Why the refund is requested.", Required: true},
		},
		Handler: func(ctx context.Context, sessionID string, args json.RawMessage) Result {
			var in struct {
				ProductName string `json:"product_name"`
				Reason      string `json:"reason"`
			}
			if err := decodeArgs(args, &in); err != nil {
				return errResult(err.Error())
			}

			return success(map[string]any{
				"message": cart.Refund(in.ProductName, in.Reason),
			})
		},
	})
}

func decodeArgs(args json.RawMessage, into any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, into); err != nil {
		return fmt.Errorf("invalid arguments: %v", err)
	}
	return nil
}

// mapError converts domain errors into user-facing envelope messages. The
// envelope is the boundary: no error propagates past it.
func mapError(err error) Result {
	switch {
	case errors.Is(err, catalogapp.ErrNotFound):
		return errResult("Product not found.")
	case errors.Is(err, cartapp.ErrEmptyCart):
		return errResult("Your cart is empty.")
	case errors.Is(err, cartapp.ErrInvalidQuantity):
		return errResult("Quantity must be at least 1.")
	case errors.Is(err, catalogapp.ErrUnavailable):
		return errResult(fmt.Sprintf("Could not reach the product catalog: %v", err))
	default:
		return errResult(err.Error())
	}
}
