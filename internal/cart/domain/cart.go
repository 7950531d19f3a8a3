package domain

// Snapshot captures the product attributes a cart line needs at the moment
// the item is added. It is never re-fetched: price changes upstream do not
// affect lines already in the cart.
type Snapshot struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
}

type LineItem struct {
	Product  Snapshot `json:"product"`
	Quantity int      `json:"quantity"`
}

// Cart is an ordered sequence of line items, insertion order = add order.
// Repeated adds of the same product stay separate lines.
type Cart struct {
	Items []LineItem `json:"items"`
}

func (c Cart) Empty() bool {
	return len(c.Items) == 0
}

// Total is recomputed on every call. Price snapshots are per line item, so a
// cached total would go stale the moment a line is appended.
func (c Cart) Total() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Product.UnitPrice * float64(it.Quantity)
	}
	return total
}
