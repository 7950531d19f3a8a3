package domain

type ReceiptLine struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price_each"`
	LineTotal float64 `json:"total_price"`
}

type Receipt struct {
	ID            string        `json:"receipt_id"`
	PaymentMethod string        `json:"payment_method"`
	Total         float64       `json:"total_amount"`
	Lines         []ReceiptLine `json:"purchased_items"`
}
