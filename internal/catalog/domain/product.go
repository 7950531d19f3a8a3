package domain

// Product mirrors one entry of the remote catalog feed. The upstream API
// names its identifier field "_id"; everything beyond the fields used for
// search and pricing is passed through undecoded.
type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Color       string  `json:"color"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
}
