package domain

// Product is a read-only catalog record; the catalog is the external
// source of truth, products are never mutated here.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}
