package domain

// Product is a catalog entry keyed by its barcode. Quantity never goes
// below zero.
type Product struct {
	Barcode  string `json:"barcode"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}
