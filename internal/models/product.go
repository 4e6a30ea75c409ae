package models

import "time"

// Product is a catalog item. The billing core only ever reads products; it
// copies the fields it needs into the cart so posted invoices stay correct
// after edits or deletion.
type Product struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	Category     string    `json:"category"`
	BasePrice    float64   `json:"base_price"`
	SellingPrice float64   `json:"selling_price"`
	HSNCode      string    `json:"hsn_code"`
	TaxSlab      float64   `json:"tax_slab"` // one of 0, 5, 12, 18, 28
	Stock        int       `json:"stock"`
	LastUpdated  time.Time `json:"last_updated"`
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Category     string  `json:"category"`
	BasePrice    float64 `json:"base_price"`
	SellingPrice float64 `json:"selling_price"`
	HSNCode      string  `json:"hsn_code"`
	TaxSlab      float64 `json:"tax_slab"`
	Stock        int     `json:"stock"`
}
