package models

import "time"

// ShopSettings is the single live configuration row. Profile fields are
// edited from the settings screen; NextInvoiceNumber is owned by the billing
// ledger and only ever moves forward, by exactly 1 per committed invoice.
type ShopSettings struct {
	ID                int       `json:"id"`
	ShopName          string    `json:"shop_name"`
	ShopAddress       string    `json:"shop_address"`
	ShopPhone         string    `json:"shop_phone"`
	ShopGSTIN         string    `json:"shop_gstin"`
	ShopState         string    `json:"shop_state"`
	IsGSTEnabled      bool      `json:"is_gst_enabled"`
	InvoicePrefix     string    `json:"invoice_prefix"`
	NextInvoiceNumber int       `json:"next_invoice_number"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// UpdateShopSettingsRequest carries the profile fields the settings screen
// may change. The invoice counter is deliberately absent.
type UpdateShopSettingsRequest struct {
	ShopName      string `json:"shop_name"`
	ShopAddress   string `json:"shop_address"`
	ShopPhone     string `json:"shop_phone"`
	ShopGSTIN     string `json:"shop_gstin"`
	ShopState     string `json:"shop_state"`
	IsGSTEnabled  bool   `json:"is_gst_enabled"`
	InvoicePrefix string `json:"invoice_prefix"`
}
