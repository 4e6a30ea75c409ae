package models

import (
	"time"

	"quikbill-backend/internal/billing"
)

// Payment status values stored on an invoice.
const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusPartial = "Partial"
	PaymentStatusUnpaid  = "Unpaid"
)

// Document types. A GST-registered shop issues Tax Invoices; an unregistered
// one issues Bills of Supply.
const (
	DocTypeTaxInvoice   = "Tax Invoice"
	DocTypeBillOfSupply = "Bill of Supply"
)

// Sync tags. Invoices are created local-first; active sync is not implemented
// but the tag is persisted for it.
const (
	SyncStatusLocal   = "local"
	SyncStatusSynced  = "synced"
	SyncStatusPending = "pending"
)

// Invoice is a committed, immutable billing record. Line items and the
// customer block are frozen copies taken at commit time; corrections require
// a new invoice.
type Invoice struct {
	ID            int                     `json:"id"`
	InvoiceNumber string                  `json:"invoice_number"`
	Date          time.Time               `json:"date"`
	Customer      billing.CustomerDetails `json:"customer"`
	Items         []billing.CartItem      `json:"items"`
	Subtotal      float64                 `json:"subtotal"`
	TotalTax      float64                 `json:"total_tax"`
	Rounding      float64                 `json:"rounding"`
	TotalAmount   float64                 `json:"total_amount"`
	PaymentStatus string                  `json:"payment_status"`
	Type          string                  `json:"type"`
	IsInterState  bool                    `json:"is_inter_state"`
	SyncStatus    string                  `json:"sync_status"`
	CreatedAt     time.Time               `json:"created_at"`
}

// CheckoutRequest represents the request body for committing a terminal's cart
type CheckoutRequest struct {
	Customer billing.CustomerDetails `json:"customer"`
}

// CheckoutResponse reports persistence and rendering outcomes separately:
// the invoice is authoritative once committed, the PDF is best-effort and
// can be regenerated from the stored record.
type CheckoutResponse struct {
	Invoice     *Invoice `json:"invoice"`
	PDFRendered bool     `json:"pdf_rendered"`
	RenderError string   `json:"render_error,omitempty"`
}

// CartSummary is the live recomputation returned after every cart mutation.
type CartSummary struct {
	Items        []billing.CartItem `json:"items"`
	Subtotal     float64            `json:"subtotal"`
	TotalTax     float64            `json:"total_tax"`
	GrossTotal   float64            `json:"gross_total"`
	Rounding     float64            `json:"rounding"`
	TotalPayable float64            `json:"total_payable"`
}
