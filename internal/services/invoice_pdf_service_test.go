package services

import (
	"bytes"
	"testing"
	"time"

	"quikbill-backend/internal/billing"
	"quikbill-backend/internal/models"
)

func sampleInvoice(t *testing.T) *models.Invoice {
	t.Helper()
	return &models.Invoice{
		ID:            1,
		InvoiceNumber: "INV-0042",
		Date:          time.Date(2026, 8, 15, 11, 30, 0, 0, time.UTC),
		Customer: billing.CustomerDetails{
			Name:  "Asha Traders",
			Phone: "9876543210",
			GSTIN: "27ABCDE1234F1Z5",
			State: "Maharashtra",
		},
		Items: []billing.CartItem{
			lineItem(t, 1, "Notebook", 100, 2, 18),
			lineItem(t, 2, "Pen", 99.50, 1, 5),
		},
		Subtotal:      299.50,
		TotalTax:      40.975,
		Rounding:      -0.475,
		TotalAmount:   340,
		PaymentStatus: models.PaymentStatusPaid,
		Type:          models.DocTypeTaxInvoice,
	}
}

func TestInvoicePDFFileName(t *testing.T) {
	svc := NewInvoicePDFService()
	invoice := &models.Invoice{InvoiceNumber: "INV-0042"}

	if got := svc.FileName(invoice); got != "INV_INV-0042.pdf" {
		t.Errorf("FileName = %q, want INV_INV-0042.pdf", got)
	}
}

func TestInvoicePDFRender(t *testing.T) {
	svc := NewInvoicePDFService()
	settings := testSettings()
	settings.ShopAddress = "12 Market Road, Pune"
	settings.ShopPhone = "0201234567"
	settings.ShopGSTIN = "27ABCDE1234F1Z5"

	data, err := svc.Render(sampleInvoice(t), settings)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Render produced no output")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with a PDF header")
	}
}

func TestInvoicePDFRenderWithoutOptionalFields(t *testing.T) {
	svc := NewInvoicePDFService()
	invoice := sampleInvoice(t)
	invoice.Customer = billing.CustomerDetails{}
	invoice.Rounding = 0

	data, err := svc.Render(invoice, testSettings())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("Render produced no output")
	}
}
