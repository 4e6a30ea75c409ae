package services

import (
	"bytes"
	"fmt"
	"strings"

	"quikbill-backend/internal/models"
	"quikbill-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// InvoicePDFService renders a committed invoice plus the shop profile into a
// printable document. It never mutates either input, and a render can always
// be repeated from the stored invoice if it fails.
type InvoicePDFService struct{}

func NewInvoicePDFService() *InvoicePDFService {
	return &InvoicePDFService{}
}

// FileName is the artifact name handed to the browser.
func (s *InvoicePDFService) FileName(invoice *models.Invoice) string {
	return fmt.Sprintf("INV_%s.pdf", invoice.InvoiceNumber)
}

// Render produces the PDF bytes for an invoice.
func (s *InvoicePDFService) Render(invoice *models.Invoice, settings *models.ShopSettings) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Shop brand and document type banner
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(79, 70, 229)
	pdf.CellFormat(120, 10, settings.ShopName, "", 0, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(79, 70, 229)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(60, 10, strings.ToUpper(invoice.Type), "", 1, "C", true, 0, "")
	pdf.Ln(2)

	// Shop details (left) and invoice number/date (right)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(100, 116, 139)
	shopLines := []string{settings.ShopAddress, "Phone: " + settings.ShopPhone}
	if settings.ShopGSTIN != "" {
		shopLines = append(shopLines, "GSTIN: "+settings.ShopGSTIN)
	}
	for i, line := range shopLines {
		pdf.CellFormat(120, 5, line, "", 0, "L", false, 0, "")
		if i == 0 {
			pdf.SetFont("Arial", "B", 9)
			pdf.SetTextColor(15, 23, 42)
			pdf.CellFormat(60, 5, "Invoice No: "+invoice.InvoiceNumber, "", 1, "R", false, 0, "")
			pdf.SetFont("Arial", "", 9)
			pdf.SetTextColor(100, 116, 139)
		} else if i == 1 {
			pdf.CellFormat(60, 5, "Date: "+timeutil.FormatIST(invoice.Date, "02/01/2006"), "", 1, "R", false, 0, "")
		} else {
			pdf.Ln(-1)
		}
	}
	pdf.Ln(6)

	// Bill-to box
	pdf.SetFillColor(248, 250, 252)
	pdf.SetDrawColor(226, 232, 240)
	pdf.SetFont("Arial", "B", 9)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(180, 7, "  Bill To:", "LTR", 1, "L", true, 0, "")
	pdf.SetTextColor(15, 23, 42)
	customerName := invoice.Customer.Name
	if customerName == "" {
		customerName = "Walk-in Customer"
	}
	pdf.CellFormat(180, 6, "  "+customerName, "LR", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 9)
	contact := "  Ph: " + invoice.Customer.Phone
	if invoice.Customer.GSTIN != "" {
		contact += "    GSTIN: " + invoice.Customer.GSTIN
	}
	if invoice.Customer.State != "" {
		contact += "    State: " + invoice.Customer.State
	}
	pdf.CellFormat(180, 6, contact, "LBR", 1, "L", true, 0, "")
	pdf.Ln(6)

	// Line items table
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(79, 70, 229)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(10, 8, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(75, 8, "Item Description", "1", 0, "C", true, 0, "")
	pdf.CellFormat(15, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Rate", "1", 0, "C", true, 0, "")
	pdf.CellFormat(15, 8, "Tax", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(15, 23, 42)
	for i, item := range invoice.Items {
		desc := item.Name
		if item.HSNCode != "" {
			desc += "  (HSN: " + item.HSNCode + ")"
		}
		pdf.CellFormat(10, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(75, 7, desc, "1", 0, "L", false, 0, "")
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, formatAmount(item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(15, 7, fmt.Sprintf("%g%%", item.TaxSlab), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, formatAmount(item.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Summary block, right aligned
	summary := func(label, value string, bold bool) {
		pdf.CellFormat(110, 6, "", "", 0, "L", false, 0, "")
		if bold {
			pdf.SetFont("Arial", "B", 10)
		} else {
			pdf.SetFont("Arial", "", 10)
		}
		pdf.CellFormat(35, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, value, "", 1, "R", false, 0, "")
	}
	summary("Subtotal:", formatAmount(invoice.Subtotal), false)
	summary("Total GST:", formatAmount(invoice.TotalTax), false)
	if invoice.Rounding != 0 {
		summary("Rounding:", fmt.Sprintf("%+.2f", invoice.Rounding), false)
	}

	pdf.Ln(2)
	pdf.SetFillColor(79, 70, 229)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(110, 10, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(35, 10, "GRAND TOTAL", "", 0, "L", true, 0, "")
	pdf.CellFormat(35, 10, "Rs. "+formatAmount(invoice.TotalAmount), "", 1, "R", true, 0, "")

	// Signature area
	pdf.Ln(20)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(110, 5, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(70, 5, "For "+settings.ShopName, "", 1, "C", false, 0, "")
	pdf.Ln(12)
	pdf.CellFormat(110, 5, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(70, 5, "Authorized Signatory", "T", 1, "C", false, 0, "")

	// Footer
	pdf.SetY(-20)
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(180, 5, "This is a computer-generated invoice.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", invoice.InvoiceNumber, err)
	}
	return buf.Bytes(), nil
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
