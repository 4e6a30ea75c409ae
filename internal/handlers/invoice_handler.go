package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"quikbill-backend/internal/services"
	"quikbill-backend/internal/timeutil"

	"github.com/gorilla/mux"
)

type InvoiceHandler struct {
	Service  *services.InvoiceService
	Settings *services.ShopSettingsService
	PDF      *services.InvoicePDFService
}

func NewInvoiceHandler(s *services.InvoiceService, settings *services.ShopSettingsService,
	pdf *services.InvoicePDFService) *InvoiceHandler {
	return &InvoiceHandler{
		Service:  s,
		Settings: settings,
		PDF:      pdf,
	}
}

// ListInvoices returns committed invoices, optionally filtered to one
// business day via ?date=YYYY-MM-DD
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		day, err := timeutil.ParseInIST(timeutil.DateLayout, dateStr)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		invoices, err := h.Service.ListInvoicesOnDate(context.Background(), day)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(invoices)
		return
	}

	invoices, err := h.Service.ListInvoices(context.Background())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invoices)
}

func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	invoice, err := h.Service.GetInvoice(context.Background(), id)
	if err != nil {
		http.Error(w, "Invoice not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invoice)
}

// GetInvoiceByNumber looks up an invoice by its human-facing number
func (h *InvoiceHandler) GetInvoiceByNumber(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	invoice, err := h.Service.GetInvoiceByNumber(context.Background(), number)
	if err != nil {
		http.Error(w, "Invoice not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invoice)
}

// DownloadPDF re-renders an invoice's PDF from the stored record
func (h *InvoiceHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, _ := strconv.Atoi(idStr)

	invoice, err := h.Service.GetInvoice(context.Background(), id)
	if err != nil {
		http.Error(w, "Invoice not found", http.StatusNotFound)
		return
	}

	settings, err := h.Settings.GetSettings(context.Background())
	if err != nil {
		http.Error(w, "Shop settings not configured", http.StatusConflict)
		return
	}

	data, err := h.PDF.Render(invoice, settings)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", h.PDF.FileName(invoice)))
	w.Write(data)
}
