package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"quikbill-backend/internal/billing"
	"quikbill-backend/internal/metrics"
	"quikbill-backend/internal/models"
	"quikbill-backend/internal/repositories"
	"quikbill-backend/internal/services"

	"github.com/gorilla/mux"
)

type BillingHandler struct {
	Carts    *services.CartService
	Billing  *services.BillingService
	Settings *services.ShopSettingsService
	PDF      *services.InvoicePDFService
}

func NewBillingHandler(carts *services.CartService, billingSvc *services.BillingService,
	settings *services.ShopSettingsService, pdf *services.InvoicePDFService) *BillingHandler {
	return &BillingHandler{
		Carts:    carts,
		Billing:  billingSvc,
		Settings: settings,
		PDF:      pdf,
	}
}

type cartItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// AddItem adds a product to the terminal's cart, or bumps its quantity
func (h *BillingHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	terminal := mux.Vars(r)["terminal"]

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	summary, err := h.Carts.AddProduct(context.Background(), terminal, req.ProductID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// UpdateItem sets a cart row's quantity; zero or below removes the row
func (h *BillingHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	terminal := vars["terminal"]
	productID, _ := strconv.Atoi(vars["productId"])

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	summary, err := h.Carts.SetQuantity(terminal, productID, req.Quantity)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// RemoveItem deletes a row from the terminal's cart
func (h *BillingHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	terminal := vars["terminal"]
	productID, _ := strconv.Atoi(vars["productId"])

	summary := h.Carts.RemoveItem(terminal, productID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// GetCart returns the terminal's current bill summary
func (h *BillingHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	terminal := mux.Vars(r)["terminal"]

	summary := h.Carts.Summary(terminal)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// ClearCart empties the terminal's cart without billing it
func (h *BillingHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	terminal := mux.Vars(r)["terminal"]

	h.Carts.Clear(terminal)

	w.WriteHeader(http.StatusNoContent)
}

// Checkout commits the terminal's cart as an invoice. The invoice write is
// atomic; the PDF render afterwards is best-effort and its failure is
// reported alongside the committed invoice, never instead of it.
func (h *BillingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	terminal := mux.Vars(r)["terminal"]

	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	items := h.Carts.Items(terminal)
	invoice, err := h.Billing.CommitInvoice(context.Background(), items, req.Customer)
	if err != nil {
		http.Error(w, err.Error(), billingErrorStatus(err))
		return
	}

	// The cart is only consumed once the invoice is durable
	h.Carts.Clear(terminal)

	resp := models.CheckoutResponse{Invoice: invoice, PDFRendered: true}
	settings, err := h.Settings.GetSettings(context.Background())
	if err == nil {
		_, err = h.PDF.Render(invoice, settings)
	}
	if err != nil {
		metrics.InvoicePDFFailures.Inc()
		log.Printf("[Billing] invoice %s committed but PDF render failed: %v", invoice.InvoiceNumber, err)
		resp.PDFRendered = false
		resp.RenderError = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func billingErrorStatus(err error) int {
	var validationErr *billing.ValidationError
	switch {
	case errors.Is(err, billing.ErrNoShopConfig):
		return http.StatusConflict
	case errors.Is(err, repositories.ErrCounterConflict):
		return http.StatusConflict
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
