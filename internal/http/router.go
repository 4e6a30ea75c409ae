package http

import (
	"net/http"

	"quikbill-backend/internal/handlers"
	"quikbill-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	productHandler *handlers.ProductHandler,
	billingHandler *handlers.BillingHandler,
	invoiceHandler *handlers.InvoiceHandler,
	settingsHandler *handlers.SettingsHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Catalog
	productsAPI := r.PathPrefix("/api/products").Subrouter()
	productsAPI.Use(authMiddleware.Authenticate)
	productsAPI.HandleFunc("", productHandler.ListProducts).Methods("GET")
	productsAPI.HandleFunc("", productHandler.CreateProduct).Methods("POST")
	productsAPI.HandleFunc("/search", productHandler.SearchProducts).Methods("GET")
	productsAPI.HandleFunc("/{id}", productHandler.GetProduct).Methods("GET")
	productsAPI.HandleFunc("/{id}", productHandler.UpdateProduct).Methods("PUT")
	productsAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(productHandler.DeleteProduct)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Billing terminals
	billingAPI := r.PathPrefix("/api/billing/{terminal}").Subrouter()
	billingAPI.Use(authMiddleware.Authenticate)
	billingAPI.HandleFunc("/cart", billingHandler.GetCart).Methods("GET")
	billingAPI.HandleFunc("/cart", billingHandler.ClearCart).Methods("DELETE")
	billingAPI.HandleFunc("/cart/items", billingHandler.AddItem).Methods("POST")
	billingAPI.HandleFunc("/cart/items/{productId}", billingHandler.UpdateItem).Methods("PUT")
	billingAPI.HandleFunc("/cart/items/{productId}", billingHandler.RemoveItem).Methods("DELETE")
	billingAPI.HandleFunc("/checkout", billingHandler.Checkout).Methods("POST")

	// Protected API routes - Invoices (read-only; writes go through checkout)
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.Use(authMiddleware.Authenticate)
	invoicesAPI.HandleFunc("", invoiceHandler.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("/number/{number}", invoiceHandler.GetInvoiceByNumber).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.GetInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{id}/pdf", invoiceHandler.DownloadPDF).Methods("GET")

	// Protected API routes - Shop settings (writes are admin-only)
	settingsAPI := r.PathPrefix("/api/settings").Subrouter()
	settingsAPI.Use(authMiddleware.Authenticate)
	settingsAPI.HandleFunc("", settingsHandler.GetSettings).Methods("GET")
	settingsAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(settingsHandler.SaveSettings)).ServeHTTP).Methods("PUT")

	// Protected API routes - Users (admin-only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.RequireAdmin)
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")

	// Health endpoints for probes
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	return r
}
