package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"quikbill-backend/internal/auth"
	"quikbill-backend/internal/cache"
	"quikbill-backend/internal/config"
	"quikbill-backend/internal/database"
	"quikbill-backend/internal/db"
	"quikbill-backend/internal/handlers"
	"quikbill-backend/internal/health"
	h "quikbill-backend/internal/http"
	"quikbill-backend/internal/middleware"
	"quikbill-backend/internal/repositories"
	"quikbill-backend/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (catalog search will hit the database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	migrator := database.NewMigrator(pool)
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager and health checker
	jwtManager := auth.NewJWTManager(cfg)
	healthChecker := health.NewHealthChecker(pool)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	invoiceRepo := repositories.NewInvoiceRepository(pool)
	settingsRepo := repositories.NewShopSettingsRepository(pool)

	// Initialize services
	userService := services.NewUserService(userRepo, jwtManager)
	productService := services.NewProductService(productRepo)
	settingsService := services.NewShopSettingsService(settingsRepo)
	cartService := services.NewCartService(productRepo)
	billingService := services.NewBillingService(invoiceRepo, settingsRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo)
	pdfService := services.NewInvoicePDFService()

	// Reconcile the invoice counter against committed invoices before
	// accepting any checkout
	if err := billingService.ReconcileCounter(ctx); err != nil {
		log.Fatalf("Failed to reconcile invoice counter: %v", err)
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	billingHandler := handlers.NewBillingHandler(cartService, billingService, settingsService, pdfService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, settingsService, pdfService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(authHandler, userHandler, productHandler, billingHandler,
		invoiceHandler, settingsHandler, healthHandler, authMiddleware)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
