package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"quikbill-backend/internal/billing"
	"quikbill-backend/internal/metrics"
	"quikbill-backend/internal/models"
	"quikbill-backend/internal/repositories"
	"quikbill-backend/internal/timeutil"
)

// InvoiceStore is the slice of the invoice repository the ledger needs.
type InvoiceStore interface {
	CreateWithCounter(ctx context.Context, invoice *models.Invoice, settingsID, expectedNext int) error
	MaxSequenceForPrefix(ctx context.Context, prefix string) (int, error)
}

// SettingsStore is the slice of the settings repository the ledger needs.
type SettingsStore interface {
	Get(ctx context.Context) (*models.ShopSettings, error)
	RaiseCounter(ctx context.Context, next int) error
}

// BillingService is the invoice ledger: it owns the commit transaction that
// turns a cart into a persisted invoice and advances the shop's invoice
// counter. It is the only writer of the counter.
type BillingService struct {
	mu       sync.Mutex // serializes commits for the single shop
	Invoices InvoiceStore
	Settings SettingsStore
}

func NewBillingService(invoices InvoiceStore, settings SettingsStore) *BillingService {
	return &BillingService{Invoices: invoices, Settings: settings}
}

// CommitInvoice validates the cart, recomputes totals, allocates the next
// invoice number and persists the invoice and counter advance as one atomic
// unit. No state is mutated on a validation failure. Commits serialize: two
// concurrent checkouts can never be handed the same invoice number.
func (s *BillingService) CommitInvoice(ctx context.Context, items []billing.CartItem, customer billing.CustomerDetails) (*models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.Settings.Get(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNotConfigured) {
			return nil, billing.ErrNoShopConfig
		}
		return nil, fmt.Errorf("load shop settings: %w", err)
	}

	if err := billing.ValidateItems(items); err != nil {
		return nil, err
	}
	if err := billing.ValidateCustomer(customer); err != nil {
		return nil, err
	}

	// Recompute from the cart as held, never from stored derived fields.
	totals := billing.AggregateItems(items)
	totalPayable, rounding := billing.RoundToNearestRupee(totals.GrossTotal)

	if customer.State == "" {
		customer.State = settings.ShopState
	}

	docType := models.DocTypeBillOfSupply
	if settings.IsGSTEnabled {
		docType = models.DocTypeTaxInvoice
	}

	invoice := &models.Invoice{
		InvoiceNumber: billing.FormatInvoiceNumber(settings.InvoicePrefix, settings.NextInvoiceNumber),
		Date:          timeutil.Now(),
		Customer:      customer,
		Items:         items,
		Subtotal:      totals.Subtotal,
		TotalTax:      totals.TotalTax,
		Rounding:      rounding,
		TotalAmount:   totalPayable,
		PaymentStatus: models.PaymentStatusPaid,
		Type:          docType,
		// Raw string comparison against the configured state name; no
		// normalization of case or whitespace is attempted.
		IsInterState: customer.State != settings.ShopState,
		SyncStatus:   models.SyncStatusLocal,
	}

	if err := s.Invoices.CreateWithCounter(ctx, invoice, settings.ID, settings.NextInvoiceNumber); err != nil {
		stage := repositories.StageInsertInvoice
		var commitErr *repositories.CommitError
		if errors.As(err, &commitErr) {
			stage = commitErr.Stage
		}
		metrics.InvoiceCommitFailures.WithLabelValues(stage).Inc()
		return nil, err
	}

	metrics.InvoicesCommitted.Inc()
	return invoice, nil
}

// ReconcileCounter runs at startup. If the stored counter under-counts the
// highest committed invoice number for the configured prefix (a crash between
// historic insert and counter update under the old two-step scheme), the
// counter is raised so the next commit cannot reissue a number. A counter
// ahead of the invoices is left alone.
func (s *BillingService) ReconcileCounter(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.Settings.Get(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNotConfigured) {
			return nil // nothing committed yet, nothing to reconcile
		}
		return fmt.Errorf("load shop settings: %w", err)
	}

	maxCommitted, err := s.Invoices.MaxSequenceForPrefix(ctx, settings.InvoicePrefix)
	if err != nil {
		return fmt.Errorf("scan committed invoice numbers: %w", err)
	}

	if settings.NextInvoiceNumber <= maxCommitted {
		log.Printf("[Billing] counter %d under-counts committed invoices (max %d), raising to %d",
			settings.NextInvoiceNumber, maxCommitted, maxCommitted+1)
		return s.Settings.RaiseCounter(ctx, maxCommitted+1)
	}
	return nil
}
