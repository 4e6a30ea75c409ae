package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"quikbill-backend/internal/billing"
	"quikbill-backend/internal/models"
	"quikbill-backend/internal/repositories"
)

// fakeInvoiceStore mimics the commit transaction: the counter advance is a
// compare-and-swap against the shared settings row, and nothing is persisted
// when it fails.
type fakeInvoiceStore struct {
	settings *models.ShopSettings
	created  []*models.Invoice
	failWith error
	maxSeq   int
}

func (f *fakeInvoiceStore) CreateWithCounter(ctx context.Context, invoice *models.Invoice, settingsID, expectedNext int) error {
	if f.failWith != nil {
		return f.failWith
	}
	if f.settings.NextInvoiceNumber != expectedNext {
		return &repositories.CommitError{Stage: repositories.StageAdvanceCounter, Err: repositories.ErrCounterConflict}
	}
	invoice.ID = len(f.created) + 1
	f.created = append(f.created, invoice)
	f.settings.NextInvoiceNumber++
	return nil
}

func (f *fakeInvoiceStore) MaxSequenceForPrefix(ctx context.Context, prefix string) (int, error) {
	return f.maxSeq, nil
}

type fakeSettingsStore struct {
	settings *models.ShopSettings
	getErr   error
	raised   []int
}

func (f *fakeSettingsStore) Get(ctx context.Context) (*models.ShopSettings, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := *f.settings
	return &copied, nil
}

func (f *fakeSettingsStore) RaiseCounter(ctx context.Context, next int) error {
	f.raised = append(f.raised, next)
	if next > f.settings.NextInvoiceNumber {
		f.settings.NextInvoiceNumber = next
	}
	return nil
}

func testSettings() *models.ShopSettings {
	return &models.ShopSettings{
		ID:                1,
		ShopName:          "Sharma General Store",
		ShopState:         "Maharashtra",
		IsGSTEnabled:      true,
		InvoicePrefix:     "INV",
		NextInvoiceNumber: 1,
	}
}

func newTestLedger(settings *models.ShopSettings) (*BillingService, *fakeInvoiceStore, *fakeSettingsStore) {
	invoices := &fakeInvoiceStore{settings: settings}
	store := &fakeSettingsStore{settings: settings}
	return NewBillingService(invoices, store), invoices, store
}

func lineItem(t *testing.T, id int, name string, price float64, qty int, slab float64) billing.CartItem {
	t.Helper()
	calc, err := billing.CalculateLineItem(price, qty, slab)
	if err != nil {
		t.Fatalf("CalculateLineItem: %v", err)
	}
	return billing.CartItem{
		ProductSnapshot: billing.ProductSnapshot{ProductID: id, Name: name, Price: price, TaxSlab: slab},
		Quantity:        qty,
		TaxAmount:       calc.TaxAmount,
		Total:           calc.ItemTotal,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCommitInvoiceSequentialNumbers(t *testing.T) {
	settings := testSettings()
	svc, invoices, _ := newTestLedger(settings)

	items := []billing.CartItem{lineItem(t, 1, "Soap", 40, 1, 18)}
	customer := billing.CustomerDetails{Name: "Asha"}

	first, err := svc.CommitInvoice(context.Background(), items, customer)
	if err != nil {
		t.Fatalf("first commit: %v", err)
	}
	second, err := svc.CommitInvoice(context.Background(), items, customer)
	if err != nil {
		t.Fatalf("second commit: %v", err)
	}

	if first.InvoiceNumber != "INV-0001" {
		t.Errorf("first invoice number = %q, want INV-0001", first.InvoiceNumber)
	}
	if second.InvoiceNumber != "INV-0002" {
		t.Errorf("second invoice number = %q, want INV-0002", second.InvoiceNumber)
	}
	if settings.NextInvoiceNumber != 3 {
		t.Errorf("counter after two commits = %d, want 3", settings.NextInvoiceNumber)
	}
	if len(invoices.created) != 2 {
		t.Errorf("persisted invoices = %d, want 2", len(invoices.created))
	}
}

func TestCommitInvoiceTotals(t *testing.T) {
	settings := testSettings()
	svc, _, _ := newTestLedger(settings)

	items := []billing.CartItem{
		lineItem(t, 1, "Notebook", 100, 2, 18),
		lineItem(t, 2, "Pen", 99.50, 1, 5),
	}

	invoice, err := svc.CommitInvoice(context.Background(), items, billing.CustomerDetails{})
	if err != nil {
		t.Fatalf("CommitInvoice: %v", err)
	}

	if !almostEqual(invoice.Subtotal, 299.50) {
		t.Errorf("subtotal = %v, want 299.50", invoice.Subtotal)
	}
	if !almostEqual(invoice.TotalTax, 40.975) {
		t.Errorf("total tax = %v, want 40.975", invoice.TotalTax)
	}
	if invoice.TotalAmount != 340 {
		t.Errorf("total amount = %v, want 340", invoice.TotalAmount)
	}
	if !almostEqual(invoice.Rounding, -0.475) {
		t.Errorf("rounding = %v, want -0.475", invoice.Rounding)
	}
	if invoice.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("payment status = %q, want %q", invoice.PaymentStatus, models.PaymentStatusPaid)
	}
	if invoice.Type != models.DocTypeTaxInvoice {
		t.Errorf("doc type = %q, want %q", invoice.Type, models.DocTypeTaxInvoice)
	}
}

func TestCommitInvoiceBillOfSupplyWhenGSTDisabled(t *testing.T) {
	settings := testSettings()
	settings.IsGSTEnabled = false
	svc, _, _ := newTestLedger(settings)

	invoice, err := svc.CommitInvoice(context.Background(),
		[]billing.CartItem{lineItem(t, 1, "Soap", 40, 1, 0)}, billing.CustomerDetails{})
	if err != nil {
		t.Fatalf("CommitInvoice: %v", err)
	}
	if invoice.Type != models.DocTypeBillOfSupply {
		t.Errorf("doc type = %q, want %q", invoice.Type, models.DocTypeBillOfSupply)
	}
}

func TestCommitInvoiceEmptyCartLeavesStateUntouched(t *testing.T) {
	settings := testSettings()
	svc, invoices, _ := newTestLedger(settings)

	_, err := svc.CommitInvoice(context.Background(), nil, billing.CustomerDetails{})
	if !errors.Is(err, billing.ErrEmptyCart) {
		t.Fatalf("error = %v, want ErrEmptyCart", err)
	}
	if len(invoices.created) != 0 {
		t.Errorf("persisted invoices = %d, want 0", len(invoices.created))
	}
	if settings.NextInvoiceNumber != 1 {
		t.Errorf("counter = %d, want 1 (unchanged)", settings.NextInvoiceNumber)
	}
}

func TestCommitInvoiceRequiresShopConfig(t *testing.T) {
	settings := testSettings()
	invoices := &fakeInvoiceStore{settings: settings}
	store := &fakeSettingsStore{settings: settings, getErr: repositories.ErrNotConfigured}
	svc := NewBillingService(invoices, store)

	_, err := svc.CommitInvoice(context.Background(),
		[]billing.CartItem{lineItem(t, 1, "Soap", 40, 1, 18)}, billing.CustomerDetails{})
	if !errors.Is(err, billing.ErrNoShopConfig) {
		t.Fatalf("error = %v, want ErrNoShopConfig", err)
	}
	if len(invoices.created) != 0 {
		t.Errorf("persisted invoices = %d, want 0", len(invoices.created))
	}
}

func TestCommitInvoiceRejectsBadGSTIN(t *testing.T) {
	settings := testSettings()
	svc, invoices, _ := newTestLedger(settings)

	_, err := svc.CommitInvoice(context.Background(),
		[]billing.CartItem{lineItem(t, 1, "Soap", 40, 1, 18)},
		billing.CustomerDetails{GSTIN: "NOT-A-GSTIN"})
	if !errors.Is(err, billing.ErrInvalidTaxID) {
		t.Fatalf("error = %v, want ErrInvalidTaxID", err)
	}
	if len(invoices.created) != 0 {
		t.Errorf("persisted invoices = %d, want 0", len(invoices.created))
	}
}

func TestCommitInvoiceInterStateFlag(t *testing.T) {
	tests := []struct {
		name          string
		customerState string
		wantInter     bool
		wantState     string
	}{
		{"different state", "Karnataka", true, "Karnataka"},
		{"same state", "Maharashtra", false, "Maharashtra"},
		{"empty defaults to shop state", "", false, "Maharashtra"},
		// Comparison is on the raw strings; a spelling variant counts as
		// a different state.
		{"case variant", "maharashtra", true, "maharashtra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestLedger(testSettings())
			invoice, err := svc.CommitInvoice(context.Background(),
				[]billing.CartItem{lineItem(t, 1, "Soap", 40, 1, 18)},
				billing.CustomerDetails{State: tt.customerState})
			if err != nil {
				t.Fatalf("CommitInvoice: %v", err)
			}
			if invoice.IsInterState != tt.wantInter {
				t.Errorf("IsInterState = %v, want %v", invoice.IsInterState, tt.wantInter)
			}
			if invoice.Customer.State != tt.wantState {
				t.Errorf("customer state = %q, want %q", invoice.Customer.State, tt.wantState)
			}
		})
	}
}

func TestCommitInvoiceSurfacesCounterConflict(t *testing.T) {
	settings := testSettings()
	invoices := &fakeInvoiceStore{
		settings: settings,
		failWith: &repositories.CommitError{
			Stage: repositories.StageAdvanceCounter,
			Err:   repositories.ErrCounterConflict,
		},
	}
	svc := NewBillingService(invoices, &fakeSettingsStore{settings: settings})

	_, err := svc.CommitInvoice(context.Background(),
		[]billing.CartItem{lineItem(t, 1, "Soap", 40, 1, 18)}, billing.CustomerDetails{})
	if !errors.Is(err, repositories.ErrCounterConflict) {
		t.Fatalf("error = %v, want ErrCounterConflict", err)
	}
}

func TestReconcileCounterRaisesUnderCount(t *testing.T) {
	settings := testSettings()
	settings.NextInvoiceNumber = 2
	invoices := &fakeInvoiceStore{settings: settings, maxSeq: 5}
	store := &fakeSettingsStore{settings: settings}
	svc := NewBillingService(invoices, store)

	if err := svc.ReconcileCounter(context.Background()); err != nil {
		t.Fatalf("ReconcileCounter: %v", err)
	}
	if len(store.raised) != 1 || store.raised[0] != 6 {
		t.Fatalf("raised = %v, want [6]", store.raised)
	}
}

func TestReconcileCounterLeavesHealthyCounterAlone(t *testing.T) {
	settings := testSettings()
	settings.NextInvoiceNumber = 7
	invoices := &fakeInvoiceStore{settings: settings, maxSeq: 5}
	store := &fakeSettingsStore{settings: settings}
	svc := NewBillingService(invoices, store)

	if err := svc.ReconcileCounter(context.Background()); err != nil {
		t.Fatalf("ReconcileCounter: %v", err)
	}
	if len(store.raised) != 0 {
		t.Fatalf("raised = %v, want none", store.raised)
	}
}

func TestReconcileCounterNoopWhenUnconfigured(t *testing.T) {
	settings := testSettings()
	invoices := &fakeInvoiceStore{settings: settings}
	store := &fakeSettingsStore{settings: settings, getErr: repositories.ErrNotConfigured}
	svc := NewBillingService(invoices, store)

	if err := svc.ReconcileCounter(context.Background()); err != nil {
		t.Fatalf("ReconcileCounter: %v", err)
	}
	if len(store.raised) != 0 {
		t.Fatalf("raised = %v, want none", store.raised)
	}
}
