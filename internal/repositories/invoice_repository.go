package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quikbill-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Commit stages, used to tag persistence failures so the caller can tell
// whether the invoice insert or the counter advance failed.
const (
	StageInsertInvoice  = "invoice_insert"
	StageAdvanceCounter = "counter_update"
)

// ErrCounterConflict means the shop counter moved between the ledger reading
// it and the commit transaction running. Nothing was persisted; the commit
// can be retried with a fresh counter value.
var ErrCounterConflict = errors.New("invoice counter changed during commit")

// CommitError is a stage-tagged persistence failure from the commit
// transaction.
type CommitError struct {
	Stage string
	Err   error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("invoice commit failed at %s: %v", e.Stage, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// CreateWithCounter persists a new invoice and advances the shop's invoice
// counter as one transaction. The counter update is a compare-and-swap
// against the value the invoice number was formatted from: if another commit
// got there first the whole transaction rolls back and ErrCounterConflict is
// returned, so two commits can never share an invoice number and the stored
// counter always stays one ahead of the highest committed number.
func (r *InvoiceRepository) CreateWithCounter(ctx context.Context, invoice *models.Invoice, settingsID, expectedNext int) error {
	customerJSON, err := json.Marshal(invoice.Customer)
	if err != nil {
		return &CommitError{Stage: StageInsertInvoice, Err: err}
	}
	itemsJSON, err := json.Marshal(invoice.Items)
	if err != nil {
		return &CommitError{Stage: StageInsertInvoice, Err: err}
	}

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return &CommitError{Stage: StageInsertInvoice, Err: err}
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO invoices(invoice_number, date, customer, items, subtotal, total_tax,
		                      rounding, total_amount, payment_status, type, is_inter_state, sync_status)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at`,
		invoice.InvoiceNumber, invoice.Date, customerJSON, itemsJSON,
		invoice.Subtotal, invoice.TotalTax, invoice.Rounding, invoice.TotalAmount,
		invoice.PaymentStatus, invoice.Type, invoice.IsInterState, invoice.SyncStatus,
	).Scan(&invoice.ID, &invoice.CreatedAt)
	if err != nil {
		return &CommitError{Stage: StageInsertInvoice, Err: err}
	}

	tag, err := tx.Exec(ctx,
		`UPDATE shop_settings
		 SET next_invoice_number = next_invoice_number + 1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1 AND next_invoice_number = $2`,
		settingsID, expectedNext,
	)
	if err != nil {
		return &CommitError{Stage: StageAdvanceCounter, Err: err}
	}
	if tag.RowsAffected() != 1 {
		return &CommitError{Stage: StageAdvanceCounter, Err: ErrCounterConflict}
	}

	if err := tx.Commit(ctx); err != nil {
		return &CommitError{Stage: StageAdvanceCounter, Err: err}
	}
	return nil
}

// Get retrieves an invoice by ID
func (r *InvoiceRepository) Get(ctx context.Context, id int) (*models.Invoice, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, invoice_number, date, customer, items, subtotal, total_tax,
		        rounding, total_amount, payment_status, type, is_inter_state, sync_status, created_at
		 FROM invoices WHERE id = $1`, id)
	return scanInvoice(row)
}

// GetByInvoiceNumber retrieves an invoice by its human-facing number
func (r *InvoiceRepository) GetByInvoiceNumber(ctx context.Context, number string) (*models.Invoice, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, invoice_number, date, customer, items, subtotal, total_tax,
		        rounding, total_amount, payment_status, type, is_inter_state, sync_status, created_at
		 FROM invoices WHERE invoice_number = $1`, number)
	return scanInvoice(row)
}

// List returns all invoices, newest first
func (r *InvoiceRepository) List(ctx context.Context) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, invoice_number, date, customer, items, subtotal, total_tax,
		        rounding, total_amount, payment_status, type, is_inter_state, sync_status, created_at
		 FROM invoices ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

// ListBetween returns invoices dated within [from, to], newest first
func (r *InvoiceRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, invoice_number, date, customer, items, subtotal, total_tax,
		        rounding, total_amount, payment_status, type, is_inter_state, sync_status, created_at
		 FROM invoices WHERE date BETWEEN $1 AND $2 ORDER BY date DESC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, rows.Err()
}

// MaxSequenceForPrefix returns the highest numeric suffix among committed
// invoice numbers carrying the given prefix, or 0 when none exist. Used at
// startup to reconcile the counter against what was actually committed.
func (r *InvoiceRepository) MaxSequenceForPrefix(ctx context.Context, prefix string) (int, error) {
	var max int
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(MAX((substring(invoice_number from '[0-9]+$'))::int), 0)
		 FROM invoices WHERE invoice_number LIKE $1 || '-%'`, prefix,
	).Scan(&max)
	if err != nil {
		return 0, err
	}
	return max, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (*models.Invoice, error) {
	var invoice models.Invoice
	var customerJSON, itemsJSON []byte

	err := row.Scan(&invoice.ID, &invoice.InvoiceNumber, &invoice.Date, &customerJSON,
		&itemsJSON, &invoice.Subtotal, &invoice.TotalTax, &invoice.Rounding,
		&invoice.TotalAmount, &invoice.PaymentStatus, &invoice.Type,
		&invoice.IsInterState, &invoice.SyncStatus, &invoice.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(customerJSON, &invoice.Customer); err != nil {
		return nil, fmt.Errorf("decode invoice %d customer: %w", invoice.ID, err)
	}
	if err := json.Unmarshal(itemsJSON, &invoice.Items); err != nil {
		return nil, fmt.Errorf("decode invoice %d items: %w", invoice.ID, err)
	}
	return &invoice, nil
}
