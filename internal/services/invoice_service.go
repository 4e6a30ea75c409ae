package services

import (
	"context"
	"time"

	"quikbill-backend/internal/models"
	"quikbill-backend/internal/repositories"
	"quikbill-backend/internal/timeutil"
)

// InvoiceService serves reads of committed invoices. Writes go through
// BillingService only.
type InvoiceService struct {
	Repo *repositories.InvoiceRepository
}

func NewInvoiceService(repo *repositories.InvoiceRepository) *InvoiceService {
	return &InvoiceService{Repo: repo}
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id int) (*models.Invoice, error) {
	return s.Repo.Get(ctx, id)
}

func (s *InvoiceService) GetInvoiceByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	return s.Repo.GetByInvoiceNumber(ctx, number)
}

func (s *InvoiceService) ListInvoices(ctx context.Context) ([]*models.Invoice, error) {
	return s.Repo.List(ctx)
}

// ListInvoicesOnDate returns the invoices issued on a business day (IST).
func (s *InvoiceService) ListInvoicesOnDate(ctx context.Context, day time.Time) ([]*models.Invoice, error) {
	return s.Repo.ListBetween(ctx, timeutil.StartOfDay(day), timeutil.EndOfDay(day))
}
