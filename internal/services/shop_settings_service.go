package services

import (
	"context"
	"fmt"

	"quikbill-backend/internal/billing"
	"quikbill-backend/internal/cache"
	"quikbill-backend/internal/models"
	"quikbill-backend/internal/repositories"
)

type ShopSettingsService struct {
	Repo *repositories.ShopSettingsRepository
}

func NewShopSettingsService(repo *repositories.ShopSettingsRepository) *ShopSettingsService {
	return &ShopSettingsService{Repo: repo}
}

func (s *ShopSettingsService) GetSettings(ctx context.Context) (*models.ShopSettings, error) {
	return s.Repo.Get(ctx)
}

// SaveProfile creates or updates the shop profile. The invoice counter is
// never touched here; it belongs to the billing ledger.
func (s *ShopSettingsService) SaveProfile(ctx context.Context, req *models.UpdateShopSettingsRequest) error {
	if req.ShopName == "" {
		return fmt.Errorf("shop name is required")
	}
	if req.ShopGSTIN != "" && !billing.ValidateGSTIN(req.ShopGSTIN) {
		return billing.ErrInvalidTaxID
	}
	if req.InvoicePrefix == "" {
		req.InvoicePrefix = "INV"
	}

	if err := s.Repo.UpsertProfile(ctx, req); err != nil {
		return err
	}
	cache.InvalidateSettingsCache(ctx)
	return nil
}
