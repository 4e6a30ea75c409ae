package repositories

import (
	"context"
	"errors"

	"quikbill-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotConfigured means the singleton settings row does not exist yet: the
// shop was never set up, and the ledger must refuse commits.
var ErrNotConfigured = errors.New("shop settings row does not exist")

// shopSettingsID is the fixed primary key of the singleton row, enforced by a
// CHECK constraint in the schema.
const shopSettingsID = 1

type ShopSettingsRepository struct {
	DB *pgxpool.Pool
}

func NewShopSettingsRepository(db *pgxpool.Pool) *ShopSettingsRepository {
	return &ShopSettingsRepository{DB: db}
}

// Get returns the live settings row, or ErrNotConfigured when it is absent.
func (r *ShopSettingsRepository) Get(ctx context.Context) (*models.ShopSettings, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, shop_name, shop_address, shop_phone, shop_gstin, shop_state,
		        is_gst_enabled, invoice_prefix, next_invoice_number, updated_at
		 FROM shop_settings WHERE id = $1`, shopSettingsID)

	var s models.ShopSettings
	err := row.Scan(&s.ID, &s.ShopName, &s.ShopAddress, &s.ShopPhone, &s.ShopGSTIN,
		&s.ShopState, &s.IsGSTEnabled, &s.InvoicePrefix, &s.NextInvoiceNumber, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpsertProfile creates the settings row or updates its profile fields. The
// counter is never written here: a fresh row starts at 1 and an existing
// row's counter is left untouched, whatever the settings screen sends.
func (r *ShopSettingsRepository) UpsertProfile(ctx context.Context, req *models.UpdateShopSettingsRequest) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO shop_settings(id, shop_name, shop_address, shop_phone, shop_gstin,
		                           shop_state, is_gst_enabled, invoice_prefix, next_invoice_number)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, 1)
		 ON CONFLICT (id) DO UPDATE SET
		   shop_name = $2, shop_address = $3, shop_phone = $4, shop_gstin = $5,
		   shop_state = $6, is_gst_enabled = $7, invoice_prefix = $8,
		   updated_at = CURRENT_TIMESTAMP`,
		shopSettingsID, req.ShopName, req.ShopAddress, req.ShopPhone, req.ShopGSTIN,
		req.ShopState, req.IsGSTEnabled, req.InvoicePrefix)
	return err
}

// RaiseCounter lifts the counter to at least next. It only ever raises; a
// concurrent commit that already moved the counter higher wins. Used by
// startup reconciliation after a crash between insert and counter update.
func (r *ShopSettingsRepository) RaiseCounter(ctx context.Context, next int) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE shop_settings
		 SET next_invoice_number = $1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2 AND next_invoice_number < $1`,
		next, shopSettingsID)
	return err
}
