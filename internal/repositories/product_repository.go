package repositories

import (
	"context"

	"quikbill-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	DB *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO products(name, sku, category, base_price, selling_price, hsn_code, tax_slab, stock)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, last_updated`,
		p.Name, p.SKU, p.Category, p.BasePrice, p.SellingPrice, p.HSNCode, p.TaxSlab, p.Stock,
	).Scan(&p.ID, &p.LastUpdated)
}

func (r *ProductRepository) Get(ctx context.Context, id int) (*models.Product, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, sku, category, base_price, selling_price, hsn_code, tax_slab, stock, last_updated
		 FROM products WHERE id = $1`, id)

	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.BasePrice, &p.SellingPrice,
		&p.HSNCode, &p.TaxSlab, &p.Stock, &p.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all products ordered by name
func (r *ProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, sku, category, base_price, selling_price, hsn_code, tax_slab, stock, last_updated
		 FROM products ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.BasePrice, &p.SellingPrice,
			&p.HSNCode, &p.TaxSlab, &p.Stock, &p.LastUpdated)
		if err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

// Search matches products by name or SKU for the checkout autocomplete.
func (r *ProductRepository) Search(ctx context.Context, term string, limit int) ([]*models.Product, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, sku, category, base_price, selling_price, hsn_code, tax_slab, stock, last_updated
		 FROM products
		 WHERE name ILIKE '%' || $1 || '%' OR sku ILIKE '%' || $1 || '%'
		 ORDER BY name LIMIT $2`, term, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.BasePrice, &p.SellingPrice,
			&p.HSNCode, &p.TaxSlab, &p.Stock, &p.LastUpdated)
		if err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

// Update replaces a product's catalog fields
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE products
		 SET name=$1, sku=$2, category=$3, base_price=$4, selling_price=$5,
		     hsn_code=$6, tax_slab=$7, stock=$8, last_updated=CURRENT_TIMESTAMP
		 WHERE id=$9`,
		p.Name, p.SKU, p.Category, p.BasePrice, p.SellingPrice, p.HSNCode, p.TaxSlab, p.Stock, p.ID)
	return err
}

// Delete removes a product from the catalog. Committed invoices keep their
// own copies of the product fields, so deletion never rewrites history.
func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	return err
}
