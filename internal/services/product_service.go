package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quikbill-backend/internal/billing"
	"quikbill-backend/internal/cache"
	"quikbill-backend/internal/models"
	"quikbill-backend/internal/repositories"
)

// searchLimit caps autocomplete results, matching the checkout dropdown.
const searchLimit = 5

type ProductService struct {
	Repo *repositories.ProductRepository
}

func NewProductService(repo *repositories.ProductRepository) *ProductService {
	return &ProductService{Repo: repo}
}

func (s *ProductService) validate(p *models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if p.SellingPrice < 0 {
		return fmt.Errorf("selling price must not be negative")
	}
	if !billing.IsValidSlab(p.TaxSlab) {
		return fmt.Errorf("tax slab %v is not a valid GST slab", p.TaxSlab)
	}
	return nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:         req.Name,
		SKU:          req.SKU,
		Category:     req.Category,
		BasePrice:    req.BasePrice,
		SellingPrice: req.SellingPrice,
		HSNCode:      req.HSNCode,
		TaxSlab:      req.TaxSlab,
		Stock:        req.Stock,
	}
	if err := s.validate(product); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, product); err != nil {
		return nil, err
	}
	cache.InvalidateProductCaches(ctx)
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return s.Repo.List(ctx)
}

// SearchProducts serves the checkout autocomplete. Results are cached per
// term for a short window since the catalog changes far less often than the
// operator types.
func (s *ProductService) SearchProducts(ctx context.Context, term string) ([]*models.Product, error) {
	if term == "" {
		return nil, nil
	}

	key := "products:search:" + term
	if data, ok := cache.GetCached(ctx, key); ok {
		var products []*models.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
	}

	products, err := s.Repo.Search(ctx, term, searchLimit)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		cache.SetCached(ctx, key, data, 2*time.Minute)
	}
	return products, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, p *models.Product) error {
	if err := s.validate(p); err != nil {
		return err
	}
	if err := s.Repo.Update(ctx, p); err != nil {
		return err
	}
	cache.InvalidateProductCaches(ctx)
	return nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateProductCaches(ctx)
	return nil
}
