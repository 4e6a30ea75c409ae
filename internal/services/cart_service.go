package services

import (
	"context"
	"fmt"
	"sync"

	"quikbill-backend/internal/billing"
	"quikbill-backend/internal/models"
)

// ProductGetter is the slice of the product repository the cart needs to
// snapshot a product into a line item.
type ProductGetter interface {
	Get(ctx context.Context, id int) (*models.Product, error)
}

// CartService holds the live cart for each billing terminal. Carts are pure
// session state: they exist only in memory until checkout turns them into an
// invoice, or the operator clears them.
type CartService struct {
	mu       sync.Mutex
	carts    map[string]*billing.Cart
	Products ProductGetter
}

func NewCartService(products ProductGetter) *CartService {
	return &CartService{
		carts:    make(map[string]*billing.Cart),
		Products: products,
	}
}

// cartFor returns the terminal's cart, creating it on first use. Caller must
// hold s.mu.
func (s *CartService) cartFor(terminal string) *billing.Cart {
	cart, ok := s.carts[terminal]
	if !ok {
		cart = billing.NewCart()
		s.carts[terminal] = cart
	}
	return cart
}

// AddProduct snapshots the product at its current selling price and adds it
// to the terminal's cart, incrementing quantity if already present.
func (s *CartService) AddProduct(ctx context.Context, terminal string, productID int) (*models.CartSummary, error) {
	product, err := s.Products.Get(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load product %d: %w", productID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(terminal)
	err = cart.Add(billing.ProductSnapshot{
		ProductID: product.ID,
		Name:      product.Name,
		SKU:       product.SKU,
		Price:     product.SellingPrice,
		TaxSlab:   product.TaxSlab,
		HSNCode:   product.HSNCode,
	})
	if err != nil {
		return nil, err
	}
	return summarize(cart), nil
}

// SetQuantity updates a row's quantity; a quantity below 1 removes the row.
func (s *CartService) SetQuantity(terminal string, productID, quantity int) (*models.CartSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(terminal)
	if err := cart.SetQuantity(productID, quantity); err != nil {
		return nil, err
	}
	return summarize(cart), nil
}

// RemoveItem deletes a row from the terminal's cart.
func (s *CartService) RemoveItem(terminal string, productID int) *models.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cartFor(terminal)
	cart.Remove(productID)
	return summarize(cart)
}

// Clear empties the terminal's cart.
func (s *CartService) Clear(terminal string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartFor(terminal).Clear()
}

// Items returns a copy of the terminal's line items in insertion order.
func (s *CartService) Items(terminal string) []billing.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartFor(terminal).Items()
}

// Summary recomputes the terminal's bill summary.
func (s *CartService) Summary(terminal string) *models.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return summarize(s.cartFor(terminal))
}

func summarize(cart *billing.Cart) *models.CartSummary {
	totals := cart.Totals()
	payable, rounding := billing.RoundToNearestRupee(totals.GrossTotal)
	return &models.CartSummary{
		Items:        cart.Items(),
		Subtotal:     totals.Subtotal,
		TotalTax:     totals.TotalTax,
		GrossTotal:   totals.GrossTotal,
		Rounding:     rounding,
		TotalPayable: payable,
	}
}
