package services

import (
	"context"
	"fmt"
	"testing"

	"quikbill-backend/internal/models"
)

type fakeProductGetter struct {
	products map[int]*models.Product
}

func (f *fakeProductGetter) Get(ctx context.Context, id int) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d not found", id)
	}
	return p, nil
}

func newTestCatalog() *fakeProductGetter {
	return &fakeProductGetter{products: map[int]*models.Product{
		1: {ID: 1, Name: "Notebook", SKU: "NB-01", SellingPrice: 100, TaxSlab: 18, HSNCode: "4820"},
		2: {ID: 2, Name: "Pen", SKU: "PN-01", SellingPrice: 99.50, TaxSlab: 5},
	}}
}

func TestCartServiceAddAndSummarize(t *testing.T) {
	svc := NewCartService(newTestCatalog())
	ctx := context.Background()

	if _, err := svc.AddProduct(ctx, "till-1", 1); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if _, err := svc.AddProduct(ctx, "till-1", 1); err != nil {
		t.Fatalf("AddProduct again: %v", err)
	}
	summary, err := svc.AddProduct(ctx, "till-1", 2)
	if err != nil {
		t.Fatalf("AddProduct pen: %v", err)
	}

	if len(summary.Items) != 2 {
		t.Fatalf("cart rows = %d, want 2", len(summary.Items))
	}
	if summary.Items[0].Quantity != 2 {
		t.Errorf("notebook quantity = %d, want 2", summary.Items[0].Quantity)
	}
	if !almostEqual(summary.Subtotal, 299.50) {
		t.Errorf("subtotal = %v, want 299.50", summary.Subtotal)
	}
	if !almostEqual(summary.TotalTax, 40.975) {
		t.Errorf("total tax = %v, want 40.975", summary.TotalTax)
	}
	if summary.TotalPayable != 340 {
		t.Errorf("total payable = %v, want 340", summary.TotalPayable)
	}
	if !almostEqual(summary.Rounding, -0.475) {
		t.Errorf("rounding = %v, want -0.475", summary.Rounding)
	}
}

func TestCartServiceUnknownProduct(t *testing.T) {
	svc := NewCartService(newTestCatalog())

	if _, err := svc.AddProduct(context.Background(), "till-1", 99); err == nil {
		t.Fatal("expected error for unknown product")
	}
	if summary := svc.Summary("till-1"); len(summary.Items) != 0 {
		t.Errorf("cart rows = %d, want 0", len(summary.Items))
	}
}

func TestCartServiceSetQuantityRemovesAtZero(t *testing.T) {
	svc := NewCartService(newTestCatalog())
	ctx := context.Background()

	if _, err := svc.AddProduct(ctx, "till-1", 1); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	summary, err := svc.SetQuantity("till-1", 1, 5)
	if err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if summary.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", summary.Items[0].Quantity)
	}
	if !almostEqual(summary.Subtotal, 500) {
		t.Errorf("subtotal = %v, want 500", summary.Subtotal)
	}

	summary, err = svc.SetQuantity("till-1", 1, 0)
	if err != nil {
		t.Fatalf("SetQuantity to zero: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Errorf("cart rows = %d, want 0 after zero quantity", len(summary.Items))
	}
}

func TestCartServiceTerminalsAreIsolated(t *testing.T) {
	svc := NewCartService(newTestCatalog())
	ctx := context.Background()

	if _, err := svc.AddProduct(ctx, "till-1", 1); err != nil {
		t.Fatalf("AddProduct till-1: %v", err)
	}
	if _, err := svc.AddProduct(ctx, "till-2", 2); err != nil {
		t.Fatalf("AddProduct till-2: %v", err)
	}

	first := svc.Summary("till-1")
	second := svc.Summary("till-2")
	if len(first.Items) != 1 || first.Items[0].ProductID != 1 {
		t.Errorf("till-1 items = %+v, want just product 1", first.Items)
	}
	if len(second.Items) != 1 || second.Items[0].ProductID != 2 {
		t.Errorf("till-2 items = %+v, want just product 2", second.Items)
	}

	svc.Clear("till-1")
	if summary := svc.Summary("till-1"); len(summary.Items) != 0 {
		t.Errorf("till-1 not cleared: %+v", summary.Items)
	}
	if summary := svc.Summary("till-2"); len(summary.Items) != 1 {
		t.Errorf("till-2 affected by clearing till-1: %+v", summary.Items)
	}
}

func TestCartServiceSnapshotsPriceAtAddTime(t *testing.T) {
	catalog := newTestCatalog()
	svc := NewCartService(catalog)
	ctx := context.Background()

	if _, err := svc.AddProduct(ctx, "till-1", 1); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	// A later catalog edit must not change what the cart already holds
	catalog.products[1].SellingPrice = 500

	summary := svc.Summary("till-1")
	if !almostEqual(summary.Items[0].Price, 100) {
		t.Errorf("cart price = %v, want the price at add time (100)", summary.Items[0].Price)
	}
}

func TestCartServiceRemoveItem(t *testing.T) {
	svc := NewCartService(newTestCatalog())
	ctx := context.Background()

	if _, err := svc.AddProduct(ctx, "till-1", 1); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if _, err := svc.AddProduct(ctx, "till-1", 2); err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	summary := svc.RemoveItem("till-1", 1)
	if len(summary.Items) != 1 {
		t.Fatalf("cart rows = %d, want 1", len(summary.Items))
	}
	if summary.Items[0].ProductID != 2 {
		t.Errorf("remaining product = %d, want 2", summary.Items[0].ProductID)
	}
}
