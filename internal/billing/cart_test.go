package billing

import (
	"errors"
	"math"
	"testing"
)

func soap() ProductSnapshot {
	return ProductSnapshot{ProductID: 1, Name: "Soap", SKU: "SP-01", Price: 40, TaxSlab: 18, HSNCode: "3401"}
}

func rice() ProductSnapshot {
	return ProductSnapshot{ProductID: 2, Name: "Rice 5kg", SKU: "RC-05", Price: 99.50, TaxSlab: 5, HSNCode: "1006"}
}

func TestCartAddIncrementsExistingRow(t *testing.T) {
	cart := NewCart()
	if err := cart.Add(soap()); err != nil {
		t.Fatal(err)
	}
	if err := cart.Add(soap()); err != nil {
		t.Fatal(err)
	}

	items := cart.Items()
	if len(items) != 1 {
		t.Fatalf("expected a single row, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", items[0].Quantity)
	}
	if items[0].Total != 94.4 {
		t.Errorf("row total = %v, want 94.4", items[0].Total)
	}
}

func TestCartSetQuantityRecomputesTotals(t *testing.T) {
	cart := NewCart()
	if err := cart.Add(soap()); err != nil {
		t.Fatal(err)
	}
	if err := cart.SetQuantity(1, 5); err != nil {
		t.Fatal(err)
	}

	item := cart.Items()[0]
	wantTax := 40.0 * 5 * 18 / 100
	if item.TaxAmount != wantTax {
		t.Errorf("tax = %v, want %v", item.TaxAmount, wantTax)
	}
	if item.Total != 40.0*5+wantTax {
		t.Errorf("total = %v, want %v", item.Total, 40.0*5+wantTax)
	}
}

func TestCartSetQuantityBelowOneRemovesRow(t *testing.T) {
	cart := NewCart()
	if err := cart.Add(soap()); err != nil {
		t.Fatal(err)
	}
	if err := cart.SetQuantity(1, 0); err != nil {
		t.Fatal(err)
	}
	if cart.Len() != 0 {
		t.Errorf("cart should be empty after quantity dropped below 1")
	}
}

func TestCartSetQuantityUnknownProduct(t *testing.T) {
	cart := NewCart()
	err := cart.SetQuantity(99, 2)
	if !errors.Is(err, ErrInvalidLineItem) {
		t.Errorf("got %v, want InvalidLineItem", err)
	}
}

func TestCartRemovePreservesOrder(t *testing.T) {
	cart := NewCart()
	third := ProductSnapshot{ProductID: 3, Name: "Tea", SKU: "TE-01", Price: 120, TaxSlab: 12, HSNCode: "0902"}
	for _, p := range []ProductSnapshot{soap(), rice(), third} {
		if err := cart.Add(p); err != nil {
			t.Fatal(err)
		}
	}

	if !cart.Remove(2) {
		t.Fatal("Remove(2) reported missing row")
	}
	items := cart.Items()
	if len(items) != 2 || items[0].ProductID != 1 || items[1].ProductID != 3 {
		t.Errorf("unexpected order after removal: %+v", items)
	}

	// Index must still be usable after the shift.
	if err := cart.SetQuantity(3, 4); err != nil {
		t.Fatalf("SetQuantity after removal: %v", err)
	}
	if cart.Items()[1].Quantity != 4 {
		t.Errorf("quantity update hit the wrong row")
	}
}

func TestCartTotalsEmpty(t *testing.T) {
	totals := NewCart().Totals()
	if totals.Subtotal != 0 || totals.TotalTax != 0 || totals.GrossTotal != 0 {
		t.Errorf("empty cart totals = %+v, want zeros", totals)
	}
}

func TestCartTotalsScenario(t *testing.T) {
	// One line: price 100, qty 2, slab 18.
	cart := NewCart()
	if err := cart.Add(ProductSnapshot{ProductID: 9, Name: "Ghee", SKU: "GH-01", Price: 100, TaxSlab: 18, HSNCode: "0405"}); err != nil {
		t.Fatal(err)
	}
	if err := cart.SetQuantity(9, 2); err != nil {
		t.Fatal(err)
	}

	totals := cart.Totals()
	if totals.Subtotal != 200 || totals.TotalTax != 36 || totals.GrossTotal != 236 {
		t.Errorf("totals = %+v, want 200/36/236", totals)
	}

	rounded, diff := RoundToNearestRupee(totals.GrossTotal)
	if rounded != 236 || diff != 0 {
		t.Errorf("rounded = %v diff = %v, want 236 and 0", rounded, diff)
	}
}

func TestCartTotalsFractional(t *testing.T) {
	cart := NewCart()
	if err := cart.Add(rice()); err != nil {
		t.Fatal(err)
	}

	totals := cart.Totals()
	if totals.Subtotal != 99.50 || totals.TotalTax != 4.975 || totals.GrossTotal != 104.475 {
		t.Errorf("totals = %+v, want 99.50/4.975/104.475", totals)
	}

	rounded, diff := RoundToNearestRupee(totals.GrossTotal)
	if rounded != 104 {
		t.Errorf("rounded = %v, want 104", rounded)
	}
	if math.Abs(diff-(-0.475)) > 1e-9 {
		t.Errorf("diff = %v, want -0.475", diff)
	}
}

func TestAggregateItemsOrderInsensitive(t *testing.T) {
	forward := NewCart()
	backward := NewCart()
	products := []ProductSnapshot{soap(), rice(),
		{ProductID: 3, Name: "Tea", SKU: "TE-01", Price: 120, TaxSlab: 12, HSNCode: "0902"}}

	for _, p := range products {
		if err := forward.Add(p); err != nil {
			t.Fatal(err)
		}
	}
	for i := len(products) - 1; i >= 0; i-- {
		if err := backward.Add(products[i]); err != nil {
			t.Fatal(err)
		}
	}

	a, b := forward.Totals(), backward.Totals()
	if math.Abs(a.Subtotal-b.Subtotal) > 1e-9 ||
		math.Abs(a.TotalTax-b.TotalTax) > 1e-9 ||
		math.Abs(a.GrossTotal-b.GrossTotal) > 1e-9 {
		t.Errorf("aggregation is order sensitive: %+v vs %+v", a, b)
	}
}

func TestValidateItems(t *testing.T) {
	if err := ValidateItems(nil); !errors.Is(err, ErrEmptyCart) {
		t.Errorf("empty cart: got %v, want EmptyCart", err)
	}

	bad := []CartItem{{
		ProductSnapshot: ProductSnapshot{ProductID: 1, Price: -5, TaxSlab: 18},
		Quantity:        1,
	}}
	if err := ValidateItems(bad); !errors.Is(err, ErrInvalidLineItem) {
		t.Errorf("negative price: got %v, want InvalidLineItem", err)
	}

	ok := []CartItem{{
		ProductSnapshot: soap(),
		Quantity:        2,
		TaxAmount:       14.4,
		Total:           94.4,
	}}
	if err := ValidateItems(ok); err != nil {
		t.Errorf("valid cart rejected: %v", err)
	}
}
