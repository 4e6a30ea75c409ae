package billing

import (
	"errors"
	"testing"
)

func TestCalculateLineItem(t *testing.T) {
	tests := []struct {
		name        string
		price       float64
		qty         int
		slab        float64
		wantTaxable float64
		wantTax     float64
		wantTotal   float64
	}{
		{"two units at 18 percent", 100, 2, 18, 200, 36, 236},
		{"fractional price at 5 percent", 99.50, 1, 5, 99.50, 4.975, 104.475},
		{"zero slab", 250, 3, 0, 750, 0, 750},
		{"zero price", 0, 5, 28, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateLineItem(tt.price, tt.qty, tt.slab)
			if err != nil {
				t.Fatalf("CalculateLineItem returned error: %v", err)
			}
			if got.TaxableAmount != tt.wantTaxable {
				t.Errorf("taxable = %v, want %v", got.TaxableAmount, tt.wantTaxable)
			}
			if got.TaxAmount != tt.wantTax {
				t.Errorf("tax = %v, want %v", got.TaxAmount, tt.wantTax)
			}
			if got.ItemTotal != tt.wantTotal {
				t.Errorf("total = %v, want %v", got.ItemTotal, tt.wantTotal)
			}
		})
	}
}

func TestCalculateLineItemIdempotent(t *testing.T) {
	first, err := CalculateLineItem(123.45, 7, 12)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		again, err := CalculateLineItem(123.45, 7, 12)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("recomputation drifted: %+v != %+v", again, first)
		}
	}
}

func TestCalculateLineItemRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		qty   int
		slab  float64
	}{
		{"negative price", -1, 1, 18},
		{"zero quantity", 100, 0, 18},
		{"negative quantity", 100, -2, 18},
		{"unknown slab", 100, 1, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateLineItem(tt.price, tt.qty, tt.slab)
			if !errors.Is(err, ErrInvalidLineItem) {
				t.Errorf("got %v, want InvalidLineItem", err)
			}
		})
	}
}

func TestIsValidSlab(t *testing.T) {
	for _, s := range GSTSlabs {
		if !IsValidSlab(s) {
			t.Errorf("slab %v should be valid", s)
		}
	}
	for _, s := range []float64{1, 7, 10, 15, 30, -5} {
		if IsValidSlab(s) {
			t.Errorf("slab %v should be invalid", s)
		}
	}
}
