package billing

// GSTSlabs are the statutory percentage rates a product can carry.
var GSTSlabs = []float64{0, 5, 12, 18, 28}

// LineItemTotals holds the computed amounts for one cart line.
type LineItemTotals struct {
	TaxableAmount float64 `json:"taxable_amount"`
	TaxAmount     float64 `json:"tax_amount"`
	ItemTotal     float64 `json:"item_total"`
}

// IsValidSlab reports whether rate is one of the statutory GST slabs.
func IsValidSlab(rate float64) bool {
	for _, s := range GSTSlabs {
		if s == rate {
			return true
		}
	}
	return false
}

// CalculateLineItem computes taxable amount, tax, and line total for a single
// line. It is pure: the same inputs always produce bit-identical outputs, so
// recomputing a line after a quantity change never drifts.
func CalculateLineItem(price float64, quantity int, taxSlab float64) (LineItemTotals, error) {
	if price < 0 {
		return LineItemTotals{}, invalidLineItem("price must not be negative, got %v", price)
	}
	if quantity < 1 {
		return LineItemTotals{}, invalidLineItem("quantity must be at least 1, got %d", quantity)
	}
	if !IsValidSlab(taxSlab) {
		return LineItemTotals{}, invalidLineItem("tax slab %v is not a valid GST slab", taxSlab)
	}

	taxable := price * float64(quantity)
	tax := taxable * taxSlab / 100
	return LineItemTotals{
		TaxableAmount: taxable,
		TaxAmount:     tax,
		ItemTotal:     taxable + tax,
	}, nil
}
