package billing

// ProductSnapshot is the by-value copy of a product taken when it enters a
// cart. Invoices keep these copies, so later catalog edits or deletions never
// change a posted invoice.
type ProductSnapshot struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku"`
	Price     float64 `json:"price"`
	TaxSlab   float64 `json:"tax_slab"`
	HSNCode   string  `json:"hsn_code"`
}

// CartItem is one product row in a cart with its quantity and computed totals.
// Invariant: TaxAmount and Total are always consistent with Price, Quantity
// and TaxSlab; every mutation recomputes them.
type CartItem struct {
	ProductSnapshot
	Quantity  int     `json:"quantity"`
	TaxAmount float64 `json:"tax_amount"`
	Total     float64 `json:"total"`
}

// CartTotals is the aggregate of a cart before rounding.
type CartTotals struct {
	Subtotal   float64 `json:"subtotal"`
	TotalTax   float64 `json:"total_tax"`
	GrossTotal float64 `json:"gross_total"`
}

// Cart is an insertion-ordered collection of line items with at most one row
// per product id. It is ephemeral session state and is never persisted except
// by becoming an invoice. Cart itself is not safe for concurrent use; callers
// that share a cart serialize access.
type Cart struct {
	items []CartItem
	index map[int]int
}

func NewCart() *Cart {
	return &Cart{index: make(map[int]int)}
}

// Add puts a product into the cart with quantity 1, or increments the
// quantity if the product is already present.
func (c *Cart) Add(p ProductSnapshot) error {
	if i, ok := c.index[p.ProductID]; ok {
		return c.SetQuantity(p.ProductID, c.items[i].Quantity+1)
	}

	calc, err := CalculateLineItem(p.Price, 1, p.TaxSlab)
	if err != nil {
		return err
	}
	c.items = append(c.items, CartItem{
		ProductSnapshot: p,
		Quantity:        1,
		TaxAmount:       calc.TaxAmount,
		Total:           calc.ItemTotal,
	})
	c.index[p.ProductID] = len(c.items) - 1
	return nil
}

// SetQuantity changes a row's quantity and recomputes its totals. A quantity
// below 1 removes the row, matching the checkout screen's stepper behavior.
func (c *Cart) SetQuantity(productID, quantity int) error {
	i, ok := c.index[productID]
	if !ok {
		return invalidLineItem("product %d is not in the cart", productID)
	}
	if quantity < 1 {
		c.Remove(productID)
		return nil
	}

	item := &c.items[i]
	calc, err := CalculateLineItem(item.Price, quantity, item.TaxSlab)
	if err != nil {
		return err
	}
	item.Quantity = quantity
	item.TaxAmount = calc.TaxAmount
	item.Total = calc.ItemTotal
	return nil
}

// Remove deletes a row, preserving the insertion order of the rest.
func (c *Cart) Remove(productID int) bool {
	i, ok := c.index[productID]
	if !ok {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].ProductID] = j
	}
	return true
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
	c.index = make(map[int]int)
}

// Len returns the number of rows (not total quantity).
func (c *Cart) Len() int {
	return len(c.items)
}

// Items returns a copy of the rows in insertion order.
func (c *Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Totals folds the cart into subtotal, total tax and gross total. An empty
// cart yields all zeros.
func (c *Cart) Totals() CartTotals {
	return AggregateItems(c.items)
}

// AggregateItems sums line items into cart totals. Sums are recomputed from
// price and quantity rather than trusting stored line totals, which defends
// the ledger against stale derived fields.
func AggregateItems(items []CartItem) CartTotals {
	var t CartTotals
	for _, item := range items {
		t.Subtotal += item.Price * float64(item.Quantity)
		t.TotalTax += item.TaxAmount
	}
	t.GrossTotal = t.Subtotal + t.TotalTax
	return t
}

// ValidateItems rejects a cart that must not reach the ledger: no rows, or
// any row with a non-positive quantity, negative price or unknown slab.
func ValidateItems(items []CartItem) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}
	for _, item := range items {
		if _, err := CalculateLineItem(item.Price, item.Quantity, item.TaxSlab); err != nil {
			return err
		}
	}
	return nil
}
