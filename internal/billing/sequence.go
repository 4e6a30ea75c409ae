package billing

import "fmt"

// FormatInvoiceNumber renders the human-facing invoice number for a counter
// value: prefix, a dash, and the number zero-padded to 4 digits. Numbers past
// 9999 widen instead of truncating. Pure formatting; the counter itself only
// moves inside the ledger's commit transaction.
func FormatInvoiceNumber(prefix string, next int) string {
	return fmt.Sprintf("%s-%04d", prefix, next)
}
