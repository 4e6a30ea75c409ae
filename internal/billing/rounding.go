package billing

import "math"

// RoundToNearestRupee rounds a gross total to the nearest whole rupee and
// returns the signed adjustment. Ties round half away from zero (236.50 pays
// 237, a -0.50 adjustment never appears on an exact half). The adjustment
// always satisfies |diff| < 1 and rounding an already-round amount is a no-op.
func RoundToNearestRupee(amount float64) (rounded float64, diff float64) {
	rounded = math.Round(amount)
	return rounded, rounded - amount
}
