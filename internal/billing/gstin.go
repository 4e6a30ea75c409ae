package billing

import "regexp"

// gstinPattern: 2-digit state code, 5-letter PAN prefix, 4 digits, 1 letter,
// 1 entity code, literal Z, 1 checksum character.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)

// ValidateGSTIN reports whether s is a structurally valid 15-character GSTIN.
// It checks format only, not the checksum digit.
func ValidateGSTIN(s string) bool {
	return gstinPattern.MatchString(s)
}
