package billing

import (
	"errors"
	"testing"
)

func TestValidateGSTIN(t *testing.T) {
	valid := []string{
		"09ABCDE1234F1Z5",
		"27AAPFU0939F1ZV",
		"07AABCU9603R1ZM",
	}
	for _, g := range valid {
		if !ValidateGSTIN(g) {
			t.Errorf("ValidateGSTIN(%q) = false, want true", g)
		}
	}

	invalid := []string{
		"",
		"09ABCDE1234F1Y5",  // Z missing at position 14
		"9ABCDE1234F1Z5",   // too short
		"09abcde1234F1Z5",  // lowercase PAN letters
		"09ABCDE1234F0Z5",  // entity code 0 not allowed
		"09ABCDE1234F1Z5X", // too long
		"09ABCD11234F1Z5",  // digit inside PAN letters
	}
	for _, g := range invalid {
		if ValidateGSTIN(g) {
			t.Errorf("ValidateGSTIN(%q) = true, want false", g)
		}
	}
}

func TestValidateCustomer(t *testing.T) {
	tests := []struct {
		name     string
		customer CustomerDetails
		wantErr  error
	}{
		{"walk-in with no details", CustomerDetails{State: "Uttar Pradesh"}, nil},
		{"full details", CustomerDetails{Name: "Asha", Phone: "9876543210", GSTIN: "09ABCDE1234F1Z5", State: "Uttar Pradesh"}, nil},
		{"bad phone", CustomerDetails{Phone: "12345"}, ErrMissingCustomerField},
		{"bad gstin", CustomerDetails{GSTIN: "NOTAGSTIN"}, ErrInvalidTaxID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCustomer(tt.customer)
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}
