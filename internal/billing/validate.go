package billing

import "regexp"

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// CustomerDetails is the point-in-time snapshot captured into an invoice.
// There is no standalone customer record; this is all the invoice keeps.
type CustomerDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
	State   string `json:"state"`
}

// ValidateCustomer checks the snapshot before checkout. Name and phone are
// optional for walk-in sales but must be well-formed when given; a GSTIN, if
// present, must match the statutory format.
func ValidateCustomer(c CustomerDetails) error {
	if c.Phone != "" && !phonePattern.MatchString(c.Phone) {
		return &ValidationError{
			Reason: ErrMissingCustomerField.Reason,
			Detail: "phone must be a 10-digit number",
		}
	}
	if c.GSTIN != "" && !ValidateGSTIN(c.GSTIN) {
		return ErrInvalidTaxID
	}
	return nil
}
