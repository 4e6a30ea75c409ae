package billing

import "fmt"

// ValidationError is a rejected commit or cart mutation. The Reason is stable
// and safe to switch on; Detail is operator-facing text.
type ValidationError struct {
	Reason string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

// Is matches two validation errors by reason so callers can use errors.Is
// against the sentinel values below regardless of detail text.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Reason == e.Reason
}

var (
	ErrEmptyCart            = &ValidationError{Reason: "EmptyCart", Detail: "cart has no items"}
	ErrNoShopConfig         = &ValidationError{Reason: "NoShopConfig", Detail: "shop settings are not configured"}
	ErrInvalidLineItem      = &ValidationError{Reason: "InvalidLineItem"}
	ErrInvalidTaxID         = &ValidationError{Reason: "InvalidTaxId", Detail: "GSTIN does not match the required format"}
	ErrMissingCustomerField = &ValidationError{Reason: "MissingRequiredCustomerField"}
)

func invalidLineItem(format string, args ...interface{}) error {
	return &ValidationError{Reason: ErrInvalidLineItem.Reason, Detail: fmt.Sprintf(format, args...)}
}
