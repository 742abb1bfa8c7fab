package mandate

import "errors"

// Failures of the mandate chain. None of them poison session state; the
// caller can retry the operation after fixing its input.
var (
	ErrEmptyCart              = errors.New("cart is empty, nothing to checkout")
	ErrNoDefaultPaymentMethod = errors.New("user has no default payment method")
	ErrMandateNotApproved     = errors.New("cart mandate is not approved")
	ErrMandateMismatch        = errors.New("payment mandate does not reference this cart mandate")
	ErrMandateNotFound        = errors.New("mandate not found")
)
