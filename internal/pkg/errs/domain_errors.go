package errs

import "errors"

// Error taxonomy shared by the use cases. Lower layers keep their own
// sentinels and are marked with one of these on the way up, so handlers can
// map outcomes with errs.Is and still reach the original cause.
var (
	ErrValidation              = errors.New("validation error")
	ErrForbidden               = errors.New("forbidden")
	ErrNotFound                = errors.New("not found")
	ErrCapacityExceeded        = errors.New("capacity exceeded")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrShopNotApproved         = errors.New("shop is not approved")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrConflictRetryable       = errors.New("concurrent update conflict, retry later")
)
