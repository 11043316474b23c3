package api

import (
	"net/http"

	"ration-slot-booking/internal/domain/slot"
	"ration-slot-booking/internal/handler/httperr"
	"ration-slot-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// retryAfterSeconds is advertised when a reservation gave up after losing
// too many races on the same slot.
const retryAfterSeconds = 1

// respondError maps the use case error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", err.Error())
	case errs.Is(err, errs.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Forbidden", nil)
	case errs.Is(err, errs.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errs.Is(err, errs.ErrCapacityExceeded):
		httperr.AbortWithError(c, http.StatusConflict, err, "Slot is fully booked", nil)
	case errs.Is(err, errs.ErrInsufficientStock):
		var detail any
		var stockErr *slot.InsufficientStockError
		if errs.As(err, &stockErr) {
			detail = gin.H{"short_goods": stockErr.Short}
		}
		httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient stock for this slot", detail)
	case errs.Is(err, errs.ErrShopNotApproved):
		httperr.AbortWithError(c, http.StatusConflict, err, "Shop is not accepting bookings", nil)
	case errs.Is(err, errs.ErrInvalidStatusTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Invalid status transition", nil)
	case errs.Is(err, errs.ErrConflictRetryable):
		httperr.AbortRetryable(c, http.StatusServiceUnavailable, err, "Slot is busy, please retry", retryAfterSeconds, nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func badRequest(c *gin.Context, err error, msg string) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, msg, nil)
}

func unauthorized(c *gin.Context) {
	httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("actor missing from context"), "Unauthorized", nil)
}
