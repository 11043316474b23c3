package commands

import (
	"errors"

	"ration-slot-booking/internal/domain/booking"
	"ration-slot-booking/internal/domain/slot"
	"ration-slot-booking/internal/infra"
	"ration-slot-booking/internal/pkg/errs"
)

// errWriteConflict aborts a transaction whose conditional write lost a race.
// It never leaves this package; callers see ErrConflictRetryable once the
// retry budget is spent.
var errWriteConflict = errs.New("conditional write lost to a concurrent update")

func notFound(err error, what string) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(errs.Wrap(err, what+" not found"), errs.ErrNotFound)
	}
	return errs.Wrap(err, "load "+what)
}

func forbidden(msg string) error {
	return errs.Mark(errs.New(msg), errs.ErrForbidden)
}

func invalid(err error) error {
	return errs.Mark(err, errs.ErrValidation)
}

// admissionErr lifts slot and booking rule violations into the shared
// taxonomy while keeping the cause reachable through errors.As.
func admissionErr(err error) error {
	switch {
	case errors.Is(err, slot.ErrCapacityExceeded):
		return errs.Mark(err, errs.ErrCapacityExceeded)
	case errors.Is(err, slot.ErrInsufficientStock):
		return errs.Mark(err, errs.ErrInsufficientStock)
	case errors.Is(err, booking.ErrInvalidStatusTransition), errors.Is(err, slot.ErrReleaseEmptySlot):
		return errs.Mark(err, errs.ErrInvalidStatusTransition)
	default:
		return invalid(err)
	}
}
