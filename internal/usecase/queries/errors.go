package queries

import (
	"ration-slot-booking/internal/infra"
	"ration-slot-booking/internal/pkg/errs"
)

func notFound(err error, what string) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(errs.Wrap(err, what+" not found"), errs.ErrNotFound)
	}
	return errs.Wrap(err, "read "+what)
}

func forbidden(msg string) error {
	return errs.Mark(errs.New(msg), errs.ErrForbidden)
}
