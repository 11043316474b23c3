package queries

import (
	"context"
	"log/slog"
	"strings"

	"ration-slot-booking/internal/infra"
	"ration-slot-booking/internal/pkg/errs"
	"ration-slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../../mock/queries/queries_mock.go -package=queriesmock ration-slot-booking/internal/usecase/queries BookingQueries,BookingReadStore,EntitlementQueries,ShopReadStore,SlotQueries,SlotReadStore,UserReadStore

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
	FindByShop(ctx context.Context, shopID uuid.UUID) ([]*BookingView, error)
	FindAll(ctx context.Context) ([]*BookingView, error)
	// FindByShopAndCode matches code against either the booking id or the
	// verification code, within one shop only.
	FindByShopAndCode(ctx context.Context, shopID uuid.UUID, code string) (*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, actor shared.Actor, userID uuid.UUID) ([]*BookingView, error)
	ListByShop(ctx context.Context, actor shared.Actor, shopID uuid.UUID) ([]*BookingView, error)
	ListAll(ctx context.Context, actor shared.Actor) ([]*BookingView, error)
	Verify(ctx context.Context, actor shared.Actor, code string) (*BookingView, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	logger   *slog.Logger
}

func NewBookingQueries(bookings BookingReadStore, logger *slog.Logger) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, logger: logger}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error) {
	v, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "booking")
	}
	if !actor.IsAdmin() && !actor.KeepsShop(v.ShopID) && v.BeneficiaryID != actor.UserID {
		return nil, forbidden("booking belongs to another user")
	}
	return v, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, actor shared.Actor, userID uuid.UUID) ([]*BookingView, error) {
	if !actor.IsAdmin() && !(actor.IsBeneficiary() && actor.UserID == userID) {
		return nil, forbidden("cannot list another user's bookings")
	}
	return q.bookings.FindByUser(ctx, userID)
}

func (q *bookingQueriesImpl) ListByShop(ctx context.Context, actor shared.Actor, shopID uuid.UUID) ([]*BookingView, error) {
	if !actor.IsAdmin() && !actor.KeepsShop(shopID) {
		return nil, forbidden("cannot list another shop's bookings")
	}
	return q.bookings.FindByShop(ctx, shopID)
}

func (q *bookingQueriesImpl) ListAll(ctx context.Context, actor shared.Actor) ([]*BookingView, error) {
	if !actor.IsAdmin() {
		return nil, forbidden("only admins can list every booking")
	}
	return q.bookings.FindAll(ctx)
}

// Verify looks a booking up by id or verification code at the actor's own
// shop. Bookings at other shops are reported as not found.
func (q *bookingQueriesImpl) Verify(ctx context.Context, actor shared.Actor, code string) (*BookingView, error) {
	if actor.ShopID == nil || !actor.KeepsShop(*actor.ShopID) {
		return nil, forbidden("only shopkeepers can verify bookings")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errs.Mark(errs.New("verification code is required"), errs.ErrValidation)
	}

	v, err := q.bookings.FindByShopAndCode(ctx, *actor.ShopID, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			q.logger.Info("verification code not found",
				slog.String("shop_id", actor.ShopID.String()),
				slog.String("code", code))
		}
		return nil, notFound(err, "booking")
	}
	return v, nil
}
