package commands

import (
	"context"
	"log/slog"

	"ration-slot-booking/internal/domain/booking"
	"ration-slot-booking/internal/domain/shop"
	"ration-slot-booking/internal/domain/stock"
	"ration-slot-booking/internal/domain/user"
	"ration-slot-booking/internal/infra"
	"ration-slot-booking/internal/pkg/clock"
	"ration-slot-booking/internal/pkg/config"
	"ration-slot-booking/internal/pkg/errs"
	"ration-slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=../../mock/commands/commands_mock.go -package=commandsmock ration-slot-booking/internal/usecase/commands BookingCommands,SlotCommands

type ReserveInput struct {
	ShopID uuid.UUID
	SlotID uuid.UUID
}

type ReserveResult struct {
	BookingID        uuid.UUID
	VerificationCode string
	Attempts         int
}

type BookingCommands interface {
	Reserve(ctx context.Context, actor shared.Actor, in ReserveInput) (*ReserveResult, error)
	UpdateStatus(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, status string) error
}

type bookingUseCaseImpl struct {
	uow         shared.UnitOfWork
	clock       clock.Clock
	maxAttempts int
	logger      *slog.Logger
}

func NewBookingUseCase(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config, logger *slog.Logger) BookingCommands {
	attempts := cfg.Booking.MaxReserveAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &bookingUseCaseImpl{uow: uow, clock: clk, maxAttempts: attempts, logger: logger}
}

// Reserve books the beneficiary's full entitlement against one slot. The
// slot counters, the booking row and its outbox event commit together or not
// at all. Losing a race on the slot re-runs the whole check against fresh
// data; it never overwrites.
func (uc *bookingUseCaseImpl) Reserve(ctx context.Context, actor shared.Actor, in ReserveInput) (*ReserveResult, error) {
	if !actor.IsBeneficiary() {
		return nil, forbidden("only beneficiaries can book slots")
	}

	reads := uc.uow.CommandReads()
	beneficiary, err := reads.UserByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFound(err, "beneficiary")
	}
	entitlement, err := beneficiary.Entitlement()
	if err != nil {
		return nil, invalid(err)
	}

	sh, err := reads.ShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, notFound(err, "shop")
	}
	if !sh.AcceptsBookings() {
		return nil, errs.Mark(errs.New("shop "+sh.ID().String()+" is "+string(sh.Status())), errs.ErrShopNotApproved)
	}

	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		var created *booking.Booking
		err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			b, txErr := uc.reserveOnce(ctx, tx, beneficiary, entitlement, sh, in)
			if txErr != nil {
				return txErr
			}
			created = b
			return nil
		})
		if err == nil {
			uc.logger.Info("slot reserved",
				slog.String("booking_id", created.ID().String()),
				slog.String("slot_id", in.SlotID.String()),
				slog.String("beneficiary_id", actor.UserID.String()),
				slog.Int("attempt", attempt))
			return &ReserveResult{
				BookingID:        created.ID(),
				VerificationCode: created.VerificationCode().String(),
				Attempts:         attempt,
			}, nil
		}
		if !errs.Is(err, errWriteConflict) {
			return nil, err
		}
		uc.logger.Warn("slot reservation lost a race, retrying",
			slog.String("slot_id", in.SlotID.String()),
			slog.Int("attempt", attempt))
	}

	return nil, errs.Mark(errs.Wrap(err, "reserve slot "+in.SlotID.String()), errs.ErrConflictRetryable)
}

func (uc *bookingUseCaseImpl) reserveOnce(ctx context.Context, tx shared.Tx, beneficiary *user.User, entitlement stock.Stock, sh *shop.Shop, in ReserveInput) (*booking.Booking, error) {
	s, err := tx.Reads().SlotByID(ctx, in.SlotID)
	if err != nil {
		return nil, notFound(err, "slot")
	}
	if !s.BelongsTo(in.ShopID) {
		return nil, errs.Mark(errs.New("slot "+in.SlotID.String()+" is not offered by shop "+in.ShopID.String()), errs.ErrNotFound)
	}

	now := uc.clock.Now()
	if err = s.Reserve(entitlement, now); err != nil {
		return nil, admissionErr(err)
	}

	b, err := booking.NewBooking(
		booking.Party{ID: beneficiary.ID(), Name: beneficiary.Name()},
		booking.Party{ID: sh.ID(), Name: sh.Name()},
		s, entitlement, now,
	)
	if err != nil {
		return nil, invalid(err)
	}

	applied, err := tx.Slots().UpdateCounters(ctx, s)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, errWriteConflict
	}

	if err = tx.Bookings().Create(ctx, b); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			// verification code collision; a retry mints a new one
			return nil, errs.Mark(err, errWriteConflict)
		}
		return nil, err
	}

	if err = enqueueBookingEvent(ctx, tx, shared.TopicBookingConfirmed, b, now); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateStatus completes or cancels a confirmed booking. Cancelling hands
// the entitlement and one unit of capacity back to the slot in the same
// transaction.
func (uc *bookingUseCaseImpl) UpdateStatus(ctx context.Context, actor shared.Actor, bookingID uuid.UUID, status string) error {
	next, err := booking.NewStatus(status)
	if err != nil {
		return invalid(err)
	}

	for attempt := 1; attempt <= uc.maxAttempts; attempt++ {
		err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return uc.transitionOnce(ctx, tx, actor, bookingID, next)
		})
		if err == nil {
			uc.logger.Info("booking status updated",
				slog.String("booking_id", bookingID.String()),
				slog.String("status", next.String()),
				slog.String("actor_id", actor.UserID.String()))
			return nil
		}
		if !errs.Is(err, errWriteConflict) {
			return err
		}
		uc.logger.Warn("booking status update lost a race, retrying",
			slog.String("booking_id", bookingID.String()),
			slog.Int("attempt", attempt))
	}

	return errs.Mark(errs.Wrap(err, "update booking "+bookingID.String()), errs.ErrConflictRetryable)
}

func (uc *bookingUseCaseImpl) transitionOnce(ctx context.Context, tx shared.Tx, actor shared.Actor, bookingID uuid.UUID, next booking.Status) error {
	b, err := tx.Reads().BookingByID(ctx, bookingID)
	if err != nil {
		return notFound(err, "booking")
	}
	if !canTransition(actor, b, next) {
		return forbidden("actor may not move booking to " + next.String())
	}

	from := b.Status()
	now := uc.clock.Now()
	if err = b.TransitionTo(next, now); err != nil {
		return admissionErr(err)
	}

	applied, err := tx.Bookings().UpdateStatus(ctx, b, from)
	if err != nil {
		return err
	}
	if !applied {
		return errWriteConflict
	}

	if booking.ReleasesStock(next) {
		s, err := tx.Reads().SlotByID(ctx, b.SlotID())
		if err != nil {
			return notFound(err, "slot")
		}
		if err = s.Release(b.Entitlement(), now); err != nil {
			return admissionErr(err)
		}
		applied, err = tx.Slots().UpdateCounters(ctx, s)
		if err != nil {
			return err
		}
		if !applied {
			return errWriteConflict
		}
	}

	topic := shared.TopicBookingCompleted
	if next == booking.StatusCancelled {
		topic = shared.TopicBookingCancelled
	}
	return enqueueBookingEvent(ctx, tx, topic, b, now)
}

func canTransition(actor shared.Actor, b *booking.Booking, next booking.Status) bool {
	if actor.IsAdmin() || actor.KeepsShop(b.Shop().ID) {
		return true
	}
	return next == booking.StatusCancelled && actor.IsBeneficiary() && b.Beneficiary().ID == actor.UserID
}
