package shared

import (
	"context"
	"time"

	"ration-slot-booking/internal/domain/booking"
	"ration-slot-booking/internal/domain/shop"
	"ration-slot-booking/internal/domain/slot"
	"ration-slot-booking/internal/domain/user"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Slots() SlotRepository
	Bookings() BookingRepository
	Outbox() OutboxRepository
	Reads() CommandReads
}

type CommandReads interface {
	UserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	ShopByID(ctx context.Context, id uuid.UUID) (*shop.Shop, error)
	SlotByID(ctx context.Context, id uuid.UUID) (*slot.Slot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
}

type SlotRepository interface {
	Create(ctx context.Context, s *slot.Slot) error
	// UpdateCounters writes booked count and available stock only if the row
	// still carries s.Version(). It reports false when another writer got there
	// first.
	UpdateCounters(ctx context.Context, s *slot.Slot) (bool, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// UpdateStatus writes b's status only if the stored row is still in from.
	UpdateStatus(ctx context.Context, b *booking.Booking, from booking.Status) (bool, error)
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, topic string, payload []byte, runAt time.Time) error
}
