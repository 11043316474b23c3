//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"ration-slot-booking/internal/domain/booking"
	"ration-slot-booking/internal/domain/shop"
	"ration-slot-booking/internal/domain/slot"
	"ration-slot-booking/internal/domain/user"
	"ration-slot-booking/internal/infra"
	"ration-slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type outboxEvent struct {
	topic   string
	payload []byte
}

// memUoW keeps committed state in maps and stages each transaction's writes
// until fn returns nil. The first conditional write takes a store-wide write
// lock held until the transaction ends, so a second writer blocks and then
// sees the committed version, as a row lock would.
type memUoW struct {
	mu       sync.Mutex
	writeMu  sync.Mutex
	users    map[uuid.UUID]*user.User
	shops    map[uuid.UUID]*shop.Shop
	slots    map[uuid.UUID]*slot.Slot
	bookings map[uuid.UUID]*booking.Booking
	events   []outboxEvent

	// forcedConflicts makes that many UpdateCounters calls report a lost race.
	forcedConflicts int
	// duplicateCodes makes that many booking inserts fail as a unique violation.
	duplicateCodes int
	// slotReadBarrier, when set, holds transactional slot reads until the
	// given number of readers arrived.
	slotReadBarrier *barrier

	withinCalls int
}

func newMemUoW() *memUoW {
	return &memUoW{
		users:    map[uuid.UUID]*user.User{},
		shops:    map[uuid.UUID]*shop.Shop{},
		slots:    map[uuid.UUID]*slot.Slot{},
		bookings: map[uuid.UUID]*booking.Booking{},
	}
}

func (u *memUoW) putUser(x *user.User)          { u.users[x.ID()] = x }
func (u *memUoW) putShop(x *shop.Shop)          { u.shops[x.ID()] = x }
func (u *memUoW) putSlot(x *slot.Slot)          { u.slots[x.ID()] = cloneSlot(x, x.Version()) }
func (u *memUoW) putBooking(x *booking.Booking) { u.bookings[x.ID()] = cloneBooking(x) }

func (u *memUoW) slot(id uuid.UUID) *slot.Slot {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.slots[id]
}

func (u *memUoW) booking(id uuid.UUID) *booking.Booking {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.bookings[id]
}

func (u *memUoW) bookingCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.bookings)
}

func (u *memUoW) topics() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]string, 0, len(u.events))
	for _, e := range u.events {
		out = append(out, e.topic)
	}
	return out
}

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	u.withinCalls++
	u.mu.Unlock()

	tx := &memTx{
		uow:      u,
		slots:    map[uuid.UUID]*slot.Slot{},
		bookings: map[uuid.UUID]*booking.Booking{},
	}
	defer tx.releaseLock()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	for id, s := range tx.slots {
		u.slots[id] = s
	}
	for id, b := range tx.bookings {
		u.bookings[id] = b
	}
	u.events = append(u.events, tx.events...)
	return nil
}

func (u *memUoW) CommandReads() shared.CommandReads {
	return &memReads{uow: u}
}

type memTx struct {
	uow      *memUoW
	locked   bool
	slots    map[uuid.UUID]*slot.Slot
	bookings map[uuid.UUID]*booking.Booking
	events   []outboxEvent
}

func (t *memTx) lock() {
	if !t.locked {
		t.uow.writeMu.Lock()
		t.locked = true
	}
}

func (t *memTx) releaseLock() {
	if t.locked {
		t.uow.writeMu.Unlock()
		t.locked = false
	}
}

func (t *memTx) Slots() shared.SlotRepository       { return (*memSlotRepo)(t) }
func (t *memTx) Bookings() shared.BookingRepository { return (*memBookingRepo)(t) }
func (t *memTx) Outbox() shared.OutboxRepository    { return (*memOutboxRepo)(t) }
func (t *memTx) Reads() shared.CommandReads         { return &memReads{uow: t.uow, tx: t} }

type memSlotRepo memTx

func (r *memSlotRepo) Create(_ context.Context, s *slot.Slot) error {
	r.slots[s.ID()] = cloneSlot(s, s.Version())
	return nil
}

func (r *memSlotRepo) UpdateCounters(_ context.Context, s *slot.Slot) (bool, error) {
	t := (*memTx)(r)
	t.lock()

	u := t.uow
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.forcedConflicts > 0 {
		u.forcedConflicts--
		return false, nil
	}
	current, ok := t.slots[s.ID()]
	if !ok {
		current, ok = u.slots[s.ID()]
	}
	if !ok || current.Version() != s.Version() {
		return false, nil
	}
	t.slots[s.ID()] = cloneSlot(s, s.Version()+1)
	return true, nil
}

type memBookingRepo memTx

func (r *memBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	u := r.uow
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.duplicateCodes > 0 {
		u.duplicateCodes--
		return infra.WrapRepoErr(context.Background(), "insert booking", nil, infra.KindDuplicateKey)
	}
	r.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, b *booking.Booking, from booking.Status) (bool, error) {
	t := (*memTx)(r)
	t.lock()

	u := t.uow
	u.mu.Lock()
	defer u.mu.Unlock()

	current, ok := u.bookings[b.ID()]
	if !ok || current.Status() != from {
		return false, nil
	}
	t.bookings[b.ID()] = cloneBooking(b)
	return true, nil
}

type memOutboxRepo memTx

func (r *memOutboxRepo) Enqueue(_ context.Context, topic string, payload []byte, _ time.Time) error {
	r.events = append(r.events, outboxEvent{topic: topic, payload: payload})
	return nil
}

type memReads struct {
	uow *memUoW
	tx  *memTx
}

func notFoundErr(what string) error {
	return infra.WrapRepoErr(context.Background(), "find "+what, nil, infra.KindNotFound)
}

func (r *memReads) UserByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	if x, ok := r.uow.users[id]; ok {
		return x, nil
	}
	return nil, notFoundErr("user")
}

func (r *memReads) ShopByID(_ context.Context, id uuid.UUID) (*shop.Shop, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	if x, ok := r.uow.shops[id]; ok {
		return x, nil
	}
	return nil, notFoundErr("shop")
}

func (r *memReads) SlotByID(_ context.Context, id uuid.UUID) (*slot.Slot, error) {
	if r.tx != nil && r.uow.slotReadBarrier != nil {
		r.uow.slotReadBarrier.arrive()
	}

	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	if r.tx != nil {
		if x, ok := r.tx.slots[id]; ok {
			return cloneSlot(x, x.Version()), nil
		}
	}
	if x, ok := r.uow.slots[id]; ok {
		return cloneSlot(x, x.Version()), nil
	}
	return nil, notFoundErr("slot")
}

func (r *memReads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.uow.mu.Lock()
	defer r.uow.mu.Unlock()
	if x, ok := r.uow.bookings[id]; ok {
		return cloneBooking(x), nil
	}
	return nil, notFoundErr("booking")
}

func cloneSlot(s *slot.Slot, version int64) *slot.Slot {
	return slot.ReconstructSlot(
		s.ID(), s.ShopID(), s.Date(), s.TimeWindow().String(),
		s.MaxCapacity(), s.BookedCount(),
		s.StockLimit(), s.AvailableStock(),
		version, s.CreatedAt(), s.UpdatedAt(),
	)
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	return booking.ReconstructBooking(
		b.ID(), b.Beneficiary(), b.Shop(), b.SlotID(), b.Date(), b.TimeWindow(),
		b.Entitlement(), b.Status(), b.VerificationCode().String(),
		b.CreatedAt(), b.UpdatedAt(),
	)
}

// barrier releases everyone once n goroutines arrived. Later arrivals pass
// straight through.
type barrier struct {
	mu      sync.Mutex
	n       int
	arrived int
	release chan struct{}
}

func newBarrier(n int) *barrier {
	return &barrier{n: n, release: make(chan struct{})}
}

func (b *barrier) arrive() {
	b.mu.Lock()
	if b.arrived >= b.n {
		b.mu.Unlock()
		return
	}
	b.arrived++
	if b.arrived == b.n {
		close(b.release)
	}
	b.mu.Unlock()
	<-b.release
}
