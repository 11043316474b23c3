//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"ration-slot-booking/internal/domain/booking"
	"ration-slot-booking/internal/domain/stock"
	"ration-slot-booking/internal/infra"
	"ration-slot-booking/internal/infra/repository"
	"ration-slot-booking/internal/testutil/builder"
	"ration-slot-booking/internal/testutil/dbtest"
	"ration-slot-booking/internal/testutil/pgtest"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	pool *pgxpool.Pool
	dir  dbtest.Directory
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}

func (s *RepositoryTestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pool, _ = pgtest.NewDatabase(s.T())
}

func (s *RepositoryTestSuite) SetupTest() {
	s.Require().NoError(dbtest.ResetDB(s.pool))
	s.dir = dbtest.SeedDirectory(s.T(), s.pool)
}

func (s *RepositoryTestSuite) createSlot(b *builder.SlotBuilder) {
	s.Require().NoError(repository.NewSlotRepository(s.pool).Create(s.ctx, b.Build()))
}

// ================================================================================
// Slots
// ================================================================================

func (s *RepositoryTestSuite) TestSlotRoundTrip() {
	b := builder.NewSlotBuilder().WithShopID(s.dir.Shop.ID)
	b.StockLimit = stock.Stock{Rice: 120.5, Wheat: 80.25, Sugar: 10, Kerosene: 4.125}
	s.createSlot(b)

	got, err := repository.NewSlotRepository(s.pool).FindByID(s.ctx, b.ID)
	s.Require().NoError(err)
	s.Equal(b.ShopID, got.ShopID())
	s.Equal("2025-03-01", got.DateString())
	s.Equal(b.TimeWindow, got.TimeWindow().String())
	s.Equal(b.StockLimit, got.StockLimit())
	s.Equal(b.StockLimit, got.AvailableStock())
	s.Equal(int64(1), got.Version())
	s.True(b.Now.Equal(got.CreatedAt()))
}

func (s *RepositoryTestSuite) TestSlotNotFound() {
	_, err := repository.NewSlotRepository(s.pool).FindByID(s.ctx, uuid.New())
	s.True(infra.IsKind(err, infra.KindNotFound))
}

func (s *RepositoryTestSuite) TestUpdateCountersIsCompareAndSwap() {
	b := builder.NewSlotBuilder().WithShopID(s.dir.Shop.ID)
	s.createSlot(b)
	repo := repository.NewSlotRepository(s.pool)
	ent := stock.ComputeEntitlement(4)
	now := b.Now.Add(time.Hour)

	first, err := repo.FindByID(s.ctx, b.ID)
	s.Require().NoError(err)
	stale, err := repo.FindByID(s.ctx, b.ID)
	s.Require().NoError(err)

	s.Require().NoError(first.Reserve(ent, now))
	ok, err := repo.UpdateCounters(s.ctx, first)
	s.Require().NoError(err)
	s.True(ok)

	s.Require().NoError(stale.Reserve(ent, now))
	ok, err = repo.UpdateCounters(s.ctx, stale)
	s.Require().NoError(err)
	s.False(ok, "stale version must not overwrite")

	booked, rice, version := dbtest.SlotCounters(s.T(), s.pool, b.ID)
	s.Equal(1, booked)
	s.Equal(480.0, rice)
	s.Equal(int64(2), version)
}

func (s *RepositoryTestSuite) TestSlotCheckConstraintsGuardCounters() {
	b := builder.NewSlotBuilder().WithShopID(s.dir.Shop.ID).WithCapacity(2, 0)
	s.createSlot(b)

	_, err := s.pool.Exec(s.ctx, "UPDATE slots SET booked_count = 3 WHERE id = $1", b.ID)
	s.Error(err)
	_, err = s.pool.Exec(s.ctx, "UPDATE slots SET available_rice = -1 WHERE id = $1", b.ID)
	s.Error(err)
}

// ================================================================================
// Bookings
// ================================================================================

func (s *RepositoryTestSuite) TestBookingCreateAndUpdateStatus() {
	sb := builder.NewSlotBuilder().WithShopID(s.dir.Shop.ID)
	s.createSlot(sb)
	bb := builder.NewBookingBuilder().ForSlot(sb).With(func(b *builder.BookingBuilder) {
		b.BeneficiaryID = s.dir.Beneficiary.ID
	})
	repo := repository.NewBookingRepository(s.pool)
	s.Require().NoError(repo.Create(s.ctx, bb.Build()))

	got, err := repo.FindByID(s.ctx, bb.ID)
	s.Require().NoError(err)
	s.Equal(booking.StatusConfirmed, got.Status())
	s.Equal(bb.VerificationCode, got.VerificationCode().String())
	s.Equal(bb.Entitlement, got.Entitlement())
	s.Equal("2025-03-01", got.Date().Format(time.DateOnly))

	s.Run("conditional on the previous status", func() {
		s.Require().NoError(got.TransitionTo(booking.StatusCompleted, bb.Now.Add(time.Hour)))
		ok, err := repo.UpdateStatus(s.ctx, got, booking.StatusConfirmed)
		s.Require().NoError(err)
		s.True(ok)

		cancelled := bb.Build()
		s.Require().NoError(cancelled.TransitionTo(booking.StatusCancelled, bb.Now.Add(time.Hour)))
		ok, err = repo.UpdateStatus(s.ctx, cancelled, booking.StatusConfirmed)
		s.Require().NoError(err)
		s.False(ok, "a booking already completed cannot be cancelled")

		stored, err := repo.FindByID(s.ctx, bb.ID)
		s.Require().NoError(err)
		s.Equal(booking.StatusCompleted, stored.Status())
	})

	s.Run("verification codes are unique", func() {
		dup := builder.NewBookingBuilder().ForSlot(sb).With(func(b *builder.BookingBuilder) {
			b.BeneficiaryID = s.dir.Beneficiary.ID
			b.VerificationCode = bb.VerificationCode
		})
		err := repo.Create(s.ctx, dup.Build())
		s.True(infra.IsKind(err, infra.KindDuplicateKey))
	})
}

// ================================================================================
// Outbox
// ================================================================================

func (s *RepositoryTestSuite) TestOutboxLifecycle() {
	repo := repository.NewOutboxRepository(s.pool)
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	s.Require().NoError(repo.Enqueue(s.ctx, "booking.confirmed", []byte(`{"n":1}`), now.Add(-time.Minute)))
	s.Require().NoError(repo.Enqueue(s.ctx, "booking.cancelled", []byte(`{"n":2}`), now.Add(time.Hour)))

	events, err := repo.ClaimPending(s.ctx, now, 10)
	s.Require().NoError(err)
	s.Require().Len(events, 1, "future events are not due")
	s.Equal("booking.confirmed", events[0].Topic)
	s.JSONEq(`{"n":1}`, string(events[0].Payload))
	s.Equal(0, events[0].Attempts)

	s.Require().NoError(repo.MarkRetry(s.ctx, events[0].ID, "broker down", now.Add(time.Minute), now))
	events, err = repo.ClaimPending(s.ctx, now, 10)
	s.Require().NoError(err)
	s.Empty(events)

	events, err = repo.ClaimPending(s.ctx, now.Add(2*time.Minute), 10)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(1, events[0].Attempts)

	s.Require().NoError(repo.MarkSent(s.ctx, events[0].ID, now))
	events, err = repo.ClaimPending(s.ctx, now.Add(2*time.Hour), 10)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal("booking.cancelled", events[0].Topic)

	s.Require().NoError(repo.MarkFailed(s.ctx, events[0].ID, "poison", now))
	events, err = repo.ClaimPending(s.ctx, now.Add(24*time.Hour), 10)
	s.Require().NoError(err)
	s.Empty(events)
}
