//go:build integration

package readstore_test

import (
	"context"
	"testing"
	"time"

	"ration-slot-booking/internal/infra"
	"ration-slot-booking/internal/infra/readstore"
	"ration-slot-booking/internal/infra/repository"
	"ration-slot-booking/internal/testutil/builder"
	"ration-slot-booking/internal/testutil/dbtest"
	"ration-slot-booking/internal/testutil/pgtest"
	"ration-slot-booking/internal/usecase/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
)

var viewOpts = []cmp.Option{
	cmpopts.EquateApproxTime(time.Second),
}

type ReadStoreTestSuite struct {
	suite.Suite
	ctx  context.Context
	pool *pgxpool.Pool
	dir  dbtest.Directory
}

func TestReadStoreSuite(t *testing.T) {
	suite.Run(t, new(ReadStoreTestSuite))
}

func (s *ReadStoreTestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pool, _ = pgtest.NewDatabase(s.T())
}

func (s *ReadStoreTestSuite) SetupTest() {
	s.Require().NoError(dbtest.ResetDB(s.pool))
	s.dir = dbtest.SeedDirectory(s.T(), s.pool)
}

func (s *ReadStoreTestSuite) insertSlot(b *builder.SlotBuilder) {
	s.Require().NoError(repository.NewSlotRepository(s.pool).Create(s.ctx, b.Build()))
}

func (s *ReadStoreTestSuite) insertBooking(b *builder.BookingBuilder) {
	s.Require().NoError(repository.NewBookingRepository(s.pool).Create(s.ctx, b.Build()))
}

func (s *ReadStoreTestSuite) TestSlots() {
	store := readstore.NewSlotReadStore(s.pool)

	late := builder.NewSlotBuilder().WithShopID(s.dir.Shop.ID).With(func(b *builder.SlotBuilder) {
		b.Date = "2025-03-02"
	})
	afternoon := builder.NewSlotBuilder().WithShopID(s.dir.Shop.ID).With(func(b *builder.SlotBuilder) {
		b.TimeWindow = "14:00-16:00"
	})
	morning := builder.NewSlotBuilder().WithShopID(s.dir.Shop.ID)
	for _, b := range []*builder.SlotBuilder{late, afternoon, morning} {
		s.insertSlot(b)
	}

	s.Run("by shop orders by date then window", func() {
		got, err := store.FindByShop(s.ctx, s.dir.Shop.ID)
		s.Require().NoError(err)
		s.Require().Len(got, 3)
		s.Equal([]uuid.UUID{morning.ID, afternoon.ID, late.ID}, []uuid.UUID{got[0].ID, got[1].ID, got[2].ID})
	})

	s.Run("by id maps every column", func() {
		got, err := store.FindByID(s.ctx, morning.ID)
		s.Require().NoError(err)
		if diff := cmp.Diff(morning.BuildView(), got, viewOpts...); diff != "" {
			s.Failf("slot view mismatch", "(-want +got):\n%s", diff)
		}
	})

	s.Run("another shop has none", func() {
		got, err := store.FindByShop(s.ctx, uuid.New())
		s.Require().NoError(err)
		s.Empty(got)
	})

	s.Run("all", func() {
		got, err := store.FindAll(s.ctx)
		s.Require().NoError(err)
		s.Len(got, 3)
	})

	s.Run("unknown id", func() {
		_, err := store.FindByID(s.ctx, uuid.New())
		s.True(infra.IsKind(err, infra.KindNotFound))
	})
}

func (s *ReadStoreTestSuite) TestBookings() {
	store := readstore.NewBookingReadStore(s.pool)
	sb := builder.NewSlotBuilder().WithShopID(s.dir.Shop.ID)
	s.insertSlot(sb)

	older := builder.NewBookingBuilder().ForSlot(sb).With(func(b *builder.BookingBuilder) {
		b.BeneficiaryID = s.dir.Beneficiary.ID
	})
	newer := builder.NewBookingBuilder().ForSlot(sb).With(func(b *builder.BookingBuilder) {
		b.BeneficiaryID = s.dir.Beneficiary.ID
		b.Now = b.Now.Add(time.Hour)
		b.VerificationCode += "-2"
	})
	s.insertBooking(older)
	s.insertBooking(newer)

	s.Run("by user, newest first", func() {
		got, err := store.FindByUser(s.ctx, s.dir.Beneficiary.ID)
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal(newer.ID, got[0].ID)
		s.Equal(older.ID, got[1].ID)
	})

	s.Run("by shop", func() {
		got, err := store.FindByShop(s.ctx, s.dir.Shop.ID)
		s.Require().NoError(err)
		s.Len(got, 2)
	})

	s.Run("by id maps every column", func() {
		got, err := store.FindByID(s.ctx, older.ID)
		s.Require().NoError(err)
		if diff := cmp.Diff(older.BuildView(), got, viewOpts...); diff != "" {
			s.Failf("booking view mismatch", "(-want +got):\n%s", diff)
		}
	})

	s.Run("verify by code", func() {
		got, err := store.FindByShopAndCode(s.ctx, s.dir.Shop.ID, older.VerificationCode)
		s.Require().NoError(err)
		s.Equal(older.ID, got.ID)
	})

	s.Run("verify by booking id", func() {
		got, err := store.FindByShopAndCode(s.ctx, s.dir.Shop.ID, newer.ID.String())
		s.Require().NoError(err)
		s.Equal(newer.ID, got.ID)
	})

	s.Run("verify is scoped to the shop", func() {
		_, err := store.FindByShopAndCode(s.ctx, uuid.New(), older.VerificationCode)
		s.True(infra.IsKind(err, infra.KindNotFound))
	})
}

func (s *ReadStoreTestSuite) TestDirectory() {
	s.Run("user", func() {
		got, err := readstore.NewUserReadStore(s.pool).FindByID(s.ctx, s.dir.Beneficiary.ID)
		s.Require().NoError(err)
		if diff := cmp.Diff(s.dir.Beneficiary.BuildView(), got); diff != "" {
			s.Failf("user view mismatch", "(-want +got):\n%s", diff)
		}
	})

	s.Run("user without household size", func() {
		u := builder.NewUserBuilder().WithFamily(nil)
		dbtest.InsertUser(s.T(), s.pool, u)

		got, err := readstore.NewUserReadStore(s.pool).FindByID(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Nil(got.FamilyMembers)
	})

	s.Run("shop", func() {
		got, err := readstore.NewShopReadStore(s.pool).FindByID(s.ctx, s.dir.Shop.ID)
		s.Require().NoError(err)
		if diff := cmp.Diff(s.dir.Shop.BuildView(), got); diff != "" {
			s.Failf("shop view mismatch", "(-want +got):\n%s", diff)
		}
	})

	s.Run("unknown shop", func() {
		_, err := readstore.NewShopReadStore(s.pool).FindByID(s.ctx, uuid.New())
		s.True(infra.IsKind(err, infra.KindNotFound))
	})
}

var _ queries.SlotReadStore = (*readstore.SlotReadStore)(nil)
