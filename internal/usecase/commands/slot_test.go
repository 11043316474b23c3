//go:build unit

package commands_test

import (
	"context"
	"testing"

	"ration-slot-booking/internal/domain/slot"
	"ration-slot-booking/internal/domain/stock"
	"ration-slot-booking/internal/pkg/clock"
	"ration-slot-booking/internal/pkg/errs"
	"ration-slot-booking/internal/testutil/builder"
	"ration-slot-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSlot(t *testing.T) {
	ctx := context.Background()

	setup := func() (*memUoW, commands.SlotCommands, *builder.ShopBuilder, *builder.UserBuilder) {
		uow := newMemUoW()
		sh := builder.NewShopBuilder()
		keeper := builder.NewUserBuilder().AsShopkeeper(sh.ID)
		uow.putShop(sh.BuildDomain())
		uow.putUser(keeper.BuildDomain())
		return uow, commands.NewSlotUseCase(uow, clock.NewMockClock(fixedNow), discardLogger()), sh, keeper
	}

	input := commands.CreateSlotInput{
		Date:        "2025-03-05",
		TimeWindow:  "14:00-16:00",
		MaxCapacity: 25,
		StockLimit:  stock.Stock{Rice: 600, Wheat: 300, Sugar: 120, Kerosene: 80},
	}

	t.Run("success: slot opens with full stock available", func(t *testing.T) {
		uow, uc, sh, keeper := setup()

		res, err := uc.CreateSlot(ctx, keeper.BuildActor(), sh.ID, input)
		require.NoError(t, err)

		created := uow.slot(res.SlotID)
		require.NotNil(t, created)
		assert.Equal(t, sh.ID, created.ShopID())
		assert.Equal(t, "2025-03-05", created.DateString())
		assert.Equal(t, "14:00-16:00", created.TimeWindow().String())
		assert.Equal(t, 25, created.MaxCapacity())
		assert.Equal(t, 0, created.BookedCount())
		assert.Equal(t, input.StockLimit, created.StockLimit())
		assert.Equal(t, input.StockLimit, created.AvailableStock())
		assert.Equal(t, fixedNow, created.CreatedAt())
	})

	t.Run("success: identical date and window may be created twice", func(t *testing.T) {
		uow, uc, sh, keeper := setup()

		first, err := uc.CreateSlot(ctx, keeper.BuildActor(), sh.ID, input)
		require.NoError(t, err)
		second, err := uc.CreateSlot(ctx, keeper.BuildActor(), sh.ID, input)
		require.NoError(t, err)

		assert.NotEqual(t, first.SlotID, second.SlotID)
		assert.NotNil(t, uow.slot(second.SlotID))
	})

	t.Run("error: only the shop's own shopkeeper", func(t *testing.T) {
		_, uc, sh, _ := setup()

		actors := []*builder.UserBuilder{
			builder.NewUserBuilder(),
			builder.NewUserBuilder().AsAdmin(),
			builder.NewUserBuilder().AsShopkeeper(uuid.New()),
		}
		for _, a := range actors {
			_, err := uc.CreateSlot(ctx, a.BuildActor(), sh.ID, input)
			assert.True(t, errs.Is(err, errs.ErrForbidden), "role %s", a.Role)
		}
	})

	t.Run("error: shop missing from the directory", func(t *testing.T) {
		_, uc, _, _ := setup()
		ghost := uuid.New()
		keeper := builder.NewUserBuilder().AsShopkeeper(ghost)

		_, err := uc.CreateSlot(ctx, keeper.BuildActor(), ghost, input)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("error: invalid input is a validation error", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*commands.CreateSlotInput)
			cause  error
		}{
			{"zero capacity", func(in *commands.CreateSlotInput) { in.MaxCapacity = 0 }, slot.ErrInvalidCapacity},
			{"bad date", func(in *commands.CreateSlotInput) { in.Date = "05-03-2025" }, slot.ErrInvalidDate},
			{"blank window", func(in *commands.CreateSlotInput) { in.TimeWindow = " " }, slot.ErrInvalidTimeWindow},
			{"negative rice", func(in *commands.CreateSlotInput) { in.StockLimit.Rice = -1 }, stock.ErrNegativeQuantity},
			{"rice beyond storage", func(in *commands.CreateSlotInput) { in.StockLimit.Rice = 1e10 }, stock.ErrQuantityTooLarge},
			{"capacity beyond storage", func(in *commands.CreateSlotInput) { in.MaxCapacity = slot.MaxCapacity + 1 }, slot.ErrInvalidCapacity},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				uow, uc, sh, keeper := setup()
				in := input
				c.mutate(&in)

				_, err := uc.CreateSlot(ctx, keeper.BuildActor(), sh.ID, in)
				assert.True(t, errs.Is(err, errs.ErrValidation))
				assert.ErrorIs(t, err, c.cause)
				assert.Empty(t, uow.slots)
			})
		}
	})
}
