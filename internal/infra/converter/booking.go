package converter

import (
	"ration-slot-booking/internal/domain/booking"
	"ration-slot-booking/internal/domain/slot"
	"ration-slot-booking/internal/domain/stock"
	"ration-slot-booking/internal/pkg/pgconv"
	"ration-slot-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const BookingColumns = `id, beneficiary_id, beneficiary_name, shop_id, shop_name, slot_id,
	slot_date, time_window,
	entitlement_rice, entitlement_wheat, entitlement_sugar, entitlement_kerosene,
	status, verification_code, created_at, updated_at`

type BookingRow struct {
	ID                  uuid.UUID
	BeneficiaryID       uuid.UUID
	BeneficiaryName     string
	ShopID              uuid.UUID
	ShopName            string
	SlotID              uuid.UUID
	Date                pgtype.Date
	TimeWindow          string
	EntitlementRice     float64
	EntitlementWheat    float64
	EntitlementSugar    float64
	EntitlementKerosene float64
	Status              string
	VerificationCode    string
	CreatedAt           pgtype.Timestamptz
	UpdatedAt           pgtype.Timestamptz
}

func (r *BookingRow) Dest() []any {
	return []any{
		&r.ID, &r.BeneficiaryID, &r.BeneficiaryName, &r.ShopID, &r.ShopName, &r.SlotID,
		&r.Date, &r.TimeWindow,
		&r.EntitlementRice, &r.EntitlementWheat, &r.EntitlementSugar, &r.EntitlementKerosene,
		&r.Status, &r.VerificationCode, &r.CreatedAt, &r.UpdatedAt,
	}
}

func (r *BookingRow) entitlement() stock.Stock {
	return stock.Stock{
		Rice:     r.EntitlementRice,
		Wheat:    r.EntitlementWheat,
		Sugar:    r.EntitlementSugar,
		Kerosene: r.EntitlementKerosene,
	}
}

// BookingToInfra returns insert arguments in BookingColumns order.
func BookingToInfra(b *booking.Booking) []any {
	ent := b.Entitlement()
	return []any{
		b.ID(), b.Beneficiary().ID, b.Beneficiary().Name, b.Shop().ID, b.Shop().Name, b.SlotID(),
		pgconv.DateToPgtype(b.Date()), b.TimeWindow(),
		ent.Rice, ent.Wheat, ent.Sugar, ent.Kerosene,
		b.Status().String(), b.VerificationCode().String(), b.CreatedAt(), b.UpdatedAt(),
	}
}

func BookingToDomain(r BookingRow) (*booking.Booking, error) {
	status, err := booking.NewStatus(r.Status)
	if err != nil {
		return nil, err
	}
	return booking.ReconstructBooking(
		r.ID,
		booking.Party{ID: r.BeneficiaryID, Name: r.BeneficiaryName},
		booking.Party{ID: r.ShopID, Name: r.ShopName},
		r.SlotID,
		pgconv.DateFromPgtype(r.Date),
		r.TimeWindow,
		r.entitlement(),
		status,
		r.VerificationCode,
		pgconv.TimeFromPgtype(r.CreatedAt), pgconv.TimeFromPgtype(r.UpdatedAt),
	), nil
}

func BookingToView(r BookingRow) *queries.BookingView {
	return &queries.BookingView{
		ID:               r.ID,
		BeneficiaryID:    r.BeneficiaryID,
		BeneficiaryName:  r.BeneficiaryName,
		ShopID:           r.ShopID,
		ShopName:         r.ShopName,
		SlotID:           r.SlotID,
		Date:             pgconv.DateFromPgtype(r.Date).Format(slot.DateLayout),
		TimeWindow:       r.TimeWindow,
		Entitlement:      queries.ToStockView(r.entitlement()),
		Status:           r.Status,
		VerificationCode: r.VerificationCode,
		CreatedAt:        pgconv.TimeFromPgtype(r.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(r.UpdatedAt),
	}
}
