package readstore

import (
	"context"

	"ration-slot-booking/internal/infra"
	"ration-slot-booking/internal/infra/converter"
	"ration-slot-booking/internal/infra/db"
	"ration-slot-booking/internal/pkg/pgconv"
	"ration-slot-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	var row converter.UserRow
	err := r.db.QueryRow(ctx, `SELECT `+converter.UserColumns+` FROM users WHERE id = $1`, id).Scan(row.Dest()...)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(ctx, "user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(ctx, "failed to find user by ID", err)
	}
	return converter.UserToView(row), nil
}

type ShopReadStore struct {
	db db.DBTX
}

func NewShopReadStore(db db.DBTX) *ShopReadStore {
	return &ShopReadStore{db: db}
}

func (r *ShopReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ShopView, error) {
	var row converter.ShopRow
	err := r.db.QueryRow(ctx, `SELECT `+converter.ShopColumns+` FROM shops WHERE id = $1`, id).Scan(row.Dest()...)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(ctx, "shop not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(ctx, "failed to find shop by ID", err)
	}
	return converter.ShopToView(row), nil
}
