package repository

import (
	"context"

	"ration-slot-booking/internal/domain/shop"
	"ration-slot-booking/internal/domain/user"
	"ration-slot-booking/internal/infra"
	"ration-slot-booking/internal/infra/converter"
	"ration-slot-booking/internal/infra/db"
	"ration-slot-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// Users and shops are owned by the directory service; this module only reads
// them.

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var row converter.UserRow
	err := r.db.QueryRow(ctx, `SELECT `+converter.UserColumns+` FROM users WHERE id = $1`, id).Scan(row.Dest()...)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(ctx, "user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(ctx, "failed to find user by ID", err)
	}
	u, err := converter.UserToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr(ctx, "invalid user row", err, infra.KindDBFailure)
	}
	return u, nil
}

type ShopRepository struct {
	db db.DBTX
}

func NewShopRepository(db db.DBTX) *ShopRepository {
	return &ShopRepository{db: db}
}

func (r *ShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*shop.Shop, error) {
	var row converter.ShopRow
	err := r.db.QueryRow(ctx, `SELECT `+converter.ShopColumns+` FROM shops WHERE id = $1`, id).Scan(row.Dest()...)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(ctx, "shop not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr(ctx, "failed to find shop by ID", err)
	}
	s, err := converter.ShopToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr(ctx, "invalid shop row", err, infra.KindDBFailure)
	}
	return s, nil
}
