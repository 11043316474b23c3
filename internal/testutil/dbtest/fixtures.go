//go:build integration || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"ration-slot-booking/internal/infra/db"
	"ration-slot-booking/internal/pkg/pgconv"
	"ration-slot-booking/internal/testutil/builder"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func InsertUser(t *testing.T, conn db.DBTX, u *builder.UserBuilder) {
	t.Helper()

	_, err := conn.Exec(context.Background(),
		"INSERT INTO users (id, name, role, family_members, shop_id) VALUES ($1, $2, $3, $4, $5)",
		u.ID, u.Name, u.Role.String(), pgconv.IntPtrToPgtype(u.FamilyMembers), pgconv.UUIDPtrToPgtype(u.ShopID))
	require.NoError(t, err)
}

func InsertShop(t *testing.T, conn db.DBTX, s *builder.ShopBuilder) {
	t.Helper()

	_, err := conn.Exec(context.Background(),
		"INSERT INTO shops (id, name, address, shopkeeper_id, status) VALUES ($1, $2, $3, $4, $5)",
		s.ID, s.Name, s.Address, pgconv.UUIDPtrToPgtype(s.ShopkeeperID), string(s.Status))
	require.NoError(t, err)
}

// Directory is one approved shop with its shopkeeper, a beneficiary and an
// admin, the minimum every booking flow needs.
type Directory struct {
	Shop        *builder.ShopBuilder
	Shopkeeper  *builder.UserBuilder
	Beneficiary *builder.UserBuilder
	Admin       *builder.UserBuilder
}

func SeedDirectory(t *testing.T, conn db.DBTX) Directory {
	t.Helper()

	sh := builder.NewShopBuilder()
	keeper := builder.NewUserBuilder().AsShopkeeper(sh.ID)
	sh.ShopkeeperID = &keeper.ID

	d := Directory{
		Shop:        sh,
		Shopkeeper:  keeper,
		Beneficiary: builder.NewUserBuilder(),
		Admin:       builder.NewUserBuilder().AsAdmin(),
	}
	InsertUser(t, conn, d.Shopkeeper)
	InsertShop(t, conn, d.Shop)
	InsertUser(t, conn, d.Beneficiary)
	InsertUser(t, conn, d.Admin)
	return d
}

// SlotCounters reads the persisted counters of a slot.
func SlotCounters(t *testing.T, conn db.DBTX, slotID fmt.Stringer) (booked int, rice float64, version int64) {
	t.Helper()

	err := conn.QueryRow(context.Background(),
		"SELECT booked_count, available_rice::float8, version FROM slots WHERE id = $1", slotID.String()).
		Scan(&booked, &rice, &version)
	require.NoError(t, err)
	return booked, rice, version
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
