//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ration-slot-booking/cmd/bootstrap"
	"ration-slot-booking/cmd/bootstrap/components"
	"ration-slot-booking/internal/pkg/config"
	"ration-slot-booking/internal/testutil/authtest"
	"ration-slot-booking/internal/testutil/dbtest"
	"ration-slot-booking/internal/testutil/pgtest"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// buildApp wires the production modules against a test database. The outbox
// worker and the real config loader are left out.
func buildApp(pool *pgxpool.Pool, cfg config.Config) (*gin.Engine, *fx.App, error) {
	var router *gin.Engine

	app := fx.New(
		fx.Provide(func() *pgxpool.Pool { return pool }),
		fx.Provide(func() config.Config { return cfg }),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.SectionsModule,
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		bootstrap.RedisModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		return nil, nil, fmt.Errorf("start fx app: %w", err)
	}
	return router, app, nil
}

// SharedSuite gives every e2e suite a router over a fresh, migrated database.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
	Tokens *authtest.JWTHelper
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	pool, dbConfig := pgtest.NewDatabase(t)
	cfg := config.NewTestConfig()
	cfg.DB = dbConfig

	router, app, err := buildApp(pool, cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx app", "error", err.Error())
		}
	})

	s.DB = pool
	s.Router = router
	s.Config = cfg
	s.Tokens = authtest.NewJWTHelper(cfg.JWT)
}

func (s *SharedSuite) SetupTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset database state")
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset database state")
}

