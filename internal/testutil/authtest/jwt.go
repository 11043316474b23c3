//go:build unit || integration || e2e

package authtest

import (
	"testing"
	"time"

	"ration-slot-booking/internal/pkg/clock"
	"ration-slot-booking/internal/pkg/config"
	"ration-slot-booking/internal/pkg/jwt"
	"ration-slot-booking/internal/usecase/shared"

	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) TokenFor(t *testing.T, actor shared.Actor) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration, clock.NewRealClock()).GenerateToken(actor.UserID, actor.Role, actor.ShopID)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) ExpiredTokenFor(t *testing.T, actor shared.Actor) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, -time.Hour, clock.NewRealClock()).GenerateToken(actor.UserID, actor.Role, actor.ShopID)
	require.NoError(t, err)
	return token
}
