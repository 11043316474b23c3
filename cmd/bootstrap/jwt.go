package bootstrap

import (
	"time"

	"ration-slot-booking/internal/pkg/clock"
	"ration-slot-booking/internal/pkg/config"
	"ration-slot-booking/internal/pkg/errs"
	"ration-slot-booking/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.JWTConfig, clk clock.Clock) (*jwt.Service, error) {
	duration, err := time.ParseDuration(cfg.Duration)
	if err != nil {
		return nil, errs.Wrap(err, "invalid JWT_DURATION")
	}
	return jwt.NewService(cfg.Secret, duration, clk), nil
}
