package bootstrap

import (
	"ration-slot-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(config.LoadConfig),
	SectionsModule,
)

// SectionsModule splits a provided config.Config into the sections each
// component asks for, so constructors only see the settings they use.
var SectionsModule = fx.Module("config/sections",
	fx.Provide(
		func(c config.Config) config.ServerConfig { return c.Server },
		func(c config.Config) config.DBConfig { return c.DB },
		func(c config.Config) config.LogConfig { return c.Log },
		func(c config.Config) config.JWTConfig { return c.JWT },
		func(c config.Config) config.RedisConfig { return c.Redis },
		func(c config.Config) config.RateLimitConfig { return c.RateLimit },
		func(c config.Config) config.BrokerConfig { return c.Broker },
	),
)
