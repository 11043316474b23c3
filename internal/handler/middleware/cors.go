package middleware

import (
	"log/slog"
	"slices"

	"ration-slot-booking/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// throttleHeaders are always exposed so browser clients can back off on
// 429 and 503 responses.
var throttleHeaders = []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"}

func NewCORSMiddleware(cfg config.CORSConfig, logger *slog.Logger) gin.HandlerFunc {
	expose := slices.Clone(cfg.ExposeHeaders)
	for _, h := range throttleHeaders {
		if !slices.Contains(expose, h) {
			expose = append(expose, h)
		}
	}

	logger.Info("CORS configured", "allow_origins", cfg.AllowOrigins, "expose_headers", expose)
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    expose,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}
