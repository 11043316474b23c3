package middleware

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"ration-slot-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	ctxRequestIDKey = "request_id"
	maxRequestIDLen = 64
)

type Logger struct {
	logger *slog.Logger
}

// NewLogger builds the process logger: JSON in release mode, text
// otherwise, with timestamps rendered in the configured zone. It also
// becomes the slog default.
func NewLogger(cfg config.LogConfig) *Logger {
	zone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key != slog.TimeKey {
				return a
			}
			if t, ok := a.Value.Any().(time.Time); ok {
				a.Value = slog.StringValue(t.In(zone).Format(cfg.TimeFormat))
			}
			return a
		},
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return NewLoggerFrom(logger)
}

// NewLoggerFrom wraps an already configured slog logger.
func NewLoggerFrom(logger *slog.Logger) *Logger {
	return &Logger{logger: logger}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) GetSlogLogger() *slog.Logger {
	return l.logger
}

// LoggingMiddleware tags each request with an id, echoed back in
// X-Request-ID, and logs one line when it starts and one when it ends.
// The caller is only known after auth has run inside c.Next.
func (l *Logger) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := incomingRequestID(c)
		c.Set(ctxRequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		attrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("client_ip", c.ClientIP()),
		}
		l.logger.LogAttrs(context.Background(), slog.LevelDebug, "request started", attrs...)

		c.Next()

		status := c.Writer.Status()
		attrs = append(attrs,
			slog.Int("status_code", status),
			slog.Duration("duration", time.Since(start)),
		)
		if actor, ok := GetActor(c); ok {
			attrs = append(attrs, slog.String("user_id", actor.UserID.String()), slog.String("role", actor.Role.String()))
			if actor.ShopID != nil {
				attrs = append(attrs, slog.String("shop_id", actor.ShopID.String()))
			}
		}
		if size := c.Writer.Size(); size > 0 {
			attrs = append(attrs, slog.Int("response_size", size))
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		l.logger.LogAttrs(context.Background(), level, "request completed", attrs...)
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestIDKey)
}

func incomingRequestID(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(RequestIDHeader)); id != "" && len(id) <= maxRequestIDLen {
		return id
	}
	return uuid.NewString()
}
