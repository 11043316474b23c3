package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"ration-slot-booking/internal/handler/httperr"
	"ration-slot-booking/internal/pkg/config"
	"ration-slot-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

var errRateLimited = errs.New("rate limit exceeded")

// tokenBucketScript refills in whole intervals and takes one token per call.
// It returns {allowed, remaining, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
    tokens = capacity
    last_refill = now_ms
end

if interval_ms > 0 and refill_tokens > 0 then
    local elapsed = math.max(0, now_ms - last_refill)
    local intervals = math.floor(elapsed / interval_ms)
    if intervals > 0 then
        tokens = math.min(capacity, tokens + (intervals * refill_tokens))
        last_refill = last_refill + (intervals * interval_ms)
    end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
    allowed = 1
    tokens = tokens - 1
else
    retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// RateLimiter is a token bucket kept in Redis so every replica shares it.
// Without Redis, or while Redis is failing, each process limits on its own.
type RateLimiter struct {
	cfg    config.RateLimitConfig
	rdb    *redis.Client
	logger *slog.Logger

	mu    sync.Mutex
	local map[string]*localBucket
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type decision struct {
	allowed   bool
	remaining int64
	retry     time.Duration
}

func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		cfg:    cfg,
		rdb:    rdb,
		logger: logger,
		local:  make(map[string]*localBucket),
	}
}

func (rl *RateLimiter) Handler() gin.HandlerFunc {
	if !rl.cfg.Enabled || rl.cfg.Capacity <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := rl.key(c)
		d := rl.take(c.Request.Context(), key, time.Now())

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.cfg.Capacity))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(d.remaining, 10))

		if !d.allowed {
			secs := max(int(math.Ceil(d.retry.Seconds())), 1)
			httperr.AbortRetryable(c, http.StatusTooManyRequests, errRateLimited, "Too many requests", secs, gin.H{"retry_after": secs})
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) take(ctx context.Context, key string, now time.Time) decision {
	if rl.rdb != nil {
		d, err := rl.takeRedis(ctx, key, now)
		if err == nil {
			return d
		}
		rl.logger.Warn("rate limiter falling back to local bucket",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
	return rl.takeLocal(key, now)
}

func (rl *RateLimiter) takeRedis(ctx context.Context, key string, now time.Time) (decision, error) {
	vals, err := tokenBucketScript.Run(ctx, rl.rdb, []string{key},
		now.UnixMilli(),
		rl.cfg.Capacity,
		rl.cfg.RefillTokens,
		rl.cfg.RefillInterval.Milliseconds(),
		int64(rl.cfg.TTL/time.Second),
	).Int64Slice()
	if err != nil {
		return decision{}, err
	}
	if len(vals) != 3 {
		return decision{}, fmt.Errorf("unexpected token bucket result %v", vals)
	}
	return decision{
		allowed:   vals[0] == 1,
		remaining: vals[1],
		retry:     time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

func (rl *RateLimiter) takeLocal(key string, now time.Time) decision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for k, b := range rl.local {
		if now.Sub(b.lastSeen) > rl.cfg.TTL {
			delete(rl.local, k)
		}
	}

	b, ok := rl.local[key]
	if !ok {
		b = &localBucket{limiter: rate.NewLimiter(rl.refillRate(), rl.cfg.Capacity)}
		rl.local[key] = b
	}
	b.lastSeen = now

	r := b.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return decision{allowed: false, retry: delay}
	}
	return decision{allowed: true, remaining: int64(b.limiter.TokensAt(now))}
}

func (rl *RateLimiter) refillRate() rate.Limit {
	if rl.cfg.RefillTokens <= 0 || rl.cfg.RefillInterval <= 0 {
		return rate.Inf
	}
	return rate.Every(rl.cfg.RefillInterval / time.Duration(rl.cfg.RefillTokens))
}

// key buckets by caller and route. Anonymous callers share a bucket per IP.
func (rl *RateLimiter) key(c *gin.Context) string {
	uid := "anon"
	if id, ok := GetUserID(c); ok {
		uid = id.String()
	}
	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	return strings.Join([]string{rl.cfg.Prefix, "user", uid, "ip", c.ClientIP(), "route", c.Request.Method + " " + route}, ":")
}
