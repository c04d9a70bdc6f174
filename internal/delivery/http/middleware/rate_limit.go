package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-talentflow-backend/internal/delivery/http/response"
	"go-talentflow-backend/pkg/audit"
	"go-talentflow-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for Redis
	KeyPrefix string
	// Whether to reject when Redis is unavailable (the in-memory fallback
	// is used instead when false)
	FailClosed bool
}

// AuthRateLimitConfig returns a strict config for the auth endpoints.
func AuthRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:auth:",
		FailClosed: false,
	}
}

// GlobalRateLimitConfig returns a permissive per-IP config for the whole API.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:ip:",
		FailClosed: false,
	}
}

// Atomic increment with TTL set on first hit.
// KEYS[1] = counter key, ARGV[1] = TTL in seconds.
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// RateLimit limits requests per client IP. Counters live in Redis when a
// client is configured; otherwise a per-process sync.Map stands in, which is
// fine for a single instance and degrades gracefully for more.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	var memory sync.Map

	return func(c *gin.Context) {
		key := cfg.KeyPrefix + c.ClientIP()

		count, retryAfter, err := redisCount(c, key, cfg)
		if err != nil {
			if cfg.FailClosed {
				response.Error(c, http.StatusServiceUnavailable, "Rate limiter unavailable", nil)
				c.Abort()
				return
			}
			count, retryAfter = memoryCount(&memory, key, cfg)
		}

		if count > cfg.Limit {
			audit.Event(audit.EventRateLimitTriggered)
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			response.Error(c, http.StatusTooManyRequests, "Too many requests. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func redisCount(c *gin.Context, key string, cfg RateLimitConfig) (int, time.Duration, error) {
	client := redis.Client()
	if client == nil {
		return 0, 0, goredis.ErrClosed
	}

	res, err := client.Eval(c.Request.Context(), rateLimitLuaScript, []string{key}, int(cfg.Window.Seconds())).Result()
	if err != nil {
		return 0, 0, err
	}

	vals, ok := res.([]interface{})
	if !ok || len(vals) != 2 {
		return 0, 0, goredis.Nil
	}
	count, _ := vals[0].(int64)
	ttl, _ := vals[1].(int64)
	return int(count), time.Duration(ttl) * time.Second, nil
}

func memoryCount(memory *sync.Map, key string, cfg RateLimitConfig) (int, time.Duration) {
	now := time.Now()
	val, _ := memory.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(cfg.Window)})
	entry := val.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(cfg.Window)
	}
	entry.count++
	return entry.count, time.Until(entry.resetAt)
}
