package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/Ethansurfas/launchpad/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// fixedWindow counts one hit and returns {hits, remaining window ms}.
var fixedWindow = redis.NewScript(`
local hits = redis.call("INCR", KEYS[1])
if hits == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {hits, redis.call("PTTL", KEYS[1])}
`)

const rateLimitTimeout = 250 * time.Millisecond

// RateLimit caps calls to one route group per caller and minute. Callers
// are keyed by user id, or client IP when anonymous. Without Redis, or
// when Redis fails, requests pass.
func RateLimit(rdb *redis.Client, name string, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || perMinute <= 0 {
			c.Next()
			return
		}

		who := UserID(c)
		if who == "" {
			who = "ip:" + c.ClientIP()
		}
		hits, reset, err := countHit(c.Request.Context(), rdb, "ratelimit:"+name+":"+who, time.Minute)
		if err != nil {
			_ = c.Error(fmt.Errorf("rate limit %s: %w", name, err))
			c.Next()
			return
		}

		limit := int64(perMinute)
		c.Header("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(limit-hits, 0), 10))
		if hits > limit {
			c.Header("Retry-After", strconv.Itoa(retryAfter(reset)))
			abort(c, http.StatusTooManyRequests, utils.CodeRateLimited, "Too many requests")
			return
		}
		c.Next()
	}
}

func countHit(ctx context.Context, rdb *redis.Client, key string, window time.Duration) (int64, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, rateLimitTimeout)
	defer cancel()

	v, err := fixedWindow.Run(ctx, rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(v) != 2 {
		return 0, 0, fmt.Errorf("unexpected script reply %v", v)
	}
	return v[0], time.Duration(v[1]) * time.Millisecond, nil
}

// retryAfter is whole seconds, at least one.
func retryAfter(reset time.Duration) int {
	return max(int(math.Ceil(reset.Seconds())), 1)
}
