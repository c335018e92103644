package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/Ethansurfas/launchpad/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func limitedRouter(rdb *redis.Client, perMinute int, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(CtxUserID, userID)
			c.Set(CtxRole, models.RoleStudent)
		}
		c.Next()
	})
	r.Use(RateLimit(rdb, "upload", perMinute))
	r.POST("/upload", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hitUpload(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/upload", nil))
	return w
}

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRateLimitWithoutRedis(t *testing.T) {
	r := limitedRouter(nil, 1, "user-1")
	for i := 0; i < 3; i++ {
		if w := hitUpload(r); w.Code != http.StatusOK {
			t.Fatalf("request %d limited without redis: %d", i, w.Code)
		}
	}
}

func TestRateLimitWindow(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	r := limitedRouter(rdb, 2, "user-1")

	for i, wantRemaining := range []string{"1", "0"} {
		w := hitUpload(r)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
		if got := w.Header().Get("X-RateLimit-Remaining"); got != wantRemaining {
			t.Fatalf("request %d: expected remaining %s, got %q", i, wantRemaining, got)
		}
	}

	w := hitUpload(r)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third request: expected 429, got %d", w.Code)
	}
	if w.Body.String() != `{"code":"RATE_LIMITED","message":"Too many requests"}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
	retry, err := strconv.Atoi(w.Header().Get("Retry-After"))
	if err != nil || retry < 1 || retry > 60 {
		t.Fatalf("expected Retry-After within the window, got %q", w.Header().Get("Retry-After"))
	}

	mr.FastForward(61 * time.Second)
	if w := hitUpload(r); w.Code != http.StatusOK {
		t.Fatalf("after window: expected 200, got %d", w.Code)
	}
}

func TestRateLimitKeysPerCaller(t *testing.T) {
	mr, rdb := newMiniRedis(t)

	if w := hitUpload(limitedRouter(rdb, 1, "user-1")); w.Code != http.StatusOK {
		t.Fatalf("user-1: expected 200, got %d", w.Code)
	}
	if w := hitUpload(limitedRouter(rdb, 1, "user-2")); w.Code != http.StatusOK {
		t.Fatalf("user-2 shares user-1's window: %d", w.Code)
	}
	if !mr.Exists("ratelimit:upload:user-1") || !mr.Exists("ratelimit:upload:user-2") {
		t.Fatalf("expected one counter per user, keys %v", mr.Keys())
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	mr.Close()

	if w := hitUpload(limitedRouter(rdb, 1, "user-1")); w.Code != http.StatusOK {
		t.Fatalf("expected request to pass with redis down, got %d", w.Code)
	}
}

func TestRetryAfter(t *testing.T) {
	cases := map[time.Duration]int{
		0:                       1,
		300 * time.Millisecond:  1,
		1500 * time.Millisecond: 2,
		59 * time.Second:        59,
	}
	for in, want := range cases {
		if got := retryAfter(in); got != want {
			t.Fatalf("retryAfter(%s) = %d, want %d", in, got, want)
		}
	}
}
