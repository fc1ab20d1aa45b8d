package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitAllowsBurstThenBlocks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(2))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("expected first two requests allowed, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third request limited, got %v", codes)
	}
}

func TestLimiterPoolEvictsIdleClients(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pool := newLimiterPool(60, 10*time.Minute, func() time.Time { return clock })

	pool.get("10.0.0.1")
	pool.get("10.0.0.2")
	if got := pool.size(); got != 2 {
		t.Fatalf("expected 2 entries, got %d", got)
	}

	// keep one client active past the TTL, the other goes idle
	clock = clock.Add(6 * time.Minute)
	pool.get("10.0.0.1")
	clock = clock.Add(6 * time.Minute)
	pool.get("10.0.0.3")

	if got := pool.size(); got != 2 {
		t.Fatalf("expected idle client evicted, got %d entries", got)
	}
	pool.mu.Lock()
	_, idleKept := pool.entries["10.0.0.2"]
	_, activeKept := pool.entries["10.0.0.1"]
	pool.mu.Unlock()
	if idleKept {
		t.Fatal("expected 10.0.0.2 evicted after idling past the TTL")
	}
	if !activeKept {
		t.Fatal("expected 10.0.0.1 kept while active")
	}
}

func TestLimiterPoolKeepsBucketStateWhileActive(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pool := newLimiterPool(2, 10*time.Minute, func() time.Time { return clock })

	l := pool.get("10.0.0.1")
	l.Allow()
	l.Allow()
	if pool.get("10.0.0.1").Allow() {
		t.Fatal("expected bucket exhausted for the same client")
	}
}

func TestRateLimitDisabledWhenZero(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(0))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 10; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected all requests allowed, got %d on request %d", w.Code, i)
		}
	}
}
