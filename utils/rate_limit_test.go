package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", RateLimiter(rate.Limit(0.001), 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	post := func(ip string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		router.ServeHTTP(w, req)
		return w.Code
	}
	tests := []struct {
		name string
		ip   string
		want int
	}{
		{"first", "10.0.0.1", http.StatusOK},
		{"second", "10.0.0.1", http.StatusOK},
		{"over the burst", "10.0.0.1", http.StatusTooManyRequests},
		{"other client", "10.0.0.2", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := post(tt.ip); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRateLimiter_disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name  string
		limit rate.Limit
		burst int
	}{
		{"zero rate", 0, 0},
		{"zero burst", rate.Limit(1), 0},
		{"negative rate", rate.Limit(-1), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/login", RateLimiter(tt.limit, tt.burst), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			for i := 0; i < 5; i++ {
				w := httptest.NewRecorder()
				router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
				if w.Code != http.StatusOK {
					t.Fatalf("request %d: status = %d, want %d", i, w.Code, http.StatusOK)
				}
			}
		})
	}
}

func TestRateLimiter_forgetsIdleClients(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl := newRateLimiter(rate.Limit(1), 1)
	rl.now = func() time.Time { return clock }
	rl.lastSweep.Store(clock.UnixNano())

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		if !rl.allow(ip) {
			t.Fatalf("%s: first request refused", ip)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Errorf("second request within the burst window allowed")
	}
	if got := rl.clients.Count(); got != 3 {
		t.Fatalf("clients = %d, want 3", got)
	}

	clock = clock.Add(2 * time.Minute)
	if !rl.allow("10.0.0.4") {
		t.Errorf("new client refused")
	}
	if got := rl.clients.Count(); got != 1 {
		t.Errorf("clients after idle period = %d, want 1", got)
	}
	if !rl.allow("10.0.0.1") {
		t.Errorf("returning client refused")
	}
}
