package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/activity-ticketing/internal/config"
)

func limiterContext(userID interface{}) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tickets", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/api/v1/tickets")
	if userID != nil {
		c.Set("user_id", userID)
	}
	return c
}

func TestIdentityKey(t *testing.T) {
	cases := []struct {
		name   string
		userID interface{}
		want   string
	}{
		{"no principal", nil, "guest"},
		{"float64 claim", float64(9), "9"},
		{"uint64 claim", uint64(9), "9"},
		{"int64 claim", int64(9), "9"},
		{"int claim", 9, "9"},
		{"string claim", "9", "9"},
		{"empty string claim", "", "guest"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := identityKey(limiterContext(tc.userID)); got != tc.want {
				t.Errorf("identityKey = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBuildRateKeyUsesAuthenticatedUser(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}

	key := buildRateKey(cfg, limiterContext(float64(9)))
	if key != "rl:user:9" {
		t.Errorf("authenticated key = %q, want %q", key, "rl:user:9")
	}

	key = buildRateKey(cfg, limiterContext(nil))
	if key != "rl:user:guest" {
		t.Errorf("anonymous key = %q, want %q", key, "rl:user:guest")
	}

	cfg.KeyStrategy = "ip_user_route"
	key = buildRateKey(cfg, limiterContext(uint64(9)))
	if !strings.Contains(key, ":user:9") || !strings.Contains(key, "GET /api/v1/tickets") {
		t.Errorf("composite key = %q, want user and route segments", key)
	}
}
