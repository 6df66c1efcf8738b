package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/activity-ticketing/internal/handler"
	"github.com/iliyamo/activity-ticketing/internal/utils"
)

// The rate limiter keys buckets per user, so on token-protected routes
// it has to run after JWT validation has bound the principal to the
// context. This registers the real route tree with a recording limiter
// that short-circuits every request and checks what identity it saw.
func TestRateLimiterSeesAuthenticatedPrincipal(t *testing.T) {
	const secret = "test-secret"

	var seen []interface{}
	limiter := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			seen = append(seen, c.Get("user_id"))
			return c.NoContent(http.StatusTooManyRequests)
		}
	}

	e := echo.New()
	h := Handlers{
		Auth:         &handler.AuthHandler{},
		Users:        &handler.UserHandler{},
		Activities:   &handler.ActivityHandler{},
		Presenters:   &handler.PresenterHandler{},
		Tickets:      &handler.TicketHandler{},
		Reservations: &handler.ReservationHandler{},
	}
	RegisterRoutes(e, h, secret, nil, limiter)

	access, err := utils.NewAccessToken(secret, 9, "user", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tickets", nil)
	req.Header.Set("Authorization", "Bearer "+access.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d (limiter should have short-circuited)", rec.Code, http.StatusTooManyRequests)
	}
	if len(seen) != 1 {
		t.Fatalf("limiter ran %d times, want 1", len(seen))
	}
	if uid, ok := seen[0].(float64); !ok || uid != 9 {
		t.Errorf("limiter saw user_id = %v, want subject 9 bound before it ran", seen[0])
	}

	// Public browse traffic carries no principal; the limiter still
	// runs and falls back to the guest identity.
	seen = nil
	req = httptest.NewRequest(http.MethodGet, "/api/v1/activities", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("public status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if len(seen) != 1 {
		t.Fatalf("limiter ran %d times on public route, want 1", len(seen))
	}
	if seen[0] != nil {
		t.Errorf("public route limiter saw user_id = %v, want none", seen[0])
	}
}
