package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/activity-ticketing/internal/utils"
)

const testSecret = "test-secret"

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "success"})
}

func doAuthed(t *testing.T, mw echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := mw(okHandler)(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestJWTAuth(t *testing.T) {
	t.Run("valid token passes and binds claims", func(t *testing.T) {
		access, err := utils.NewAccessToken(testSecret, 9, "user", 5)
		if err != nil {
			t.Fatalf("NewAccessToken: %v", err)
		}
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+access.Token)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var gotRole interface{}
		inner := func(c echo.Context) error {
			gotRole = c.Get("role")
			return c.NoContent(http.StatusOK)
		}
		if err := JWTAuth(testSecret)(inner)(c); err != nil {
			t.Fatalf("middleware error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if gotRole != "user" {
			t.Errorf("role claim = %v, want user", gotRole)
		}
	})

	t.Run("missing header answers 401", func(t *testing.T) {
		rec := doAuthed(t, JWTAuth(testSecret), "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("wrong secret answers 401", func(t *testing.T) {
		access, err := utils.NewAccessToken("other-secret", 9, "user", 5)
		if err != nil {
			t.Fatalf("NewAccessToken: %v", err)
		}
		rec := doAuthed(t, JWTAuth(testSecret), "Bearer "+access.Token)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})

	t.Run("garbage token answers 401", func(t *testing.T) {
		rec := doAuthed(t, JWTAuth(testSecret), "Bearer not.a.jwt")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}
	})
}

func TestRequireRole(t *testing.T) {
	run := func(role interface{}, allowed ...string) *httptest.ResponseRecorder {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		_ = RequireRole(allowed...)(okHandler)(c)
		return rec
	}

	if rec := run("admin", "admin"); rec.Code != http.StatusOK {
		t.Errorf("admin on admin route: status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := run("user", "admin"); rec.Code != http.StatusForbidden {
		t.Errorf("user on admin route: status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if rec := run("user", "admin", "user"); rec.Code != http.StatusOK {
		t.Errorf("user on shared route: status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := run(nil, "admin"); rec.Code != http.StatusForbidden {
		t.Errorf("missing role: status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}
