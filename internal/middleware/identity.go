package middleware

// identity.go defines helper functions shared across middleware files.
// It provides an identity extraction function used by the rate limiter
// to key buckets per user. When no user is authenticated, "guest" is
// returned so anonymous traffic shares one bucket per IP.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// identityKey extracts a user identifier from the request context. The
// JWTAuth middleware stores the raw "sub" claim under "user_id"; JSON
// numbers arrive as float64 and are normalized to their integer form.
func identityKey(c echo.Context) string {
	v := c.Get("user_id")
	switch t := v.(type) {
	case nil:
		return "guest"
	case string:
		if t != "" {
			return t
		}
		return "guest"
	case float64:
		return fmt.Sprintf("%.0f", t)
	case uint64:
		return fmt.Sprintf("%d", t)
	case int64:
		return fmt.Sprintf("%d", t)
	case int:
		return fmt.Sprintf("%d", t)
	default:
		return "guest"
	}
}
