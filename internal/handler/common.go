package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/activity-ticketing/internal/repository"
	"github.com/iliyamo/activity-ticketing/internal/service"
)

// getUserID extracts the authenticated user's ID from the context as
// set by the JWT middleware. The claim value may arrive as several
// numeric types depending on how the token was minted.
func getUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case uint64:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}

// getRole extracts the authenticated user's role from the context.
func getRole(c echo.Context) string {
	if r, ok := c.Get("role").(string); ok {
		return r
	}
	return ""
}

// parseID parses a numeric path parameter.
func parseID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// mapDomainError translates repository and service errors into HTTP
// responses. Existence is reported before state, state before
// permission, so callers get a stable answer regardless of how many
// preconditions fail at once.
func mapDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrTicketNotFound),
		errors.Is(err, repository.ErrActivityNotFound),
		errors.Is(err, repository.ErrPresenterNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		return respondFail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTicketNotAvailable),
		errors.Is(err, service.ErrActivityNotOpen),
		errors.Is(err, service.ErrTicketNotReserved):
		return respondFail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotReservationOwner),
		errors.Is(err, repository.ErrForbidden):
		return respondFail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, repository.ErrEmailExists),
		errors.Is(err, repository.ErrConflict):
		return respondFail(c, http.StatusConflict, err.Error())
	default:
		return respondInternal(c, err)
	}
}
