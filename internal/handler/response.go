package handler

// response.go centralizes the response envelope used by every
// endpoint. Success responses carry the payload under "data", failures
// carry a human-readable message, and unexpected errors produce a
// generic 500 body while the diagnostic goes to the server log.

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// respondSuccess writes a success envelope with the given payload.
func respondSuccess(c echo.Context, code int, data interface{}) error {
	return c.JSON(code, echo.Map{
		"status": "success",
		"data":   data,
	})
}

// respondList writes a success envelope for collections, including a
// results count alongside the payload.
func respondList(c echo.Context, results int, data interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"results": results,
		"data":    data,
	})
}

// respondFail writes a fail envelope for expected business errors
// (validation, not-found, invalid state, permission).
func respondFail(c echo.Context, code int, message string) error {
	return c.JSON(code, echo.Map{
		"status":  "fail",
		"message": message,
	})
}

// respondInternal logs the underlying error and writes a generic error
// envelope. Storage details must never leak to the caller.
func respondInternal(c echo.Context, err error) error {
	log.Printf("internal error: %s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"status":  "error",
		"message": "internal server error",
	})
}
