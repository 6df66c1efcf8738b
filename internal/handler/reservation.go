package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/activity-ticketing/internal/queue"
	"github.com/iliyamo/activity-ticketing/internal/service"
)

// ReservationHandler exposes the reserve and cancel transitions over
// HTTP. It owns no business rules: the state machine lives in
// service.ReservationService; this layer binds identity, maps errors
// and emits broker events.
type ReservationHandler struct {
	Reservations *service.ReservationService
	// Publish emits a reservation event to the broker. Swappable so
	// tests run without a broker.
	Publish func(ctx context.Context, ev queue.ReservationEvent) error
}

// NewReservationHandler wires a ReservationHandler with the real
// broker publisher.
func NewReservationHandler(reservations *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		Reservations: reservations,
		Publish:      queue.PublishReservationEvent,
	}
}

// Reserve claims an available ticket for the authenticated user.
func (h *ReservationHandler) Reserve(c echo.Context) error {
	ticketID, err := parseID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid ticket id")
	}
	userID, ok := getUserID(c)
	if !ok {
		return respondFail(c, http.StatusUnauthorized, "missing or invalid token")
	}

	t, err := h.Reservations.Reserve(c.Request().Context(), ticketID, userID)
	if err != nil {
		return mapDomainError(c, err)
	}

	h.publishAsync(queue.ReservationEvent{
		Action:     queue.ActionReserved,
		TicketID:   t.ID,
		TicketNo:   t.TicketNo,
		TicketName: t.Name,
		ActivityID: t.ActivityID,
		UserID:     userID,
		PriceCents: t.PriceCents,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	return respondSuccess(c, http.StatusOK, echo.Map{"ticket": t})
}

// Cancel releases a reserved ticket back to available. Only the
// reserving user or an admin may cancel.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	ticketID, err := parseID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid ticket id")
	}
	userID, ok := getUserID(c)
	if !ok {
		return respondFail(c, http.StatusUnauthorized, "missing or invalid token")
	}
	role := getRole(c)

	// Remember the reserving user before the release clears it.
	var reservedBy uint64
	if prev, err := h.Reservations.Peek(c.Request().Context(), ticketID); err == nil && prev.UserID != nil {
		reservedBy = *prev.UserID
	}

	t, err := h.Reservations.Cancel(c.Request().Context(), ticketID, userID, role)
	if err != nil {
		return mapDomainError(c, err)
	}

	h.publishAsync(queue.ReservationEvent{
		Action:        queue.ActionCancelled,
		TicketID:      t.ID,
		TicketNo:      t.TicketNo,
		TicketName:    t.Name,
		ActivityID:    t.ActivityID,
		UserID:        reservedBy,
		PriceCents:    t.PriceCents,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
		CancelledBy:   userID,
		CancelledRole: role,
	})

	return respondSuccess(c, http.StatusOK, echo.Map{"ticket": t})
}

// publishAsync fires a broker event without blocking the response.
// Publish failures are logged inside the queue package and never fail
// the request.
func (h *ReservationHandler) publishAsync(ev queue.ReservationEvent) {
	if h.Publish == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Publish(ctx, ev)
	}()
}
