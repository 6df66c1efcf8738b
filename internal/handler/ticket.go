package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/activity-ticketing/internal/model"
	"github.com/iliyamo/activity-ticketing/internal/repository"
	"github.com/iliyamo/activity-ticketing/internal/utils"
)

// TicketHandler serves ticket CRUD endpoints. Reads require a valid
// token; writes require the admin role. Reservation traffic goes
// through ReservationHandler instead.
type TicketHandler struct {
	Tickets    *repository.TicketRepo
	Activities *repository.ActivityRepo
}

// NewTicketHandler wires a TicketHandler.
func NewTicketHandler(tickets *repository.TicketRepo, activities *repository.ActivityRepo) *TicketHandler {
	return &TicketHandler{Tickets: tickets, Activities: activities}
}

type createTicketRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	PriceCents  uint32  `json:"price_cents"`
	ActivityID  uint64  `json:"activity_id"`
}

// updateTicketRequest uses pointer fields so absent fields keep their
// stored values. Status and UserID are deliberately included: a direct
// admin update is the only path to the cancelled status.
type updateTicketRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceCents  *uint32 `json:"price_cents"`
	Status      *string `json:"status"`
	UserID      *uint64 `json:"user_id"`
	ActivityID  *uint64 `json:"activity_id"`
}

// applyTo merges the fields present in the request into t. Absent
// fields keep their stored values; present fields, including an
// explicit zero price, always overwrite. A present user_id of zero
// clears the reserving user. The activity move is validated by the
// handler since it needs a storage lookup.
func (req updateTicketRequest) applyTo(t *model.Ticket) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return errors.New("name must not be empty")
		}
		t.Name = name
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.PriceCents != nil {
		t.PriceCents = *req.PriceCents
	}
	if req.Status != nil {
		if !validTicketStatus(*req.Status) {
			return errors.New("invalid status")
		}
		t.Status = *req.Status
	}
	if req.UserID != nil {
		if *req.UserID == 0 {
			t.UserID = nil
		} else {
			t.UserID = req.UserID
		}
	}
	return nil
}

func validTicketStatus(s string) bool {
	switch s {
	case model.TicketAvailable, model.TicketReserved, model.TicketCancelled:
		return true
	}
	return false
}

// Create mints a new ticket with a generated ticket number. The owning
// activity must exist.
func (h *TicketHandler) Create(c echo.Context) error {
	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return respondFail(c, http.StatusBadRequest, "name is required")
	}
	if req.ActivityID == 0 {
		return respondFail(c, http.StatusBadRequest, "activity_id is required")
	}
	if _, err := h.Activities.GetByID(c.Request().Context(), req.ActivityID); err != nil {
		return mapDomainError(c, err)
	}

	t := &model.Ticket{
		Name:        req.Name,
		Description: req.Description,
		TicketNo:    utils.NewTicketNo(),
		PriceCents:  req.PriceCents,
		ActivityID:  req.ActivityID,
	}
	if err := h.Tickets.Create(c.Request().Context(), t); err != nil {
		return mapDomainError(c, err)
	}
	return respondSuccess(c, http.StatusCreated, echo.Map{"ticket": t})
}

// List returns all tickets.
func (h *TicketHandler) List(c echo.Context) error {
	tickets, err := h.Tickets.List(c.Request().Context())
	if err != nil {
		return respondInternal(c, err)
	}
	return respondList(c, len(tickets), echo.Map{"tickets": tickets})
}

// Get returns a single ticket.
func (h *TicketHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid ticket id")
	}
	t, err := h.Tickets.GetByID(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"ticket": t})
}

// Update applies a partial admin update to a ticket. Moving the ticket
// to a new activity re-validates that the activity exists. The ticket
// number is never updatable.
func (h *TicketHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid ticket id")
	}
	t, err := h.Tickets.GetByID(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}

	var req updateTicketRequest
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := req.applyTo(t); err != nil {
		return respondFail(c, http.StatusBadRequest, err.Error())
	}
	if req.ActivityID != nil {
		if _, err := h.Activities.GetByID(c.Request().Context(), *req.ActivityID); err != nil {
			return mapDomainError(c, err)
		}
		t.ActivityID = *req.ActivityID
	}

	if err := h.Tickets.Update(c.Request().Context(), t); err != nil {
		return mapDomainError(c, err)
	}
	fresh, err := h.Tickets.GetByID(c.Request().Context(), t.ID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"ticket": fresh})
}

// Delete removes a ticket.
func (h *TicketHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid ticket id")
	}
	if err := h.Tickets.Delete(c.Request().Context(), id); err != nil {
		return mapDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"message": "ticket deleted"})
}
