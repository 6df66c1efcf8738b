package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/activity-ticketing/internal/model"
	"github.com/iliyamo/activity-ticketing/internal/repository"
	"github.com/iliyamo/activity-ticketing/internal/utils"
)

// ActivityHandler serves the activity CRUD and search endpoints.
// Reads are public; writes require the admin role.
type ActivityHandler struct {
	Activities *repository.ActivityRepo
}

// NewActivityHandler wires an ActivityHandler.
func NewActivityHandler(activities *repository.ActivityRepo) *ActivityHandler {
	return &ActivityHandler{Activities: activities}
}

type createActivityRequest struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Capacity    uint32    `json:"capacity"`
	Status      string    `json:"status"`
}

// updateActivityRequest uses pointer fields so absent fields keep
// their stored values while explicit zero values are honored.
type updateActivityRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Type        *string    `json:"type"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location"`
	Capacity    *uint32    `json:"capacity"`
	Status      *string    `json:"status"`
}

// applyTo merges the fields present in the request into a. Absent
// fields keep their stored values; present fields, including explicit
// zeroes, always overwrite.
func (req updateActivityRequest) applyTo(a *model.Activity) error {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return errors.New("title must not be empty")
		}
		a.Title = title
	}
	if req.Description != nil {
		a.Description = req.Description
	}
	if req.Type != nil {
		typ := strings.TrimSpace(*req.Type)
		if typ == "" {
			return errors.New("type must not be empty")
		}
		a.Type = typ
	}
	if req.Date != nil {
		if !utils.IsFutureDate(*req.Date) {
			return errors.New("date must be in the future")
		}
		a.Date = req.Date.UTC()
	}
	if req.Location != nil {
		loc := strings.TrimSpace(*req.Location)
		if loc == "" {
			return errors.New("location must not be empty")
		}
		a.Location = loc
	}
	if req.Capacity != nil {
		a.Capacity = *req.Capacity
	}
	if req.Status != nil {
		if !validActivityStatus(*req.Status) {
			return errors.New("invalid status")
		}
		a.Status = *req.Status
	}
	return nil
}

func validActivityStatus(s string) bool {
	switch s {
	case model.ActivityOpen, model.ActivityClosed, model.ActivityPostponed:
		return true
	}
	return false
}

// Create registers a new activity. The date must be in the future.
func (h *ActivityHandler) Create(c echo.Context) error {
	var req createActivityRequest
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.Type) == "" || strings.TrimSpace(req.Location) == "" {
		return respondFail(c, http.StatusBadRequest, "title, type and location are required")
	}
	if !utils.IsFutureDate(req.Date) {
		return respondFail(c, http.StatusBadRequest, "date must be in the future")
	}
	if req.Status != "" && !validActivityStatus(req.Status) {
		return respondFail(c, http.StatusBadRequest, "invalid status")
	}

	a := &model.Activity{
		Title:       req.Title,
		Description: req.Description,
		Type:        strings.TrimSpace(req.Type),
		Date:        req.Date.UTC(),
		Location:    strings.TrimSpace(req.Location),
		Capacity:    req.Capacity,
		Status:      req.Status,
	}
	if err := h.Activities.Create(c.Request().Context(), a); err != nil {
		return respondInternal(c, err)
	}
	return respondSuccess(c, http.StatusCreated, echo.Map{"activity": a})
}

// Get returns a single activity.
func (h *ActivityHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid activity id")
	}
	a, err := h.Activities.GetByID(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"activity": a})
}

// List returns activities, optionally filtered by ?type= and ?date=
// (a calendar day in YYYY-MM-DD form). Without filters it returns all
// activities ordered by date.
func (h *ActivityHandler) List(c echo.Context) error {
	var (
		typ *string
		day *time.Time
	)
	if t := strings.TrimSpace(c.QueryParam("type")); t != "" {
		typ = &t
	}
	if d := strings.TrimSpace(c.QueryParam("date")); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return respondFail(c, http.StatusBadRequest, "date must be in YYYY-MM-DD form")
		}
		day = &parsed
	}

	var (
		activities []model.Activity
		err        error
	)
	if typ == nil && day == nil {
		activities, err = h.Activities.List(c.Request().Context())
	} else {
		activities, err = h.Activities.Search(c.Request().Context(), typ, day)
	}
	if err != nil {
		return respondInternal(c, err)
	}
	return respondList(c, len(activities), echo.Map{"activities": activities})
}

// Update applies a partial update to an activity. Changing the date
// re-runs the future-date check; other stored fields are left alone
// when the request omits them.
func (h *ActivityHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid activity id")
	}
	a, err := h.Activities.GetByID(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}

	var req updateActivityRequest
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := req.applyTo(a); err != nil {
		return respondFail(c, http.StatusBadRequest, err.Error())
	}

	if err := h.Activities.Update(c.Request().Context(), a); err != nil {
		return respondInternal(c, err)
	}
	fresh, err := h.Activities.GetByID(c.Request().Context(), a.ID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"activity": fresh})
}

// Delete removes an activity. Tickets and presenters belonging to it
// are removed by the database cascade.
func (h *ActivityHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid activity id")
	}
	if err := h.Activities.Delete(c.Request().Context(), id); err != nil {
		return mapDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"message": "activity deleted"})
}
