package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/activity-ticketing/internal/model"
	"github.com/iliyamo/activity-ticketing/internal/repository"
)

// PresenterHandler serves presenter endpoints scoped under an
// activity. Reads are public; writes require the admin role.
type PresenterHandler struct {
	Presenters *repository.PresenterRepo
	Activities *repository.ActivityRepo
}

// NewPresenterHandler wires a PresenterHandler.
func NewPresenterHandler(presenters *repository.PresenterRepo, activities *repository.ActivityRepo) *PresenterHandler {
	return &PresenterHandler{Presenters: presenters, Activities: activities}
}

type createPresenterRequest struct {
	Name string  `json:"name"`
	Job  *string `json:"job"`
}

type updatePresenterRequest struct {
	Name *string `json:"name"`
	Job  *string `json:"job"`
}

// Create adds a presenter to an activity. The activity must exist.
func (h *PresenterHandler) Create(c echo.Context) error {
	activityID, err := parseID(c, "activity_id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid activity id")
	}
	if _, err := h.Activities.GetByID(c.Request().Context(), activityID); err != nil {
		return mapDomainError(c, err)
	}

	var req createPresenterRequest
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return respondFail(c, http.StatusBadRequest, "name is required")
	}

	p := &model.Presenter{ActivityID: activityID, Name: req.Name, Job: req.Job}
	if err := h.Presenters.Create(c.Request().Context(), p); err != nil {
		return respondInternal(c, err)
	}
	return respondSuccess(c, http.StatusCreated, echo.Map{"presenter": p})
}

// List returns all presenters for an activity.
func (h *PresenterHandler) List(c echo.Context) error {
	activityID, err := parseID(c, "activity_id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid activity id")
	}
	if _, err := h.Activities.GetByID(c.Request().Context(), activityID); err != nil {
		return mapDomainError(c, err)
	}
	presenters, err := h.Presenters.ListByActivity(c.Request().Context(), activityID)
	if err != nil {
		return respondInternal(c, err)
	}
	return respondList(c, len(presenters), echo.Map{"presenters": presenters})
}

// Get returns a single presenter belonging to the activity in the path.
func (h *PresenterHandler) Get(c echo.Context) error {
	activityID, err := parseID(c, "activity_id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid activity id")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid presenter id")
	}
	p, err := h.Presenters.GetByID(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	if p.ActivityID != activityID {
		return respondFail(c, http.StatusNotFound, repository.ErrPresenterNotFound.Error())
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"presenter": p})
}

// Update applies a partial update to a presenter.
func (h *PresenterHandler) Update(c echo.Context) error {
	activityID, err := parseID(c, "activity_id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid activity id")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid presenter id")
	}
	p, err := h.Presenters.GetByID(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	if p.ActivityID != activityID {
		return respondFail(c, http.StatusNotFound, repository.ErrPresenterNotFound.Error())
	}

	var req updatePresenterRequest
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return respondFail(c, http.StatusBadRequest, "name must not be empty")
		}
		p.Name = name
	}
	if req.Job != nil {
		p.Job = req.Job
	}

	if err := h.Presenters.Update(c.Request().Context(), p); err != nil {
		return respondInternal(c, err)
	}
	fresh, err := h.Presenters.GetByID(c.Request().Context(), p.ID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"presenter": fresh})
}

// Delete removes a presenter.
func (h *PresenterHandler) Delete(c echo.Context) error {
	activityID, err := parseID(c, "activity_id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid activity id")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid presenter id")
	}
	p, err := h.Presenters.GetByID(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	if p.ActivityID != activityID {
		return respondFail(c, http.StatusNotFound, repository.ErrPresenterNotFound.Error())
	}
	if err := h.Presenters.Delete(c.Request().Context(), id); err != nil {
		return mapDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"message": "presenter deleted"})
}
