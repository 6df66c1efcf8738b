package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/activity-ticketing/internal/config"
	"github.com/iliyamo/activity-ticketing/internal/model"
	"github.com/iliyamo/activity-ticketing/internal/repository"
	"github.com/iliyamo/activity-ticketing/internal/utils"
)

// UserHandler serves user management endpoints. Listing and deletion
// are admin-only; updates are allowed for admins and for the user
// editing their own record.
type UserHandler struct {
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Cfg    config.Config
}

// NewUserHandler wires a UserHandler.
func NewUserHandler(users *repository.UserRepo, tokens *repository.TokenRepo, cfg config.Config) *UserHandler {
	return &UserHandler{Users: users, Tokens: tokens, Cfg: cfg}
}

// updateUserRequest uses pointer fields so a handler can tell an
// absent field apart from an explicit zero value. Absent fields keep
// their stored values.
type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
}

// applyTo merges the fields present in the request into u. Absent
// fields keep their stored values; present fields always overwrite.
// Role changes are an admin capability. The password is handled by
// the handler, which owns the hashing cost.
func (req updateUserRequest) applyTo(u *model.User, isAdmin bool) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return errors.New("name must not be empty")
		}
		u.Name = name
	}
	if req.Email != nil {
		if !utils.IsValidEmail(*req.Email) {
			return errors.New("invalid email address")
		}
		u.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Role != nil {
		if !isAdmin {
			return errors.New("only admins may change roles")
		}
		if *req.Role != model.RoleAdmin && *req.Role != model.RoleUser {
			return errors.New("invalid role")
		}
		u.Role = *req.Role
	}
	return nil
}

// List returns all users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return respondInternal(c, err)
	}
	return respondList(c, len(users), echo.Map{"users": users})
}

// Get returns a single user by id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid user id")
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"user": u})
}

// Update applies a partial update to a user record. Only admins may
// change roles; regular users may only edit their own record.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid user id")
	}
	actorID, ok := getUserID(c)
	if !ok {
		return respondFail(c, http.StatusUnauthorized, "missing or invalid token")
	}
	isAdmin := getRole(c) == model.RoleAdmin

	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return mapDomainError(c, err)
	}
	if actorID != u.ID && !isAdmin {
		return respondFail(c, http.StatusForbidden, "you may only edit your own profile")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Role != nil && !isAdmin {
		return respondFail(c, http.StatusForbidden, "only admins may change roles")
	}
	if err := req.applyTo(u, isAdmin); err != nil {
		return respondFail(c, http.StatusBadRequest, err.Error())
	}
	if req.Password != nil {
		if !utils.IsStrongPassword(*req.Password) {
			return respondFail(c, http.StatusBadRequest, "password must be at least 8 characters with upper, lower and digit")
		}
		hash, err := utils.HashPassword(*req.Password, h.Cfg.BcryptCost)
		if err != nil {
			return respondInternal(c, err)
		}
		u.PasswordHash = hash
	}

	if err := h.Users.Update(c.Request().Context(), u); err != nil {
		return mapDomainError(c, err)
	}
	if req.Password != nil {
		// A password change invalidates every open session.
		if err := h.Tokens.RevokeAllForUser(c.Request().Context(), u.ID); err != nil {
			return respondInternal(c, err)
		}
	}
	fresh, err := h.Users.GetByID(c.Request().Context(), u.ID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"user": fresh})
}

// Delete removes a user account along with its refresh tokens.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid user id")
	}
	if err := h.Tokens.RevokeAllForUser(c.Request().Context(), id); err != nil {
		return respondInternal(c, err)
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		return mapDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"message": "user deleted"})
}
