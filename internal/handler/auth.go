package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/activity-ticketing/internal/config"
	"github.com/iliyamo/activity-ticketing/internal/model"
	"github.com/iliyamo/activity-ticketing/internal/repository"
	"github.com/iliyamo/activity-ticketing/internal/utils"
)

// AuthHandler serves registration, login and token lifecycle endpoints.
type AuthHandler struct {
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Cfg    config.Config
}

// NewAuthHandler wires an AuthHandler.
func NewAuthHandler(users *repository.UserRepo, tokens *repository.TokenRepo, cfg config.Config) *AuthHandler {
	return &AuthHandler{Users: users, Tokens: tokens, Cfg: cfg}
}

type registerRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register creates a new user account. Requests may ask for the admin
// role explicitly; any other value falls back to the regular role.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return respondFail(c, http.StatusBadRequest, "name is required")
	}
	if !utils.IsValidEmail(req.Email) {
		return respondFail(c, http.StatusBadRequest, "invalid email address")
	}
	if !utils.IsStrongPassword(req.Password) {
		return respondFail(c, http.StatusBadRequest, "password must be at least 8 characters with upper, lower and digit")
	}
	role := model.RoleUser
	if req.Role == model.RoleAdmin {
		role = model.RoleAdmin
	}

	id, err := h.Users.Create(c.Request().Context(), req.Name, req.Email, req.Password, req.Phone, role, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return respondFail(c, http.StatusConflict, "email is already registered")
		}
		return respondInternal(c, err)
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondInternal(c, err)
	}
	return respondSuccess(c, http.StatusCreated, echo.Map{"user": u})
}

// Login verifies credentials and issues an access/refresh token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondFail(c, http.StatusBadRequest, "invalid request body")
	}
	u, err := h.Users.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return respondFail(c, http.StatusUnauthorized, "invalid email or password")
		}
		return respondInternal(c, err)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return respondFail(c, http.StatusUnauthorized, "invalid email or password")
	}
	return h.issueTokens(c, u)
}

// Refresh rotates a refresh token: the presented token is revoked and
// a fresh pair is returned. Unknown, revoked or expired tokens all
// answer 401 without distinguishing the cause.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return respondFail(c, http.StatusBadRequest, "refresh_token is required")
	}
	hash := utils.HashRefreshRaw(req.RefreshToken)
	userID, err := h.Tokens.ValidateRefresh(c.Request().Context(), hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return respondFail(c, http.StatusUnauthorized, "invalid refresh token")
		}
		return respondInternal(c, err)
	}
	u, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return respondFail(c, http.StatusUnauthorized, "invalid refresh token")
		}
		return respondInternal(c, err)
	}
	if err := h.Tokens.RevokeByHash(c.Request().Context(), hash); err != nil {
		return respondInternal(c, err)
	}
	return h.issueTokens(c, u)
}

// Logout revokes the presented refresh token. Revoking an already
// revoked or unknown token still succeeds; logout is idempotent.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return respondFail(c, http.StatusBadRequest, "refresh_token is required")
	}
	if err := h.Tokens.RevokeByHash(c.Request().Context(), utils.HashRefreshRaw(req.RefreshToken)); err != nil {
		return respondInternal(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"message": "logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return respondFail(c, http.StatusUnauthorized, "missing or invalid token")
	}
	u, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{"user": u})
}

func (h *AuthHandler) issueTokens(c echo.Context, u *model.User) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return respondInternal(c, err)
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return respondInternal(c, err)
	}
	if err := h.Tokens.StoreRefresh(c.Request().Context(), u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return respondInternal(c, err)
	}
	return respondSuccess(c, http.StatusOK, echo.Map{
		"access_token":  access.Token,
		"expires_at":    access.Exp,
		"refresh_token": refresh.Raw,
		"user":          u,
	})
}
