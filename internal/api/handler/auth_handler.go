package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/ports"
)

type AuthHandler struct {
	service ports.SessionService
}

func NewAuthHandler(service ports.SessionService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login authenticates the session with the demo credentials.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  session.Snapshot
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	snap, err := h.service.Login(c.Request().Context(), sid, req.PhoneNumber, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

// Logout drops authentication and discards any pending purchase.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  session.Snapshot
// @Failure      401  {object}  errorResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	snap, err := h.service.Logout(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

// Onboard stores the profile collected after the first login.
//
// @Summary      Complete onboarding
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      onboardingRequest  true  "Purpose and grade or interest"
// @Success      200   {object}  session.Snapshot
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/onboarding [post]
func (h *AuthHandler) Onboard(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	var req onboardingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	snap, err := h.service.Onboard(c.Request().Context(), sid, domain.Profile{
		Purpose: domain.Purpose(req.Purpose),
		Detail:  req.Detail,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}
