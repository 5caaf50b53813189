package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/ports"
)

// SessionHandler serves session lifecycle, snapshot and navigation routes.
type SessionHandler struct {
	service ports.SessionService
}

func NewSessionHandler(service ports.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// Create handles POST /v1/sessions.
//
// @Summary      Start a session
// @Description  Creates an anonymous session in the home view and returns its bearer token.
// @Tags         session
// @Produce      json
// @Success      201  {object}  createSessionResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/sessions [post]
func (h *SessionHandler) Create(c echo.Context) error {
	created, err := h.service.Create(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createSessionResponse{Token: created.Token, Session: created.Snapshot})
}

// Get handles GET /v1/session.
//
// @Summary      Current session state
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  session.Snapshot
// @Failure      401  {object}  errorResponse
// @Router       /v1/session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	snap, err := h.service.Snapshot(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, snap)
}

// Notification handles GET /v1/notification.
//
// @Summary      Visible notification
// @Description  Returns the current notification, or null once it has expired.
// @Tags         session
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  notificationResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/notification [get]
func (h *SessionHandler) Notification(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	n, err := h.service.Notification(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationResponse{Notification: n})
}

// Navigate handles POST /v1/navigate.
//
// @Summary      Switch view
// @Description  Home is always reachable. Other views need a login; otherwise the view is kept and login_required is set.
// @Tags         session
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      navigateRequest  true  "Target view"
// @Success      200   {object}  navigation.Decision
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/navigate [post]
func (h *SessionHandler) Navigate(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	var req navigateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	view, err := domain.ParseView(req.View)
	if err != nil {
		return err
	}
	d, err := h.service.Navigate(c.Request().Context(), sid, view)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}
