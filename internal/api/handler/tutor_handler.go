package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ryzetech/lifestyle-api/internal/core/ports"
)

type TutorHandler struct {
	service ports.SessionService
}

func NewTutorHandler(service ports.SessionService) *TutorHandler {
	return &TutorHandler{service: service}
}

// Messages handles GET /v1/tutor/messages.
//
// @Summary      Tutor conversation
// @Tags         tutor
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  conversationResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/tutor/messages [get]
func (h *TutorHandler) Messages(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	conv, err := h.service.Conversation(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conversationResponse(conv))
}

// Send handles POST /v1/tutor/messages. The reply is appended asynchronously;
// poll Messages until typing is false.
//
// @Summary      Ask the tutor
// @Tags         tutor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      tutorMessageRequest  true  "Message"
// @Success      202   {object}  conversationResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/tutor/messages [post]
func (h *TutorHandler) Send(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	var req tutorMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	conv, err := h.service.SendTutorMessage(c.Request().Context(), sid, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, conversationResponse(conv))
}
