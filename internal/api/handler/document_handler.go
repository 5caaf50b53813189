package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ryzetech/lifestyle-api/internal/core/ports"
	"github.com/ryzetech/lifestyle-api/internal/core/session"
)

// DocumentHandler serves the learning marketplace and the document preview.
type DocumentHandler struct {
	service ports.SessionService
}

func NewDocumentHandler(service ports.SessionService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Search handles GET /v1/documents?q=.
//
// @Summary      Search the marketplace
// @Description  Case-insensitive match on title or tags. An empty query lists every document.
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Search text"
// @Success      200  {object}  documentsResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/documents [get]
func (h *DocumentHandler) Search(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	docs, err := h.service.SearchDocuments(c.Request().Context(), sid, c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, documentsResponse{Documents: docs})
}

// Library handles GET /v1/documents/library.
//
// @Summary      Owned documents
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  documentsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/documents/library [get]
func (h *DocumentHandler) Library(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	docs, err := h.service.Library(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, documentsResponse{Documents: docs})
}

// Upload handles POST /v1/documents.
//
// @Summary      Upload a document
// @Description  reward=instant credits coins right away; reward=sell lists the document at the given coin price.
// @Tags         documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      uploadRequest  true  "Document metadata"
// @Success      201   {object}  uploadResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/documents [post]
func (h *DocumentHandler) Upload(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	var req uploadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := h.service.Upload(c.Request().Context(), sid, ports.UploadInput{
		Title:  req.Title,
		Tags:   req.Tags,
		Reward: session.UploadReward(req.Reward),
		Price:  req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, uploadResponse{Document: res.Document, Session: res.Snapshot})
}

// OpenPreview handles POST /v1/documents/:id/preview.
//
// @Summary      Open the document preview
// @Description  Switches to the preview view. The AI overview is returned ready when cached, otherwise it is loading.
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document id"
// @Success      200  {object}  session.Preview
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/documents/{id}/preview [post]
func (h *DocumentHandler) OpenPreview(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	p, err := h.service.OpenPreview(c.Request().Context(), sid, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Preview handles GET /v1/preview.
//
// @Summary      Poll the document preview
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  session.Preview
// @Failure      409  {object}  errorResponse
// @Router       /v1/preview [get]
func (h *DocumentHandler) Preview(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	p, err := h.service.Preview(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// ClosePreview handles DELETE /v1/preview.
//
// @Summary      Leave the document preview
// @Tags         documents
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /v1/preview [delete]
func (h *DocumentHandler) ClosePreview(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	if err := h.service.ClosePreview(c.Request().Context(), sid); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
