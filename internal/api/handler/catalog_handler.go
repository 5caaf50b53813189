package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ryzetech/lifestyle-api/internal/core/catalog"
	"github.com/ryzetech/lifestyle-api/internal/core/ports"
)

// CatalogHandler serves the storefront. None of its routes need a session.
type CatalogHandler struct {
	service ports.SessionService
}

func NewCatalogHandler(service ports.SessionService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Packages handles GET /v1/catalog/packages.
//
// @Summary      List data packs
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.DataPackage
// @Router       /v1/catalog/packages [get]
func (h *CatalogHandler) Packages(c echo.Context) error {
	return c.JSON(http.StatusOK, catalog.Packages())
}

// Subscriptions handles GET /v1/catalog/subscriptions.
//
// @Summary      List subscription services
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.SubscriptionService
// @Router       /v1/catalog/subscriptions [get]
func (h *CatalogHandler) Subscriptions(c echo.Context) error {
	return c.JSON(http.StatusOK, catalog.Subscriptions())
}

// Quote handles POST /v1/mixer/quote.
//
// @Summary      Price a custom pack
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body      mixRequest  true  "Data, voice and validity"
// @Success      200   {object}  domain.MixQuote
// @Failure      422   {object}  errorResponse
// @Router       /v1/mixer/quote [post]
func (h *CatalogHandler) Quote(c echo.Context) error {
	var req mixRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	q, err := h.service.Quote(req.selection())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, q)
}
