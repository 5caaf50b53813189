package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ryzetech/lifestyle-api/internal/core/domain"
	"github.com/ryzetech/lifestyle-api/internal/core/ports"
)

// PurchaseHandler places purchase intents and resolves the confirmation.
type PurchaseHandler struct {
	service ports.SessionService
}

func NewPurchaseHandler(service ports.SessionService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

// Package handles POST /v1/purchases/packages.
//
// @Summary      Request a data pack
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      packagePurchaseRequest  true  "Pack id"
// @Success      202   {object}  intentResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/purchases/packages [post]
func (h *PurchaseHandler) Package(c echo.Context) error {
	var req packagePurchaseRequest
	return h.place(c, &req, func(sid string) (domain.PurchaseIntent, error) {
		return h.service.RequestPackage(c.Request().Context(), sid, req.PackageID)
	})
}

// Mix handles POST /v1/purchases/mixer.
//
// @Summary      Request a custom pack
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      mixRequest  true  "Data, voice and validity"
// @Success      202   {object}  intentResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/purchases/mixer [post]
func (h *PurchaseHandler) Mix(c echo.Context) error {
	var req mixRequest
	return h.place(c, &req, func(sid string) (domain.PurchaseIntent, error) {
		return h.service.RequestMix(c.Request().Context(), sid, req.selection())
	})
}

// Document handles POST /v1/purchases/documents.
//
// @Summary      Request a document
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      documentPurchaseRequest  true  "Document id"
// @Success      202   {object}  intentResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/purchases/documents [post]
func (h *PurchaseHandler) Document(c echo.Context) error {
	var req documentPurchaseRequest
	return h.place(c, &req, func(sid string) (domain.PurchaseIntent, error) {
		return h.service.RequestDocument(c.Request().Context(), sid, req.DocumentID)
	})
}

// Subscription handles POST /v1/purchases/subscriptions.
//
// @Summary      Request a subscription
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      subscriptionPurchaseRequest  true  "Service, plan and currency"
// @Success      202   {object}  intentResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/purchases/subscriptions [post]
func (h *PurchaseHandler) Subscription(c echo.Context) error {
	var req subscriptionPurchaseRequest
	return h.place(c, &req, func(sid string) (domain.PurchaseIntent, error) {
		return h.service.RequestSubscription(c.Request().Context(), sid, ports.SubscriptionInput{
			ServiceID: req.ServiceID,
			Plan:      req.Plan,
			Currency:  domain.Currency(req.Currency),
		})
	})
}

func (h *PurchaseHandler) place(c echo.Context, req any, request func(sid string) (domain.PurchaseIntent, error)) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	if err := bindAndValidate(c, req); err != nil {
		return err
	}
	intent, err := request(sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, intentResponse{Intent: intent})
}

// Pending handles GET /v1/confirmation.
//
// @Summary      Purchase awaiting confirmation
// @Tags         confirmation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  pendingResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/confirmation [get]
func (h *PurchaseHandler) Pending(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	p, err := h.service.Pending(c.Request().Context(), sid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pendingResponse{Pending: p})
}

// Confirm handles POST /v1/confirmation/confirm.
//
// @Summary      Confirm the pending purchase
// @Description  An unaffordable purchase is answered with 200 and applied=false; balances stay untouched.
// @Tags         confirmation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      confirmRequest  true  "Id of the pending intent"
// @Success      200   {object}  confirmResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/confirmation/confirm [post]
func (h *PurchaseHandler) Confirm(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	var req confirmRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	res, err := h.service.Confirm(c.Request().Context(), sid, req.IntentID)
	if err != nil {
		return err
	}

	resp := confirmResponse{
		Applied: res.Outcome.Applied,
		Intent:  res.Outcome.Intent,
		Delta:   res.Outcome.Delta,
		Session: res.Snapshot,
	}
	if r := res.Outcome.Rejection; r != nil {
		resp.Currency = r.Currency
		resp.Shortfall = r.Shortfall
	}
	return c.JSON(http.StatusOK, resp)
}

// Cancel handles POST /v1/confirmation/cancel.
//
// @Summary      Discard the pending purchase
// @Tags         confirmation
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /v1/confirmation/cancel [post]
func (h *PurchaseHandler) Cancel(c echo.Context) error {
	sid, err := sessionID(c)
	if err != nil {
		return err
	}
	if err := h.service.Cancel(c.Request().Context(), sid); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
