package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/dto"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/middleware"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/service"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

// Register godoc
// @Summary Register a completed sale against an open till
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RegisterOrderRequest true "Items and payments"
// @Success 201 {object} dto.OrderResponse
// @Failure 409 {object} apierror.Body
// @Failure 422 {object} apierror.ValidationBody
// @Router /v1/orders [post]
func (h *OrdersHandler) Register(c *gin.Context) {
	var req dto.RegisterOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	operatorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Register(c.Request.Context(), operatorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cancel godoc
// @Summary Cancel an order, reversing its ledger entries and stock
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param body body dto.CancelOrderRequest true "Cancellation reason"
// @Success 204
// @Failure 409 {object} apierror.Body
// @Router /v1/orders/{id}/cancel [post]
func (h *OrdersHandler) Cancel(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CancelOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	operatorID, _ := uuid.Parse(claims.UserID)

	if err := h.svc.Cancel(c.Request.Context(), id, operatorID, req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get godoc
// @Summary Get one order with items and payments
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} apierror.Body
// @Router /v1/orders/{id} [get]
func (h *OrdersHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary List orders filtered by session or status
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param session_id query string false "Cashier session ID"
// @Param status query string false "completed or cancelled"
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Success 200 {object} dto.OrderListResponse
// @Router /v1/orders [get]
func (h *OrdersHandler) List(c *gin.Context) {
	var f dto.OrderFilter
	if !bindQueryAndValidate(c, &f) {
		return
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	resp, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
