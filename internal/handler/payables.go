package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/dto"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/middleware"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/service"
)

type PayablesHandler struct{ svc service.PayableService }

func NewPayablesHandler(svc service.PayableService) *PayablesHandler {
	return &PayablesHandler{svc: svc}
}

func (h *PayablesHandler) Create(c *gin.Context) {
	var req dto.CreatePayableRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PayablesHandler) List(c *gin.Context) {
	var f dto.PayableFilter
	if !bindQueryAndValidate(c, &f) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Pay godoc
// @Summary Mark a bill as paid, optionally drawing cash from an open till
// @Tags payables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payable ID"
// @Param body body dto.PayPayableRequest true "Settlement source"
// @Success 200 {object} dto.PayableResponse
// @Failure 409 {object} apierror.Body
// @Router /v1/payables/{id}/pay [post]
func (h *PayablesHandler) Pay(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.PayPayableRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	operatorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Pay(c.Request.Context(), id, operatorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
