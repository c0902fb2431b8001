package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/apierror"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/dto"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/middleware"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/service"
)

type CashierHandler struct {
	svc   service.CashierService
	users service.AuthService
}

func NewCashierHandler(svc service.CashierService, users service.AuthService) *CashierHandler {
	return &CashierHandler{svc: svc, users: users}
}

// Open godoc
// @Summary Open a till session on a terminal
// @Tags cashier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.OpenCashierRequest true "Opening data"
// @Success 201 {object} dto.CashierResponse
// @Failure 409 {object} apierror.Body
// @Failure 422 {object} apierror.ValidationBody
// @Router /v1/cashier/open [post]
func (h *CashierHandler) Open(c *gin.Context) {
	var req dto.OpenCashierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	operatorID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid user id in token"))
		return
	}
	operator, err := h.users.FindUser(c.Request.Context(), operatorID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.svc.Open(c.Request.Context(), operator, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Close godoc
// @Summary Close a till session with a counted balance
// @Tags cashier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body dto.CloseCashierRequest true "Counted balance and notes"
// @Success 200 {object} dto.CashierResponse
// @Failure 409 {object} apierror.Body
// @Failure 422 {object} apierror.ValidationBody
// @Router /v1/cashier/{id}/close [post]
func (h *CashierHandler) Close(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CloseCashierRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TerminalStatus godoc
// @Summary Till status for a terminal
// @Tags cashier
// @Produce json
// @Security BearerAuth
// @Param terminalId path string true "Terminal ID"
// @Success 200 {object} dto.TerminalStatusResponse
// @Router /v1/cashier/status/{terminalId} [get]
func (h *CashierHandler) TerminalStatus(c *gin.Context) {
	terminalID := c.Param("terminalId")
	if terminalID == "" {
		c.JSON(http.StatusBadRequest, apierror.New("missing terminal id"))
		return
	}
	resp, err := h.svc.TerminalStatus(c.Request.Context(), terminalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Withdrawal godoc
// @Summary Register a cash withdrawal on an open till
// @Tags cashier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body dto.CashMovementRequest true "Amount and reason"
// @Success 201 {object} dto.CashierOperationResponse
// @Failure 422 {object} apierror.ValidationBody
// @Router /v1/cashier/{id}/withdrawal [post]
func (h *CashierHandler) Withdrawal(c *gin.Context) {
	h.movement(c, h.svc.RegisterWithdrawal)
}

// Deposit godoc
// @Summary Register a cash deposit on an open till
// @Tags cashier
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param body body dto.CashMovementRequest true "Amount and reason"
// @Success 201 {object} dto.CashierOperationResponse
// @Failure 422 {object} apierror.ValidationBody
// @Router /v1/cashier/{id}/deposit [post]
func (h *CashierHandler) Deposit(c *gin.Context) {
	h.movement(c, h.svc.RegisterDeposit)
}

type cashMovementFunc func(ctx context.Context, id, operatorID uuid.UUID, req dto.CashMovementRequest) (*dto.CashierOperationResponse, error)

func (h *CashierHandler) movement(c *gin.Context, register cashMovementFunc) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CashMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	operatorID, _ := uuid.Parse(claims.UserID)

	resp, err := register(c.Request.Context(), id, operatorID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Summary godoc
// @Summary Derived totals and expected balance for a session
// @Tags cashier
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.CashierSummaryResponse
// @Failure 404 {object} apierror.Body
// @Router /v1/cashier/{id}/summary [get]
func (h *CashierHandler) Summary(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History returns a paginated list of closed till sessions.
func (h *CashierHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	resp, total, err := h.svc.History(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp, "total": total, "page": page, "limit": limit})
}
