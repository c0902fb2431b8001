package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/apierror"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/dto"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/middleware"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/service"
)

type BusinessDayHandler struct{ svc service.BusinessDayService }

func NewBusinessDayHandler(svc service.BusinessDayService) *BusinessDayHandler {
	return &BusinessDayHandler{svc: svc}
}

// Open godoc
// @Summary Open the business day for the store
// @Tags business-day
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.OpenBusinessDayRequest true "Opening data"
// @Success 201 {object} dto.BusinessDayResponse
// @Failure 422 {object} apierror.ValidationBody
// @Router /v1/business-day/open [post]
func (h *BusinessDayHandler) Open(c *gin.Context) {
	var req dto.OpenBusinessDayRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	openedBy, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Open(c.Request.Context(), openedBy, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Close godoc
// @Summary Close a business day
// @Tags business-day
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Business day ID"
// @Param body body dto.CloseBusinessDayRequest true "Closing notes"
// @Success 200 {object} dto.BusinessDayResponse
// @Failure 409 {object} apierror.Body
// @Router /v1/business-day/{id}/close [post]
func (h *BusinessDayHandler) Close(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CloseBusinessDayRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	closedBy, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Close(c.Request.Context(), id, closedBy, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Current godoc
// @Summary Get the currently open business day
// @Tags business-day
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BusinessDayResponse
// @Failure 404 {object} apierror.Body
// @Router /v1/business-day/current [get]
func (h *BusinessDayHandler) Current(c *gin.Context) {
	resp, err := h.svc.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if resp == nil {
		// No open day is a normal state for the UI, not an error condition
		c.JSON(http.StatusNotFound, apierror.New("no business day is open"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary List business days with optional date/status filters
// @Tags business-day
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "From date (2006-01-02)"
// @Param end_date query string false "To date (2006-01-02)"
// @Param status query string false "OPEN or CLOSED"
// @Success 200 {array} dto.BusinessDayResponse
// @Router /v1/business-day [get]
func (h *BusinessDayHandler) List(c *gin.Context) {
	var q dto.ListBusinessDaysQuery
	if !bindQueryAndValidate(c, &q) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Summary godoc
// @Summary Aggregated totals for one business day
// @Tags business-day
// @Produce json
// @Security BearerAuth
// @Param id path string true "Business day ID"
// @Success 200 {object} dto.BusinessDaySummaryResponse
// @Router /v1/business-day/{id}/summary [get]
func (h *BusinessDayHandler) Summary(c *gin.Context) {
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
