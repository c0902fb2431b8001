package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/costadanilofreitas/chefia-pos-sub001/internal/middleware"
	"github.com/costadanilofreitas/chefia-pos-sub001/internal/service"
)

type DashboardHandler struct {
	dashboards service.DashboardService
	store      service.StoreService
}

func NewDashboardHandler(dashboards service.DashboardService, store service.StoreService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, store: store}
}

// Today godoc
// @Summary Sales dashboard for the current calendar day
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Router /v1/dashboard/today [get]
func (h *DashboardHandler) Today(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboards.Today(c.Request.Context()))
}

// StoreState godoc
// @Summary Lifecycle snapshot for a terminal
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param terminal_id query string false "Terminal ID (defaults to the token's terminal)"
// @Success 200 {object} dto.StoreStateResponse
// @Router /v1/store/state [get]
func (h *DashboardHandler) StoreState(c *gin.Context) {
	terminalID := c.Query("terminal_id")
	if terminalID == "" {
		// Fall back to the terminal bound to the operator's token
		claims := middleware.GetClaims(c)
		if claims != nil && claims.TerminalID != nil {
			terminalID = *claims.TerminalID
		}
	}
	resp, err := h.store.State(c.Request.Context(), terminalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
