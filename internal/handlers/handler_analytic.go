package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/invofin/board_backend/internal/core/ports/services"
	"github.com/invofin/board_backend/internal/dto"
)

// analyticHandler serves the cached month-cycle reports.
type analyticHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// registerAnalyticRoutes registers the analytic report route.
func registerAnalyticRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &analyticHandler{ledgerService: ledgerService}
	rg.GET("/analytics", h.getReport)
}

// getReport godoc
// @Summary Get a month's analytic report
// @Description Returns the cached revenue/expenses/balance report for a month cycle. When the requested cycle has no report the most recent earlier one is returned with past=true.
// @Tags analytics
// @Produce json
// @Param year query int false "Cycle year (defaults to current)"
// @Param month query int false "Cycle month 1-12 (defaults to current)"
// @Success 200 {object} dto.AnalyticResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /analytics [get]
func (h *analyticHandler) getReport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var params dto.AnalyticParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	now := time.Now().UTC()
	year, month := params.Year, params.Month
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	cycle := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	report, err := h.ledgerService.GetReport(c.Request.Context(), userID, cycle)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
