package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/invofin/board_backend/internal/core/domain"
	portssvc "github.com/invofin/board_backend/internal/core/ports/services"
	"github.com/invofin/board_backend/internal/dto"
)

// financialHandler handles HTTP requests for cost centers and bank accounts.
type financialHandler struct {
	financialService portssvc.FinancialSvcFacade
}

// registerFinancialRoutes registers routes related to financial references.
func registerFinancialRoutes(rg *gin.RouterGroup, financialService portssvc.FinancialSvcFacade) {
	h := &financialHandler{financialService: financialService}

	financials := rg.Group("/financials")
	{
		financials.POST("", h.createFinancial)
		financials.GET("", h.listFinancials)
		financials.PUT("/:financialID", h.updateFinancial)
		financials.DELETE("/:financialID", h.deleteFinancial)
	}
}

func (h *financialHandler) createFinancial(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateFinancialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	financial, err := h.financialService.CreateFinancial(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToFinancialResponse(financial))
}

// listFinancials godoc
// @Summary List cost centers or bank accounts
// @Tags financials
// @Produce json
// @Param kind query int true "1=cost centers, 2=bank accounts"
// @Success 200 {array} dto.FinancialResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /financials [get]
func (h *financialHandler) listFinancials(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	kind, err := strconv.Atoi(c.Query("kind"))
	if err != nil || (kind != int(domain.FinancialCostCenter) && kind != int(domain.FinancialBankAccount)) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "kind must be 1 (cost center) or 2 (bank account)"})
		return
	}
	financials, err := h.financialService.ListFinancials(c.Request.Context(), userID, domain.FinancialKind(kind))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responses := make([]dto.FinancialResponse, len(financials))
	for i := range financials {
		responses[i] = dto.ToFinancialResponse(&financials[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *financialHandler) updateFinancial(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateFinancialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	financial, err := h.financialService.UpdateFinancial(c.Request.Context(), userID, c.Param("financialID"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFinancialResponse(financial))
}

func (h *financialHandler) deleteFinancial(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.financialService.DeleteFinancial(c.Request.Context(), userID, c.Param("financialID")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
