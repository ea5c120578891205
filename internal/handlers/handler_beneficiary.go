package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/invofin/board_backend/internal/core/ports/services"
	"github.com/invofin/board_backend/internal/dto"
)

// beneficiaryHandler handles HTTP requests for beneficiaries and their
// grouping categories.
type beneficiaryHandler struct {
	beneficiaryService portssvc.BeneficiarySvcFacade
}

// registerBeneficiaryRoutes registers routes related to beneficiaries.
func registerBeneficiaryRoutes(rg *gin.RouterGroup, beneficiaryService portssvc.BeneficiarySvcFacade) {
	h := &beneficiaryHandler{beneficiaryService: beneficiaryService}

	groups := rg.Group("/beneficiary-categories")
	{
		groups.POST("", h.createBeneficiaryCategory)
		groups.GET("", h.listBeneficiaryCategories)
		groups.DELETE("/:categoryID", h.deleteBeneficiaryCategory)
	}

	beneficiaries := rg.Group("/beneficiaries")
	{
		beneficiaries.POST("", h.createBeneficiary)
		beneficiaries.GET("", h.listBeneficiaries)
		beneficiaries.PUT("/:beneficiaryID", h.updateBeneficiary)
		beneficiaries.DELETE("/:beneficiaryID", h.deleteBeneficiary)
	}
}

func (h *beneficiaryHandler) createBeneficiaryCategory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateBeneficiaryCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	category, err := h.beneficiaryService.CreateBeneficiaryCategory(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBeneficiaryCategoryResponse(category))
}

func (h *beneficiaryHandler) listBeneficiaryCategories(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	categories, err := h.beneficiaryService.ListBeneficiaryCategories(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responses := make([]dto.BeneficiaryCategoryResponse, len(categories))
	for i := range categories {
		responses[i] = dto.ToBeneficiaryCategoryResponse(&categories[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *beneficiaryHandler) deleteBeneficiaryCategory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.beneficiaryService.DeleteBeneficiaryCategory(c.Request.Context(), userID, c.Param("categoryID")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *beneficiaryHandler) createBeneficiary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	beneficiary, err := h.beneficiaryService.CreateBeneficiary(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBeneficiaryResponse(beneficiary))
}

func (h *beneficiaryHandler) listBeneficiaries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	beneficiaries, err := h.beneficiaryService.ListBeneficiaries(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	responses := make([]dto.BeneficiaryResponse, len(beneficiaries))
	for i := range beneficiaries {
		responses[i] = dto.ToBeneficiaryResponse(&beneficiaries[i])
	}
	c.JSON(http.StatusOK, responses)
}

func (h *beneficiaryHandler) updateBeneficiary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateBeneficiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	beneficiary, err := h.beneficiaryService.UpdateBeneficiary(c.Request.Context(), userID, c.Param("beneficiaryID"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBeneficiaryResponse(beneficiary))
}

func (h *beneficiaryHandler) deleteBeneficiary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.beneficiaryService.DeleteBeneficiary(c.Request.Context(), userID, c.Param("beneficiaryID")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
