package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/invofin/board_backend/internal/core/domain"
	"github.com/invofin/board_backend/internal/dto"
	"github.com/invofin/board_backend/internal/middleware"
)

// exportEntries godoc
// @Summary Export a month's entries as a spreadsheet
// @Description Streams the selected month's active entries as an xlsx file, oldest first, with running balances.
// @Tags entries
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param year query int false "Cycle year (defaults to current)"
// @Param month query int false "Cycle month 1-12 (defaults to current)"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /entries/export [get]
func (h *entryHandler) exportEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
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

	entries, err := h.ledgerService.ListCycleEntries(c.Request.Context(), userID, cycle)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := cycle.Format("Jan 2006")
	index, err := f.NewSheet(sheet)
	if err != nil {
		logger.Error("Failed to create export sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to build export"})
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"#", "Date", "Category", "Subcategory", "Description", "Amount", "Monthly Balance", "Overall Balance"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, header)
	}

	for i, e := range entries {
		row := i + 2
		amount := e.Amount
		if e.CategoryType == domain.CategoryTypeExpense {
			amount = amount.Neg()
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), e.SQN)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), e.EntryDate.Format(dto.DateLayout))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), e.CategoryName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), e.SubcategoryName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), e.Description)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), amount.StringFixed(3))
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), e.MonthlyBalance.StringFixed(3))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), e.OverallBalance.StringFixed(3))
	}

	f.SetColWidth(sheet, "B", "B", 12)
	f.SetColWidth(sheet, "C", "E", 24)
	f.SetColWidth(sheet, "F", "H", 16)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"entries_%04d_%02d.xlsx\"", year, month))
	if err := f.Write(c.Writer); err != nil {
		logger.Error("Failed to write export", slog.String("error", err.Error()))
	}
}
