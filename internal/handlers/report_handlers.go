package handlers

import (
	"fmt"
	"net/http"
	"time"

	"stocktrack_backend/internal/services"
	"stocktrack_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GetStockSummary returns the full stock list valued at average cost.
func (h *ReportHandler) GetStockSummary(c *gin.Context) {
	rows, err := h.reportService.GetStockSummary()
	if err != nil {
		utils.LogError(err, "GetStockSummary: Error from reportService.GetStockSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build stock summary.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// GetDashboardStats returns the headline dashboard numbers.
func (h *ReportHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.reportService.GetDashboardStats()
	if err != nil {
		utils.LogError(err, "GetDashboardStats: Error from reportService.GetDashboardStats")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build dashboard stats.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// csvAttachment sets download headers with a dated filename.
func csvAttachment(c *gin.Context, name string) {
	filename := fmt.Sprintf("%s-%s.csv", name, time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
}

// ExportStockListCSV downloads the full stock list with valuation.
func (h *ReportHandler) ExportStockListCSV(c *gin.Context) {
	csvAttachment(c, "stock-list")
	if err := h.reportService.ExportStockListCSV(c.Writer); err != nil {
		utils.LogError(err, "ExportStockListCSV: Error from reportService.ExportStockListCSV")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export stock list.", "Internal error"))
	}
}

// ExportLowStockCSV downloads the low stock report.
func (h *ReportHandler) ExportLowStockCSV(c *gin.Context) {
	csvAttachment(c, "low-stock")
	if err := h.reportService.ExportLowStockCSV(c.Writer); err != nil {
		utils.LogError(err, "ExportLowStockCSV: Error from reportService.ExportLowStockCSV")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export low stock report.", "Internal error"))
	}
}

// ExportMovementsCSV downloads the movement report, honoring the same
// filters as the movement listing.
func (h *ReportHandler) ExportMovementsCSV(c *gin.Context) {
	query, err := movementQueryFromContext(c)
	if err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	csvAttachment(c, "movements")
	if err := h.reportService.ExportMovementsCSV(query, c.Writer); err != nil {
		utils.LogError(err, "ExportMovementsCSV: Error from reportService.ExportMovementsCSV")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to export movements.", "Internal error"))
	}
}
