package handlers

import (
	"errors"
	"net/http"

	"stocktrack_backend/internal/services"
	"stocktrack_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ChallanHandler holds the challan service.
type ChallanHandler struct {
	challanService services.ChallanService
}

// NewChallanHandler creates a new ChallanHandler.
func NewChallanHandler(cs services.ChallanService) *ChallanHandler {
	return &ChallanHandler{challanService: cs}
}

// CreateChallan issues a delivery challan with a server-assigned number.
func (h *ChallanHandler) CreateChallan(c *gin.Context) {
	var req services.CreateChallanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	challan, err := h.challanService.CreateChallan(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Line item not found.", err.Error()))
		case errors.Is(err, services.ErrChallanNumberExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Challan number already exists.", err.Error()))
		default:
			utils.LogError(err, "CreateChallan: Error from challanService.CreateChallan")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create challan.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, challan)
}

// GetChallans lists challans with pagination, newest first.
func (h *ChallanHandler) GetChallans(c *gin.Context) {
	page, pageSize := pagination(c)
	challans, totalCount, err := h.challanService.GetChallans(page, pageSize)
	if err != nil {
		utils.LogError(err, "GetChallans: Error from challanService.GetChallans")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve challans.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        challans,
		"total_count": totalCount,
		"page":        page,
		"page_size":   pageSize,
	})
}

// GetChallanByID retrieves one challan with its line items.
func (h *ChallanHandler) GetChallanByID(c *gin.Context) {
	challan, err := h.challanService.GetChallanByID(c.Param("challanId"))
	if err != nil {
		if errors.Is(err, services.ErrChallanNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Challan not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetChallanByID: Error from challanService.GetChallanByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve challan.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, challan)
}

// GetChallanDocument renders the printable two-copy challan as HTML.
func (h *ChallanHandler) GetChallanDocument(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	err := h.challanService.RenderChallanDocument(c.Param("challanId"), c.Writer)
	if err != nil {
		if errors.Is(err, services.ErrChallanNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Challan not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetChallanDocument: Error from challanService.RenderChallanDocument")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to render challan document.", "Internal error"))
		return
	}
}
