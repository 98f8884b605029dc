package handlers

import (
	"errors"
	"net/http"
	"time"

	"stocktrack_backend/internal/services"
	"stocktrack_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MovementHandler holds the movement service.
type MovementHandler struct {
	movementService services.MovementService
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(ms services.MovementService) *MovementHandler {
	return &MovementHandler{movementService: ms}
}

// CreateMovement records one inward, outward or return movement.
func (h *MovementHandler) CreateMovement(c *gin.Context) {
	var req services.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	movement, err := h.movementService.CreateMovement(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			utils.RespondValidationFailed(c, err.Error())
		case errors.Is(err, services.ErrItemNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Item not found.", err.Error()))
		case errors.Is(err, services.ErrInsufficientStock):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Insufficient stock.", err.Error()))
		default:
			utils.LogError(err, "CreateMovement: Error from movementService.CreateMovement")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to record movement.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, movement)
}

// movementQueryFromContext builds the listing filter from query params.
// Dates use YYYY-MM-DD and are matched at day granularity, inclusive.
func movementQueryFromContext(c *gin.Context) (services.GetMovementsQuery, error) {
	query := services.GetMovementsQuery{
		ItemID:       utils.NewNullString(c.Query("item_id")),
		MovementType: utils.NewNullString(c.Query("movement_type")),
		Mode:         utils.NewNullString(c.Query("mode")),
		LaborerName:  utils.NewNullString(c.Query("laborer_name")),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return query, errors.New("invalid 'from' date, expected YYYY-MM-DD")
		}
		query.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return query, errors.New("invalid 'to' date, expected YYYY-MM-DD")
		}
		query.To = &t
	}
	return query, nil
}

// GetMovements lists movements filtered by item, type, mode, laborer
// and date range, newest first.
func (h *MovementHandler) GetMovements(c *gin.Context) {
	query, err := movementQueryFromContext(c)
	if err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	page, pageSize := pagination(c)

	movements, totalCount, err := h.movementService.GetMovements(query, page, pageSize)
	if err != nil {
		utils.LogError(err, "GetMovements: Error from movementService.GetMovements")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve movements.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        movements,
		"total_count": totalCount,
		"page":        page,
		"page_size":   pageSize,
	})
}

// DeleteMovement removes a movement record. Stock is not recomputed;
// the record is simply struck from the history.
func (h *MovementHandler) DeleteMovement(c *gin.Context) {
	if err := h.movementService.DeleteMovement(c.Param("movementId")); err != nil {
		if errors.Is(err, services.ErrMovementNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Movement not found.", err.Error()))
			return
		}
		utils.LogError(err, "DeleteMovement: Error from movementService.DeleteMovement")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete movement.", "Internal error"))
		return
	}
	c.Status(http.StatusNoContent)
}
