package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"stocktrack_backend/internal/services"
	"stocktrack_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ItemHandler holds the item service.
type ItemHandler struct {
	itemService services.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(is services.ItemService) *ItemHandler {
	return &ItemHandler{itemService: is}
}

// pagination reads page/page_size query params with sane defaults.
func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}
	return page, pageSize
}

// CreateItem registers an item explicitly. An existing item with the
// same name is returned with 200 instead of 201.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req services.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	item, created, err := h.itemService.CreateItem(req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondValidationFailed(c, err.Error())
			return
		}
		utils.LogError(err, "CreateItem: Error from itemService.CreateItem")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create item.", "Internal error"))
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, item)
}

// GetItems lists items with pagination.
func (h *ItemHandler) GetItems(c *gin.Context) {
	page, pageSize := pagination(c)
	items, totalCount, err := h.itemService.GetItems(page, pageSize)
	if err != nil {
		utils.LogError(err, "GetItems: Error from itemService.GetItems")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve items.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        items,
		"total_count": totalCount,
		"page":        page,
		"page_size":   pageSize,
	})
}

// GetItemByID retrieves one item.
func (h *ItemHandler) GetItemByID(c *gin.Context) {
	item, err := h.itemService.GetItemByID(c.Param("itemId"))
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Item not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetItemByID: Error from itemService.GetItemByID")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve item.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateItem patches an item's fields.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	var req services.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	item, err := h.itemService.UpdateItem(c.Param("itemId"), req)
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Item not found.", err.Error()))
			return
		}
		utils.LogError(err, "UpdateItem: Error from itemService.UpdateItem")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update item.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem removes an item and all of its movements.
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	if err := h.itemService.DeleteItem(c.Param("itemId")); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Item not found.", err.Error()))
			return
		}
		utils.LogError(err, "DeleteItem: Error from itemService.DeleteItem")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete item.", "Internal error"))
		return
	}
	c.Status(http.StatusNoContent)
}

// GetLowStockItems lists items at or below their reorder level.
func (h *ItemHandler) GetLowStockItems(c *gin.Context) {
	items, err := h.itemService.GetLowStockItems()
	if err != nil {
		utils.LogError(err, "GetLowStockItems: Error from itemService.GetLowStockItems")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to retrieve low stock items.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}
