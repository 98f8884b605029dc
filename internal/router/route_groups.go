package router

import (
	"stocktrack_backend/internal/handlers"
	"stocktrack_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupItemRoutes sets up the stock item routes.
// Deleting an item cascades to its movement history, so it is Admin only.
func SetupItemRoutes(authenticatedGroup *gin.RouterGroup, itemHandler *handlers.ItemHandler) {
	itemRoutes := authenticatedGroup.Group("/items")
	itemRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		itemRoutes.POST("", itemHandler.CreateItem)
		itemRoutes.GET("", itemHandler.GetItems)
		itemRoutes.GET("/low-stock", itemHandler.GetLowStockItems)
		itemRoutes.GET("/:itemId", itemHandler.GetItemByID)
		itemRoutes.PUT("/:itemId", itemHandler.UpdateItem)
	}

	authenticatedGroup.DELETE("/items/:itemId", middleware.RoleAuthMiddleware("Admin"), itemHandler.DeleteItem)
}

// SetupMovementRoutes sets up the stock movement routes.
func SetupMovementRoutes(authenticatedGroup *gin.RouterGroup, movementHandler *handlers.MovementHandler) {
	movementRoutes := authenticatedGroup.Group("/movements")
	movementRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		movementRoutes.POST("", movementHandler.CreateMovement)
		movementRoutes.GET("", movementHandler.GetMovements)
	}

	authenticatedGroup.DELETE("/movements/:movementId", middleware.RoleAuthMiddleware("Admin"), movementHandler.DeleteMovement)
}

// SetupChallanRoutes sets up the delivery challan routes.
func SetupChallanRoutes(authenticatedGroup *gin.RouterGroup, challanHandler *handlers.ChallanHandler) {
	challanRoutes := authenticatedGroup.Group("/challans")
	challanRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		challanRoutes.POST("", challanHandler.CreateChallan)
		challanRoutes.GET("", challanHandler.GetChallans)
		challanRoutes.GET("/:challanId", challanHandler.GetChallanByID)
		challanRoutes.GET("/:challanId/document", challanHandler.GetChallanDocument)
	}
}

// SetupReportRoutes sets up the report and dashboard routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		reportRoutes.GET("/stock-summary", reportHandler.GetStockSummary)
		reportRoutes.GET("/stock-list.csv", reportHandler.ExportStockListCSV)
		reportRoutes.GET("/low-stock.csv", reportHandler.ExportLowStockCSV)
		reportRoutes.GET("/movements.csv", reportHandler.ExportMovementsCSV)
	}

	dashboardRoutes := authenticatedGroup.Group("/dashboard")
	dashboardRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		dashboardRoutes.GET("/summary", reportHandler.GetDashboardStats)
	}
}
