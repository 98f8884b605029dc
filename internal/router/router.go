package router

import (
	"database/sql"

	"stocktrack_backend/internal/handlers"
	"stocktrack_backend/internal/middleware"
	"stocktrack_backend/internal/repositories"
	"stocktrack_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Config carries the settings the routing layer needs beyond the DB.
type Config struct {
	CompanyName string
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, cfg Config) {
	// Initialize Repositories
	txRunner := repositories.NewTxRunner(db)
	authRepo := repositories.NewAuthRepository(db)
	itemRepo := repositories.NewItemRepository(db)
	movementRepo := repositories.NewMovementRepository(db)
	challanRepo := repositories.NewChallanRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, txRunner)
	itemService := services.NewItemService(itemRepo, movementRepo, txRunner)
	movementService := services.NewMovementService(movementRepo, itemRepo, txRunner)
	challanService := services.NewChallanService(challanRepo, itemRepo, txRunner, cfg.CompanyName)
	reportService := services.NewReportService(itemRepo, movementRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	itemHandler := handlers.NewItemHandler(itemService)
	movementHandler := handlers.NewMovementHandler(movementService)
	challanHandler := handlers.NewChallanHandler(challanService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(db)

	engine.GET("/health", healthHandler.Health)

	apiV1 := engine.Group("/api/v1")

	// Public authentication routes
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	// Authenticated routes
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)

		SetupItemRoutes(authenticated, itemHandler)
		SetupMovementRoutes(authenticated, movementHandler)
		SetupChallanRoutes(authenticated, challanHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}

func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", authHandler.RegisterUser)
	group.POST("/login", authHandler.LoginUser)
}

func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.LogoutUser)
	group.GET("/me", authHandler.GetCurrentUser)
}
