package routes

import (
	"hrportal_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// Options - что регистрировать помимо API
type Options struct {
	// FilesDir - каталог локального хранилища; пусто, если файлы лежат в S3
	FilesDir   string
	FilesURL   string
	EnableDocs bool
}

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers, // <-- Принимаем ГОТОВЫЕ хэндлеры
	guards handlers.RouteGuards,
	opts Options,
) {
	// Регистрация HTTP API v1
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, guards)
		appHandlers.UserHandler.RegisterRoutes(api, guards)
		appHandlers.LeavePolicyHandler.RegisterRoutes(api, guards)
		api.GET("/health", appHandlers.HealthHandler.Health)
	}

	registerSystemRoutes(ginRouter, opts)
}
