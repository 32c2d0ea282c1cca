package routes

import (
	"strings"

	"hrportal_backend/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func registerSystemRoutes(r *gin.Engine, opts Options) {
	// 📁 Загруженные файлы (только для локального хранилища)
	if opts.FilesDir != "" {
		prefix := "/" + strings.Trim(opts.FilesURL, "/")
		if prefix == "/" {
			prefix = "/files"
		}
		r.Static(prefix, opts.FilesDir)
		logger.Info("Static files route registered", "prefix", prefix, "dir", opts.FilesDir)
	}

	// 📖 Swagger
	if opts.EnableDocs {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		logger.Info("Swagger route /swagger/index.html registered")
	}
}
