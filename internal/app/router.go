package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/linguaflow-backend/internal/http/handlers"
	"github.com/yungbote/linguaflow-backend/internal/http/middleware"
	"github.com/yungbote/linguaflow-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, lessonHandler *handlers.LessonHandler, sessionHandler *handlers.SessionHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"},
		AllowCredentials: true,
	}))

	api := router.Group("/api")
	{
		api.GET("/health", handlers.Health)

		api.POST("/lessons/generate", lessonHandler.Generate)
		api.POST("/lessons/generate-from-url", lessonHandler.GenerateFromURL)
		api.POST("/lessons/generate-from-prompt", lessonHandler.GenerateFromPrompt)
		api.POST("/lessons/download", lessonHandler.Download)

		api.POST("/sessions", sessionHandler.Create)
		api.GET("/sessions", sessionHandler.List)
		api.GET("/sessions/:id", sessionHandler.Get)
		api.PATCH("/sessions/:id", sessionHandler.Rename)
		api.DELETE("/sessions/:id", sessionHandler.Delete)
	}

	return router
}
