package server

import (
	"github.com/gin-gonic/gin"

	"partsimport/internal/config"
)

func SetupRouter(cfg config.Config, handler *Handler) *gin.Engine {
	if cfg.ServerEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(RecoveryMiddleware())
	if gin.Mode() != gin.TestMode {
		router.Use(LoggerMiddleware())
	}
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(cfg.CORSOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/import", handler.Import)
		v1.POST("/assemble", handler.Assemble)
	}

	return router
}
