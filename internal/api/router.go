package api

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/oficinago/oficinago/internal/api/v1"
	"github.com/oficinago/oficinago/internal/rest/middleware"
)

type Handlers struct {
	Service *v1.ServiceHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.CORSMiddleware)
	router.Use(middleware.ErrorHandler())

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Service record routes
	services := router.Group("/services")
	{
		services.POST("", handlers.Service.CreateService)
		services.GET("", handlers.Service.ListServices)
		services.GET("/:id", handlers.Service.GetService)
		services.POST("/:id/share", handlers.Service.ShareService)
		services.POST("/:id/download", handlers.Service.DownloadService)
		services.GET("/:id/receipt", handlers.Service.GetReceipt)
	}

	router.GET("/status", handlers.Service.GetStatus)
}
