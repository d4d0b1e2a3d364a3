package router

import (
	"github.com/labstack/echo/v4"

	"myStreamSaver/internal/rest"
)

func SetupOptimizeRoutes(api *echo.Group, handler *rest.OptimizeHandler) {
	api.POST("/optimize", handler.Optimize)
}

func SetupServiceRoutes(api *echo.Group, handler *rest.ServiceHandler) {
	services := api.Group("/services")

	services.GET("", handler.GetAllServices)
	services.GET("/:id", handler.GetServiceByID)
	services.POST("", handler.CreateService)
	services.PUT("/:id", handler.UpdateService)
	services.DELETE("/:id", handler.DeleteService)
}

func SetupTitleRoutes(api *echo.Group, handler *rest.TitleHandler) {
	titles := api.Group("/titles")

	titles.GET("/search", handler.SearchTitles)
}
