package routes

import (
	"github.com/gin-gonic/gin"

	"foodiehub/controllers"
	"foodiehub/helpers"
	"foodiehub/middleware"
	"foodiehub/services"
)

func MenuRoutes(incomingRoutes *gin.Engine, svc *services.CatalogService, tokens *helpers.TokenMaker) {
	menu := incomingRoutes.Group("/api/menu")

	menu.GET("", controllers.GetMenuItems(svc))
	menu.GET("/:item_id", controllers.GetMenuItem(svc))
	menu.POST("", middleware.Authentication(tokens), middleware.RequireAdmin(), controllers.CreateMenuItem(svc))
}
