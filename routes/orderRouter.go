package routes

import (
	"github.com/gin-gonic/gin"

	"foodiehub/controllers"
	"foodiehub/helpers"
	"foodiehub/middleware"
	"foodiehub/services"
)

func OrderRoutes(incomingRoutes *gin.Engine, svc *services.OrderService, tokens *helpers.TokenMaker) {
	orders := incomingRoutes.Group("/api/orders")
	orders.Use(middleware.Authentication(tokens))

	orders.POST("", controllers.CreateOrder(svc))
	orders.GET("/my-orders", controllers.GetMyOrders(svc))
	orders.GET("/:order_id", controllers.GetOrder(svc))
	orders.PATCH("/:order_id/status", controllers.UpdateOrderStatus(svc))
	orders.GET("", middleware.RequireAdmin(), controllers.GetAllOrders(svc))
}
