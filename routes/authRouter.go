package routes

import (
	"github.com/gin-gonic/gin"

	"foodiehub/controllers"
	"foodiehub/helpers"
	"foodiehub/middleware"
	"foodiehub/services"
)

func AuthRoutes(incomingRoutes *gin.Engine, svc *services.AuthService, tokens *helpers.TokenMaker) {
	auth := incomingRoutes.Group("/api/auth")

	auth.POST("/register", controllers.Register(svc))
	auth.POST("/login", controllers.Login(svc))
	auth.GET("/me", middleware.Authentication(tokens), controllers.Profile(svc))
}
