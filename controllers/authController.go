package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodiehub/middleware"
	"foodiehub/models"
	"foodiehub/services"
)

func Register(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.BindJSON(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
			return
		}
		if err := validate.Struct(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
			return
		}
		user, token, err := svc.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": user, "token": token})
	}
}

func Login(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.BindJSON(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
			return
		}
		if err := validate.Struct(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
			return
		}
		token, err := svc.Login(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
	}
}

func Profile(svc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		user, err := svc.Profile(c.Request.Context(), identity, c.Query("user_id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
	}
}
