package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodiehub/models"
	"foodiehub/services"
)

func GetMenuItems(svc *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(items), "data": items})
	}
}

func GetMenuItem(svc *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := svc.Resolve(c.Request.Context(), c.Param("item_id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
	}
}

func CreateMenuItem(svc *services.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateMenuItemRequest
		if err := c.BindJSON(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
			return
		}
		if err := validate.Struct(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
			return
		}
		item, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": item})
	}
}
