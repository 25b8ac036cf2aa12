package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodiehub/middleware"
	"foodiehub/models"
	"foodiehub/services"
)

func CreateOrder(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		var req models.CreateOrderRequest
		if err := c.BindJSON(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
			return
		}
		if err := validate.Struct(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
			return
		}
		order, err := svc.Create(c.Request.Context(), identity, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": order})
	}
}

func GetMyOrders(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		orders, err := svc.ListMine(c.Request.Context(), identity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(orders), "data": orders})
	}
}

func GetAllOrders(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		orders, err := svc.ListAll(c.Request.Context(), identity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(orders), "data": orders})
	}
}

func GetOrder(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		order, err := svc.Get(c.Request.Context(), identity, c.Param("order_id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}

func UpdateOrderStatus(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		var req models.UpdateOrderStatusRequest
		if err := c.BindJSON(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
			return
		}
		if err := validate.Struct(&req); err != nil {
			respondError(c, fmt.Errorf("%w: %v", models.ErrValidation, err))
			return
		}
		order, err := svc.Advance(c.Request.Context(), identity, c.Param("order_id"), req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
	}
}
