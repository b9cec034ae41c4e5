package routes

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/akithw/supermart-golang/internal/handlers"
	"github.com/akithw/supermart-golang/internal/middleware"
	"github.com/akithw/supermart-golang/internal/models"
	"github.com/gin-gonic/gin"
)

const defaultRequestTimeout = 15 * time.Second

// SetupRouter wires every route group with its auth and role guards.
func SetupRouter(h *handlers.Handlers) *gin.Engine {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(timeoutMiddleware(requestTimeout()))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.OK("ok", nil))
	})

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware())

	order := api.Group("/order")
	{
		order.POST("/create", middleware.RequireRole(models.RoleCustomer), h.CreateOrder)
		order.GET("", middleware.RequireRole(models.RoleCSR, models.RoleAdmin), h.GetAllOrders)
		order.GET("/vendor", middleware.RequireRole(models.RoleVendor, models.RoleAdmin), h.GetVendorOrders)
		order.GET("/history/:id", middleware.RequireRole(models.RoleCustomer, models.RoleCSR), h.GetOrderHistory)
		order.GET("/getCancell", middleware.RequireRole(models.RoleCSR, models.RoleAdmin), h.GetCancelRequestedOrders)
		order.PUT("/:id", middleware.RequireRole(models.RoleCustomer, models.RoleCSR), h.UpdateOrder)
		order.PUT("/request/:id", middleware.RequireRole(models.RoleCustomer), h.RequestCancellation)
		order.PUT("/cancel/:id", middleware.RequireRole(models.RoleCSR, models.RoleAdmin), h.ApproveCancellation)
		order.PUT("/status/:id", middleware.RequireRole(models.RoleCSR, models.RoleAdmin), h.SetOrderStatus)
	}

	orderLine := api.Group("/orderline")
	{
		orderLine.PUT("/update/status/:id", middleware.RequireRole(models.RoleVendor, models.RoleCSR), h.UpdateLineStatus)
		orderLine.GET("/vendor/:vendorNo", middleware.RequireRole(models.RoleVendor, models.RoleCSR), h.GetVendorLines)
	}

	inventory := api.Group("/inventory")
	{
		inventory.GET("", h.GetProducts)
		inventory.GET("/vendor", middleware.RequireRole(models.RoleVendor), h.GetVendorProducts)
		inventory.GET("/:id", h.GetProductByID)
		inventory.PUT("/stock/update/:id", middleware.RequireRole(models.RoleVendor, models.RoleAdmin), h.UpdateStock)
		inventory.DELETE("/delete/product/:id", middleware.RequireRole(models.RoleVendor, models.RoleAdmin), h.DeleteProduct)
	}

	notification := api.Group("/notification")
	{
		notification.GET("", h.ListNotifications)
		notification.PUT("/markread/:id", h.MarkNotificationRead)
		notification.DELETE("/delete/:id", h.DeleteNotification)
	}

	return router
}

// timeoutMiddleware puts a deadline on the request context so store calls
// cannot hang past it.
func timeoutMiddleware(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func requestTimeout() time.Duration {
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return defaultRequestTimeout
}

func corsMiddleware() gin.HandlerFunc {
	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
