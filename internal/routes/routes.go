package routes

import (
	"redolic_back_end/internal/handlers"
	"redolic_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, checkout *handlers.CheckoutHandler) {
	api := r.Group("/api")

	// Public
	api.POST("/admin/login", middleware.LoginRateLimit(), handlers.AdminLogin)
	api.GET("/products", handlers.GetAllProducts)
	api.GET("/products/search", handlers.SearchProducts)
	api.GET("/products/:id", handlers.GetProduct)

	// Checkout
	api.POST("/create-order", checkout.CreateOrder)
	api.POST("/verify-payment", checkout.VerifyPayment)
	api.POST("/save-order", checkout.SaveOrder)

	// Admin
	admin := api.Group("", middleware.AuthRequired(), middleware.RequireAdmin)
	admin.POST("/products", handlers.CreateProduct)
	admin.PUT("/products/:id", handlers.UpdateProduct)
	admin.DELETE("/products/:id", handlers.DeleteProduct)
	admin.GET("/orders", checkout.ListOrders)
}
