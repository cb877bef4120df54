package handler

import (
	"bidding/internal/app/middleware"
	"bidding/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	// REST API маршруты
	api := router.Group("/api")

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	{
		// Публичные эндпоинты
		auth.POST("/register", h.RegisterUser)
		auth.POST("/login", h.LoginUser)
		auth.GET("/status", h.LoginStatus)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)

		// Защищенные эндпоинты
		auth.POST("/logout", authMiddleware.WithAuthCheck(role.Buyer, role.Seller, role.Admin), h.LogoutUser)
		auth.POST("/become-seller", authMiddleware.WithAuthCheck(role.Buyer, role.Seller), h.BecomeSeller)
		auth.GET("/profile", authMiddleware.WithAuthCheck(role.Buyer, role.Seller, role.Admin), h.GetUser)
		auth.PUT("/profile", authMiddleware.WithAuthCheck(role.Buyer, role.Seller, role.Admin), h.UpdateProfile)
	}

	// ============ Пользователи ============
	api.GET("/user", authMiddleware.WithAuthCheck(role.Buyer, role.Seller, role.Admin), h.GetUser)
	api.GET("/user/balance", authMiddleware.WithAuthCheck(role.Buyer, role.Seller, role.Admin), h.GetUserBalance)
	api.GET("/user/ledger", authMiddleware.WithAuthCheck(role.Buyer, role.Seller, role.Admin), h.GetUserLedger)
	api.GET("/users", authMiddleware.WithAuthCheck(role.Admin), h.GetAllUsers)
	api.GET("/income", authMiddleware.WithAuthCheck(role.Admin), h.EstimateIncome)

	// ============ Товары ============
	products := api.Group("/products")
	{
		// Публичные эндпоинты (без авторизации)
		products.GET("", h.GetProducts)
		products.GET("/:id", h.GetProduct)
		products.GET("/:id/bids", h.GetBids)

		// Для продавцов
		products.POST("", authMiddleware.WithAuthCheck(role.Seller, role.Admin), h.CreateProduct)
		products.PUT("/:id", authMiddleware.WithAuthCheck(role.Seller, role.Admin), h.UpdateProduct)
		products.DELETE("/:id", authMiddleware.WithAuthCheck(role.Seller, role.Admin), h.DeleteProduct)
		products.POST("/:id/image", authMiddleware.WithAuthCheck(role.Seller, role.Admin), h.UploadProductImage)
		products.POST("/:id/sell", authMiddleware.WithAuthCheck(role.Seller, role.Admin), h.SellProduct)

		// Ставки — для любых авторизованных пользователей
		products.POST("/:id/bids", authMiddleware.WithAuthCheck(role.Buyer, role.Seller, role.Admin), h.PlaceBid)

		// Только для админа
		products.PUT("/:id/verify", authMiddleware.WithAuthCheck(role.Admin), h.VerifyProduct)
	}

	api.GET("/seller/products", authMiddleware.WithAuthCheck(role.Seller, role.Admin), h.GetMyProducts)
	api.GET("/admin/products", authMiddleware.WithAuthCheck(role.Admin), h.GetAllProductsAdmin)

	// ============ Категории ============
	categories := api.Group("/categories")
	{
		categories.GET("", h.GetCategories)

		categories.POST("", authMiddleware.WithAuthCheck(role.Admin), h.CreateCategory)
		categories.PUT("/:id", authMiddleware.WithAuthCheck(role.Admin), h.UpdateCategory)
		categories.DELETE("/:id", authMiddleware.WithAuthCheck(role.Admin), h.DeleteCategory)
	}

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}
