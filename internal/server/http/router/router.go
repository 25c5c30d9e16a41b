package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/sunitsen/flame/internal/server/http/handlers"
	"github.com/sunitsen/flame/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, parser middleware.TokenParser, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)
	promoHandler := handlers.NewPromotionHandler(facade)
	webhookHandler := handlers.NewWebhookHandler(facade)

	api := engine.Group("/api")
	api.POST("/pos/webhook", webhookHandler.Receive)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(parser))
	authed.POST("/orders", orderHandler.Checkout)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.POST("/orders/:id/cancel", orderHandler.Cancel)
	authed.POST("/orders/:id/reorder", orderHandler.Reorder)
	authed.POST("/promotions/validate", promoHandler.Validate)

	admin := authed.Group("/admin")
	admin.Use(middleware.AdminRequired())
	admin.GET("/orders", adminHandler.ListOrders)
	admin.PATCH("/orders/:id/status", adminHandler.UpdateStatus)
	admin.GET("/orders/:id/sync", adminHandler.SyncStatus)
	admin.GET("/analytics/sales", adminHandler.SalesSummary)
	admin.POST("/promotions", promoHandler.Create)

	return engine
}
