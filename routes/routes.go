package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/handlers"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/service"
)

func RegisterRoutes(router *gin.Engine, svc *service.OrderService, hub *handlers.Hub) {
	router.Use(cors.Default())

	orderHandler := handlers.NewOrderHandler(svc)

	api := router.Group("/api")
	{
		api.POST("/orders", orderHandler.PlaceOrder)
		api.DELETE("/orders/:id", orderHandler.CancelOrder)
		api.GET("/orders/:id", orderHandler.GetOrderStatus)

		api.GET("/orderbook", orderHandler.GetOrderBook)
		api.GET("/trades", orderHandler.GetRecentTrades)
		api.GET("/trades/history", orderHandler.GetTradeHistory)

		api.GET("/symbols", orderHandler.ListSymbols)
		api.POST("/symbols", orderHandler.RegisterSymbol)
	}

	router.GET("/ws", hub.ServeWS)
}
