package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	redisCache "github.com/shyamanurag/WorldClassCryptoExchange-sub000/cache/redis"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/db/postgres"
	providers "github.com/shyamanurag/WorldClassCryptoExchange-sub000/db/postgres/providers"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/engine"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/handlers"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/repository"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/routes"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/service"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/utils"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	logger := utils.NewLogger(os.Getenv("LOG_LEVEL"))

	// 1. Connect PostgreSQL and bootstrap schema
	postgresClient := postgres.ConnectDB()
	defer postgresClient.Stop()
	if err := postgresClient.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize database schema: %v", err)
	}

	dbHelper, err := providers.NewDbProvider(postgresClient.PostgresClient)
	if err != nil {
		log.Fatalf("Failed to initialize DB helper: %v", err)
	}

	// 2. Connect Redis (optional depth cache)
	redisClient := redisCache.ConnectRedis()
	defer redisClient.Stop()
	var marketCache *service.MarketCache
	if redisClient != nil {
		marketCache = service.NewMarketCache(redisClient.RedisClient)
	}

	// 3. Matching engines, one per configured symbol
	engines := engine.NewManager()
	for _, symbol := range configuredSymbols() {
		if err := engines.RegisterSymbol(symbol); err != nil {
			log.Fatalf("Failed to register symbol %s: %v", symbol, err)
		}
	}
	logger.Info("matching engines ready", "symbols", engines.Symbols())

	// 4. Websocket market-data hub
	hubDone := make(chan struct{})
	hub := handlers.NewHub(logger)
	go hub.Run(hubDone)

	// 5. Repos & service
	orderRepo := repository.NewOrderRepository(dbHelper)
	tradeRepo := repository.NewTradeRepository(dbHelper)
	orderSrv := service.NewOrderService(orderRepo, tradeRepo, engines, marketCache, hub, logger)

	// 6. Expiry sweeper for good-till-date orders
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	sweeper := service.NewExpirySweeper(engines, orderRepo, marketCache, hub, logger, sweepInterval())
	go sweeper.Run(sweepCtx)

	// 7. Gin router & handlers
	router := gin.Default()
	routes.RegisterRoutes(router, orderSrv, hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info("exchange REST API running", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 8. Wait for OS signal, then shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("shutting down", "signal", sig.String())

	stopSweep()
	close(hubDone)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	logger.Info("shutdown complete")
}

func configuredSymbols() []string {
	raw := os.Getenv("SYMBOLS")
	if raw == "" {
		raw = "BTC-USDT,ETH-USDT"
	}
	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}

func sweepInterval() time.Duration {
	secs, _ := strconv.Atoi(os.Getenv("EXPIRY_SWEEP_SECONDS"))
	if secs <= 0 {
		secs = 1
	}
	return time.Duration(secs) * time.Second
}
