package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-service/browse"
	"storefront-service/catalog"
	"storefront-service/common/logger"
	"storefront-service/config"
	"storefront-service/controllers"
	"storefront-service/database"
	"storefront-service/kafka"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/routes"
	"storefront-service/services"
	"storefront-service/telegram"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Env)
	defer zap.L().Sync()

	// --- Persistence ---
	redisClient := database.NewRedisClient(cfg.RedisURL)
	store := database.NewRedisStore(redisClient, cfg.CartTTL)

	// --- External collaborators ---
	catalogClient, err := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogUsername, cfg.CatalogPassword)
	if err != nil {
		zap.L().Fatal("Catalog client setup failed", zap.Error(err))
	}

	sender, err := telegram.NewSender(cfg.TelegramBotToken, cfg.TelegramChatID)
	if err != nil {
		zap.L().Fatal("Telegram sender setup failed", zap.Error(err))
	}

	// --- Services ---
	cartService := services.NewCartService(store, catalogClient, zap.L())
	customerService := services.NewCustomerService(store, zap.L())
	checkoutService := services.NewCheckoutService(store, sender, zap.L())

	if cfg.KafkaBrokers != "" {
		producer := kafka.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
		defer producer.Close()
		checkoutService = checkoutService.WithPublisher(producer)
	}

	badge := services.NewCartBadge(store, zap.L())
	browseManager := browse.NewManager(catalogClient, cfg.SearchDebounce, zap.L())

	// Cross-process store changes invalidate the badge cache, the same way
	// another tab's storage event refreshed the header count.
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		for ev := range store.Watch(watchCtx) {
			if ev.Record == database.CartRecord {
				badge.Invalidate(ev.Session)
			}
		}
	}()

	// --- HTTP ---
	models.RegisterValidations()
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	// CORS Configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.SessionHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour, // Cache preflight request for 12 hours
	}))
	router.Use(logger.RequestLogger())

	routes.Register(router,
		controllers.NewCartController(cartService, badge),
		controllers.NewCheckoutController(customerService, checkoutService),
		controllers.NewStorefrontController(catalogClient, browseManager),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		zap.L().Info("Storefront service is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zap.L().Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zap.L().Fatal("Shutdown error", zap.Error(err))
	}
	zap.L().Info("Server shutdown complete")
}
