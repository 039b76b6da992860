package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/clients"
	"storefront/config"
	"storefront/controllers"
	"storefront/database"
	"storefront/logger"
	"storefront/routes"
	"storefront/services"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	// Storage: Redis when configured, in-process otherwise.
	var store database.KVStore
	if cfg.RedisURL != "" {
		store = database.NewRedisStore(database.NewRedisClient(cfg.RedisURL))
	} else {
		log.Println("No REDIS_URL set, state will not survive a restart")
		store = database.NewMemoryStore()
	}

	cartRepo := database.NewCartRepository(store)
	userRepo := database.NewUserRepository(store)
	orderRepo := database.NewOrderRepository(store)
	sessionRepo := database.NewSessionRepository(store)

	catalogClient := clients.NewCatalogClient(cfg.CatalogURL, cfg.CatalogTimeout)
	catalogService := services.NewCatalogService(catalogClient)
	searchService := services.NewSearchService(catalogService)

	cartService, err := services.NewCartService(context.Background(), cartRepo)
	if err != nil {
		log.Fatalf("failed to load cart: %v", err)
	}
	checkoutService := services.NewCheckoutService(cartService, orderRepo, sessionRepo, cfg.ProcessingDelay)
	authService := services.NewAuthService(userRepo, sessionRepo)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(logger.RequestLogger(), gin.Recovery())

	routes.RegisterRoutes(router,
		controllers.NewCatalogController(catalogService, searchService),
		controllers.NewCartController(cartService, catalogService),
		controllers.NewCheckoutController(checkoutService, cartService),
		controllers.NewAuthController(authService, orderRepo),
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Storefront is running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
	log.Println("Server shutdown complete.")
}
