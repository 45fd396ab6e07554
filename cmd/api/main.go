package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"roblox-pass-proxy/internal/cache"
	"roblox-pass-proxy/internal/config"
	"roblox-pass-proxy/internal/handler"
	"roblox-pass-proxy/internal/router"
	"roblox-pass-proxy/internal/service"
	"roblox-pass-proxy/internal/source"
	"roblox-pass-proxy/internal/upstream"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting roblox-pass-proxy...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize response cache based on config. Redis is optional and the
	// process degrades to the in-memory cache when it is unreachable.
	var responseCache cache.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Printf("Warning: Redis connection failed, using memory cache: %v", err)
			responseCache = cache.NewMemoryCache()
		} else {
			defer redisCache.Close()
			responseCache = redisCache
			log.Println("Redis cache initialized")
		}
	default: // memory
		responseCache = cache.NewMemoryCache()
		log.Println("Memory cache initialized")
	}

	// Initialize upstream client and source adapters
	client := upstream.New(upstream.Config{
		Timeout:   cfg.Upstream.Timeout,
		UserAgent: cfg.Upstream.UserAgent,
	})

	users := source.NewUserAdapter(client, cfg.Upstream.UsersBaseURL)
	inventory := source.NewInventoryAdapter(client, cfg.Upstream.InventoryBaseURL)
	catalog := source.NewCatalogAdapter(client, cfg.Upstream.CatalogBaseURL)
	universePasses := source.NewUniversePassAdapter(client, cfg.Upstream.DevelopBaseURL)

	mirrors := source.DefaultMirrors(
		cfg.Upstream.GamesBaseURL,
		cfg.Upstream.ApisBaseURL,
		cfg.Upstream.InventoryBaseURL,
	)
	universeLister := source.NewGamesAdapter(client, mirrors, users)

	// Initialize services
	passService := service.NewPassService(users, inventory, catalog, universePasses, responseCache, cfg.Cache.TTL)
	universeService := service.NewUniverseService(universeLister, responseCache, cfg.Cache.TTL)

	// Initialize handlers
	healthHandler := handler.New(cfg.App.Version)
	passHandler := handler.NewPassHandler(passService)
	universeHandler := handler.NewUniverseHandler(universeService)

	// Create router
	r := router.New(router.Config{
		Handler:         healthHandler,
		PassHandler:     passHandler,
		UniverseHandler: universeHandler,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
