package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpLayer "cart-optimizer/http"
	"cart-optimizer/repository"
	"cart-optimizer/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is")
	}

	// La política de categorías es configuración fatal: sin ella no hay motor.
	policy := service.DefaultCategoryPolicy()
	if path := os.Getenv("POLICY_PATH"); path != "" {
		loaded, err := service.LoadCategoryPolicy(path)
		if err != nil {
			log.Fatalf("Invalid category policy: %v", err)
		}
		policy = loaded
	}

	profileRepo := repository.NewProfileRepositoryMemory()
	if path := os.Getenv("PROFILE_DB_PATH"); path != "" {
		loaded, err := repository.NewProfileRepositoryMemoryFromFile(path)
		if err != nil {
			log.Fatalf("Invalid profile db: %v", err)
		}
		profileRepo = loaded
	}

	var cache repository.CacheRepository = repository.NewMockCache()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache = repository.NewRedisCache(addr)
	}

	recommendationRepo := repository.NewRecommendationRepositoryMemory()
	optimizerService := service.NewOptimizerService(policy, recommendationRepo, cache)

	optimizeHandler := httpLayer.NewOptimizeHandler(optimizerService, profileRepo)
	fundsHandler := httpLayer.NewFundsHandler(optimizerService, profileRepo)
	profileHandler := httpLayer.NewProfileHandler(profileRepo)

	rateLimiter := httpLayer.NewRateLimiter(5, time.Minute)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	mux.Handle(
		"/cart/optimize",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(optimizeHandler.OptimizeCart),
		),
	)

	mux.Handle(
		"/funds/available",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(fundsHandler.AvailableFunds),
		),
	)

	mux.Handle(
		"/profiles",
		httpLayer.RateLimitMiddleware(
			rateLimiter,
			http.HandlerFunc(profileHandler.ListProfiles),
		),
	)

	server := &http.Server{
		Addr:         ":8080",
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Println("🚀 API corriendo en http://localhost:8080")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
