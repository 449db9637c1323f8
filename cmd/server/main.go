package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/homebond/bond-engine/internal/config"
	"github.com/homebond/bond-engine/internal/handler"
	"github.com/homebond/bond-engine/internal/rates"
	"github.com/homebond/bond-engine/internal/repository"
	"github.com/homebond/bond-engine/internal/service"
	"github.com/homebond/bond-engine/pkg/response"
)

func main() {
	// Hydrate process env from .env before viper reads it
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize the prime rate source chain
	rateSource := initRateSource(cfg, redisClient)

	// Initialize repository and service
	calcRepo := repository.NewCalculationRepository(db)
	calculatorService := service.NewCalculatorService(calcRepo, rateSource, cfg)

	calculatorHandler := handler.NewCalculatorHandler(calculatorService)
	healthHandler := handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout())

	// Setup routes
	router := setupRoutes(calculatorHandler, healthHandler)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func initRateSource(cfg *config.Config, redisClient *redis.Client) rates.Source {
	fallback := rates.NewStaticSource(cfg.GetFallbackPrimeRate(), time.Time{})

	if cfg.Rates.SourceURL == "" {
		log.Println("No prime rate source configured, using static fallback rate")
		return fallback
	}

	upstream := rates.NewHTTPSource(cfg.Rates.SourceURL, cfg.GetRateFetchTimeout())
	return rates.NewCachedSource(redisClient, upstream, fallback, cfg.GetRateCacheTTL())
}

func setupRoutes(calculatorHandler *handler.CalculatorHandler, healthHandler *handler.HealthHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware, response.CORSMiddleware, response.JSONMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/calculators/bond", calculatorHandler.CalculateBond).Methods("POST")
	api.HandleFunc("/calculators/amortisation", calculatorHandler.CalculateAmortisation).Methods("POST")
	api.HandleFunc("/calculators/additional", calculatorHandler.CalculateAdditionalPayment).Methods("POST")
	api.HandleFunc("/calculators/affordability", calculatorHandler.CalculateAffordability).Methods("POST")
	api.HandleFunc("/calculators/deposit", calculatorHandler.CalculateDepositSavings).Methods("POST")
	api.HandleFunc("/calculators/transfer", calculatorHandler.CalculateTransferCosts).Methods("POST")
	api.HandleFunc("/calculators/compare", calculatorHandler.CalculateComparison).Methods("POST")

	api.HandleFunc("/rates/prime", calculatorHandler.GetPrimeRate).Methods("GET")
	api.HandleFunc("/calculations/{id}", calculatorHandler.GetCalculation).Methods("GET")
	api.HandleFunc("/users/{userId}/calculations", calculatorHandler.ListCalculations).Methods("GET")

	return router
}
