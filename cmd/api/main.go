package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paymenu-backend/config"
	httpHandler "paymenu-backend/internal/adapter/http/handler"
	memStorage "paymenu-backend/internal/adapter/storage/memory"
	pgStorage "paymenu-backend/internal/adapter/storage/postgres"
	redisStorage "paymenu-backend/internal/adapter/storage/redis"
	"paymenu-backend/internal/core/ports"
	"paymenu-backend/internal/service"
	"paymenu-backend/pkg/logger"

	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("storage", cfg.Storage.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting PayMenu Backend")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT secret is not set (PAYMENU_JWT_SECRET); refusing to start")
	}

	openingBalance, err := decimal.NewFromString(cfg.Account.OpeningBalance)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Account.OpeningBalance).Msg("Invalid opening balance")
	}

	ctx := context.Background()

	// Initialize storage
	var (
		userRepo       ports.UserRepository
		txRepo         ports.TransactionRepository
		cardRepo       ports.CardRepository
		transactor     ports.Transactor
		healthCheckers []ports.HealthChecker
	)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		log.Info().Msg("PostgreSQL connected")

		userRepo = pgStorage.NewUserRepo(pool)
		txRepo = pgStorage.NewTransactionRepo(pool)
		cardRepo = pgStorage.NewCardRepo(pool)
		transactor = pgStorage.NewTransactor(pool)
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))

	case config.DriverMemory:
		store := memStorage.NewStore()
		userRepo = memStorage.NewUserRepo(store)
		txRepo = memStorage.NewTransactionRepo(store)
		cardRepo = memStorage.NewCardRepo(store)
		transactor = memStorage.NewTransactor(store)
		log.Info().Msg("In-memory storage initialized (state is lost on restart)")

	default:
		log.Fatal().Str("driver", cfg.Storage.Driver).Msg("Unknown storage driver")
	}

	// Initialize Redis (optional; rate limiting is disabled without it)
	var rateLimitStore *redisStorage.RateLimitStore
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	}

	// Initialize core services
	hashSvc := service.NewBcryptHashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Initialize business services
	authSvc := service.NewAuthService(userRepo, hashSvc, tokenSvc, openingBalance)
	kycSvc := service.NewKYCService(userRepo, service.NewAutoVerifier(), log)
	transferSvc := service.NewTransferService(userRepo, txRepo, transactor, log)
	cardSvc := service.NewCardService(userRepo, cardRepo, log)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		KYCSvc:         kycSvc,
		TransferSvc:    transferSvc,
		CardSvc:        cardSvc,
		TokenSvc:       tokenSvc,
		UserRepo:       userRepo,
		TxRepo:         txRepo,
		CardRepo:       cardRepo,
		RateLimitStore: rateLimitStore,
		HealthCheckers: healthCheckers,
		Mode:           cfg.Server.Mode,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
