package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/onul/clinicdesk/internal/adapter/http"
	"github.com/onul/clinicdesk/internal/adapter/http/handler"
	"github.com/onul/clinicdesk/internal/adapter/http/middleware"
	postgresRepo "github.com/onul/clinicdesk/internal/adapter/repository/postgres"
	redisRepo "github.com/onul/clinicdesk/internal/adapter/repository/redis"
	"github.com/onul/clinicdesk/internal/infrastructure/auth"
	"github.com/onul/clinicdesk/internal/infrastructure/config"
	"github.com/onul/clinicdesk/internal/infrastructure/logging"
	"github.com/onul/clinicdesk/internal/infrastructure/postgres"
	"github.com/onul/clinicdesk/internal/infrastructure/redis"
	"github.com/onul/clinicdesk/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	logging.SetupSlog(cfg.LogLevel)
	log.Logger = logger

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Repositories
	txManager := postgresRepo.NewTxManager(pool)
	cashRepo := postgresRepo.NewCashRecordRepository(pool)
	productRepo := postgresRepo.NewProductRepository(pool)
	movementRepo := postgresRepo.NewMovementRepository(pool)
	saleRepo := postgresRepo.NewSaleRepository(pool)
	treatmentRepo := postgresRepo.NewTreatmentRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Use cases
	cashUC := usecase.NewCashUseCase(cashRepo, auditRepo, idGen)
	productUC := usecase.NewProductUseCase(productRepo, idGen)
	stockUC := usecase.NewStockUseCase(txManager, productRepo, movementRepo, auditRepo, idGen).WithRetrier(retrier)
	saleUC := usecase.NewSaleUseCase(txManager, productRepo, saleRepo, auditRepo, idGen).WithRetrier(retrier)
	activityUC := usecase.NewActivityUseCase(txManager, productRepo, movementRepo, saleRepo, auditRepo).WithRetrier(retrier)
	treatmentUC := usecase.NewTreatmentUseCase(txManager, treatmentRepo, cashRepo, auditRepo, idGen)
	expenseUC := usecase.NewExpenseUseCase(cashRepo, idGen)
	consistencyUC := usecase.NewConsistencyUseCase(productRepo, movementRepo)
	userUC := usecase.NewUserUseCase(userRepo, idGen)

	// Handlers
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go func() {
		for range time.Tick(time.Hour) {
			rateLimiter.Cleanup(time.Hour)
		}
	}()
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		CashHandler:        handler.NewCashHandler(cashUC),
		ProductHandler:     handler.NewProductHandler(productUC, stockUC),
		SaleHandler:        handler.NewSaleHandler(saleUC),
		ActivityHandler:    handler.NewActivityHandler(activityUC),
		TreatmentHandler:   handler.NewTreatmentHandler(treatmentUC),
		ExpenseHandler:     handler.NewExpenseHandler(expenseUC),
		ConsistencyHandler: handler.NewConsistencyHandler(consistencyUC),
		AuthHandler:        handler.NewAuthHandler(userUC, jwtManager),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		JWTManager:         jwtManager,
		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        rateLimiter,
		Logger:             logger,
		AllowedOrigins:     cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
