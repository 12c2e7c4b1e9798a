package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/onul/clinicdesk/internal/adapter/http/handler"
	"github.com/onul/clinicdesk/internal/adapter/http/middleware"
	"github.com/onul/clinicdesk/internal/infrastructure/auth"
	"github.com/onul/clinicdesk/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	CashHandler        *handler.CashHandler
	ProductHandler     *handler.ProductHandler
	SaleHandler        *handler.SaleHandler
	ActivityHandler    *handler.ActivityHandler
	TreatmentHandler   *handler.TreatmentHandler
	ExpenseHandler     *handler.ExpenseHandler
	ConsistencyHandler *handler.ConsistencyHandler
	AuthHandler        *handler.AuthHandler
	HealthHandler      *handler.HealthHandler
	JWTManager         *auth.JWTManager
	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyTTL     time.Duration
	RateLimiter        *middleware.RateLimiter
	Logger             zerolog.Logger
	AllowedOrigins     []string
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.IdempotencyKeyHeader},
		AllowCredentials: true,
	}))

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Auth
		r.Post("/auth/login", cfg.AuthHandler.Login)
		r.Post("/auth/register", cfg.AuthHandler.Register)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			// Idempotency middleware for mutating requests
			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
				r.Use(idempotencyMiddleware.Wrap)
			}

			r.Get("/auth/me", cfg.AuthHandler.Me)

			// Cash ledger
			r.Route("/cash", func(r chi.Router) {
				r.Get("/", cfg.CashHandler.ListDay)
				r.Get("/previous", cfg.CashHandler.OpeningBalance)
				r.With(middleware.RequireMutate).Post("/", cfg.CashHandler.CreateDeposit)
				r.With(middleware.RequireCloseDay).Post("/close", cfg.CashHandler.CloseDay)
				r.With(middleware.RequireMutate).Put("/{id}", cfg.CashHandler.UpdateDeposit)
				r.With(middleware.RequireMutate).Delete("/{id}", cfg.CashHandler.DeleteDeposit)
			})

			// Products and stock movements
			r.Route("/products", func(r chi.Router) {
				r.Get("/", cfg.ProductHandler.List)
				r.With(middleware.RequireMutate).Post("/", cfg.ProductHandler.Create)
				r.Get("/{id}", cfg.ProductHandler.Get)
				r.With(middleware.RequireMutate).Put("/{id}", cfg.ProductHandler.Update)
				r.Get("/{id}/movements", cfg.ProductHandler.Movements)
				r.With(middleware.RequireMutate).Post("/{id}/stock-in", cfg.ProductHandler.StockIn)
				r.With(middleware.RequireMutate).Post("/{id}/stock-out", cfg.ProductHandler.StockOut)
			})

			// Sales
			r.Route("/sales", func(r chi.Router) {
				r.Get("/", cfg.SaleHandler.ListDay)
				r.With(middleware.RequireMutate).Post("/", cfg.SaleHandler.Create)
				r.Get("/{id}", cfg.SaleHandler.Get)
			})

			// Activity deletion (sales and movements)
			r.With(middleware.RequireDelete).Delete("/activities/{id}", cfg.ActivityHandler.Delete)

			// Treatments
			r.Route("/treatments", func(r chi.Router) {
				r.Get("/", cfg.TreatmentHandler.ListDay)
				r.With(middleware.RequireMutate).Post("/", cfg.TreatmentHandler.Create)
				r.With(middleware.RequireDelete).Delete("/{id}", cfg.TreatmentHandler.Delete)
			})

			// Expenses
			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", cfg.ExpenseHandler.ListDay)
				r.With(middleware.RequireMutate).Post("/", cfg.ExpenseHandler.Create)
				r.With(middleware.RequireMutate).Delete("/{id}", cfg.ExpenseHandler.Delete)
			})

			// Inventory consistency
			r.Get("/inventory/consistency", cfg.ConsistencyHandler.Check)
		})
	})

	return r
}
