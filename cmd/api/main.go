package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/pointline/pointline-api/internal/access"
	"github.com/pointline/pointline-api/internal/config"
	"github.com/pointline/pointline-api/internal/domain/accounttype"
	"github.com/pointline/pointline-api/internal/domain/auth"
	"github.com/pointline/pointline-api/internal/domain/customer"
	"github.com/pointline/pointline-api/internal/domain/ledger"
	"github.com/pointline/pointline-api/internal/domain/tenant"
	"github.com/pointline/pointline-api/internal/domain/txtype"
	"github.com/pointline/pointline-api/internal/domain/user"
	"github.com/pointline/pointline-api/internal/middleware"
	"github.com/pointline/pointline-api/internal/pkg/database"
	"github.com/pointline/pointline-api/internal/pkg/jwt"
	"github.com/pointline/pointline-api/internal/pkg/logger"
	pkgresponse "github.com/pointline/pointline-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Pointline API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	tenantRepo := tenant.NewRepository(db)
	accountTypeRepo := accounttype.NewRepository(db)
	txTypeRepo := txtype.NewRepository(db)
	customerRepo := customer.NewRepository(db)
	ledgerRepo := ledger.NewRepository(db)

	// ---------- Services ----------
	tenantCache := tenant.NewCache(redisClient)
	tenantService := tenant.NewService(tenantRepo, accountTypeRepo, txTypeRepo, tenantCache)
	txTypeService := txtype.NewService(txTypeRepo)
	customerService := customer.NewService(customerRepo)
	ledgerService := ledger.NewService(ledgerRepo, tenantService, customerService, txTypeService, accountTypeRepo, cfg.LedgerMaxAttempts, cfg.LedgerRetryDelay)
	authService := auth.NewService(userRepo, customerRepo, jwtService, redisClient)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	tenantHandler := tenant.NewHandler(tenantService)
	accountTypeHandler := accounttype.NewHandler(accountTypeRepo)
	txTypeHandler := txtype.NewHandler(txTypeService)
	customerHandler := customer.NewHandler(customerService)
	ledgerHandler := ledger.NewHandler(ledgerService)

	authMiddleware := middleware.Auth(jwtService)
	scopePlatform := middleware.Scope(access.PlatformRootScope, cfg.HostTenantID)
	scopeTenant := middleware.Scope(access.TenantScope, cfg.HostTenantID)
	scopeTenantOrCustomer := middleware.Scope(access.TenantOrCustomerScope, cfg.HostTenantID)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())

		r.Route("/tenants", func(r chi.Router) {
			r.Use(authMiddleware)

			r.With(scopePlatform).Post("/", tenantHandler.Onboard)
			r.With(scopePlatform).Get("/", tenantHandler.List)

			r.Route("/{tenantID}", func(r chi.Router) {
				r.With(scopeTenant).Get("/", tenantHandler.Get)
				r.With(scopePlatform).Post("/activate", tenantHandler.Activate)
				r.With(scopePlatform).Post("/deactivate", tenantHandler.Deactivate)

				r.Mount("/account-types", accountTypeHandler.Routes(scopeTenant))
				r.Mount("/transaction-types", txTypeHandler.Routes(scopeTenant))

				r.Route("/customers", func(r chi.Router) {
					r.With(scopeTenant).Post("/", customerHandler.Enroll)
					r.With(scopeTenant).Get("/", customerHandler.List)

					r.Route("/{customerID}", func(r chi.Router) {
						r.With(scopeTenantOrCustomer).Get("/", customerHandler.Get)
						r.Mount("/accounts/{accountTypeID}", ledgerHandler.Routes(scopeTenantOrCustomer))
					})
				})
			})
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
