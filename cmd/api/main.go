package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fondita/fondita-backend/api/routes"
	"github.com/fondita/fondita-backend/internal/accounts"
	"github.com/fondita/fondita-backend/internal/audit"
	"github.com/fondita/fondita-backend/internal/auth"
	"github.com/fondita/fondita-backend/internal/catalog"
	"github.com/fondita/fondita-backend/internal/orders"
	"github.com/fondita/fondita-backend/pkg/config"
	"github.com/fondita/fondita-backend/pkg/db"
	"github.com/fondita/fondita-backend/pkg/logger"
	"github.com/fondita/fondita-backend/pkg/metrics"
	"github.com/fondita/fondita-backend/pkg/migrate"
	"github.com/fondita/fondita-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "fondita-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "fondita-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	customerRepo := accounts.NewCustomerRepository(dbClient.DB())
	adminRepo := accounts.NewAdminRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		CustomerRepo:   customerRepo,
		AdminRepo:      adminRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	auditRecorder := audit.NewRecorder(dbClient.DB(), logg)
	httpMetrics := metrics.NewHTTPMetrics("fondita-api")

	router := routes.NewRouter(routes.Params{
		Config:           cfg,
		Logger:           logg,
		Metrics:          httpMetrics,
		DB:               dbClient,
		Cache:            redisClient,
		RateLimitStore:   redisClient,
		IdempotencyStore: redisClient,
		Customers:        customerRepo,
		Admins:           adminRepo,
		AuthService:      authService,
		CatalogService:   catalogService,
		OrderService:     orderService,
		Audit:            auditRecorder,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-signalCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}

	// Drain in-flight audit writes before the DB connection closes.
	auditRecorder.Wait()

	logg.Info(ctx, "api server stopped")
}
