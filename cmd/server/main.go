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
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/zvanbay-arch/transfer-test/internal/app"
	"github.com/zvanbay-arch/transfer-test/internal/auth"
	"github.com/zvanbay-arch/transfer-test/internal/config"
	"github.com/zvanbay-arch/transfer-test/internal/handler"
	"github.com/zvanbay-arch/transfer-test/internal/repository/postgres"
	redisstore "github.com/zvanbay-arch/transfer-test/internal/redis"
	"github.com/zvanbay-arch/transfer-test/internal/service"
	"github.com/zvanbay-arch/transfer-test/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := config.Load()

	// Initialize New Relic if enabled.
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		var err error
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			log.Printf("Failed to initialize New Relic: %v", err)
		} else {
			log.Println("New Relic initialized successfully")
		}
	}

	db, err := app.NewDatabase(cfg.Database, nrApp != nil)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := postgres.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("Failed to apply schema: %v", err)
	}
	cancel()

	redisClient, err := app.NewRedisClient(cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	fileStore, err := storage.NewLocalStore(cfg.Upload.Dir)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	// Repositories.
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewDriverProfileRepository(db)
	documentRepo := postgres.NewDriverDocumentRepository(db)
	carRepo := postgres.NewCarRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	reviewRepo := postgres.NewDriverReviewRepository(db)
	actionRepo := postgres.NewAdminActionRepository(db)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := app.SeedAdmin(seedCtx, userRepo, cfg.Admin); err != nil {
		seedCancel()
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	seedCancel()

	// Services.
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	lockStore := redisstore.NewLockStore(redisClient)

	authService := service.NewAuthService(userRepo, profileRepo, tokens)
	orderService := service.NewOrderService(db, orderRepo, profileRepo, lockStore)
	driverService := service.NewDriverService(db, profileRepo, documentRepo, carRepo, fileStore)
	adminService := service.NewAdminService(db, userRepo, profileRepo, documentRepo, orderRepo, actionRepo)
	reviewService := service.NewReviewService(orderRepo, profileRepo, reviewRepo)

	// Handlers.
	authHandler := handler.NewAuthHandler(authService, cfg.Auth.CookieName, int(cfg.Auth.TokenTTL.Seconds()))
	clientHandler := handler.NewClientHandler(orderService, reviewService)
	driverHandler := handler.NewDriverHandler(driverService, orderService, cfg.Upload.MaxSize)
	adminHandler := handler.NewAdminHandler(adminService)
	orderHandler := handler.NewOrderHandler(orderService)

	router := app.NewRouter(app.RouterDeps{
		AuthHandler:   authHandler,
		ClientHandler: clientHandler,
		DriverHandler: driverHandler,
		AdminHandler:  adminHandler,
		OrderHandler:  orderHandler,
		AuthService:   authService,
		CookieName:    cfg.Auth.CookieName,
		RedisClient:   redisClient,
		NewRelicApp:   nrApp,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
