package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	debtapp "github.com/debttrack/backend/internal/application/debt"
	identityapp "github.com/debttrack/backend/internal/application/identity"
	"github.com/debttrack/backend/internal/infrastructure/auth"
	"github.com/debttrack/backend/internal/infrastructure/cache"
	"github.com/debttrack/backend/internal/infrastructure/config"
	"github.com/debttrack/backend/internal/infrastructure/logger"
	"github.com/debttrack/backend/internal/infrastructure/persistence"
	"github.com/debttrack/backend/internal/interfaces/http/handler"
	"github.com/debttrack/backend/internal/interfaces/http/middleware"
	"github.com/debttrack/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting debttrack backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	debtConfig, err := buildDebtConfig(cfg.Debt)
	if err != nil {
		log.Fatal("Invalid debt configuration", zap.Error(err))
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Cache: Redis with in-memory fallback for single-instance deployments
	cacheFactory := cache.NewFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithFactoryDefaultTTL(cfg.Debt.ListCacheTTL),
	)
	appCache, err := cacheFactory.Create()
	if err != nil {
		log.Fatal("Failed to create cache", zap.Error(err))
	}

	// Repositories
	debtRepo := persistence.NewGormDebtRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	debtService := debtapp.NewService(debtRepo, userRepo, appCache, debtConfig, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo)

	// Handlers
	debtHandler := handler.NewDebtHandler(debtService)
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	systemHandler := handler.NewSystemHandler(db)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	middleware.SetupValidator()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestLogger(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Probes outside API versioning
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
		},
		Logger: log,
	}))

	authRoutes := router.NewGroup("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/me", authHandler.Me)
	r.Register(authRoutes)

	userRoutes := router.NewGroup("/users")
	userRoutes.GET("", userHandler.List)
	userRoutes.GET("/:id", userHandler.Get)
	r.Register(userRoutes)

	debtRoutes := router.NewGroup("/debts")
	debtRoutes.POST("", debtHandler.Create)
	debtRoutes.GET("", debtHandler.List)
	debtRoutes.GET("/stats", debtHandler.Stats)
	debtRoutes.GET("/export", debtHandler.Export)
	debtRoutes.GET("/:id", debtHandler.Get)
	debtRoutes.PUT("/:id", debtHandler.Update)
	debtRoutes.DELETE("/:id", debtHandler.Delete)
	debtRoutes.POST("/:id/pay", debtHandler.Pay)
	r.Register(debtRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if closer, ok := appCache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Error("Error closing cache", zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}

// buildDebtConfig parses the decimal bounds from configuration
func buildDebtConfig(cfg config.DebtConfig) (debtapp.Config, error) {
	minAmount, err := decimal.NewFromString(cfg.MinAmount)
	if err != nil {
		return debtapp.Config{}, err
	}
	maxAmount, err := decimal.NewFromString(cfg.MaxAmount)
	if err != nil {
		return debtapp.Config{}, err
	}
	return debtapp.Config{
		MinAmount:    minAmount,
		MaxAmount:    maxAmount,
		DefaultPage:  cfg.DefaultPage,
		DefaultLimit: cfg.DefaultLimit,
		MaxLimit:     cfg.MaxLimit,
		ListTTL:      cfg.ListCacheTTL,
	}, nil
}
