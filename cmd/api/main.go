package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/shubhodip/spendmate/spendmate-backend/internal/config"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/handler"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/middleware"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/repository/postgres"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/repository/rediscache"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/repository/storage"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/service"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/websocket"

	_ "github.com/shubhodip/spendmate/spendmate-backend/docs"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	loanRepo := postgres.NewLoanRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	liabilityRepo := postgres.NewLiabilityRepository(pool)
	insuranceRepo := postgres.NewInsuranceRepository(pool)

	// Optional Redis-backed exchange rate cache
	var rateCache service.RateCache
	if cfg.RedisAddr != "" {
		redisCache := rediscache.NewRateCache(cfg.RedisAddr)
		if err := redisCache.Ping(context.Background()); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unreachable, rate caching disabled")
		} else {
			log.Info().Str("addr", cfg.RedisAddr).Msg("Connected to Redis")
			rateCache = redisCache
			defer redisCache.Close()
		}
	}

	// Optional S3-backed avatar storage
	var avatarStorage storage.AvatarRepository
	if cfg.S3Enabled() {
		s3Repo, err := storage.NewS3AvatarRepository(context.Background(), cfg.S3)
		if err != nil {
			log.Warn().Err(err).Msg("S3 initialization failed, avatar uploads disabled")
		} else {
			log.Info().Str("bucket", cfg.S3.Bucket).Msg("Avatar storage configured")
			avatarStorage = s3Repo
		}
	}

	// WebSocket hub for real-time events
	hub := websocket.NewHub()

	// Initialize services
	authService := service.NewAuthService(userRepo)
	profileService := service.NewProfileService(userRepo)
	avatarService := service.NewAvatarService(avatarStorage, userRepo)
	transactionService := service.NewTransactionService(transactionRepo)
	loanService := service.NewLoanService(loanRepo)
	taxService := service.NewTaxService()
	insuranceService := service.NewInsuranceService(insuranceRepo)
	currencyService := service.NewCurrencyService(domain.StaticRates, rateCache)
	assetService := service.NewAssetService(assetRepo, liabilityRepo)
	dashboardService := service.NewDashboardService(transactionRepo, loanRepo, assetService, insuranceService)

	profileService.SetEventPublisher(hub)
	transactionService.SetEventPublisher(hub)
	loanService.SetEventPublisher(hub)
	insuranceService.SetEventPublisher(hub)
	assetService.SetEventPublisher(hub)

	// Create user provider adapter for auth middleware
	userProvider := &userProviderAdapter{authService: authService}

	// Initialize auth middleware
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.AuthDomain, cfg.AuthAudience, userProvider)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create auth middleware")
	}

	// Per-user rate limiter
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService, avatarService)
	avatarHandler := handler.NewAvatarHandler(avatarService, profileService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	loanHandler := handler.NewLoanHandler(loanService)
	taxHandler := handler.NewTaxHandler(taxService)
	insuranceHandler := handler.NewInsuranceHandler(insuranceService)
	currencyHandler := handler.NewCurrencyHandler(currencyService)
	assetHandler := handler.NewAssetHandler(assetService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	wsHandler := handler.NewWebSocketHandler(hub, authMiddleware, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger UI and OpenAPI 3.0 spec
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", handler.ServeOpenAPI3Spec)

	// Register API routes
	handler.RegisterRoutes(e, authMiddleware, rateLimiter, authHandler, profileHandler, avatarHandler, transactionHandler, loanHandler, taxHandler, insuranceHandler, currencyHandler, assetHandler, dashboardHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// userProviderAdapter adapts AuthService to middleware.UserProvider
type userProviderAdapter struct {
	authService *service.AuthService
}

// GetUserIDByAuthID implements middleware.UserProvider
func (a *userProviderAdapter) GetUserIDByAuthID(authID string) (uuid.UUID, error) {
	user, err := a.authService.GetUserByAuthID(authID)
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
