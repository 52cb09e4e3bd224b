package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dafibh/brokerly/brokerly-backend/internal/config"
	"github.com/dafibh/brokerly/brokerly-backend/internal/domain"
	"github.com/dafibh/brokerly/brokerly-backend/internal/handler"
	"github.com/dafibh/brokerly/brokerly-backend/internal/middleware"
	"github.com/dafibh/brokerly/brokerly-backend/internal/repository/cache"
	"github.com/dafibh/brokerly/brokerly-backend/internal/repository/postgres"
	"github.com/dafibh/brokerly/brokerly-backend/internal/repository/storage"
	"github.com/dafibh/brokerly/brokerly-backend/internal/service"
	"github.com/dafibh/brokerly/brokerly-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title Brokerly API
// @version 1.0
// @description Commission and tax bookkeeping for motor insurance brokerages.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Auth0 session JWT or brk_ API token, as "Bearer <token>"
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
	if cfg.IsProduction() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	workspaceRepo := postgres.NewWorkspaceRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)
	vehicleClassRepo := postgres.NewVehicleClassRepository(pool)
	agentRepo := postgres.NewAgentRepository(pool)
	policyRepo := postgres.NewPolicyRepository(pool)
	documentRepo := postgres.NewPolicyDocumentRepository(pool)
	apiTokenRepo := postgres.NewAPITokenRepository(pool)

	dashboardCache, closeCache := newDashboardCache(cfg)
	defer closeCache()

	// Document storage is optional
	var documentStore storage.DocumentStore
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3DocumentStore(context.Background(), cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize S3 document store")
		}
		documentStore = s3Store
		log.Info().Str("bucket", cfg.S3.Bucket).Str("region", cfg.S3.Region).Msg("Policy document storage enabled")
	} else {
		log.Warn().Msg("S3 not configured, policy document uploads disabled")
	}

	hub := websocket.NewHub()

	// Initialize services
	authService := service.NewAuthService(userRepo, workspaceRepo)
	userService := service.NewUserService(userRepo)
	workspaceService := service.NewWorkspaceService(workspaceRepo)
	apiTokenService := service.NewAPITokenService(apiTokenRepo)
	providerService := service.NewProviderService(providerRepo)
	vehicleClassService := service.NewVehicleClassService(vehicleClassRepo)
	agentService := service.NewAgentService(agentRepo)
	policyService := service.NewPolicyService(policyRepo, agentRepo, providerRepo, vehicleClassRepo)
	documentService := service.NewDocumentService(documentStore, documentRepo, policyRepo)
	reportService := service.NewReportService(policyService, policyRepo, agentRepo, providerRepo, vehicleClassRepo)
	dashboardService := service.NewDashboardService(policyService, policyRepo, agentRepo, dashboardCache)

	statusWorker := service.NewStatusRefreshWorker(policyRepo, log.Logger, service.StatusRefreshWorkerConfig{
		Interval: cfg.StatusRefreshInterval,
	})

	// Writes are pushed to connected clients and drop cached dashboards
	for _, n := range []interface {
		SetEventPublisher(websocket.EventPublisher)
		SetDashboardCache(domain.DashboardCache)
	}{providerService, vehicleClassService, agentService, policyService, documentService, statusWorker} {
		n.SetEventPublisher(hub)
		n.SetDashboardCache(dashboardCache)
	}

	// One Auth0 validator serves the HTTP middleware and the websocket handshake
	sessions, err := middleware.NewAuth0Validator(cfg.Auth0Domain, cfg.Auth0Audience)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Auth0 validator")
	}
	jwtAuth := middleware.NewAuthMiddlewareWithValidator(sessions, authService)
	apiTokenAuth := middleware.NewAPITokenAuthMiddleware(apiTokenService)
	rateLimiter := middleware.NewRateLimiter(middleware.Quota{PerMinute: cfg.APITokenRequestsPerMinute, Burst: cfg.APITokenBurst})
	defer rateLimiter.Stop()

	handlers := handler.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService, workspaceService),
		APIToken:     handler.NewAPITokenHandler(apiTokenService),
		Provider:     handler.NewProviderHandler(providerService),
		VehicleClass: handler.NewVehicleClassHandler(vehicleClassService),
		Agent:        handler.NewAgentHandler(agentService),
		Policy:       handler.NewPolicyHandler(policyService),
		Document:     handler.NewDocumentHandler(documentService),
		Report:       handler.NewReportHandler(reportService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		WebSocket:    handler.NewWebSocketHandler(hub, websocket.NewSubscriberAuthenticator(sessions, authService), cfg.CORSOrigins),
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestID())

	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderContentDisposition, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers; swagger UI needs inline scripts and styles
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/swagger")
		},
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	e.Use(zerologMiddleware())
	e.Use(echomiddleware.Recover())

	handler.RegisterRoutes(e, handler.Auth{
		JWT:         jwtAuth,
		Dual:        middleware.NewDualAuthMiddleware(jwtAuth, apiTokenAuth),
		RateLimiter: rateLimiter,
	}, handlers)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	statusWorker.Start(workerCtx)

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

	statusWorker.Stop()
	closed := hub.Shutdown()
	log.Info().Int("clients", closed).Msg("WebSocket clients disconnected")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// newDashboardCache connects to Redis when configured and falls back to no caching
func newDashboardCache(cfg *config.Config) (domain.DashboardCache, func()) {
	noop := func() {}
	if cfg.RedisURL == "" {
		log.Info().Msg("REDIS_URL not set, dashboard cache disabled")
		return cache.NoOpDashboardCache{}, noop
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid REDIS_URL")
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Msg("Redis unreachable, dashboard cache disabled")
		_ = client.Close()
		return cache.NoOpDashboardCache{}, noop
	}

	log.Info().Dur("ttl", cfg.DashboardCacheTTL).Msg("Dashboard cache enabled")
	return cache.NewRedisDashboardCache(client, cfg.DashboardCacheTTL), func() { _ = client.Close() }
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

			event := log.Info()
			if res.Status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Int32("workspace_id", middleware.GetWorkspaceID(c)).
				Msg("request")

			return nil
		}
	}
}
