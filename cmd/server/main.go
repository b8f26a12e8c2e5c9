package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/ginvoice/backend/internal/application/billing"
	complianceapp "github.com/ginvoice/backend/internal/application/compliance"
	dashboardapp "github.com/ginvoice/backend/internal/application/dashboard"
	invoicingapp "github.com/ginvoice/backend/internal/application/invoicing"
	domaincompliance "github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/infrastructure/auth"
	"github.com/ginvoice/backend/internal/infrastructure/config"
	"github.com/ginvoice/backend/internal/infrastructure/logger"
	"github.com/ginvoice/backend/internal/infrastructure/persistence"
	"github.com/ginvoice/backend/internal/infrastructure/storage"
	"github.com/ginvoice/backend/internal/infrastructure/telemetry"
	"github.com/ginvoice/backend/internal/interfaces/http/handler"
	"github.com/ginvoice/backend/internal/interfaces/http/middleware"
	"github.com/ginvoice/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/ginvoice/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

//	@title			G-Invoice Backend API
//	@version		1.0
//	@description	Billing pipeline for vendor invoices, official fees and client invoicing.

//	@contact.name	API Support
//	@contact.email	it@firm.example

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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

	log.Info("Starting G-Invoice Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Distributed tracing (no-op provider when disabled)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.App.Name,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Token blacklist backs logout; Redis keys expire with the tokens
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to connect to Redis for token blacklist", zap.Error(err))
		}
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
	}

	// Document store for invoice PDFs, certificates and platform evidence
	var docStore storage.DocumentStore
	storeCtx, storeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	s3Store, err := storage.NewS3DocumentStore(storeCtx, &cfg.Storage)
	storeCancel()
	if err != nil {
		if cfg.App.Env == "production" {
			log.Fatal("Failed to initialize S3 document store", zap.Error(err))
		}
		log.Warn("S3 unavailable, falling back to in-memory document store", zap.Error(err))
		docStore = storage.NewInMemoryDocumentStore()
	} else {
		docStore = s3Store
	}

	// Initialize repositories
	jobRepo := persistence.NewGormJobRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	requestRepo := persistence.NewGormComplianceRequestRepository(db.DB)
	intakeItemRepo := persistence.NewGormIntakeItemRepository(db.DB)
	batchRepo := persistence.NewGormBillingBatchRepository(db.DB)
	invoiceRepo := persistence.NewGormClientInvoiceRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryRepository(db.DB)
	taskRepo := persistence.NewGormPlatformTaskRepository(db.DB)
	changeLogRepo := persistence.NewGormChangeLogRepository(db.DB)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	snapshotService := domaincompliance.NewSnapshotService(jobRepo, vendorRepo)
	complianceService := complianceapp.NewService(jobRepo, vendorRepo, requestRepo, log)
	intakeService := billingapp.NewIntakeService(intakeItemRepo, snapshotService, log)
	postingService := billingapp.NewPostingService(intakeItemRepo, log)
	batchService := billingapp.NewBatchService(batchRepo, intakeItemRepo, log)
	invoiceService := invoicingapp.NewInvoiceService(invoiceRepo, batchRepo, intakeItemRepo, log)
	deliveryService := invoicingapp.NewDeliveryService(deliveryRepo, invoiceRepo, taskRepo, log)
	taskService := invoicingapp.NewPlatformTaskService(taskRepo, invoiceRepo, deliveryRepo, log)
	dashboardService := dashboardapp.NewService(
		jobRepo, vendorRepo, requestRepo,
		intakeItemRepo, invoiceRepo, deliveryRepo, taskRepo,
		changeLogRepo, cfg.Dashboard.QueueSize, log,
	)

	// Initialize HTTP handlers
	jobHandler := handler.NewJobHandler(complianceService)
	vendorHandler := handler.NewVendorHandler(complianceService)
	requestHandler := handler.NewComplianceRequestHandler(complianceService)
	intakeHandler := handler.NewIntakeHandler(intakeService, postingService)
	batchHandler := handler.NewBillingBatchHandler(batchService)
	invoiceHandler := handler.NewClientInvoiceHandler(invoiceService, deliveryService)
	deliveryHandler := handler.NewDeliveryHandler(deliveryService)
	taskHandler := handler.NewPlatformTaskHandler(taskService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	documentHandler := handler.NewDocumentHandler(docStore)
	authHandler := handler.NewAuthHandler(blacklist)
	systemHandler := handler.NewSystemHandler(db.DB, version)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Tracing - Create spans (enriched after JWT runs)
	// 4. Logger - Log requests
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.App.Name,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Probes at the root, outside API versioning, for load balancers
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	// Swagger documentation endpoint
	swaggerGuard := middleware.SwaggerProtection(middleware.SwaggerConfig{
		Enabled: cfg.App.Env != "production",
	}, nil)
	engine.GET("/swagger/*any", swaggerGuard, ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Register domain route groups
	r.Register(jobHandler).
		Register(vendorHandler).
		Register(requestHandler).
		Register(intakeHandler).
		Register(batchHandler).
		Register(invoiceHandler).
		Register(deliveryHandler).
		Register(taskHandler).
		Register(dashboardHandler).
		Register(documentHandler).
		Register(authHandler).
		Register(systemHandler)

	// Setup routes
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
