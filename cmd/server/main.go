package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/nursery/backend/internal/application/catalog"
	messagingapp "github.com/nursery/backend/internal/application/messaging"
	orderapp "github.com/nursery/backend/internal/application/order"
	pickupapp "github.com/nursery/backend/internal/application/pickup"
	promotionapp "github.com/nursery/backend/internal/application/promotion"
	reportapp "github.com/nursery/backend/internal/application/report"
	shippingapp "github.com/nursery/backend/internal/application/shipping"
	promotiondomain "github.com/nursery/backend/internal/domain/promotion"
	"github.com/nursery/backend/internal/infrastructure/auth"
	"github.com/nursery/backend/internal/infrastructure/cache"
	"github.com/nursery/backend/internal/infrastructure/config"
	"github.com/nursery/backend/internal/infrastructure/event"
	csvimport "github.com/nursery/backend/internal/infrastructure/import"
	"github.com/nursery/backend/internal/infrastructure/logger"
	"github.com/nursery/backend/internal/infrastructure/mail"
	"github.com/nursery/backend/internal/infrastructure/persistence"
	"github.com/nursery/backend/internal/infrastructure/scheduler"
	"github.com/nursery/backend/internal/infrastructure/telemetry"
	"github.com/nursery/backend/internal/interfaces/http/handler"
	"github.com/nursery/backend/internal/interfaces/http/middleware"
	"github.com/nursery/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

// maxRequestBodySize caps JSON and multipart request bodies. CSV imports
// are the largest expected payload.
const maxRequestBodySize = 12 * 1024 * 1024

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

	log.Info("Starting nursery backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing (no-op unless OTEL_EXPORTER_OTLP_ENDPOINT is set)
	shutdownTracing, err := telemetry.Init(context.Background(), cfg.App.Name, cfg.App.Env)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Error("Error shutting down tracer", zap.Error(err))
		}
	}()

	// Initialize database connection with zap-backed GORM logging
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	stockAlertRepo := persistence.NewGormStockAlertRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	promotionRepo := persistence.NewGormPromotionRepository(db.DB)
	shippingZoneRepo := persistence.NewGormShippingZoneRepository(db.DB)
	carrierServiceRepo := persistence.NewGormCarrierServiceRepository(db.DB)
	pickupLocationRepo := persistence.NewGormPickupLocationRepository(db.DB)
	pickupScheduleRepo := persistence.NewGormPickupScheduleRepository(db.DB)
	emailTemplateRepo := persistence.NewGormEmailTemplateRepository(db.DB)
	salesReportRepo := persistence.NewGormSalesReportRepository(db.DB)
	rollupRepo := persistence.NewGormRollupRepository(db.DB)

	// Coupon redemption counting and JWT revocation use Redis when
	// configured; the in-memory fallback covers development setups
	var redemptionCounter promotiondomain.RedemptionCounter
	var tokenBlacklist auth.TokenBlacklist
	if cfg.Redis.Host != "" {
		redisCounter, err := cache.NewRedisRedemptionCounter(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis for redemption counting", zap.Error(err))
		}
		redemptionCounter = redisCounter

		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis for token blacklist", zap.Error(err))
		}
		tokenBlacklist = redisBlacklist

		log.Info("Redis connected",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	} else {
		redemptionCounter = cache.NewInMemoryRedemptionCounter()
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
		log.Info("Redis not configured, using in-memory redemption counter and token blacklist")
	}

	// Outbound mail
	mailer, err := mail.NewMailer(cfg.Mail, log)
	if err != nil {
		log.Fatal("Failed to initialize mailer", zap.Error(err))
	}
	log.Info("Mailer initialized", zap.String("driver", cfg.Mail.Driver))

	// Pickup capacity checks count confirmed orders per slot
	bookingCounter := orderapp.NewPickupBookingCounter(orderRepo)

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo, categoryRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	stockAlertService := catalogapp.NewStockAlertService(stockAlertRepo, productRepo)
	cartService := orderapp.NewCartService(cartRepo, productRepo)
	orderService := orderapp.NewOrderService(orderRepo, productRepo)
	promotionService := promotionapp.NewPromotionService(promotionRepo, redemptionCounter)
	shippingService := shippingapp.NewShippingService(shippingZoneRepo, carrierServiceRepo)
	pickupService := pickupapp.NewPickupService(pickupLocationRepo, pickupScheduleRepo, bookingCounter)
	checkoutService := orderapp.NewCheckoutService(
		cartRepo,
		orderRepo,
		productRepo,
		promotionService,
		shippingZoneRepo,
		carrierServiceRepo,
		pickupScheduleRepo,
		bookingCounter,
	)
	templateService := messagingapp.NewTemplateService(emailTemplateRepo)
	reportService := reportapp.NewReportService(salesReportRepo, rollupRepo)
	aggregationService := reportapp.NewAggregationService(salesReportRepo, rollupRepo, log)

	// JWT for the admin API
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize event bus and notification handlers
	eventBus := event.NewInMemoryEventBus(log)

	orderNotificationHandler := messagingapp.NewOrderNotificationHandler(
		orderRepo, emailTemplateRepo, mailer, log,
		messagingapp.WithLocationRepository(pickupLocationRepo),
	)
	eventBus.Subscribe(orderNotificationHandler)

	backInStockHandler := messagingapp.NewBackInStockHandler(stockAlertRepo, emailTemplateRepo, mailer, log)
	eventBus.Subscribe(backInStockHandler)

	log.Info("Event handlers registered",
		zap.Strings("order_notification_events", orderNotificationHandler.EventTypes()),
		zap.Strings("back_in_stock_events", backInStockHandler.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	productService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	checkoutService.SetEventPublisher(eventBus)

	// Nightly sales rollup (if enabled)
	var rollupScheduler *scheduler.RollupCronScheduler
	if cfg.Scheduler.Enabled {
		rollupScheduler, err = scheduler.NewRollupCronScheduler(cfg.Scheduler, aggregationService, log)
		if err != nil {
			log.Fatal("Failed to create rollup scheduler", zap.Error(err))
		}
		if err := rollupScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start rollup scheduler", zap.Error(err))
		}
		defer func() {
			if err := rollupScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping rollup scheduler", zap.Error(err))
			}
		}()
		log.Info("Rollup scheduler started",
			zap.String("cron", cfg.Scheduler.RollupCron),
			zap.Duration("job_timeout", cfg.Scheduler.JobTimeout),
			zap.Int("backfill_days", cfg.Scheduler.BackfillDays),
		)
	}

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	stockAlertHandler := handler.NewStockAlertHandler(stockAlertService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService, checkoutService)
	promotionHandler := handler.NewPromotionHandler(promotionService)
	shippingHandler := handler.NewShippingHandler(shippingService)
	pickupHandler := handler.NewPickupHandler(pickupService)
	templateHandler := handler.NewTemplateHandler(templateService)
	importSessions := csvimport.NewInMemorySessionStore(24 * time.Hour)
	importHandler := handler.NewProductImportHandler(productService, categoryService, importSessions)
	systemHandler := handler.NewSystemHandler(db, cfg.App.Name, version)

	var reportHandler *handler.ReportHandler
	if rollupScheduler != nil {
		reportHandler = handler.NewReportHandler(reportService, aggregationService, rollupScheduler)
	} else {
		reportHandler = handler.NewReportHandler(reportService, aggregationService, nil)
	}

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
	// 3. Logger - Log requests
	// 4. Tracing - Start server spans, mark errors
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing())
	engine.Use(middleware.SpanErrorMarker())
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
	engine.Use(middleware.BodyLimit(maxRequestBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health and readiness endpoints (outside API versioning)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/healthz", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)
	engine.GET("/api/v1/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// The storefront under /store is public; everything else under the
	// API prefix requires an admin JWT
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = tokenBlacklist
	jwtConfig.Logger = log
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	r.Use(middleware.TracingAttributeInjector())

	// Storefront routes (public)
	storeRoutes := router.NewDomainGroup("store", "/store")

	// Browsing
	storeRoutes.GET("/products", productHandler.List)
	storeRoutes.GET("/products/featured", productHandler.ListFeatured)
	storeRoutes.GET("/products/:id", productHandler.GetByID)
	storeRoutes.GET("/products/code/:code", productHandler.GetByCode)
	storeRoutes.GET("/categories", categoryHandler.List)
	storeRoutes.GET("/categories/tree", categoryHandler.Tree)
	storeRoutes.GET("/categories/:id", categoryHandler.GetByID)
	storeRoutes.GET("/categories/slug/:slug", categoryHandler.GetBySlug)

	// Back-in-stock subscriptions
	storeRoutes.POST("/stock-alerts", stockAlertHandler.Subscribe)

	// Carts
	storeRoutes.POST("/carts", cartHandler.Open)
	storeRoutes.POST("/carts/merge", cartHandler.Merge)
	storeRoutes.GET("/carts/:id", cartHandler.Get)
	storeRoutes.POST("/carts/:id/items", cartHandler.AddItem)
	storeRoutes.PUT("/carts/:id/items/:productId", cartHandler.UpdateItem)
	storeRoutes.DELETE("/carts/:id/items/:productId", cartHandler.RemoveItem)
	storeRoutes.DELETE("/carts/:id/items", cartHandler.Clear)
	storeRoutes.POST("/carts/:id/coupon", cartHandler.ApplyCoupon)
	storeRoutes.DELETE("/carts/:id/coupon", cartHandler.RemoveCoupon)

	// Coupons and promotions
	storeRoutes.POST("/coupons/validate", promotionHandler.ValidateCoupon)
	storeRoutes.POST("/promotions/calculate", promotionHandler.CalculateDiscount)

	// Fulfillment options
	storeRoutes.GET("/shipping/destination", shippingHandler.EvaluateDestination)
	storeRoutes.POST("/shipping/quotes", shippingHandler.QuoteRates)
	storeRoutes.GET("/pickup/locations", pickupHandler.ListActiveLocations)
	storeRoutes.GET("/pickup/slots", pickupHandler.AvailableSlots)
	storeRoutes.GET("/pickup/calendar", pickupHandler.Calendar)

	// Checkout and order lookup
	storeRoutes.POST("/checkout", orderHandler.Checkout)
	storeRoutes.GET("/orders/:id", orderHandler.GetByID)
	storeRoutes.GET("/orders/number/:number", orderHandler.GetByNumber)

	// Admin routes (JWT protected)
	adminRoutes := router.NewDomainGroup("admin", "/admin")

	// Product management
	adminRoutes.POST("/products", productHandler.Create)
	adminRoutes.GET("/products", productHandler.List)
	adminRoutes.GET("/products/:id", productHandler.GetByID)
	adminRoutes.GET("/products/code/:code", productHandler.GetByCode)
	adminRoutes.PUT("/products/:id", productHandler.Update)
	adminRoutes.DELETE("/products/:id", productHandler.Delete)
	adminRoutes.POST("/products/:id/activate", productHandler.Activate)
	adminRoutes.POST("/products/:id/deactivate", productHandler.Deactivate)
	adminRoutes.POST("/products/:id/discontinue", productHandler.Discontinue)
	adminRoutes.PUT("/products/:id/sale", productHandler.SetSale)
	adminRoutes.DELETE("/products/:id/sale", productHandler.ClearSale)
	adminRoutes.POST("/products/:id/stock/adjust", productHandler.AdjustStock)
	adminRoutes.PUT("/products/:id/stock", productHandler.SetStock)
	adminRoutes.GET("/products/:id/stock-alerts", stockAlertHandler.ListPending)
	adminRoutes.DELETE("/stock-alerts/:id", stockAlertHandler.Unsubscribe)

	// Category management
	adminRoutes.POST("/categories", categoryHandler.Create)
	adminRoutes.GET("/categories", categoryHandler.List)
	adminRoutes.GET("/categories/tree", categoryHandler.Tree)
	adminRoutes.GET("/categories/:id", categoryHandler.GetByID)
	adminRoutes.PUT("/categories/:id", categoryHandler.Update)
	adminRoutes.DELETE("/categories/:id", categoryHandler.Delete)

	// Order management
	adminRoutes.GET("/orders", orderHandler.List)
	adminRoutes.GET("/orders/:id", orderHandler.GetByID)
	adminRoutes.GET("/orders/number/:number", orderHandler.GetByNumber)
	adminRoutes.GET("/orders/status/:status", orderHandler.ListByStatus)
	adminRoutes.GET("/customers/:id/orders", orderHandler.ListByCustomer)
	adminRoutes.POST("/orders/:id/pay", orderHandler.MarkPaid)
	adminRoutes.POST("/orders/:id/process", orderHandler.StartProcessing)
	adminRoutes.POST("/orders/:id/ready", orderHandler.MarkReady)
	adminRoutes.POST("/orders/:id/ship", orderHandler.Ship)
	adminRoutes.POST("/orders/:id/complete", orderHandler.Complete)
	adminRoutes.POST("/orders/:id/cancel", orderHandler.Cancel)

	// Promotion management
	adminRoutes.POST("/promotions", promotionHandler.Create)
	adminRoutes.GET("/promotions", promotionHandler.List)
	adminRoutes.GET("/promotions/:id", promotionHandler.GetByID)
	adminRoutes.PUT("/promotions/:id", promotionHandler.Update)
	adminRoutes.DELETE("/promotions/:id", promotionHandler.Delete)
	adminRoutes.POST("/promotions/:id/activate", promotionHandler.Activate)
	adminRoutes.POST("/promotions/:id/deactivate", promotionHandler.Deactivate)

	// Shipping management
	adminRoutes.POST("/shipping/zones", shippingHandler.CreateZone)
	adminRoutes.GET("/shipping/zones", shippingHandler.ListZones)
	adminRoutes.GET("/shipping/zones/:id", shippingHandler.GetZone)
	adminRoutes.PUT("/shipping/zones/:id", shippingHandler.UpdateZone)
	adminRoutes.DELETE("/shipping/zones/:id", shippingHandler.DeleteZone)
	adminRoutes.POST("/shipping/services", shippingHandler.CreateCarrierService)
	adminRoutes.GET("/shipping/services", shippingHandler.ListCarrierServices)
	adminRoutes.GET("/shipping/services/:id", shippingHandler.GetCarrierService)
	adminRoutes.PUT("/shipping/services/:id", shippingHandler.UpdateCarrierService)
	adminRoutes.DELETE("/shipping/services/:id", shippingHandler.DeleteCarrierService)
	adminRoutes.POST("/shipping/services/:id/activate", shippingHandler.ActivateCarrierService)
	adminRoutes.POST("/shipping/services/:id/deactivate", shippingHandler.DeactivateCarrierService)

	// Pickup management
	adminRoutes.POST("/pickup/locations", pickupHandler.CreateLocation)
	adminRoutes.GET("/pickup/locations", pickupHandler.ListLocations)
	adminRoutes.GET("/pickup/locations/:id", pickupHandler.GetLocation)
	adminRoutes.PUT("/pickup/locations/:id", pickupHandler.UpdateLocation)
	adminRoutes.DELETE("/pickup/locations/:id", pickupHandler.DeleteLocation)
	adminRoutes.POST("/pickup/locations/:id/activate", pickupHandler.ActivateLocation)
	adminRoutes.POST("/pickup/locations/:id/deactivate", pickupHandler.DeactivateLocation)
	adminRoutes.GET("/pickup/locations/:id/schedules", pickupHandler.ListSchedules)
	adminRoutes.GET("/pickup/locations/:id/orders", orderHandler.PickupsForDate)
	adminRoutes.POST("/pickup/schedules", pickupHandler.CreateSchedule)
	adminRoutes.GET("/pickup/schedules/:id", pickupHandler.GetSchedule)
	adminRoutes.PUT("/pickup/schedules/:id", pickupHandler.UpdateSchedule)
	adminRoutes.DELETE("/pickup/schedules/:id", pickupHandler.DeleteSchedule)
	adminRoutes.POST("/pickup/schedules/:id/activate", pickupHandler.ActivateSchedule)
	adminRoutes.POST("/pickup/schedules/:id/deactivate", pickupHandler.DeactivateSchedule)
	adminRoutes.POST("/pickup/schedules/:id/blackouts", pickupHandler.AddBlackoutDate)
	adminRoutes.DELETE("/pickup/schedules/:id/blackouts/:date", pickupHandler.RemoveBlackoutDate)

	// Email template management
	adminRoutes.POST("/templates", templateHandler.Create)
	adminRoutes.GET("/templates", templateHandler.List)
	adminRoutes.GET("/templates/:id", templateHandler.GetByID)
	adminRoutes.PUT("/templates/:id", templateHandler.Update)
	adminRoutes.DELETE("/templates/:id", templateHandler.Delete)
	adminRoutes.POST("/templates/:id/activate", templateHandler.Activate)
	adminRoutes.POST("/templates/:id/deactivate", templateHandler.Deactivate)
	adminRoutes.POST("/templates/:id/preview", templateHandler.Preview)

	// Sales reporting
	adminRoutes.GET("/reports/sales/summary", reportHandler.SalesSummary)
	adminRoutes.GET("/reports/sales/daily", reportHandler.DailySalesSeries)
	adminRoutes.GET("/reports/sales/products", reportHandler.ProductRanking)
	adminRoutes.GET("/reports/sales/categories", reportHandler.CategorySplit)
	adminRoutes.GET("/reports/sales/fulfillment", reportHandler.FulfillmentSplit)
	adminRoutes.GET("/reports/coupons", reportHandler.CouponUsage)
	adminRoutes.GET("/reports/low-stock", reportHandler.LowStock)
	adminRoutes.GET("/reports/pickup-manifest", reportHandler.PickupManifest)
	adminRoutes.GET("/reports/charts/category-pie", reportHandler.CategoryPie)
	adminRoutes.GET("/reports/charts/fulfillment-pie", reportHandler.FulfillmentPie)
	adminRoutes.GET("/reports/charts/top-products", reportHandler.TopProductsBar)
	adminRoutes.GET("/reports/charts/daily-sales", reportHandler.DailySalesLine)
	adminRoutes.POST("/reports/rollup", reportHandler.TriggerRollup)
	adminRoutes.GET("/reports/scheduler/status", reportHandler.SchedulerStatus)
	adminRoutes.POST("/reports/scheduler/run", reportHandler.TriggerScheduledRun)

	// CSV import
	adminRoutes.POST("/import/products/validate", importHandler.Validate)
	adminRoutes.POST("/import/products", importHandler.Import)
	adminRoutes.GET("/import/sessions", importHandler.ListSessions)
	adminRoutes.GET("/import/sessions/:id", importHandler.GetSession)

	// System
	adminRoutes.GET("/system/stats", systemHandler.DBStats)

	// Register all domain groups and set up routes
	r.Register(storeRoutes).
		Register(adminRoutes)
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
