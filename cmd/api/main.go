package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory-management/internal/config"
	"inventory-management/internal/database"
	"inventory-management/internal/events"
	"inventory-management/internal/handlers"
	"inventory-management/internal/metrics"
	"inventory-management/internal/repository"
	"inventory-management/internal/service"
	"inventory-management/pkg/logger"
	"inventory-management/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "inventory-management/docs" // Import docs for Swagger
)

// @title           Inventory Management API
// @version         1.0
// @description     Suppliers, products, stock and reports for the inventory subsystem.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @schemes   http https
func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting Inventory API",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
	)

	appLogger.Info("💾 Database Configuration",
		zap.String("driver", cfg.DBDriver),
		zap.String("sqlite_path", cfg.SQLitePath),
		zap.Bool("auto_migrate", cfg.DBAutoMigrate),
	)

	db, err := database.Open(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	appMetrics := metrics.New()

	var eventBus events.EventPublisher
	if cfg.UseKafka {
		appLogger.Info("📡 Kafka Configuration",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic_suppliers", cfg.KafkaTopicSuppliers),
			zap.String("topic_products", cfg.KafkaTopicProducts),
			zap.String("acks", cfg.KafkaAcks),
		)
		kafkaPublisher, err := events.NewKafkaEventPublisher(cfg, appLogger)
		if err != nil {
			appLogger.Warn("Failed to initialize Kafka publisher, using in-memory fallback", zap.Error(err))
			eventBus = events.NewEventPublisher(appLogger)
		} else {
			defer kafkaPublisher.Close()
			eventBus = kafkaPublisher
		}
	} else {
		appLogger.Info("📡 Kafka Configuration",
			zap.Bool("enabled", false),
			zap.String("note", "Kafka is disabled (USE_KAFKA=false), events stay in memory"),
		)
		eventBus = events.NewEventPublisher(appLogger)
	}

	// Stores and services
	appLogger.Info("🔧 Initializing services...")
	supplierStore := repository.NewSupplierStore(db, appLogger, appMetrics)
	productStore := repository.NewProductStore(db, appLogger, appMetrics)

	supplierService := service.NewSupplierService(supplierStore, eventBus, appLogger)
	productService := service.NewProductService(productStore, supplierStore, eventBus, appLogger)
	reportService := service.NewReportService(productStore, supplierStore, appLogger)
	appLogger.Info("✅ Services initialized successfully")

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// CORS middleware (must be first to handle preflight requests)
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(middleware.RequestIDMiddleware(appLogger))
	router.Use(logger.GinMiddleware(appLogger))
	router.Use(appMetrics.GinMiddleware())
	if cfg.RateLimit != "" {
		rateLimit, err := middleware.RateLimitMiddleware(cfg.RateLimit, appLogger)
		if err != nil {
			appLogger.Fatal("Invalid RATE_LIMIT", zap.Error(err))
		}
		router.Use(rateLimit)
		appLogger.Info("🔧 Rate limiting enabled", zap.String("rate", cfg.RateLimit))
	}
	router.Use(middleware.ErrorHandler(appLogger))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(appMetrics.Handler()))

	// API routes
	v1 := router.Group("/api/v1")
	v1.GET("/health", handlers.NewHealthHandler("inventory-api", db).Health)
	handlers.NewSupplierHandler(appLogger, supplierService, productService).Register(v1)
	handlers.NewProductHandler(appLogger, productService).Register(v1)
	handlers.NewReportHandler(appLogger, reportService).Register(v1)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("🌐 Starting HTTP server",
			zap.String("address", ":"+cfg.Port),
			zap.String("swagger_url", "http://localhost:"+cfg.Port+"/swagger/index.html"),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}
