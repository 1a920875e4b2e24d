package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"inventory-management/internal/config"
	"inventory-management/internal/console"
	"inventory-management/internal/database"
	"inventory-management/internal/events"
	"inventory-management/internal/repository"
	"inventory-management/internal/service"
	"inventory-management/pkg/logger"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Configuration error:", err)
		os.Exit(1)
	}

	// Logs go to a file so they never interleave with the menus
	appLogger := logger.NewFile(cfg.Environment, cfg.LogFile)
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting Inventory console",
		zap.String("environment", cfg.Environment),
		zap.String("driver", cfg.DBDriver),
	)

	db, err := database.Open(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to open database", zap.Error(err))
		fmt.Fprintln(os.Stderr, "❌ Failed to open database:", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !db.TestConnection(ctx) {
		fmt.Fprintln(os.Stderr, "❌ Database connection failed. Check your configuration and try again.")
		os.Exit(1)
	}
	fmt.Println("✅ Database connection successful")

	var eventBus events.EventPublisher = events.NewEventPublisher(appLogger)
	if cfg.UseKafka {
		kafkaPublisher, err := events.NewKafkaEventPublisher(cfg, appLogger)
		if err != nil {
			appLogger.Warn("Failed to initialize Kafka publisher, using in-memory fallback", zap.Error(err))
		} else {
			defer kafkaPublisher.Close()
			eventBus = kafkaPublisher
		}
	}

	supplierStore := repository.NewSupplierStore(db, appLogger, nil)
	productStore := repository.NewProductStore(db, appLogger, nil)

	ui := console.New(os.Stdin, os.Stdout, console.Services{
		Suppliers: service.NewSupplierService(supplierStore, eventBus, appLogger),
		Products:  service.NewProductService(productStore, supplierStore, eventBus, appLogger),
		Reports:   service.NewReportService(productStore, supplierStore, appLogger),
		DB:        db,
	}, appLogger, isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()))

	if err := ui.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Console stopped with error", zap.Error(err))
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
