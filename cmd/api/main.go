package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vpsfleet/inventory-service/internal/config"
	"github.com/vpsfleet/inventory-service/internal/db"
	"github.com/vpsfleet/inventory-service/internal/http"
	"github.com/vpsfleet/inventory-service/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := setupLogger(cfg.LogLevel)
	logger.Info("Starting Inventory Service...")

	// Initialize database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	logger.WithFields(logrus.Fields{
		"host": cfg.Database.Host,
		"db":   cfg.Database.DBName,
	}).Info("Connected to PostgreSQL")

	// Create schema if absent
	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatalf("Failed to migrate schema: %v", err)
	}

	// Initialize domain layer
	inventory := service.NewInventoryService(pool, logger)

	// Initialize HTTP server
	server := http.NewServer(cfg, pool, inventory, logger)

	// Start server in goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Infof("Server starting on %s", addr)
		if err := server.Run(addr); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
}

func setupLogger(level string) *logrus.Logger {
	logger := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return logger
}
