package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"usersvc/internal/config"
	"usersvc/internal/database"
	"usersvc/internal/logger"
	"usersvc/internal/repositories"
	"usersvc/internal/server"
	"usersvc/internal/services"
	"usersvc/pkg/rabbitmq"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "usersvc: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	// --- Database ---
	dbConfig := database.Config{
		PostgresURL: cfg.PostgresURL,
		SQLitePath:  cfg.SQLitePath,
		Debug:       cfg.LogLevel == "debug",
	}
	db, err := database.Open(dbConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Connected to database", zap.String("dialect", dbConfig.Dialect()))

	if cfg.MigrateOnStart {
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info("Database migrated")
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.DefaultConfig(cfg.RabbitMQURL))
		if err != nil {
			return err
		}
		defer func() {
			if err := mqClient.Close(); err != nil {
				log.Warn("Failed to close RabbitMQ client", zap.Error(err))
			}
		}()
		publisher = mqClient
		log.Info("Publishing user events to RabbitMQ")
	}

	// --- HTTP ---
	app, err := server.New(cfg, log, repositories.NewGORMUserRepository(db), publisher)
	if err != nil {
		return err
	}

	listenErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		listenErr <- app.Listen(cfg.Addr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		log.Info("Shutting down server", zap.String("signal", sig.String()))
	}

	// Deferred closes run after Fiber has drained, RabbitMQ first and the database last.
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Error("Error during server shutdown", zap.Error(err))
	}
	log.Info("Server gracefully stopped")
	return nil
}
