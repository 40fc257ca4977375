// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/farmfresh/internal/config"
	"github.com/javajoker/farmfresh/internal/database"
	"github.com/javajoker/farmfresh/internal/i18n"
	"github.com/javajoker/farmfresh/internal/router"
	"github.com/javajoker/farmfresh/internal/services"
)

func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger := newLogger(cfg)

	// Initialize database
	db, err := database.Initialize(cfg.Database, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer database.Close(db, logger)

	if err := database.RunMigrations(db, logger); err != nil {
		logger.WithError(err).Fatal("Failed to run migrations")
	}

	if cfg.Database.SeedDemo {
		if err := database.SeedDemoData(db, logger); err != nil {
			logger.WithError(err).Fatal("Failed to seed demo data")
		}
	}

	if err := i18n.Initialize(); err != nil {
		logger.WithError(err).Fatal("Failed to initialize i18n")
	}

	deps := router.Dependencies{Logger: logger}

	// Token denylist
	if cfg.Redis.Enabled {
		client, err := services.ConnectRedis(cfg.Redis)
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, revoked tokens are kept in memory")
		} else {
			defer client.Close()
			deps.Tokens = services.NewRedisTokenStore(client)
			logger.WithField("addr", cfg.Redis.Addr()).Info("Using Redis token denylist")
		}
	}

	// Order events
	if cfg.AMQP.URL != "" {
		publisher, err := services.NewAMQPPublisher(cfg.AMQP.URL)
		if err != nil {
			logger.WithError(err).Warn("RabbitMQ unavailable, order events will only be logged")
		} else {
			defer publisher.Close()
			deps.Publisher = publisher
			logger.WithField("queue", cfg.AMQP.OrderQueue).Info("Publishing order events")
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r, stopRouter := router.Initialize(db, cfg, deps)
	defer stopRouter()

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
		return
	}

	logger.Info("Server exited")
}
