package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Nikhil4123/Brocker/internal/handler"
	mid "github.com/Nikhil4123/Brocker/internal/middleware"
	"github.com/Nikhil4123/Brocker/internal/repository"
	"github.com/Nikhil4123/Brocker/internal/service"
	"github.com/Nikhil4123/Brocker/pkg/config"
	"github.com/Nikhil4123/Brocker/pkg/jwtutil"
	"github.com/Nikhil4123/Brocker/pkg/logger"
	"github.com/Nikhil4123/Brocker/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting "+appConfig.ServiceName,
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port),
		zap.String("store_driver", appConfig.Store.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize store
	store, err := repository.Open(ctx, appConfig)
	if err != nil {
		log.Fatal("Failed to initialize store", zap.Error(err))
	}
	log.Info("Store connection established")

	tokens := jwtutil.NewJWTUtil(&appConfig.JWT)

	metrics := prometheus.NewMetrics(appConfig.Metrics.Prefix, prom.DefaultRegisterer)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	propertyService := service.NewPropertyService(store, metrics)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware(log))
	e.Use(logger.Middleware(log))
	e.Use(metrics.Middleware())

	// Routes
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", handler.HealthCheck(store))

	propertyHandler := handler.NewPropertyHandler(propertyService)
	propertyHandler.RegisterRoutes(e.Group("/api/properties"), tokens)

	// Start server
	go func() {
		port := appConfig.Server.Port
		log.Info("Starting server", zap.String("port", port))
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Error("Store close error", zap.Error(err))
	}
	log.Info("Server stopped")
}
