package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rhinowatch/rhino-watch-sa/internal/config"
	v1 "github.com/rhinowatch/rhino-watch-sa/internal/handler/http/v1"
	"github.com/rhinowatch/rhino-watch-sa/internal/repository"
	"github.com/rhinowatch/rhino-watch-sa/internal/service"
	"github.com/rhinowatch/rhino-watch-sa/pkg/logger"
	"github.com/rhinowatch/rhino-watch-sa/pkg/storage"

	_ "github.com/rhinowatch/rhino-watch-sa/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Rhino Watch SA Dashboard API
// @version 1.0
// @description Read API and dashboard for rhino poaching incident reports.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to the configured engine; a failed PostgreSQL connection falls
	// back to the embedded SQLite database for the rest of the process.
	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()
	log.WithField("dialect", store.Dialect.Name()).Info("Connected to database")

	// Schema and seed data are applied before the server starts listening.
	if err := store.Migrate(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	log.Info("Database migrations applied successfully")

	seeder := repository.NewSeeder(store.DB, store.Dialect, log)
	if err := seeder.Seed(ctx); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	incidentRepo := repository.NewIncidentRepository(store.DB, store.Dialect)
	userRepo := repository.NewUserRepository(store.DB, store.Dialect)

	incidentService := service.NewIncidentService(incidentRepo, log)
	authService := service.NewAuthService(userRepo, log, cfg)

	handler := v1.NewHandler(incidentService, authService, log, cfg, store.Dialect.Name())

	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	handler.RegisterRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
