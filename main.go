package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"marga/config"
	"marga/cron"
	"marga/database"
	"marga/database/repository/records"
	"marga/handlers"
	"marga/middleware"
	"marga/routes"
	"marga/services/command"
	"marga/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Record store: Mongo in production, the single-file JSON store for
	// small or standalone deployments.
	var repo records.Repository
	switch config.AppConfig.StorageDriver {
	case "file":
		repo = records.NewFileRepo(config.AppConfig.DatabaseFile)
		logger.Sugar().Infof("using file record store at %s", config.AppConfig.DatabaseFile)
	default:
		database.InitDB()
		repo = records.NewMongoRepo()
	}

	// Per-caller command contexts: in-process by default, Redis when
	// selections must survive restarts or span instances.
	var contexts command.ContextStore
	if config.AppConfig.ContextStoreRedis {
		contexts = command.NewRedisContextStore(utils.GetContextCacheClient(), 0)
	} else {
		contexts = command.NewMemoryContextStore()
	}

	commandService := command.NewDefaultCommandService(repo, contexts)
	if config.AppConfig.RemindersEnabled {
		commandService.Reminders = cron.NewScheduler()
		cron.InitReminderWorker()
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	handler := handlers.NewHandler(repo, commandService)
	routes.RegisterRoutes(router, handler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
