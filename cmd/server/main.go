package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"leasedash/server/config"
	"leasedash/server/internal/api"
	"leasedash/server/internal/database"
	"leasedash/server/internal/dataset"
	"leasedash/server/internal/prefs"
	"leasedash/server/internal/processor"
	"leasedash/server/internal/queue"
	"leasedash/server/internal/scheduler"
	"leasedash/server/internal/source"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	dbPath := cfg.Database.Path
	if !filepath.IsAbs(dbPath) {
		currentDir, err := os.Getwd()
		if err != nil {
			logger.WithError(err).Fatal("Failed to get current directory")
		}
		dbPath = filepath.Join(currentDir, dbPath)
	}
	logger.Infof("Using database at: %s", dbPath)

	db, err := database.NewDatabase(dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	// Persistence pipeline: fetched batches flow through the queue into
	// transactional upserts.
	recordQueue := queue.NewRecordQueue(cfg.BatchProcessing.MaxBatchSize*cfg.BatchProcessing.ProcessorCount, logger)
	batchProcessor := processor.NewBatchProcessor(db.ORM(), recordQueue, cfg, logger)
	batchProcessor.Start()
	recordQueue.Start()

	data := dataset.NewService(logger, nil)
	fetcher := source.NewClient(cfg, logger)

	refresher := scheduler.NewRefresher(fetcher, data, recordQueue, db, cfg, logger)
	refresher.Start()

	prefsStore := prefs.NewFileStore(filepath.Join(filepath.Dir(dbPath), "preferences.json"), logger)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(router, data, refresher, logger)
	api.SetupPreferencesRoutes(router, prefsStore)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Infof("Starting server on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	refresher.Stop()
	recordQueue.Close()
	batchProcessor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Forced server shutdown")
	}
	logger.Info("Server stopped")
}
