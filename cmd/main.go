package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/padelpoint/pairing-engine/config"
	"github.com/padelpoint/pairing-engine/db"
	"github.com/padelpoint/pairing-engine/handlers"
	"github.com/padelpoint/pairing-engine/live"
	"github.com/padelpoint/pairing-engine/repositories"
	api "github.com/padelpoint/pairing-engine/routes"
	"github.com/padelpoint/pairing-engine/services"
	"github.com/padelpoint/pairing-engine/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	var snapshots storage.SnapshotUploader
	if cfg.SnapshotsConfigured() {
		snapshots, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize R2 snapshot uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("R2 snapshot uploader initialized")
	} else {
		logger.Info("R2 not configured, draw snapshot export disabled")
	}

	wsHub := live.NewHub(logger)
	go wsHub.Run()

	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	registrationRepo := repositories.NewPostgresRegistrationRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	poolRepo := repositories.NewPostgresPoolRepository(dbConn)
	historyRepo := repositories.NewPostgresPlayerHistoryRepository(dbConn)

	rankingService := services.NewRankingService(registrationRepo, historyRepo, wsHub, logger)
	drawService := services.NewDrawService(
		tournamentRepo,
		registrationRepo,
		matchRepo,
		poolRepo,
		rankingService,
		wsHub,
		snapshots,
		logger,
	)
	scheduleService := services.NewScheduleService(tournamentRepo, matchRepo, wsHub, logger)

	drawHandler := handlers.NewDrawHandler(rankingService, drawService, scheduleService)
	wsHandler := handlers.NewWebSocketHandler(wsHub, logger)

	router := api.InitRoutes(drawHandler, wsHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	<-shutdown
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
	}
}
