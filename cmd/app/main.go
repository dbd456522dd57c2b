package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admission-service/internal/config"
	"admission-service/internal/contest"
	"admission-service/internal/database"
	"admission-service/internal/handler"
	"admission-service/internal/repository"
	"admission-service/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	// База данных (database/sql)
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	logger.Info("Database connected")

	// Клиент API Контеста
	contestClient := contest.NewClient(cfg.ContestAPIBaseURL, cfg.ContestAPIToken, nil)

	// Репозитории
	streamRepo := repository.NewStreamRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)
	applicantRepo := repository.NewApplicantRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	contestRepo := repository.NewContestRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	// Use Cases
	streamUC := usecase.NewStreamUseCase(streamRepo, venueRepo)
	invitationUC := usecase.NewInvitationUseCase(interviewRepo, streamRepo, applicantRepo)
	applicantUC := usecase.NewApplicantUseCase(applicantRepo, challengeRepo)
	contestSyncUC := usecase.NewContestSyncUseCase(challengeRepo, contestRepo, contestClient, logger)
	statsUC := usecase.NewStatsUseCase(statsRepo)

	// Echo + Handlers
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(handler.LoggingMiddleware(logger))

	// Handlers
	apiHandler := handler.NewAPIHandler(streamUC, invitationUC, applicantUC, contestSyncUC, contestRepo, statsUC, logger)
	apiHandler.RegisterRoutes(e)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// Фоновая уборка просроченных приглашений
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go func() {
		ticker := time.NewTicker(15 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case now := <-ticker.C:
				expired, err := invitationUC.ExpireOverdue(sweepCtx, now)
				if err != nil {
					logger.WithError(err).Error("Failed to expire overdue invitations")
					continue
				}
				if expired > 0 {
					logger.WithField("expired", expired).Info("Overdue invitations expired")
				}
			}
		}
	}()

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
