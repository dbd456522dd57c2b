// Команда syncscores регистрирует новых участников в контестах и
// импортирует счета из турнирных таблиц. Пересекающиеся запуски
// исключаются распределенной блокировкой в Redis.
package main

import (
	"context"
	"flag"
	"time"

	"admission-service/internal/config"
	"admission-service/internal/contest"
	"admission-service/internal/database"
	"admission-service/internal/locker"
	"admission-service/internal/repository"
	"admission-service/internal/usecase"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const lockTTL = 30 * time.Minute

func main() {
	var (
		onlyContest  = flag.Int64("contest", 0, "sync only the contest with this local id")
		skipImport   = flag.Bool("skip-import", false, "register participants without importing scores")
		skipRegister = flag.Bool("skip-register", false, "import scores without registering participants")
	)
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	ctx := context.Background()

	// Блокировка прогона: сам синхронизатор конкурентные запуски не
	// исключает, это обязанность вызывающей команды.
	lock := locker.NewRunLock(redisClient, "admission:syncscores", lockTTL)
	acquired, err := lock.Acquire(ctx)
	if err != nil {
		logger.Fatalf("Failed to acquire run lock: %v", err)
	}
	if !acquired {
		logger.Warn("Another syncscores run is in progress, exiting")
		return
	}
	defer func() {
		if err := lock.Release(ctx); err != nil {
			logger.Warnf("Failed to release run lock: %v", err)
		}
	}()

	contestClient := contest.NewClient(cfg.ContestAPIBaseURL, cfg.ContestAPIToken, nil)
	contestRepo := repository.NewContestRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	syncUC := usecase.NewContestSyncUseCase(challengeRepo, contestRepo, contestClient, logger)

	contests, err := contestRepo.List(ctx)
	if err != nil {
		logger.Fatalf("Failed to list contests: %v", err)
	}

	for _, c := range contests {
		if *onlyContest != 0 && c.ID != *onlyContest {
			continue
		}

		entry := logger.WithFields(logrus.Fields{
			"contest":        c.ID,
			"remote_contest": c.ContestID,
			"type":           c.Type,
		})

		if !*skipRegister {
			results, err := syncUC.RegisterAll(ctx, c.ID)
			if err != nil {
				entry.WithError(err).Error("Registration failed, skipping contest")
				continue
			}
			registered := 0
			for _, r := range results {
				if r.Registered {
					registered++
				}
			}
			entry.WithFields(logrus.Fields{
				"total":      len(results),
				"registered": registered,
			}).Info("Registration finished")
		}

		if !*skipImport {
			onScoreboard, updated, err := syncUC.ImportScores(ctx, c)
			if err != nil {
				// Уже закоммиченные обновления остаются; счетчики — для ручной сверки.
				entry.WithError(err).WithFields(logrus.Fields{
					"on_scoreboard": onScoreboard,
					"updated":       updated,
				}).Error("Score import aborted")
				continue
			}
			entry.WithFields(logrus.Fields{
				"on_scoreboard": onScoreboard,
				"updated":       updated,
			}).Info("Score import finished")
		}
	}
}
