package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"admission-service/internal/domain"
)

// StandingsPageSize — размер страницы турнирной таблицы.
const StandingsPageSize = 50

// ContestSyncUseCase реализует регистрацию участников во внешнем контесте
// и сверку счетов из его турнирной таблицы с локальными записями.
type ContestSyncUseCase struct {
	challengeRepo domain.ChallengeRepository
	contestRepo   domain.ContestRepository
	client        domain.ContestClient
	logger        *logrus.Logger
}

// NewContestSyncUseCase создает новый экземпляр ContestSyncUseCase.
func NewContestSyncUseCase(
	challengeRepo domain.ChallengeRepository,
	contestRepo domain.ContestRepository,
	client domain.ContestClient,
	logger *logrus.Logger,
) domain.ContestSyncUseCase {
	return &ContestSyncUseCase{
		challengeRepo: challengeRepo,
		contestRepo:   contestRepo,
		client:        client,
		logger:        logger,
	}
}

// Register регистрирует запись во внешнем контесте.
//
// Три исхода: 200/201 — сохраняем participant id и переходим в registered;
// 409 — регистрация уже была (например, предыдущая попытка оборвалась по
// таймауту после приема на удаленной стороне), participant id добираем из
// другой локальной записи того же контеста и логина; любая другая ошибка
// API пробрасывается вызывающему без изменений.
func (uc *ContestSyncUseCase) Register(ctx context.Context, challenge *domain.Challenge) error {
	code, participantID, err := uc.client.RegisterParticipant(ctx, challenge.YandexLogin, challenge.ContestID)
	if err != nil {
		return err
	}

	switch code {
	case domain.ContestRegistrationOK, domain.ContestRegistrationCreated:
		return uc.markRegistered(ctx, challenge, participantID, code)
	case domain.ContestRegistrationConflict:
		knownID, found, err := uc.challengeRepo.FindParticipantID(ctx, challenge.ContestID, challenge.YandexLogin)
		if err != nil {
			return err
		}
		if !found {
			// participant id взять неоткуда: фиксируем код и ждем следующего прогона.
			uc.logger.WithFields(logrus.Fields{
				"challenge_id": challenge.ID,
				"login":        challenge.YandexLogin,
				"contest_id":   challenge.ContestID,
			}).Warn("Duplicate registration without known participant id")
			return uc.challengeRepo.SetStatusCode(ctx, challenge.ID, code)
		}
		return uc.markRegistered(ctx, challenge, knownID, code)
	default:
		return fmt.Errorf("unexpected registration status %d", code)
	}
}

func (uc *ContestSyncUseCase) markRegistered(ctx context.Context, challenge *domain.Challenge, participantID int64, code int) error {
	if err := uc.challengeRepo.MarkRegistered(ctx, challenge.ID, participantID, code); err != nil {
		return err
	}
	challenge.ParticipantID = &participantID
	challenge.StatusCode = &code
	challenge.Status = domain.ChallengeStatusRegistered
	return nil
}

// RegisterAll регистрирует все новые записи контеста.
// Ошибка по одной записи не прерывает остальные: исходы возвращаются
// вызывающему поштучно.
func (uc *ContestSyncUseCase) RegisterAll(ctx context.Context, contestID int64) ([]*domain.RegistrationResult, error) {
	contest, err := uc.contestRepo.GetByID(ctx, contestID)
	if err != nil {
		return nil, err
	}

	challenges, err := uc.challengeRepo.ListNew(ctx, contest.ContestID, contest.Type)
	if err != nil {
		return nil, err
	}

	results := make([]*domain.RegistrationResult, 0, len(challenges))
	for _, challenge := range challenges {
		result := &domain.RegistrationResult{
			ChallengeID: challenge.ID,
			Login:       challenge.YandexLogin,
		}
		if err := uc.Register(ctx, challenge); err != nil {
			result.Err = err
			uc.logger.WithError(err).WithField("login", challenge.YandexLogin).
				Error("Failed to register participant")
		} else if challenge.Status == domain.ChallengeStatusRegistered {
			result.Registered = true
			if challenge.ParticipantID != nil {
				result.ParticipantID = *challenge.ParticipantID
			}
		}
		results = append(results, result)
	}

	return results, nil
}

// ImportScores сверяет турнирную таблицу контеста с локальными записями.
//
// Таблица — живой, внешне пагинируемый ресурс: между запросами страниц она
// может пересортироваться (чей-то счет вырос, и строка уехала на уже
// пройденную страницу), поэтому импорт может недосчитать. Это осознанный
// best-effort контракт, не снапшот; счетчики (строк в таблице, обновлено)
// возвращаются вызывающему для ручной сверки.
func (uc *ContestSyncUseCase) ImportScores(ctx context.Context, contest *domain.Contest) (int, int, error) {
	onScoreboard := 0
	updated := 0

	for page := 1; ; page++ {
		standings, err := uc.client.Standings(ctx, contest.ContestID, page, StandingsPageSize)
		if err != nil {
			// Импорт обрывается целиком; уже закоммиченные обновления остаются.
			return onScoreboard, updated, err
		}

		if page == 1 && len(standings.Titles) > 0 {
			titles := make([]any, len(standings.Titles))
			for i, t := range standings.Titles {
				titles[i] = t
			}
			if err := uc.contestRepo.UpdateDetails(ctx, contest.ID, map[string]any{"titles": titles}); err != nil {
				return onScoreboard, updated, err
			}
		}

		for _, row := range standings.Rows {
			score, err := ParseScore(row.Score)
			if err != nil {
				return onScoreboard, updated, fmt.Errorf("row %q: %w", row.Login, err)
			}

			problemScores := make([]any, len(row.ProblemScores))
			for i, s := range row.ProblemScores {
				problemScores[i] = s
			}

			affected, err := uc.challengeRepo.ApplyScore(ctx, contest, &domain.ScoreUpdate{
				Login:         row.Login,
				ParticipantID: row.ParticipantID,
				Score:         score,
				Details: map[string]any{
					"scores": problemScores,
				},
			})
			if err != nil {
				return onScoreboard, updated, err
			}
			updated += int(affected)
		}

		onScoreboard += len(standings.Rows)

		// Неполная страница — таблица кончилась.
		if len(standings.Rows) < StandingsPageSize {
			break
		}
	}

	uc.logger.WithFields(logrus.Fields{
		"contest_id":    contest.ContestID,
		"on_scoreboard": onScoreboard,
		"updated":       updated,
	}).Info("Score import finished")

	return onScoreboard, updated, nil
}

// ParseScore преобразует локализованный счет ("12,50") в целое
// округлением half-up.
func ParseScore(raw string) (int, error) {
	normalized := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
	if normalized == "" {
		return 0, nil
	}

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed score %q: %w", raw, err)
	}

	return int(math.Floor(value + 0.5)), nil
}
