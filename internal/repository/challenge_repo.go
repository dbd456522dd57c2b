package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"admission-service/internal/domain"
)

// ChallengeRepository реализует взаимодействие с записями об участии в PostgreSQL.
type ChallengeRepository struct {
	db *sql.DB
}

// NewChallengeRepository создает новый экземпляр ChallengeRepository.
func NewChallengeRepository(db *sql.DB) domain.ChallengeRepository {
	return &ChallengeRepository{db: db}
}

// Create создает запись об участии.
func (r *ChallengeRepository) Create(ctx context.Context, challenge *domain.Challenge) error {
	details, err := marshalDetails(challenge.Details)
	if err != nil {
		return err
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO challenges (applicant_id, type, contest_id, status, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		challenge.ApplicantID, challenge.Type, challenge.ContestID, challenge.Status, details,
	).Scan(&challenge.ID)
	if err != nil {
		return fmt.Errorf("failed to create challenge: %w", err)
	}

	return nil
}

// GetByID возвращает запись об участии по ID вместе с данными абитуриента.
func (r *ChallengeRepository) GetByID(ctx context.Context, id int64) (*domain.Challenge, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT c.id, c.applicant_id, c.type, c.contest_id, c.participant_id,
		       c.status_code, c.status, c.score, c.details,
		       a.yandex_login, a.campaign_id
		FROM challenges c
		JOIN applicants a ON a.id = c.applicant_id
		WHERE c.id = $1`,
		id,
	)

	challenge, err := scanChallenge(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrChallengeNotFound
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	return challenge, nil
}

// ListNew возвращает незарегистрированные записи контеста с логинами абитуриентов.
func (r *ChallengeRepository) ListNew(ctx context.Context, contestID int64, challengeType string) ([]*domain.Challenge, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.applicant_id, c.type, c.contest_id, c.participant_id,
		       c.status_code, c.status, c.score, c.details,
		       a.yandex_login, a.campaign_id
		FROM challenges c
		JOIN applicants a ON a.id = c.applicant_id
		WHERE c.contest_id = $1 AND c.type = $2 AND c.status = $3
		ORDER BY c.id`,
		contestID, challengeType, domain.ChallengeStatusNew,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list new challenges: %w", err)
	}
	defer rows.Close()

	challenges := make([]*domain.Challenge, 0)
	for rows.Next() {
		challenge, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		challenges = append(challenges, challenge)
	}

	return challenges, rows.Err()
}

// MarkRegistered проставляет participant id, код ответа и статус registered.
func (r *ChallengeRepository) MarkRegistered(ctx context.Context, id int64, participantID int64, statusCode int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE challenges
		SET participant_id = $1, status_code = $2, status = $3
		WHERE id = $4`,
		participantID, statusCode, domain.ChallengeStatusRegistered, id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark challenge registered: %w", err)
	}
	return nil
}

// SetStatusCode сохраняет код ответа регистрации без смены статуса.
func (r *ChallengeRepository) SetStatusCode(ctx context.Context, id int64, statusCode int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE challenges
		SET status_code = $1
		WHERE id = $2`,
		statusCode, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set status code: %w", err)
	}
	return nil
}

// FindParticipantID ищет participant id среди других локальных записей
// того же контеста и логина. Закрывает случай, когда предыдущая попытка
// регистрации оборвалась по таймауту уже после приема на удаленной стороне.
func (r *ChallengeRepository) FindParticipantID(ctx context.Context, contestID int64, yandexLogin string) (int64, bool, error) {
	var participantID int64
	err := r.db.QueryRowContext(ctx, `
		SELECT c.participant_id
		FROM challenges c
		JOIN applicants a ON a.id = c.applicant_id
		WHERE c.contest_id = $1 AND a.yandex_login = $2 AND c.participant_id IS NOT NULL
		LIMIT 1`,
		contestID, yandexLogin,
	).Scan(&participantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to find participant id: %w", err)
	}

	return participantID, true, nil
}

// ApplyScore обновляет счет и детали записей в статусе registered,
// совпавших по логину или participant id в рамках контеста и кампании.
// Записи в статусе manual и уже сверенные вручную не затрагиваются.
func (r *ChallengeRepository) ApplyScore(ctx context.Context, contest *domain.Contest, update *domain.ScoreUpdate) (int64, error) {
	details, err := marshalDetails(update.Details)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE challenges c
		SET score = $1, details = $2
		FROM applicants a
		WHERE a.id = c.applicant_id
		  AND c.contest_id = $3
		  AND c.type = $4
		  AND c.status = $5
		  AND a.campaign_id = $6
		  AND (a.yandex_login = $7 OR c.participant_id = $8)`,
		update.Score, details,
		contest.ContestID, contest.Type, domain.ChallengeStatusRegistered,
		contest.CampaignID, update.Login, update.ParticipantID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to apply score: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChallenge(row rowScanner) (*domain.Challenge, error) {
	challenge := &domain.Challenge{}
	var participantID sql.NullInt64
	var statusCode sql.NullInt32
	var score sql.NullInt32
	var details []byte

	err := row.Scan(&challenge.ID, &challenge.ApplicantID, &challenge.Type,
		&challenge.ContestID, &participantID, &statusCode, &challenge.Status,
		&score, &details, &challenge.YandexLogin, &challenge.CampaignID)
	if err != nil {
		return nil, err
	}

	if participantID.Valid {
		challenge.ParticipantID = &participantID.Int64
	}
	if statusCode.Valid {
		code := int(statusCode.Int32)
		challenge.StatusCode = &code
	}
	if score.Valid {
		s := int(score.Int32)
		challenge.Score = &s
	}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &challenge.Details); err != nil {
			return nil, fmt.Errorf("failed to decode details: %w", err)
		}
	}

	return challenge, nil
}

func marshalDetails(details map[string]any) ([]byte, error) {
	if details == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("failed to encode details: %w", err)
	}
	return data, nil
}
