package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"admission-service/internal/domain"
)

// ContestRepository реализует взаимодействие с контестами в PostgreSQL.
type ContestRepository struct {
	db *sql.DB
}

// NewContestRepository создает новый экземпляр ContestRepository.
func NewContestRepository(db *sql.DB) domain.ContestRepository {
	return &ContestRepository{db: db}
}

// GetByID возвращает контест по локальному ID.
func (r *ContestRepository) GetByID(ctx context.Context, id int64) (*domain.Contest, error) {
	contest := &domain.Contest{}
	var details []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, campaign_id, type, contest_id, details
		FROM contests
		WHERE id = $1`,
		id,
	).Scan(&contest.ID, &contest.CampaignID, &contest.Type, &contest.ContestID, &details)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrContestNotFound
		}
		return nil, fmt.Errorf("failed to get contest: %w", err)
	}

	if len(details) > 0 {
		if err := json.Unmarshal(details, &contest.Details); err != nil {
			return nil, fmt.Errorf("failed to decode details: %w", err)
		}
	}

	return contest, nil
}

// List возвращает все контесты.
func (r *ContestRepository) List(ctx context.Context) ([]*domain.Contest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, campaign_id, type, contest_id, details
		FROM contests
		ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}
	defer rows.Close()

	contests := make([]*domain.Contest, 0)
	for rows.Next() {
		contest := &domain.Contest{}
		var details []byte
		if err := rows.Scan(&contest.ID, &contest.CampaignID, &contest.Type,
			&contest.ContestID, &details); err != nil {
			return nil, fmt.Errorf("failed to scan contest: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &contest.Details); err != nil {
				return nil, fmt.Errorf("failed to decode details: %w", err)
			}
		}
		contests = append(contests, contest)
	}

	return contests, rows.Err()
}

// UpdateDetails сохраняет блок деталей контеста (заголовки задач и т.п.).
func (r *ContestRepository) UpdateDetails(ctx context.Context, id int64, details map[string]any) error {
	data, err := marshalDetails(details)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE contests
		SET details = $1
		WHERE id = $2`,
		data, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update contest details: %w", err)
	}

	return nil
}
