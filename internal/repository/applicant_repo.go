package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"admission-service/internal/domain"
)

// ApplicantRepository реализует взаимодействие с абитуриентами в PostgreSQL.
type ApplicantRepository struct {
	db *sql.DB
}

// NewApplicantRepository создает новый экземпляр ApplicantRepository.
func NewApplicantRepository(db *sql.DB) domain.ApplicantRepository {
	return &ApplicantRepository{db: db}
}

// Create создает абитуриента.
func (r *ApplicantRepository) Create(ctx context.Context, applicant *domain.Applicant) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO applicants (campaign_id, full_name, yandex_login)
		VALUES ($1, $2, $3)
		RETURNING id`,
		applicant.CampaignID, applicant.FullName, applicant.YandexLogin,
	).Scan(&applicant.ID)
	if err != nil {
		return fmt.Errorf("failed to create applicant: %w", err)
	}

	return nil
}

// GetByID возвращает абитуриента по ID.
func (r *ApplicantRepository) GetByID(ctx context.Context, applicantID int64) (*domain.Applicant, error) {
	applicant := &domain.Applicant{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, campaign_id, full_name, yandex_login
		FROM applicants
		WHERE id = $1`,
		applicantID,
	).Scan(&applicant.ID, &applicant.CampaignID, &applicant.FullName, &applicant.YandexLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrApplicantNotFound
		}
		return nil, fmt.Errorf("failed to get applicant: %w", err)
	}

	return applicant, nil
}

// ExistsByLogin проверяет, занят ли логин в кампании.
func (r *ApplicantRepository) ExistsByLogin(ctx context.Context, campaignID int64, yandexLogin string) (bool, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM applicants
		WHERE campaign_id = $1 AND yandex_login = $2`,
		campaignID, yandexLogin,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check applicant exists: %w", err)
	}

	return count > 0, nil
}
