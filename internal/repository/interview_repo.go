package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"admission-service/internal/domain"
)

// InterviewRepository реализует взаимодействие с интервью и приглашениями в PostgreSQL.
type InterviewRepository struct {
	db *sql.DB
}

// NewInterviewRepository создает новый экземпляр InterviewRepository.
func NewInterviewRepository(db *sql.DB) domain.InterviewRepository {
	return &InterviewRepository{db: db}
}

// CreateInvitation создает приглашение и связки с потоками-кандидатами.
func (r *InterviewRepository) CreateInvitation(ctx context.Context, invitation *domain.InterviewInvitation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO interview_invitations (applicant_id, secret_token, expired_at, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		invitation.ApplicantID, invitation.SecretToken, invitation.ExpiredAt, invitation.Status,
	).Scan(&invitation.ID)
	if err != nil {
		return fmt.Errorf("failed to create invitation: %w", err)
	}

	for _, streamID := range invitation.StreamIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO invitation_streams (invitation_id, stream_id)
			VALUES ($1, $2)`,
			invitation.ID, streamID,
		)
		if err != nil {
			return fmt.Errorf("failed to link stream %d: %w", streamID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetInvitationByToken возвращает приглашение по секретному токену.
func (r *InterviewRepository) GetInvitationByToken(ctx context.Context, token string) (*domain.InterviewInvitation, error) {
	invitation := &domain.InterviewInvitation{}
	var interviewID sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, applicant_id, secret_token, expired_at, status, interview_id
		FROM interview_invitations
		WHERE secret_token = $1`,
		token,
	).Scan(&invitation.ID, &invitation.ApplicantID, &invitation.SecretToken,
		&invitation.ExpiredAt, &invitation.Status, &interviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to get invitation: %w", err)
	}
	if interviewID.Valid {
		invitation.InterviewID = &interviewID.Int64
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT stream_id FROM invitation_streams WHERE invitation_id = $1`,
		invitation.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get invitation streams: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var streamID int64
		if err := rows.Scan(&streamID); err != nil {
			return nil, fmt.Errorf("failed to scan stream id: %w", err)
		}
		invitation.StreamIDs = append(invitation.StreamIDs, streamID)
	}

	return invitation, rows.Err()
}

// AcceptInvitation создает интервью и занимает слот одной транзакцией.
// CAS по слоту с нулем затронутых строк — проигранная гонка: транзакция
// откатывается (созданное интервью исчезает) и возвращается ErrSlotOccupied.
func (r *InterviewRepository) AcceptInvitation(ctx context.Context, invitationID, slotID int64, interview *domain.Interview) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// 1. Создаем интервью
	err = tx.QueryRowContext(ctx, `
		INSERT INTO interviews (applicant_id, status, date)
		VALUES ($1, $2, $3)
		RETURNING id`,
		interview.ApplicantID, interview.Status, interview.Date,
	).Scan(&interview.ID)
	if err != nil {
		return fmt.Errorf("failed to create interview: %w", err)
	}

	// 2. Занимаем слот условным UPDATE
	affected, lockErr := lockSlot(ctx, tx, slotID, interview.ID)
	if lockErr != nil {
		err = lockErr
		return err
	}
	if affected == 0 {
		err = domain.ErrSlotOccupied
		return err
	}

	// 3. Помечаем приглашение принятым
	_, err = tx.ExecContext(ctx, `
		UPDATE interview_invitations
		SET status = $1, interview_id = $2
		WHERE id = $3`,
		domain.InvitationStatusAccepted, interview.ID, invitationID,
	)
	if err != nil {
		return fmt.Errorf("failed to accept invitation: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeclineInvitation помечает приглашение отклоненным.
func (r *InterviewRepository) DeclineInvitation(ctx context.Context, invitationID int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE interview_invitations
		SET status = $1
		WHERE id = $2`,
		domain.InvitationStatusDeclined, invitationID,
	)
	if err != nil {
		return fmt.Errorf("failed to decline invitation: %w", err)
	}
	return nil
}

// ExpireOverdue переводит просроченные открытые приглашения в expired.
func (r *InterviewRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE interview_invitations
		SET status = $1
		WHERE status = $2 AND expired_at <= $3`,
		domain.InvitationStatusExpired, domain.InvitationStatusCreated, now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire invitations: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}

// GetInterview возвращает интервью по ID.
func (r *InterviewRepository) GetInterview(ctx context.Context, interviewID int64) (*domain.Interview, error) {
	interview := &domain.Interview{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, applicant_id, status, date
		FROM interviews
		WHERE id = $1`,
		interviewID,
	).Scan(&interview.ID, &interview.ApplicantID, &interview.Status, &interview.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInterviewNotFound
		}
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}

	return interview, nil
}
