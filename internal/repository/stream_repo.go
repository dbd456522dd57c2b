package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"admission-service/internal/domain"
)

// StreamRepository реализует взаимодействие с потоками и слотами в PostgreSQL.
type StreamRepository struct {
	db *sql.DB
}

// NewStreamRepository создает новый экземпляр StreamRepository.
func NewStreamRepository(db *sql.DB) domain.StreamRepository {
	return &StreamRepository{db: db}
}

// CreateWithSlots создает поток и слоты одной транзакцией.
// slots_count после вставки пересчитывается по фактическим строкам таблицы,
// а не по длине переданного среза.
func (r *StreamRepository) CreateWithSlots(ctx context.Context, stream *domain.InterviewStream, slots []domain.InterviewSlot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// 1. Создаем поток
	err = tx.QueryRowContext(ctx, `
		INSERT INTO interview_streams
			(campaign_id, venue_id, date, starts_at, ends_at, duration_min, with_assignments)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		stream.CampaignID, stream.VenueID, stream.Date,
		stream.StartsAt, stream.EndsAt, stream.DurationMin, stream.WithAssignments,
	).Scan(&stream.ID)
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	// 2. Вставляем слоты одним bulk insert
	if len(slots) > 0 {
		args := make([]any, 0, len(slots)*3)
		placeholders := make([]string, 0, len(slots))
		for i, slot := range slots {
			placeholders = append(placeholders,
				fmt.Sprintf("($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3))
			args = append(args, stream.ID, slot.StartsAt, slot.EndsAt)
		}
		query := "INSERT INTO interview_slots (stream_id, starts_at, ends_at) VALUES " +
			strings.Join(placeholders, ", ")
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert slots: %w", err)
		}
	}

	// 3. Пересчитываем slots_count по таблице
	err = tx.QueryRowContext(ctx, `
		UPDATE interview_streams
		SET slots_count = (SELECT COUNT(*) FROM interview_slots WHERE stream_id = $1)
		WHERE id = $1
		RETURNING slots_count`,
		stream.ID,
	).Scan(&stream.SlotsCount)
	if err != nil {
		return fmt.Errorf("failed to recount slots: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByID возвращает поток по ID.
func (r *StreamRepository) GetByID(ctx context.Context, streamID int64) (*domain.InterviewStream, error) {
	stream := &domain.InterviewStream{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, campaign_id, venue_id, date, starts_at, ends_at,
		       duration_min, with_assignments, slots_count, slots_occupied_count
		FROM interview_streams
		WHERE id = $1`,
		streamID,
	).Scan(&stream.ID, &stream.CampaignID, &stream.VenueID, &stream.Date,
		&stream.StartsAt, &stream.EndsAt, &stream.DurationMin,
		&stream.WithAssignments, &stream.SlotsCount, &stream.SlotsOccupiedCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStreamNotFound
		}
		return nil, fmt.Errorf("failed to get stream: %w", err)
	}

	return stream, nil
}

// GetSlots возвращает слоты потока в порядке начала.
func (r *StreamRepository) GetSlots(ctx context.Context, streamID int64) ([]*domain.InterviewSlot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, stream_id, starts_at, ends_at, interview_id
		FROM interview_slots
		WHERE stream_id = $1
		ORDER BY starts_at`,
		streamID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get slots: %w", err)
	}
	defer rows.Close()

	slots := make([]*domain.InterviewSlot, 0)
	for rows.Next() {
		slot := &domain.InterviewSlot{}
		var interviewID sql.NullInt64
		if err := rows.Scan(&slot.ID, &slot.StreamID, &slot.StartsAt, &slot.EndsAt, &interviewID); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		if interviewID.Valid {
			slot.InterviewID = &interviewID.Int64
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

// GetSlot возвращает слот по ID.
func (r *StreamRepository) GetSlot(ctx context.Context, slotID int64) (*domain.InterviewSlot, error) {
	slot := &domain.InterviewSlot{}
	var interviewID sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, stream_id, starts_at, ends_at, interview_id
		FROM interview_slots
		WHERE id = $1`,
		slotID,
	).Scan(&slot.ID, &slot.StreamID, &slot.StartsAt, &slot.EndsAt, &interviewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	if interviewID.Valid {
		slot.InterviewID = &interviewID.Int64
	}

	return slot, nil
}

// LockSlot занимает слот атомарным условным UPDATE без чтения-перед-записью.
// При конкурирующих вызовах ровно один получает 1 строку, остальные — 0.
func (r *StreamRepository) LockSlot(ctx context.Context, slotID, interviewID int64) (int64, error) {
	return lockSlot(ctx, r.db, slotID, interviewID)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// lockSlot — единственная конкурентно-критичная операция подсистемы.
// Выполняется и вне транзакции (LockSlot), и внутри (AcceptInvitation).
func lockSlot(ctx context.Context, ex execer, slotID, interviewID int64) (int64, error) {
	res, err := ex.ExecContext(ctx, `
		UPDATE interview_slots
		SET interview_id = $1
		WHERE id = $2 AND interview_id IS NULL`,
		interviewID, slotID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to lock slot: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}

// RecomputeOccupancy пересчитывает счетчики агрегатами по таблице слотов.
// Прямые правки в админке и каскадные удаления тихо рассинхронизируют
// инкрементальный счетчик, поэтому ему не доверяем.
func (r *StreamRepository) RecomputeOccupancy(ctx context.Context, streamID int64) (*domain.InterviewStream, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE interview_streams
		SET slots_count = (
		        SELECT COUNT(*) FROM interview_slots WHERE stream_id = $1),
		    slots_occupied_count = (
		        SELECT COUNT(interview_id) FROM interview_slots WHERE stream_id = $1)
		WHERE id = $1`,
		streamID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute occupancy: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrStreamNotFound
	}

	return r.GetByID(ctx, streamID)
}
