package repository

import (
	"context"
	"database/sql"
	"fmt"

	"admission-service/internal/domain"
)

// StatsRepository реализует domain.StatsRepository для статистики занятости.
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository создает новый экземпляр StatsRepository.
func NewStatsRepository(db *sql.DB) domain.StatsRepository {
	return &StatsRepository{db: db}
}

// GetOccupancyStats возвращает занятость слотов по потокам.
// Счет ведется агрегатами по таблице слотов, а не по полям потока.
func (r *StatsRepository) GetOccupancyStats(ctx context.Context) ([]*domain.StreamOccupancy, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.date, v.name,
		       COUNT(sl.id) AS slots_count,
		       COUNT(sl.interview_id) AS slots_occupied_count
		FROM interview_streams s
		JOIN venues v ON v.id = s.venue_id
		LEFT JOIN interview_slots sl ON sl.stream_id = s.id
		GROUP BY s.id, s.date, v.name
		ORDER BY s.date, s.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get occupancy stats: %w", err)
	}
	defer rows.Close()

	stats := make([]*domain.StreamOccupancy, 0)
	for rows.Next() {
		stat := &domain.StreamOccupancy{}
		if err := rows.Scan(&stat.StreamID, &stat.Date, &stat.VenueName,
			&stat.SlotsCount, &stat.SlotsOccupiedCount); err != nil {
			return nil, fmt.Errorf("failed to scan occupancy stat: %w", err)
		}
		stats = append(stats, stat)
	}

	return stats, rows.Err()
}
