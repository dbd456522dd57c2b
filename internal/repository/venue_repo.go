package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"admission-service/internal/domain"
)

// VenueRepository реализует взаимодействие с площадками в PostgreSQL.
type VenueRepository struct {
	db *sql.DB
}

// NewVenueRepository создает новый экземпляр VenueRepository.
func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &VenueRepository{db: db}
}

// GetByID возвращает площадку по ID.
func (r *VenueRepository) GetByID(ctx context.Context, venueID int64) (*domain.Venue, error) {
	venue := &domain.Venue{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, city, time_zone
		FROM venues
		WHERE id = $1`,
		venueID,
	).Scan(&venue.ID, &venue.Name, &venue.City, &venue.TimeZone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	return venue, nil
}
