package usecase

import (
	"context"

	"admission-service/internal/domain"
)

// StatsUseCase реализует бизнес-логику статистики занятости.
type StatsUseCase struct {
	statsRepo domain.StatsRepository
}

// NewStatsUseCase создает новый экземпляр StatsUseCase.
func NewStatsUseCase(statsRepo domain.StatsRepository) domain.StatsUseCase {
	return &StatsUseCase{statsRepo: statsRepo}
}

// GetOccupancyStats возвращает занятость слотов по потокам.
func (uc *StatsUseCase) GetOccupancyStats(ctx context.Context) ([]*domain.StreamOccupancy, error) {
	return uc.statsRepo.GetOccupancyStats(ctx)
}
