package usecase

import (
	"context"
	"fmt"
	"time"

	"admission-service/internal/domain"
)

// MinSlotDuration — минимальная длительность слота в минутах.
const MinSlotDuration = 10

// StreamUseCase реализует бизнес-логику потоков собеседований и их слотов.
type StreamUseCase struct {
	streamRepo domain.StreamRepository
	venueRepo  domain.VenueRepository
}

// NewStreamUseCase создает новый экземпляр StreamUseCase.
func NewStreamUseCase(streamRepo domain.StreamRepository, venueRepo domain.VenueRepository) domain.StreamUseCase {
	return &StreamUseCase{
		streamRepo: streamRepo,
		venueRepo:  venueRepo,
	}
}

// CreateStream создает поток и нарезает его окно на слоты.
func (uc *StreamUseCase) CreateStream(ctx context.Context, req *domain.NewStream) (*domain.InterviewStream, error) {
	// Валидация входных данных
	if req.DurationMin < MinSlotDuration {
		return nil, domain.ErrInvalidSlotDuration
	}

	// 1. Площадка дает часовой пояс окна
	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(venue.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load venue time zone %q: %w", venue.TimeZone, err)
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}
	startsAt, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.StartTime, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start time: %w", err)
	}
	endsAt, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.EndTime, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse end time: %w", err)
	}

	duration := time.Duration(req.DurationMin) * time.Minute

	// 2. Окно должно вмещать хотя бы один слот
	if endsAt.Sub(startsAt) < duration {
		return nil, domain.ErrStreamTooShort
	}

	stream := &domain.InterviewStream{
		CampaignID:      req.CampaignID,
		VenueID:         req.VenueID,
		Date:            date,
		StartsAt:        startsAt,
		EndsAt:          endsAt,
		DurationMin:     req.DurationMin,
		WithAssignments: req.WithAssignments,
	}

	// 3. Нарезаем окно и сохраняем одной транзакцией
	slots := ExpandSlots(stream)
	if err := uc.streamRepo.CreateWithSlots(ctx, stream, slots); err != nil {
		return nil, err
	}

	return stream, nil
}

// ExpandSlots нарезает окно потока на непрерывные слоты длиной duration.
// Получается floor(W/D) слотов; неполный хвост окна отбрасывается.
func ExpandSlots(stream *domain.InterviewStream) []domain.InterviewSlot {
	duration := time.Duration(stream.DurationMin) * time.Minute

	slots := make([]domain.InterviewSlot, 0)
	for cursor := stream.StartsAt; !cursor.Add(duration).After(stream.EndsAt); cursor = cursor.Add(duration) {
		slots = append(slots, domain.InterviewSlot{
			StartsAt: cursor,
			EndsAt:   cursor.Add(duration),
		})
	}

	return slots
}

// GetStream возвращает поток и его слоты.
func (uc *StreamUseCase) GetStream(ctx context.Context, streamID int64) (*domain.InterviewStream, []*domain.InterviewSlot, error) {
	stream, err := uc.streamRepo.GetByID(ctx, streamID)
	if err != nil {
		return nil, nil, err
	}

	slots, err := uc.streamRepo.GetSlots(ctx, streamID)
	if err != nil {
		return nil, nil, err
	}

	return stream, slots, nil
}

// RecomputeOccupancy пересчитывает счетчики слотов потока по таблице.
func (uc *StreamUseCase) RecomputeOccupancy(ctx context.Context, streamID int64) (*domain.InterviewStream, error) {
	return uc.streamRepo.RecomputeOccupancy(ctx, streamID)
}
