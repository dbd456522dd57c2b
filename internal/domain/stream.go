package domain

import (
	"context"
	"time"
)

// InterviewStream представляет блок доступности интервьюеров на дату,
// нарезаемый на слоты фиксированной длительности.
type InterviewStream struct {
	ID                 int64
	CampaignID         int64
	VenueID            int64
	Date               time.Time
	StartsAt           time.Time
	EndsAt             time.Time
	DurationMin        int
	WithAssignments    bool
	SlotsCount         int
	SlotsOccupiedCount int
}

// InterviewSlot представляет один бронируемый интервал потока.
// InterviewID == nil означает свободный слот.
type InterviewSlot struct {
	ID          int64
	StreamID    int64
	StartsAt    time.Time
	EndsAt      time.Time
	InterviewID *int64
}

// Occupied сообщает, привязано ли к слоту интервью.
func (s *InterviewSlot) Occupied() bool {
	return s.InterviewID != nil
}

// StreamOccupancy представляет сводку занятости потока для статистики.
type StreamOccupancy struct {
	StreamID           int64
	Date               time.Time
	VenueName          string
	SlotsCount         int64
	SlotsOccupiedCount int64
}

// StreamRepository определяет контракт для работы с потоками и слотами.
type StreamRepository interface {
	// CreateWithSlots создает поток и его слоты одной транзакцией,
	// после вставки пересчитывает slots_count по фактическим строкам.
	CreateWithSlots(ctx context.Context, stream *InterviewStream, slots []InterviewSlot) error
	GetByID(ctx context.Context, streamID int64) (*InterviewStream, error)
	GetSlots(ctx context.Context, streamID int64) ([]*InterviewSlot, error)
	GetSlot(ctx context.Context, slotID int64) (*InterviewSlot, error)
	// LockSlot выполняет атомарный условный UPDATE: занять слот, только если он свободен.
	// Возвращает число затронутых строк: 1 — гонка выиграна, 0 — слот уже занят.
	LockSlot(ctx context.Context, slotID, interviewID int64) (int64, error)
	// RecomputeOccupancy пересчитывает счетчики слотов агрегатами по таблице,
	// не доверяя инкрементально поддерживаемым значениям.
	RecomputeOccupancy(ctx context.Context, streamID int64) (*InterviewStream, error)
}

// StatsRepository определяет контракт для работы со статистикой занятости.
type StatsRepository interface {
	GetOccupancyStats(ctx context.Context) ([]*StreamOccupancy, error)
}
