package usecase_test

import (
	"context"
	"testing"
	"time"

	"admission-service/internal/domain"
	"admission-service/internal/mocks"
	"admission-service/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func msk(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestStreamUseCase_CreateStream_Success(t *testing.T) {
	// Setup
	ctx := context.Background()
	streamRepo := &mocks.StreamRepository{}
	venueRepo := &mocks.VenueRepository{}
	uc := usecase.NewStreamUseCase(streamRepo, venueRepo)

	venue := &domain.Venue{ID: 1, Name: "Офис", City: "Москва", TimeZone: "Europe/Moscow"}
	venueRepo.On("GetByID", ctx, int64(1)).Return(venue, nil)

	var savedSlots []domain.InterviewSlot
	streamRepo.On("CreateWithSlots", ctx, mock.AnythingOfType("*domain.InterviewStream"), mock.Anything).
		Run(func(args mock.Arguments) {
			stream := args.Get(1).(*domain.InterviewStream)
			stream.ID = 10
			savedSlots = args.Get(2).([]domain.InterviewSlot)
			stream.SlotsCount = len(savedSlots)
		}).
		Return(nil)

	// Execute: окно 13:00-15:00, слот 30 минут
	stream, err := uc.CreateStream(ctx, &domain.NewStream{
		CampaignID:  7,
		VenueID:     1,
		Date:        "2026-02-14",
		StartTime:   "13:00",
		EndTime:     "15:00",
		DurationMin: 30,
	})

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, stream)
	assert.Equal(t, int64(10), stream.ID)
	assert.Equal(t, 4, stream.SlotsCount)
	assert.Len(t, savedSlots, 4)

	loc := msk(t)
	expected := []string{"13:00", "13:30", "14:00", "14:30"}
	for i, slot := range savedSlots {
		assert.Equal(t, expected[i], slot.StartsAt.In(loc).Format("15:04"))
		assert.Equal(t, 30*time.Minute, slot.EndsAt.Sub(slot.StartsAt))
	}

	venueRepo.AssertExpectations(t)
	streamRepo.AssertExpectations(t)
}

func TestStreamUseCase_CreateStream_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	streamRepo := &mocks.StreamRepository{}
	venueRepo := &mocks.VenueRepository{}
	uc := usecase.NewStreamUseCase(streamRepo, venueRepo)

	venue := &domain.Venue{ID: 1, TimeZone: "Europe/Moscow"}
	venueRepo.On("GetByID", ctx, int64(1)).Return(venue, nil)

	testCases := []struct {
		name     string
		start    string
		end      string
		duration int
		expected error
	}{
		{"Duration below minimum", "13:00", "15:00", 5, domain.ErrInvalidSlotDuration},
		{"Window shorter than slot", "13:00", "13:20", 30, domain.ErrStreamTooShort},
		{"Zero-length window", "13:00", "13:00", 30, domain.ErrStreamTooShort},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stream, err := uc.CreateStream(ctx, &domain.NewStream{
				VenueID:     1,
				Date:        "2026-02-14",
				StartTime:   tc.start,
				EndTime:     tc.end,
				DurationMin: tc.duration,
			})
			assert.ErrorIs(t, err, tc.expected)
			assert.Nil(t, stream)
		})
	}

	streamRepo.AssertNotCalled(t, "CreateWithSlots", mock.Anything, mock.Anything, mock.Anything)
}

func TestStreamUseCase_CreateStream_VenueNotFound(t *testing.T) {
	ctx := context.Background()
	streamRepo := &mocks.StreamRepository{}
	venueRepo := &mocks.VenueRepository{}
	uc := usecase.NewStreamUseCase(streamRepo, venueRepo)

	venueRepo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrVenueNotFound)

	stream, err := uc.CreateStream(ctx, &domain.NewStream{
		VenueID:     99,
		Date:        "2026-02-14",
		StartTime:   "13:00",
		EndTime:     "15:00",
		DurationMin: 30,
	})

	assert.ErrorIs(t, err, domain.ErrVenueNotFound)
	assert.Nil(t, stream)
}

func TestExpandSlots_DropsTrailingPartial(t *testing.T) {
	loc := msk(t)
	startsAt := time.Date(2026, 2, 14, 13, 0, 0, 0, loc)

	// Окно 13:00-14:10, слот 30 минут: хвост в 10 минут отбрасывается.
	stream := &domain.InterviewStream{
		StartsAt:    startsAt,
		EndsAt:      time.Date(2026, 2, 14, 14, 10, 0, 0, loc),
		DurationMin: 30,
	}

	slots := usecase.ExpandSlots(stream)

	assert.Len(t, slots, 2)
	assert.Equal(t, "13:00", slots[0].StartsAt.In(loc).Format("15:04"))
	assert.Equal(t, "13:30", slots[0].EndsAt.In(loc).Format("15:04"))
	assert.Equal(t, "13:30", slots[1].StartsAt.In(loc).Format("15:04"))
	assert.Equal(t, "14:00", slots[1].EndsAt.In(loc).Format("15:04"))
}

func TestExpandSlots_ContiguousNonOverlapping(t *testing.T) {
	loc := msk(t)
	stream := &domain.InterviewStream{
		StartsAt:    time.Date(2026, 2, 14, 10, 0, 0, 0, loc),
		EndsAt:      time.Date(2026, 2, 14, 18, 0, 0, 0, loc),
		DurationMin: 45,
	}

	slots := usecase.ExpandSlots(stream)

	// floor(480/45) = 10 слотов
	assert.Len(t, slots, 10)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i].StartsAt.Equal(slots[i-1].EndsAt),
			"slot %d must start where slot %d ends", i, i-1)
	}
	last := slots[len(slots)-1]
	assert.False(t, last.EndsAt.After(stream.EndsAt))
}

func TestExpandSlots_ExactFit(t *testing.T) {
	loc := msk(t)
	stream := &domain.InterviewStream{
		StartsAt:    time.Date(2026, 2, 14, 13, 0, 0, 0, loc),
		EndsAt:      time.Date(2026, 2, 14, 14, 0, 0, 0, loc),
		DurationMin: 30,
	}

	slots := usecase.ExpandSlots(stream)

	assert.Len(t, slots, 2)
	assert.True(t, slots[1].EndsAt.Equal(stream.EndsAt))
}

func TestStreamUseCase_RecomputeOccupancy(t *testing.T) {
	ctx := context.Background()
	streamRepo := &mocks.StreamRepository{}
	venueRepo := &mocks.VenueRepository{}
	uc := usecase.NewStreamUseCase(streamRepo, venueRepo)

	recomputed := &domain.InterviewStream{ID: 10, SlotsCount: 4, SlotsOccupiedCount: 2}
	streamRepo.On("RecomputeOccupancy", ctx, int64(10)).Return(recomputed, nil)

	stream, err := uc.RecomputeOccupancy(ctx, 10)

	assert.NoError(t, err)
	assert.Equal(t, 4, stream.SlotsCount)
	assert.Equal(t, 2, stream.SlotsOccupiedCount)
	streamRepo.AssertExpectations(t)
}
