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

func openInvitation(streamIDs ...int64) *domain.InterviewInvitation {
	return &domain.InterviewInvitation{
		ID:          1,
		ApplicantID: 42,
		SecretToken: "c2a1f7e0-0000-0000-0000-000000000001",
		ExpiredAt:   time.Now().Add(24 * time.Hour),
		Status:      domain.InvitationStatusCreated,
		StreamIDs:   streamIDs,
	}
}

func TestInvitationUseCase_CreateInvitation_Success(t *testing.T) {
	ctx := context.Background()
	interviewRepo := &mocks.InterviewRepository{}
	streamRepo := &mocks.StreamRepository{}
	applicantRepo := &mocks.ApplicantRepository{}
	uc := usecase.NewInvitationUseCase(interviewRepo, streamRepo, applicantRepo)

	applicantRepo.On("GetByID", ctx, int64(42)).Return(&domain.Applicant{ID: 42}, nil)
	streamRepo.On("GetByID", ctx, int64(5)).Return(&domain.InterviewStream{ID: 5}, nil)
	streamRepo.On("GetByID", ctx, int64(6)).Return(&domain.InterviewStream{ID: 6}, nil)
	interviewRepo.On("CreateInvitation", ctx, mock.AnythingOfType("*domain.InterviewInvitation")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.InterviewInvitation).ID = 9
		}).
		Return(nil)

	invitation, err := uc.CreateInvitation(ctx, 42, []int64{5, 6}, 72*time.Hour)

	assert.NoError(t, err)
	assert.Equal(t, int64(9), invitation.ID)
	assert.Equal(t, domain.InvitationStatusCreated, invitation.Status)
	assert.NotEmpty(t, invitation.SecretToken)
	assert.True(t, invitation.ExpiredAt.After(time.Now()))
	interviewRepo.AssertExpectations(t)
}

func TestInvitationUseCase_CreateInvitation_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	interviewRepo := &mocks.InterviewRepository{}
	streamRepo := &mocks.StreamRepository{}
	applicantRepo := &mocks.ApplicantRepository{}
	uc := usecase.NewInvitationUseCase(interviewRepo, streamRepo, applicantRepo)

	testCases := []struct {
		name        string
		applicantID int64
		streamIDs   []int64
		expected    error
	}{
		{"Zero applicant", 0, []int64{5}, domain.ErrInvalidApplicantID},
		{"No streams", 42, nil, domain.ErrInvalidStreamList},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			invitation, err := uc.CreateInvitation(ctx, tc.applicantID, tc.streamIDs, time.Hour)
			assert.ErrorIs(t, err, tc.expected)
			assert.Nil(t, invitation)
		})
	}
}

func TestInvitationUseCase_Accept_Success(t *testing.T) {
	ctx := context.Background()
	interviewRepo := &mocks.InterviewRepository{}
	streamRepo := &mocks.StreamRepository{}
	applicantRepo := &mocks.ApplicantRepository{}
	uc := usecase.NewInvitationUseCase(interviewRepo, streamRepo, applicantRepo)

	invitation := openInvitation(5)
	slotStart := time.Date(2026, 2, 14, 13, 30, 0, 0, time.UTC)
	slot := &domain.InterviewSlot{ID: 100, StreamID: 5, StartsAt: slotStart, EndsAt: slotStart.Add(30 * time.Minute)}

	interviewRepo.On("GetInvitationByToken", ctx, invitation.SecretToken).Return(invitation, nil)
	streamRepo.On("GetSlot", ctx, int64(100)).Return(slot, nil)
	interviewRepo.On("AcceptInvitation", ctx, int64(1), int64(100), mock.AnythingOfType("*domain.Interview")).
		Run(func(args mock.Arguments) {
			args.Get(3).(*domain.Interview).ID = 77
		}).
		Return(nil)

	interview, err := uc.Accept(ctx, invitation.SecretToken, 100)

	assert.NoError(t, err)
	assert.Equal(t, int64(77), interview.ID)
	assert.Equal(t, int64(42), interview.ApplicantID)
	assert.Equal(t, domain.InterviewStatusApproval, interview.Status)
	assert.True(t, interview.Date.Equal(slotStart))
	interviewRepo.AssertExpectations(t)
}

func TestInvitationUseCase_Accept_SlotOccupied(t *testing.T) {
	ctx := context.Background()
	interviewRepo := &mocks.InterviewRepository{}
	streamRepo := &mocks.StreamRepository{}
	applicantRepo := &mocks.ApplicantRepository{}
	uc := usecase.NewInvitationUseCase(interviewRepo, streamRepo, applicantRepo)

	invitation := openInvitation(5)
	slot := &domain.InterviewSlot{ID: 100, StreamID: 5}

	interviewRepo.On("GetInvitationByToken", ctx, invitation.SecretToken).Return(invitation, nil)
	streamRepo.On("GetSlot", ctx, int64(100)).Return(slot, nil)
	// Проигранная гонка: CAS вернул 0 строк, репозиторий откатил транзакцию.
	interviewRepo.On("AcceptInvitation", ctx, int64(1), int64(100), mock.Anything).
		Return(domain.ErrSlotOccupied)

	interview, err := uc.Accept(ctx, invitation.SecretToken, 100)

	assert.ErrorIs(t, err, domain.ErrSlotOccupied)
	assert.Nil(t, interview)
}

func TestInvitationUseCase_Accept_Expired(t *testing.T) {
	ctx := context.Background()
	interviewRepo := &mocks.InterviewRepository{}
	streamRepo := &mocks.StreamRepository{}
	applicantRepo := &mocks.ApplicantRepository{}
	uc := usecase.NewInvitationUseCase(interviewRepo, streamRepo, applicantRepo)

	invitation := openInvitation(5)
	invitation.ExpiredAt = time.Now().Add(-time.Hour)

	interviewRepo.On("GetInvitationByToken", ctx, invitation.SecretToken).Return(invitation, nil)

	interview, err := uc.Accept(ctx, invitation.SecretToken, 100)

	assert.ErrorIs(t, err, domain.ErrInvitationExpired)
	assert.Nil(t, interview)
	interviewRepo.AssertNotCalled(t, "AcceptInvitation", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestInvitationUseCase_Accept_AlreadyDecided(t *testing.T) {
	ctx := context.Background()
	interviewRepo := &mocks.InterviewRepository{}
	streamRepo := &mocks.StreamRepository{}
	applicantRepo := &mocks.ApplicantRepository{}
	uc := usecase.NewInvitationUseCase(interviewRepo, streamRepo, applicantRepo)

	invitation := openInvitation(5)
	invitation.Status = domain.InvitationStatusAccepted

	interviewRepo.On("GetInvitationByToken", ctx, invitation.SecretToken).Return(invitation, nil)

	interview, err := uc.Accept(ctx, invitation.SecretToken, 100)

	assert.ErrorIs(t, err, domain.ErrInvitationDecided)
	assert.Nil(t, interview)
}

func TestInvitationUseCase_Accept_SlotOutsideInvitation(t *testing.T) {
	ctx := context.Background()
	interviewRepo := &mocks.InterviewRepository{}
	streamRepo := &mocks.StreamRepository{}
	applicantRepo := &mocks.ApplicantRepository{}
	uc := usecase.NewInvitationUseCase(interviewRepo, streamRepo, applicantRepo)

	invitation := openInvitation(5)
	foreignSlot := &domain.InterviewSlot{ID: 100, StreamID: 9}

	interviewRepo.On("GetInvitationByToken", ctx, invitation.SecretToken).Return(invitation, nil)
	streamRepo.On("GetSlot", ctx, int64(100)).Return(foreignSlot, nil)

	interview, err := uc.Accept(ctx, invitation.SecretToken, 100)

	assert.ErrorIs(t, err, domain.ErrSlotOutsideInvitation)
	assert.Nil(t, interview)
}

func TestInvitationUseCase_GetInvitation_FiltersOccupiedSlots(t *testing.T) {
	ctx := context.Background()
	interviewRepo := &mocks.InterviewRepository{}
	streamRepo := &mocks.StreamRepository{}
	applicantRepo := &mocks.ApplicantRepository{}
	uc := usecase.NewInvitationUseCase(interviewRepo, streamRepo, applicantRepo)

	invitation := openInvitation(5)
	taken := int64(77)
	slots := []*domain.InterviewSlot{
		{ID: 100, StreamID: 5},
		{ID: 101, StreamID: 5, InterviewID: &taken},
		{ID: 102, StreamID: 5},
	}

	interviewRepo.On("GetInvitationByToken", ctx, invitation.SecretToken).Return(invitation, nil)
	streamRepo.On("GetSlots", ctx, int64(5)).Return(slots, nil)

	_, free, err := uc.GetInvitation(ctx, invitation.SecretToken)

	assert.NoError(t, err)
	assert.Len(t, free, 2)
	for _, slot := range free {
		assert.False(t, slot.Occupied())
	}
}

func TestInvitationUseCase_GetInvitation_ClosedOffersNoSlots(t *testing.T) {
	ctx := context.Background()
	interviewRepo := &mocks.InterviewRepository{}
	streamRepo := &mocks.StreamRepository{}
	applicantRepo := &mocks.ApplicantRepository{}
	uc := usecase.NewInvitationUseCase(interviewRepo, streamRepo, applicantRepo)

	invitation := openInvitation(5)
	invitation.Status = domain.InvitationStatusDeclined

	interviewRepo.On("GetInvitationByToken", ctx, invitation.SecretToken).Return(invitation, nil)

	got, free, err := uc.GetInvitation(ctx, invitation.SecretToken)

	assert.NoError(t, err)
	assert.Equal(t, domain.InvitationStatusDeclined, got.Status)
	assert.Empty(t, free)
	streamRepo.AssertNotCalled(t, "GetSlots", mock.Anything, mock.Anything)
}

func TestInvitationUseCase_Decline(t *testing.T) {
	ctx := context.Background()
	interviewRepo := &mocks.InterviewRepository{}
	streamRepo := &mocks.StreamRepository{}
	applicantRepo := &mocks.ApplicantRepository{}
	uc := usecase.NewInvitationUseCase(interviewRepo, streamRepo, applicantRepo)

	invitation := openInvitation(5)
	interviewRepo.On("GetInvitationByToken", ctx, invitation.SecretToken).Return(invitation, nil)
	interviewRepo.On("DeclineInvitation", ctx, int64(1)).Return(nil)

	err := uc.Decline(ctx, invitation.SecretToken)

	assert.NoError(t, err)
	interviewRepo.AssertExpectations(t)
}
