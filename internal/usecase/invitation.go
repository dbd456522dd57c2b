package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"admission-service/internal/domain"
)

// InvitationUseCase реализует бизнес-логику приглашений на собеседование.
type InvitationUseCase struct {
	interviewRepo domain.InterviewRepository
	streamRepo    domain.StreamRepository
	applicantRepo domain.ApplicantRepository
	now           func() time.Time
}

// NewInvitationUseCase создает новый экземпляр InvitationUseCase.
func NewInvitationUseCase(
	interviewRepo domain.InterviewRepository,
	streamRepo domain.StreamRepository,
	applicantRepo domain.ApplicantRepository,
) domain.InvitationUseCase {
	return &InvitationUseCase{
		interviewRepo: interviewRepo,
		streamRepo:    streamRepo,
		applicantRepo: applicantRepo,
		now:           time.Now,
	}
}

// CreateInvitation создает приглашение выбрать слот из потоков-кандидатов.
func (uc *InvitationUseCase) CreateInvitation(ctx context.Context, applicantID int64, streamIDs []int64, ttl time.Duration) (*domain.InterviewInvitation, error) {
	// Валидация входных данных
	if applicantID <= 0 {
		return nil, domain.ErrInvalidApplicantID
	}
	if len(streamIDs) == 0 {
		return nil, domain.ErrInvalidStreamList
	}

	// Проверяем, что абитуриент и все потоки существуют
	if _, err := uc.applicantRepo.GetByID(ctx, applicantID); err != nil {
		return nil, err
	}
	for _, streamID := range streamIDs {
		if _, err := uc.streamRepo.GetByID(ctx, streamID); err != nil {
			return nil, err
		}
	}

	invitation := &domain.InterviewInvitation{
		ApplicantID: applicantID,
		SecretToken: uuid.NewString(),
		ExpiredAt:   uc.now().Add(ttl),
		Status:      domain.InvitationStatusCreated,
		StreamIDs:   streamIDs,
	}

	if err := uc.interviewRepo.CreateInvitation(ctx, invitation); err != nil {
		return nil, err
	}

	return invitation, nil
}

// GetInvitation возвращает приглашение и свободные слоты его потоков.
// Закрытому приглашению слоты не предлагаются.
func (uc *InvitationUseCase) GetInvitation(ctx context.Context, token string) (*domain.InterviewInvitation, []*domain.InterviewSlot, error) {
	invitation, err := uc.interviewRepo.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	free := make([]*domain.InterviewSlot, 0)
	if !invitation.Open(uc.now()) {
		return invitation, free, nil
	}
	for _, streamID := range invitation.StreamIDs {
		slots, err := uc.streamRepo.GetSlots(ctx, streamID)
		if err != nil {
			return nil, nil, err
		}
		for _, slot := range slots {
			if !slot.Occupied() {
				free = append(free, slot)
			}
		}
	}

	return invitation, free, nil
}

// Accept создает интервью и занимает выбранный слот.
// Ноль строк от CAS — проигранная гонка, а не сбой: возвращается
// ErrSlotOccupied, и абитуриенту предлагаются оставшиеся слоты.
func (uc *InvitationUseCase) Accept(ctx context.Context, token string, slotID int64) (*domain.Interview, error) {
	invitation, err := uc.interviewRepo.GetInvitationByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	// 1. Приглашение должно быть открыто
	if invitation.Status != domain.InvitationStatusCreated {
		return nil, domain.ErrInvitationDecided
	}
	if !uc.now().Before(invitation.ExpiredAt) {
		return nil, domain.ErrInvitationExpired
	}

	// 2. Слот должен принадлежать одному из приглашенных потоков
	slot, err := uc.streamRepo.GetSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if !containsID(invitation.StreamIDs, slot.StreamID) {
		return nil, domain.ErrSlotOutsideInvitation
	}

	// 3. Интервью и захват слота — одна транзакция
	interview := &domain.Interview{
		ApplicantID: invitation.ApplicantID,
		Status:      domain.InterviewStatusApproval,
		Date:        slot.StartsAt,
	}
	if err := uc.interviewRepo.AcceptInvitation(ctx, invitation.ID, slotID, interview); err != nil {
		return nil, err
	}

	return interview, nil
}

// Decline помечает приглашение отклоненным.
func (uc *InvitationUseCase) Decline(ctx context.Context, token string) error {
	invitation, err := uc.interviewRepo.GetInvitationByToken(ctx, token)
	if err != nil {
		return err
	}

	if invitation.Status != domain.InvitationStatusCreated {
		return domain.ErrInvitationDecided
	}

	return uc.interviewRepo.DeclineInvitation(ctx, invitation.ID)
}

// ExpireOverdue переводит просроченные открытые приглашения в expired.
func (uc *InvitationUseCase) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	return uc.interviewRepo.ExpireOverdue(ctx, now)
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
