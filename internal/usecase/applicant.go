package usecase

import (
	"context"

	"admission-service/internal/domain"
)

// ApplicantUseCase реализует бизнес-логику абитуриентов.
type ApplicantUseCase struct {
	applicantRepo domain.ApplicantRepository
	challengeRepo domain.ChallengeRepository
}

// NewApplicantUseCase создает новый экземпляр ApplicantUseCase.
func NewApplicantUseCase(applicantRepo domain.ApplicantRepository, challengeRepo domain.ChallengeRepository) domain.ApplicantUseCase {
	return &ApplicantUseCase{
		applicantRepo: applicantRepo,
		challengeRepo: challengeRepo,
	}
}

// CreateApplicant создает абитуриента и запись тестирования в статусе new.
// Запись экзамена появляется позже, когда определена допущенность.
func (uc *ApplicantUseCase) CreateApplicant(ctx context.Context, applicant *domain.Applicant, testingContestID int64) (*domain.Applicant, error) {
	exists, err := uc.applicantRepo.ExistsByLogin(ctx, applicant.CampaignID, applicant.YandexLogin)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrApplicantAlreadyExists
	}

	if err := uc.applicantRepo.Create(ctx, applicant); err != nil {
		return nil, err
	}

	challenge := &domain.Challenge{
		ApplicantID: applicant.ID,
		Type:        domain.ContestTypeTesting,
		ContestID:   testingContestID,
		Status:      domain.ChallengeStatusNew,
	}
	if err := uc.challengeRepo.Create(ctx, challenge); err != nil {
		return nil, err
	}

	return applicant, nil
}
