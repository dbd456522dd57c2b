// Package mocks содержит testify-моки доменных контрактов для unit-тестов.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"admission-service/internal/domain"
)

type StreamRepository struct {
	mock.Mock
}

func (m *StreamRepository) CreateWithSlots(ctx context.Context, stream *domain.InterviewStream, slots []domain.InterviewSlot) error {
	args := m.Called(ctx, stream, slots)
	return args.Error(0)
}

func (m *StreamRepository) GetByID(ctx context.Context, streamID int64) (*domain.InterviewStream, error) {
	args := m.Called(ctx, streamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewStream), args.Error(1)
}

func (m *StreamRepository) GetSlots(ctx context.Context, streamID int64) ([]*domain.InterviewSlot, error) {
	args := m.Called(ctx, streamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.InterviewSlot), args.Error(1)
}

func (m *StreamRepository) GetSlot(ctx context.Context, slotID int64) (*domain.InterviewSlot, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewSlot), args.Error(1)
}

func (m *StreamRepository) LockSlot(ctx context.Context, slotID, interviewID int64) (int64, error) {
	args := m.Called(ctx, slotID, interviewID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *StreamRepository) RecomputeOccupancy(ctx context.Context, streamID int64) (*domain.InterviewStream, error) {
	args := m.Called(ctx, streamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewStream), args.Error(1)
}

type InterviewRepository struct {
	mock.Mock
}

func (m *InterviewRepository) CreateInvitation(ctx context.Context, invitation *domain.InterviewInvitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *InterviewRepository) GetInvitationByToken(ctx context.Context, token string) (*domain.InterviewInvitation, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InterviewInvitation), args.Error(1)
}

func (m *InterviewRepository) AcceptInvitation(ctx context.Context, invitationID, slotID int64, interview *domain.Interview) error {
	args := m.Called(ctx, invitationID, slotID, interview)
	return args.Error(0)
}

func (m *InterviewRepository) DeclineInvitation(ctx context.Context, invitationID int64) error {
	args := m.Called(ctx, invitationID)
	return args.Error(0)
}

func (m *InterviewRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *InterviewRepository) GetInterview(ctx context.Context, interviewID int64) (*domain.Interview, error) {
	args := m.Called(ctx, interviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interview), args.Error(1)
}

type ApplicantRepository struct {
	mock.Mock
}

func (m *ApplicantRepository) Create(ctx context.Context, applicant *domain.Applicant) error {
	args := m.Called(ctx, applicant)
	return args.Error(0)
}

func (m *ApplicantRepository) GetByID(ctx context.Context, applicantID int64) (*domain.Applicant, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Applicant), args.Error(1)
}

func (m *ApplicantRepository) ExistsByLogin(ctx context.Context, campaignID int64, yandexLogin string) (bool, error) {
	args := m.Called(ctx, campaignID, yandexLogin)
	return args.Bool(0), args.Error(1)
}

type VenueRepository struct {
	mock.Mock
}

func (m *VenueRepository) GetByID(ctx context.Context, venueID int64) (*domain.Venue, error) {
	args := m.Called(ctx, venueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}

type ContestRepository struct {
	mock.Mock
}

func (m *ContestRepository) GetByID(ctx context.Context, id int64) (*domain.Contest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contest), args.Error(1)
}

func (m *ContestRepository) List(ctx context.Context) ([]*domain.Contest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contest), args.Error(1)
}

func (m *ContestRepository) UpdateDetails(ctx context.Context, id int64, details map[string]any) error {
	args := m.Called(ctx, id, details)
	return args.Error(0)
}

type ChallengeRepository struct {
	mock.Mock
}

func (m *ChallengeRepository) Create(ctx context.Context, challenge *domain.Challenge) error {
	args := m.Called(ctx, challenge)
	return args.Error(0)
}

func (m *ChallengeRepository) GetByID(ctx context.Context, id int64) (*domain.Challenge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Challenge), args.Error(1)
}

func (m *ChallengeRepository) ListNew(ctx context.Context, contestID int64, challengeType string) ([]*domain.Challenge, error) {
	args := m.Called(ctx, contestID, challengeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Challenge), args.Error(1)
}

func (m *ChallengeRepository) MarkRegistered(ctx context.Context, id int64, participantID int64, statusCode int) error {
	args := m.Called(ctx, id, participantID, statusCode)
	return args.Error(0)
}

func (m *ChallengeRepository) SetStatusCode(ctx context.Context, id int64, statusCode int) error {
	args := m.Called(ctx, id, statusCode)
	return args.Error(0)
}

func (m *ChallengeRepository) FindParticipantID(ctx context.Context, contestID int64, yandexLogin string) (int64, bool, error) {
	args := m.Called(ctx, contestID, yandexLogin)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *ChallengeRepository) ApplyScore(ctx context.Context, contest *domain.Contest, update *domain.ScoreUpdate) (int64, error) {
	args := m.Called(ctx, contest, update)
	return args.Get(0).(int64), args.Error(1)
}

type StatsRepository struct {
	mock.Mock
}

func (m *StatsRepository) GetOccupancyStats(ctx context.Context) ([]*domain.StreamOccupancy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StreamOccupancy), args.Error(1)
}

type ContestClient struct {
	mock.Mock
}

func (m *ContestClient) RegisterParticipant(ctx context.Context, login string, contestID int64) (int, int64, error) {
	args := m.Called(ctx, login, contestID)
	return args.Int(0), args.Get(1).(int64), args.Error(2)
}

func (m *ContestClient) Standings(ctx context.Context, contestID int64, page, pageSize int) (*domain.StandingsPage, error) {
	args := m.Called(ctx, contestID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StandingsPage), args.Error(1)
}
