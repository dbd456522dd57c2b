package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"admission-service/internal/domain"
	"admission-service/internal/mocks"
	"admission-service/internal/usecase"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newChallenge() *domain.Challenge {
	return &domain.Challenge{
		ID:          1,
		ApplicantID: 42,
		Type:        domain.ContestTypeTesting,
		ContestID:   3000,
		Status:      domain.ChallengeStatusNew,
		YandexLogin: "ivanov",
		CampaignID:  7,
	}
}

func TestContestSync_Register_Created(t *testing.T) {
	ctx := context.Background()
	challengeRepo := &mocks.ChallengeRepository{}
	contestRepo := &mocks.ContestRepository{}
	client := &mocks.ContestClient{}
	uc := usecase.NewContestSyncUseCase(challengeRepo, contestRepo, client, testLogger())

	challenge := newChallenge()
	client.On("RegisterParticipant", ctx, "ivanov", int64(3000)).Return(201, int64(555), nil)
	challengeRepo.On("MarkRegistered", ctx, int64(1), int64(555), 201).Return(nil)

	err := uc.Register(ctx, challenge)

	assert.NoError(t, err)
	assert.Equal(t, domain.ChallengeStatusRegistered, challenge.Status)
	assert.NotNil(t, challenge.ParticipantID)
	assert.Equal(t, int64(555), *challenge.ParticipantID)
	client.AssertExpectations(t)
	challengeRepo.AssertExpectations(t)
}

func TestContestSync_Register_ConflictBackfillsParticipantID(t *testing.T) {
	ctx := context.Background()
	challengeRepo := &mocks.ChallengeRepository{}
	contestRepo := &mocks.ContestRepository{}
	client := &mocks.ContestClient{}
	uc := usecase.NewContestSyncUseCase(challengeRepo, contestRepo, client, testLogger())

	challenge := newChallenge()
	// Предыдущая попытка оборвалась по таймауту после приема на удаленной
	// стороне: participant id добирается из другой локальной записи,
	// без второго вызова API.
	client.On("RegisterParticipant", ctx, "ivanov", int64(3000)).Return(409, int64(0), nil).Once()
	challengeRepo.On("FindParticipantID", ctx, int64(3000), "ivanov").Return(int64(777), true, nil)
	challengeRepo.On("MarkRegistered", ctx, int64(1), int64(777), 409).Return(nil)

	err := uc.Register(ctx, challenge)

	assert.NoError(t, err)
	assert.Equal(t, domain.ChallengeStatusRegistered, challenge.Status)
	assert.Equal(t, int64(777), *challenge.ParticipantID)
	client.AssertNumberOfCalls(t, "RegisterParticipant", 1)
	challengeRepo.AssertExpectations(t)
}

func TestContestSync_Register_ConflictWithoutKnownID(t *testing.T) {
	ctx := context.Background()
	challengeRepo := &mocks.ChallengeRepository{}
	contestRepo := &mocks.ContestRepository{}
	client := &mocks.ContestClient{}
	uc := usecase.NewContestSyncUseCase(challengeRepo, contestRepo, client, testLogger())

	challenge := newChallenge()
	client.On("RegisterParticipant", ctx, "ivanov", int64(3000)).Return(409, int64(0), nil)
	challengeRepo.On("FindParticipantID", ctx, int64(3000), "ivanov").Return(int64(0), false, nil)
	challengeRepo.On("SetStatusCode", ctx, int64(1), 409).Return(nil)

	err := uc.Register(ctx, challenge)

	assert.NoError(t, err)
	// Статус остается new до следующего прогона.
	assert.Equal(t, domain.ChallengeStatusNew, challenge.Status)
	challengeRepo.AssertNotCalled(t, "MarkRegistered", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestContestSync_Register_APIErrorPropagatesUnchanged(t *testing.T) {
	ctx := context.Background()
	challengeRepo := &mocks.ChallengeRepository{}
	contestRepo := &mocks.ContestRepository{}
	client := &mocks.ContestClient{}
	uc := usecase.NewContestSyncUseCase(challengeRepo, contestRepo, client, testLogger())

	apiErr := errors.New("contest api: status 503: unavailable")
	client.On("RegisterParticipant", ctx, "ivanov", int64(3000)).Return(0, int64(0), apiErr)

	err := uc.Register(ctx, newChallenge())

	assert.Same(t, apiErr, err)
	challengeRepo.AssertNotCalled(t, "MarkRegistered", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestContestSync_RegisterAll_ContinuesAfterFailures(t *testing.T) {
	ctx := context.Background()
	challengeRepo := &mocks.ChallengeRepository{}
	contestRepo := &mocks.ContestRepository{}
	client := &mocks.ContestClient{}
	uc := usecase.NewContestSyncUseCase(challengeRepo, contestRepo, client, testLogger())

	contest := &domain.Contest{ID: 2, CampaignID: 7, Type: domain.ContestTypeTesting, ContestID: 3000}
	first := newChallenge()
	second := newChallenge()
	second.ID = 2
	second.YandexLogin = "petrov"

	contestRepo.On("GetByID", ctx, int64(2)).Return(contest, nil)
	challengeRepo.On("ListNew", ctx, int64(3000), domain.ContestTypeTesting).
		Return([]*domain.Challenge{first, second}, nil)
	client.On("RegisterParticipant", ctx, "ivanov", int64(3000)).Return(0, int64(0), errors.New("timeout"))
	client.On("RegisterParticipant", ctx, "petrov", int64(3000)).Return(201, int64(556), nil)
	challengeRepo.On("MarkRegistered", ctx, int64(2), int64(556), 201).Return(nil)

	results, err := uc.RegisterAll(ctx, 2)

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.False(t, results[0].Registered)
	assert.Error(t, results[0].Err)
	assert.True(t, results[1].Registered)
	assert.Equal(t, int64(556), results[1].ParticipantID)
}

func standingsRows(n, offset int) []domain.StandingsRow {
	rows := make([]domain.StandingsRow, n)
	for i := 0; i < n; i++ {
		rows[i] = domain.StandingsRow{
			Login:         fmt.Sprintf("user%d", offset+i),
			ParticipantID: int64(1000 + offset + i),
			Score:         "7,5",
			ProblemScores: []string{"5,0", "2,5"},
		}
	}
	return rows
}

func TestContestSync_ImportScores_TwoPages(t *testing.T) {
	ctx := context.Background()
	challengeRepo := &mocks.ChallengeRepository{}
	contestRepo := &mocks.ContestRepository{}
	client := &mocks.ContestClient{}
	uc := usecase.NewContestSyncUseCase(challengeRepo, contestRepo, client, testLogger())

	contest := &domain.Contest{ID: 2, CampaignID: 7, Type: domain.ContestTypeTesting, ContestID: 3000}

	// 60 строк: полная страница и хвост из 10 — ровно два запроса standings.
	client.On("Standings", ctx, int64(3000), 1, 50).
		Return(&domain.StandingsPage{Titles: []string{"A", "B"}, Rows: standingsRows(50, 0)}, nil)
	client.On("Standings", ctx, int64(3000), 2, 50).
		Return(&domain.StandingsPage{Titles: []string{"A", "B"}, Rows: standingsRows(10, 50)}, nil)
	contestRepo.On("UpdateDetails", ctx, int64(2), mock.Anything).Return(nil).Once()

	// Совпадает только каждая вторая строка.
	matches := mock.MatchedBy(func(u *domain.ScoreUpdate) bool { return u.ParticipantID%2 == 0 })
	misses := mock.MatchedBy(func(u *domain.ScoreUpdate) bool { return u.ParticipantID%2 != 0 })
	challengeRepo.On("ApplyScore", ctx, contest, matches).Return(int64(1), nil)
	challengeRepo.On("ApplyScore", ctx, contest, misses).Return(int64(0), nil)

	onScoreboard, updated, err := uc.ImportScores(ctx, contest)

	assert.NoError(t, err)
	assert.Equal(t, 60, onScoreboard)
	assert.Equal(t, 30, updated)
	client.AssertNumberOfCalls(t, "Standings", 2)
}

func TestContestSync_ImportScores_SingleShortPage(t *testing.T) {
	ctx := context.Background()
	challengeRepo := &mocks.ChallengeRepository{}
	contestRepo := &mocks.ContestRepository{}
	client := &mocks.ContestClient{}
	uc := usecase.NewContestSyncUseCase(challengeRepo, contestRepo, client, testLogger())

	contest := &domain.Contest{ID: 2, CampaignID: 7, Type: domain.ContestTypeTesting, ContestID: 3000}

	client.On("Standings", ctx, int64(3000), 1, 50).
		Return(&domain.StandingsPage{Titles: []string{"A"}, Rows: standingsRows(3, 0)}, nil)
	contestRepo.On("UpdateDetails", ctx, int64(2), mock.Anything).Return(nil)
	challengeRepo.On("ApplyScore", ctx, contest, mock.Anything).Return(int64(1), nil)

	onScoreboard, updated, err := uc.ImportScores(ctx, contest)

	assert.NoError(t, err)
	assert.Equal(t, 3, onScoreboard)
	assert.Equal(t, 3, updated)
	client.AssertNumberOfCalls(t, "Standings", 1)
}

func TestContestSync_ImportScores_AbortsOnAPIError(t *testing.T) {
	ctx := context.Background()
	challengeRepo := &mocks.ChallengeRepository{}
	contestRepo := &mocks.ContestRepository{}
	client := &mocks.ContestClient{}
	uc := usecase.NewContestSyncUseCase(challengeRepo, contestRepo, client, testLogger())

	contest := &domain.Contest{ID: 2, CampaignID: 7, Type: domain.ContestTypeTesting, ContestID: 3000}
	apiErr := errors.New("contest api: status 500")

	client.On("Standings", ctx, int64(3000), 1, 50).
		Return(&domain.StandingsPage{Rows: standingsRows(50, 0)}, nil)
	client.On("Standings", ctx, int64(3000), 2, 50).Return(nil, apiErr)
	challengeRepo.On("ApplyScore", ctx, contest, mock.Anything).Return(int64(1), nil)

	onScoreboard, updated, err := uc.ImportScores(ctx, contest)

	// Импорт обрывается, но уже примененные обновления остаются учтенными.
	assert.ErrorIs(t, err, apiErr)
	assert.Equal(t, 50, onScoreboard)
	assert.Equal(t, 50, updated)
}

func TestParseScore(t *testing.T) {
	testCases := []struct {
		raw      string
		expected int
		wantErr  bool
	}{
		{"7,5", 8, false},
		{"2,4", 2, false},
		{"0,5", 1, false},
		{"10", 10, false},
		{"12,50", 13, false},
		{"0", 0, false},
		{"", 0, false},
		{"abc", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			score, err := usecase.ParseScore(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, score)
		})
	}
}
