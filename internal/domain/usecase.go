package domain

import (
	"context"
	"time"
)

// NewStream описывает создаваемый поток собеседований.
type NewStream struct {
	CampaignID      int64
	VenueID         int64
	Date            string // "2006-01-02"
	StartTime       string // "15:04", локальное время площадки
	EndTime         string // "15:04"
	DurationMin     int
	WithAssignments bool
}

// StreamUseCase определяет бизнес-логику потоков и слотов.
type StreamUseCase interface {
	CreateStream(ctx context.Context, req *NewStream) (*InterviewStream, error)
	GetStream(ctx context.Context, streamID int64) (*InterviewStream, []*InterviewSlot, error)
	RecomputeOccupancy(ctx context.Context, streamID int64) (*InterviewStream, error)
}

// InvitationUseCase определяет бизнес-логику приглашений на собеседование.
type InvitationUseCase interface {
	CreateInvitation(ctx context.Context, applicantID int64, streamIDs []int64, ttl time.Duration) (*InterviewInvitation, error)
	GetInvitation(ctx context.Context, token string) (*InterviewInvitation, []*InterviewSlot, error)
	// Accept создает интервью и занимает выбранный слот; проигранная гонка
	// возвращается как ErrSlotOccupied, абитуриент выбирает другой слот.
	Accept(ctx context.Context, token string, slotID int64) (*Interview, error)
	Decline(ctx context.Context, token string) error
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

// ApplicantUseCase определяет бизнес-логику абитуриентов.
type ApplicantUseCase interface {
	// CreateApplicant создает абитуриента и запись тестирования в статусе new.
	CreateApplicant(ctx context.Context, applicant *Applicant, testingContestID int64) (*Applicant, error)
}

// RegistrationResult описывает исход регистрации одной записи.
type RegistrationResult struct {
	ChallengeID   int64
	Login         string
	Registered    bool
	ParticipantID int64
	Err           error
}

// ContestSyncUseCase определяет регистрацию участников и сверку счетов.
type ContestSyncUseCase interface {
	Register(ctx context.Context, challenge *Challenge) error
	RegisterAll(ctx context.Context, contestID int64) ([]*RegistrationResult, error)
	// ImportScores возвращает (строк в таблице, обновлено локально) —
	// контракт best-effort, см. комментарий в реализации.
	ImportScores(ctx context.Context, contest *Contest) (onScoreboard, updated int, err error)
}

// StatsUseCase определяет бизнес-логику статистики занятости.
type StatsUseCase interface {
	GetOccupancyStats(ctx context.Context) ([]*StreamOccupancy, error)
}
