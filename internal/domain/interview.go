package domain

import (
	"context"
	"time"
)

// Статусы интервью.
const (
	InterviewStatusApproval  = "approval"
	InterviewStatusApproved  = "approved"
	InterviewStatusDeferred  = "deferred"
	InterviewStatusCanceled  = "canceled"
	InterviewStatusCompleted = "completed"
)

// Статусы приглашения.
const (
	InvitationStatusCreated  = "created"
	InvitationStatusAccepted = "accepted"
	InvitationStatusDeclined = "declined"
	InvitationStatusExpired  = "expired"
)

// Interview представляет собеседование абитуриента.
// Слот ссылается на интервью, а не наоборот: интервью не владеет слотом.
type Interview struct {
	ID          int64
	ApplicantID int64
	Status      string
	Date        time.Time
}

// InterviewInvitation представляет приглашение выбрать слот
// из набора потоков-кандидатов. Живет до ExpiredAt.
type InterviewInvitation struct {
	ID          int64
	ApplicantID int64
	SecretToken string
	ExpiredAt   time.Time
	Status      string
	InterviewID *int64
	StreamIDs   []int64
}

// Open сообщает, можно ли еще принять приглашение в момент now.
func (inv *InterviewInvitation) Open(now time.Time) bool {
	return inv.Status == InvitationStatusCreated && now.Before(inv.ExpiredAt)
}

// InterviewRepository определяет контракт для работы с интервью и приглашениями.
type InterviewRepository interface {
	CreateInvitation(ctx context.Context, invitation *InterviewInvitation) error
	GetInvitationByToken(ctx context.Context, token string) (*InterviewInvitation, error)
	// AcceptInvitation создает интервью и занимает слот одной транзакцией.
	// Если CAS по слоту вернул 0 строк, транзакция откатывается и
	// возвращается ErrSlotOccupied.
	AcceptInvitation(ctx context.Context, invitationID, slotID int64, interview *Interview) error
	DeclineInvitation(ctx context.Context, invitationID int64) error
	// ExpireOverdue переводит просроченные открытые приглашения в expired.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
	GetInterview(ctx context.Context, interviewID int64) (*Interview, error)
}
