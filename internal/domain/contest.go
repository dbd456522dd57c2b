package domain

import "context"

// Типы контестов.
const (
	ContestTypeTesting = "testing"
	ContestTypeExam    = "exam"
)

// Статусы записи об участии (Challenge).
const (
	ChallengeStatusNew        = "new"
	ChallengeStatusRegistered = "registered"
	// ChallengeStatusManual — оценка проставлена вручную, автоимпорт запись не трогает.
	ChallengeStatusManual = "manual"
)

// Contest представляет один контест Яндекс.Контеста, привязанный к кампании.
type Contest struct {
	ID         int64
	CampaignID int64
	Type       string
	ContestID  int64 // идентификатор контеста во внешней системе
	Details    map[string]any
}

// Challenge представляет запись об участии абитуриента в контесте
// (тестирование или экзамен). Уникальна по (applicant, type).
type Challenge struct {
	ID            int64
	ApplicantID   int64
	Type          string
	ContestID     int64
	ParticipantID *int64
	StatusCode    *int // последний HTTP-код ответа на регистрацию
	Status        string
	Score         *int
	Details       map[string]any

	// Денормализованные поля абитуриента для регистрации и сверки.
	YandexLogin string
	CampaignID  int64
}

// ScoreUpdate описывает одно обновление счета из строки турнирной таблицы.
type ScoreUpdate struct {
	Login         string
	ParticipantID int64
	Score         int
	Details       map[string]any
}

// ContestRepository определяет контракт для работы с контестами.
type ContestRepository interface {
	GetByID(ctx context.Context, id int64) (*Contest, error)
	List(ctx context.Context) ([]*Contest, error)
	UpdateDetails(ctx context.Context, id int64, details map[string]any) error
}

// ChallengeRepository определяет контракт для работы с записями об участии.
type ChallengeRepository interface {
	Create(ctx context.Context, challenge *Challenge) error
	GetByID(ctx context.Context, id int64) (*Challenge, error)
	// ListNew возвращает незарегистрированные записи контеста вместе с логинами.
	ListNew(ctx context.Context, contestID int64, challengeType string) ([]*Challenge, error)
	// MarkRegistered проставляет participant id, код ответа и статус registered.
	MarkRegistered(ctx context.Context, id int64, participantID int64, statusCode int) error
	SetStatusCode(ctx context.Context, id int64, statusCode int) error
	// FindParticipantID ищет participant id в другой локальной записи
	// того же контеста и логина (восстановление после потерянного ответа).
	FindParticipantID(ctx context.Context, contestID int64, yandexLogin string) (int64, bool, error)
	// ApplyScore обновляет счет и детали записей в статусе registered,
	// совпавших по логину или participant id в рамках контеста и кампании.
	// Возвращает число обновленных строк.
	ApplyScore(ctx context.Context, contest *Contest, update *ScoreUpdate) (int64, error)
}
