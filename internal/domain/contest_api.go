package domain

import "context"

// Коды ответа API Контеста, различаемые при регистрации.
const (
	ContestRegistrationOK       = 200
	ContestRegistrationCreated  = 201
	ContestRegistrationConflict = 409
)

// StandingsRow представляет строку турнирной таблицы внешнего контеста.
// Score приходит локализованной строкой с запятой-разделителем ("12,50").
type StandingsRow struct {
	Login         string
	ParticipantID int64
	Score         string
	ProblemScores []string
}

// StandingsPage представляет одну страницу турнирной таблицы.
type StandingsPage struct {
	Titles []string
	Rows   []StandingsRow
}

// ContestClient определяет контракт клиента API Яндекс.Контеста.
// Схема ответов — внешний контракт, этим репозиторием не владеемый.
type ContestClient interface {
	// RegisterParticipant регистрирует логин в контесте.
	// Возвращает HTTP-код (200/201/409) и participant id (0 при конфликте).
	// Любой другой исход — ошибка, передаваемая вызывающему без изменений.
	RegisterParticipant(ctx context.Context, login string, contestID int64) (int, int64, error)
	// Standings возвращает страницу турнирной таблицы (нумерация с 1).
	Standings(ctx context.Context, contestID int64, page, pageSize int) (*StandingsPage, error)
}
