package domain

import "context"

// Campaign представляет приёмную кампанию.
type Campaign struct {
	ID   int64
	Name string
	Year int
}

// Venue представляет площадку проведения собеседований.
type Venue struct {
	ID       int64
	Name     string
	City     string
	TimeZone string // IANA, например "Europe/Moscow"
}

// Applicant представляет абитуриента кампании.
type Applicant struct {
	ID          int64
	CampaignID  int64
	FullName    string
	YandexLogin string
}

// ApplicantRepository определяет контракт для работы с абитуриентами.
type ApplicantRepository interface {
	Create(ctx context.Context, applicant *Applicant) error
	GetByID(ctx context.Context, applicantID int64) (*Applicant, error)
	ExistsByLogin(ctx context.Context, campaignID int64, yandexLogin string) (bool, error)
}

// VenueRepository определяет контракт для работы с площадками.
type VenueRepository interface {
	GetByID(ctx context.Context, venueID int64) (*Venue, error)
}
