package handler

import "time"

// API-модели запросов и ответов.

type CreateStreamRequest struct {
	CampaignID      int64  `json:"campaign_id"`
	VenueID         int64  `json:"venue_id"`
	Date            string `json:"date"`       // "2006-01-02"
	StartTime       string `json:"start_time"` // "15:04"
	EndTime         string `json:"end_time"`   // "15:04"
	DurationMin     int    `json:"duration_min"`
	WithAssignments bool   `json:"with_assignments"`
}

type Stream struct {
	ID                 int64     `json:"id"`
	CampaignID         int64     `json:"campaign_id"`
	VenueID            int64     `json:"venue_id"`
	Date               string    `json:"date"`
	StartsAt           time.Time `json:"starts_at"`
	EndsAt             time.Time `json:"ends_at"`
	DurationMin        int       `json:"duration_min"`
	WithAssignments    bool      `json:"with_assignments"`
	SlotsCount         int       `json:"slots_count"`
	SlotsOccupiedCount int       `json:"slots_occupied_count"`
}

type Slot struct {
	ID          int64     `json:"id"`
	StreamID    int64     `json:"stream_id"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	InterviewID *int64    `json:"interview_id,omitempty"`
}

type CreateInvitationRequest struct {
	ApplicantID int64   `json:"applicant_id"`
	StreamIDs   []int64 `json:"stream_ids"`
	TTLHours    int     `json:"ttl_hours"`
}

type Invitation struct {
	ID          int64     `json:"id"`
	ApplicantID int64     `json:"applicant_id"`
	SecretToken string    `json:"secret_token"`
	ExpiredAt   time.Time `json:"expired_at"`
	Status      string    `json:"status"`
	InterviewID *int64    `json:"interview_id,omitempty"`
	StreamIDs   []int64   `json:"stream_ids"`
}

type AcceptInvitationRequest struct {
	SlotID int64 `json:"slot_id"`
}

type Interview struct {
	ID          int64     `json:"id"`
	ApplicantID int64     `json:"applicant_id"`
	Status      string    `json:"status"`
	Date        time.Time `json:"date"`
}

type CreateApplicantRequest struct {
	CampaignID       int64  `json:"campaign_id"`
	FullName         string `json:"full_name"`
	YandexLogin      string `json:"yandex_login"`
	TestingContestID int64  `json:"testing_contest_id"`
}

type Applicant struct {
	ID          int64  `json:"id"`
	CampaignID  int64  `json:"campaign_id"`
	FullName    string `json:"full_name"`
	YandexLogin string `json:"yandex_login"`
}

type RegistrationResult struct {
	ChallengeID   int64  `json:"challenge_id"`
	Login         string `json:"login"`
	Registered    bool   `json:"registered"`
	ParticipantID int64  `json:"participant_id,omitempty"`
	Error         string `json:"error,omitempty"`
}

type ImportScoresResult struct {
	OnScoreboard int `json:"on_scoreboard"`
	Updated      int `json:"updated"`
}

type StreamOccupancy struct {
	StreamID           int64  `json:"stream_id"`
	Date               string `json:"date"`
	VenueName          string `json:"venue_name"`
	SlotsCount         int64  `json:"slots_count"`
	SlotsOccupiedCount int64  `json:"slots_occupied_count"`
}
