package handler

import (
	"net/http"

	"admission-service/internal/domain"
)

// Вспомогательные функции преобразования доменных моделей в API модели

func toAPIStream(stream *domain.InterviewStream) Stream {
	return Stream{
		ID:                 stream.ID,
		CampaignID:         stream.CampaignID,
		VenueID:            stream.VenueID,
		Date:               stream.Date.Format("2006-01-02"),
		StartsAt:           stream.StartsAt,
		EndsAt:             stream.EndsAt,
		DurationMin:        stream.DurationMin,
		WithAssignments:    stream.WithAssignments,
		SlotsCount:         stream.SlotsCount,
		SlotsOccupiedCount: stream.SlotsOccupiedCount,
	}
}

func toAPISlots(slots []*domain.InterviewSlot) []Slot {
	result := make([]Slot, len(slots))
	for i, slot := range slots {
		result[i] = Slot{
			ID:          slot.ID,
			StreamID:    slot.StreamID,
			StartsAt:    slot.StartsAt,
			EndsAt:      slot.EndsAt,
			InterviewID: slot.InterviewID,
		}
	}
	return result
}

func toAPIInvitation(inv *domain.InterviewInvitation) Invitation {
	return Invitation{
		ID:          inv.ID,
		ApplicantID: inv.ApplicantID,
		SecretToken: inv.SecretToken,
		ExpiredAt:   inv.ExpiredAt,
		Status:      inv.Status,
		InterviewID: inv.InterviewID,
		StreamIDs:   inv.StreamIDs,
	}
}

func toAPIInterview(interview *domain.Interview) Interview {
	return Interview{
		ID:          interview.ID,
		ApplicantID: interview.ApplicantID,
		Status:      interview.Status,
		Date:        interview.Date,
	}
}

func toAPIApplicant(applicant *domain.Applicant) Applicant {
	return Applicant{
		ID:          applicant.ID,
		CampaignID:  applicant.CampaignID,
		FullName:    applicant.FullName,
		YandexLogin: applicant.YandexLogin,
	}
}

func toAPIRegistrationResults(results []*domain.RegistrationResult) []RegistrationResult {
	out := make([]RegistrationResult, len(results))
	for i, r := range results {
		out[i] = RegistrationResult{
			ChallengeID:   r.ChallengeID,
			Login:         r.Login,
			Registered:    r.Registered,
			ParticipantID: r.ParticipantID,
		}
		if r.Err != nil {
			out[i].Error = r.Err.Error()
		}
	}
	return out
}

func toAPIOccupancy(stats []*domain.StreamOccupancy) []StreamOccupancy {
	out := make([]StreamOccupancy, len(stats))
	for i, s := range stats {
		out[i] = StreamOccupancy{
			StreamID:           s.StreamID,
			Date:               s.Date.Format("2006-01-02"),
			VenueName:          s.VenueName,
			SlotsCount:         s.SlotsCount,
			SlotsOccupiedCount: s.SlotsOccupiedCount,
		}
	}
	return out
}

func toErrorResponse(code, message string) domain.ErrorResponse {
	return domain.ErrorResponse{
		Error: domain.HTTPError{Code: code, Message: message},
	}
}

func getHTTPStatusCode(err error) int {
	switch err {
	// Conflict errors (409)
	case domain.ErrSlotOccupied, domain.ErrInvitationDecided,
		domain.ErrApplicantAlreadyExists, domain.ErrImportInProgress:
		return http.StatusConflict

	// Gone (410) — приглашение протухло
	case domain.ErrInvitationExpired:
		return http.StatusGone

	// Not Found errors (404)
	case domain.ErrStreamNotFound, domain.ErrSlotNotFound,
		domain.ErrInterviewNotFound, domain.ErrInvitationNotFound,
		domain.ErrApplicantNotFound, domain.ErrVenueNotFound,
		domain.ErrContestNotFound, domain.ErrChallengeNotFound:
		return http.StatusNotFound

	// Bad Request errors (400) - валидация
	case domain.ErrInvalidSlotDuration, domain.ErrStreamTooShort,
		domain.ErrInvalidApplicantID, domain.ErrInvalidStreamList,
		domain.ErrSlotOutsideInvitation:
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
