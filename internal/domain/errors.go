package domain

import "errors"

// Domain errors (для бизнес-логики)
var (
	// Validation errors
	ErrInvalidSlotDuration = errors.New("slot duration must be at least 10 minutes")
	ErrStreamTooShort      = errors.New("stream window must fit at least one slot")
	ErrInvalidApplicantID  = errors.New("invalid applicant id")
	ErrInvalidStreamList   = errors.New("invitation must reference at least one stream")

	// Stream / slot errors
	ErrStreamNotFound = errors.New("interview stream not found")
	ErrSlotNotFound   = errors.New("interview slot not found")
	// ErrSlotOccupied — слот уже занят другим интервью (проигранная гонка, не сбой).
	ErrSlotOccupied = errors.New("interview slot already occupied")

	// Interview / invitation errors
	ErrInterviewNotFound     = errors.New("interview not found")
	ErrInvitationNotFound    = errors.New("invitation not found")
	ErrInvitationExpired     = errors.New("invitation expired")
	ErrInvitationDecided     = errors.New("invitation already accepted or declined")
	ErrSlotOutsideInvitation = errors.New("slot does not belong to invitation streams")

	// Applicant / venue errors
	ErrApplicantNotFound      = errors.New("applicant not found")
	ErrApplicantAlreadyExists = errors.New("applicant already exists in campaign")
	ErrVenueNotFound          = errors.New("venue not found")

	// Contest errors
	ErrContestNotFound   = errors.New("contest not found")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrImportInProgress  = errors.New("score import already running")
)

// HTTPError для тела ответа об ошибке
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error HTTPError `json:"error"`
}

// Маппинг domain ошибок в HTTP ошибки
var ErrorMapping = map[error]HTTPError{
	ErrSlotOccupied:           {Code: "SLOT_OCCUPIED", Message: "slot is no longer available, pick another one"},
	ErrInvitationExpired:      {Code: "INVITATION_EXPIRED", Message: "invitation has expired"},
	ErrInvitationDecided:      {Code: "INVITATION_DECIDED", Message: "invitation is already accepted or declined"},
	ErrApplicantAlreadyExists: {Code: "APPLICANT_EXISTS", Message: "applicant with this login already exists in campaign"},
	ErrImportInProgress:       {Code: "IMPORT_RUNNING", Message: "score import for this contest is already running"},
	ErrStreamNotFound:         {Code: "NOT_FOUND", Message: "interview stream not found"},
	ErrSlotNotFound:           {Code: "NOT_FOUND", Message: "interview slot not found"},
	ErrInterviewNotFound:      {Code: "NOT_FOUND", Message: "interview not found"},
	ErrInvitationNotFound:     {Code: "NOT_FOUND", Message: "invitation not found"},
	ErrApplicantNotFound:      {Code: "NOT_FOUND", Message: "applicant not found"},
	ErrVenueNotFound:          {Code: "NOT_FOUND", Message: "venue not found"},
	ErrContestNotFound:        {Code: "NOT_FOUND", Message: "contest not found"},
	ErrChallengeNotFound:      {Code: "NOT_FOUND", Message: "challenge not found"},
	ErrInvalidSlotDuration:    {Code: "INVALID_REQUEST", Message: "slot duration must be at least 10 minutes"},
	ErrStreamTooShort:         {Code: "INVALID_REQUEST", Message: "stream window must fit at least one slot"},
	ErrInvalidApplicantID:     {Code: "INVALID_REQUEST", Message: "invalid applicant id"},
	ErrInvalidStreamList:      {Code: "INVALID_REQUEST", Message: "invitation must reference at least one stream"},
	ErrSlotOutsideInvitation:  {Code: "INVALID_REQUEST", Message: "slot does not belong to the invited streams"},
}

// ToHTTPError преобразует domain ошибку в HTTP ошибку
func ToHTTPError(err error) (HTTPError, bool) {
	httpErr, exists := ErrorMapping[err]
	return httpErr, exists
}
