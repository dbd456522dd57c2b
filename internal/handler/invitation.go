package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"admission-service/internal/domain"
)

// DefaultInvitationTTL — срок жизни приглашения, если не задан в запросе.
const DefaultInvitationTTL = 72 * time.Hour

// InvitationHandler обрабатывает HTTP-запросы приглашений на собеседование
type InvitationHandler struct {
	*BaseHandler
	invitationUseCase domain.InvitationUseCase
}

// NewInvitationHandler создает новый экземпляр InvitationHandler
func NewInvitationHandler(invitationUseCase domain.InvitationUseCase, logger *logrus.Logger) *InvitationHandler {
	return &InvitationHandler{
		BaseHandler:       NewBaseHandler(logger),
		invitationUseCase: invitationUseCase,
	}
}

// PostInvitation обрабатывает создание приглашения
func (h *InvitationHandler) PostInvitation(c echo.Context) error {
	var req CreateInvitationRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind create invitation request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	ttl := DefaultInvitationTTL
	if req.TTLHours > 0 {
		ttl = time.Duration(req.TTLHours) * time.Hour
	}

	logEntry := h.logRequest(c, "create_invitation").WithFields(logrus.Fields{
		"applicant_id": req.ApplicantID,
		"streams":      req.StreamIDs,
	})
	logEntry.Info("Creating interview invitation")

	invitation, err := h.invitationUseCase.CreateInvitation(c.Request().Context(), req.ApplicantID, req.StreamIDs, ttl)
	if err != nil {
		logEntry.WithError(err).Error("Failed to create invitation")
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	logEntry.WithField("invitation_id", invitation.ID).Info("Invitation created successfully")
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"invitation": toAPIInvitation(invitation),
	})
}

// GetInvitation возвращает приглашение и свободные слоты его потоков
func (h *InvitationHandler) GetInvitation(c echo.Context) error {
	token := c.Param("token")

	invitation, freeSlots, err := h.invitationUseCase.GetInvitation(c.Request().Context(), token)
	if err != nil {
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"invitation": toAPIInvitation(invitation),
		"free_slots": toAPISlots(freeSlots),
	})
}

// PostInvitationAccept обрабатывает выбор слота абитуриентом.
// Проигранная гонка за слот возвращается как 409 SLOT_OCCUPIED,
// чтобы вызывающая сторона показала оставшиеся слоты.
func (h *InvitationHandler) PostInvitationAccept(c echo.Context) error {
	token := c.Param("token")

	var req AcceptInvitationRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind accept invitation request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	logEntry := h.logRequest(c, "accept_invitation").WithField("slot_id", req.SlotID)
	logEntry.Info("Accepting invitation")

	interview, err := h.invitationUseCase.Accept(c.Request().Context(), token, req.SlotID)
	if err != nil {
		if err == domain.ErrSlotOccupied {
			logEntry.Info("Slot lost to concurrent booking")
		} else {
			logEntry.WithError(err).Error("Failed to accept invitation")
		}
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	logEntry.WithField("interview_id", interview.ID).Info("Invitation accepted")
	return c.JSON(http.StatusOK, map[string]interface{}{
		"interview": toAPIInterview(interview),
	})
}

// PostInvitationDecline обрабатывает отклонение приглашения
func (h *InvitationHandler) PostInvitationDecline(c echo.Context) error {
	token := c.Param("token")

	logEntry := h.logRequest(c, "decline_invitation")
	logEntry.Info("Declining invitation")

	if err := h.invitationUseCase.Decline(c.Request().Context(), token); err != nil {
		logEntry.WithError(err).Error("Failed to decline invitation")
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "declined"})
}
