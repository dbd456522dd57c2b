package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"admission-service/internal/domain"
)

// ApplicantHandler обрабатывает HTTP-запросы абитуриентов
type ApplicantHandler struct {
	*BaseHandler
	applicantUseCase domain.ApplicantUseCase
}

// NewApplicantHandler создает новый экземпляр ApplicantHandler
func NewApplicantHandler(applicantUseCase domain.ApplicantUseCase, logger *logrus.Logger) *ApplicantHandler {
	return &ApplicantHandler{
		BaseHandler:      NewBaseHandler(logger),
		applicantUseCase: applicantUseCase,
	}
}

// PostApplicant обрабатывает создание абитуриента
func (h *ApplicantHandler) PostApplicant(c echo.Context) error {
	var req CreateApplicantRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind create applicant request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	logEntry := h.logRequest(c, "create_applicant").WithFields(logrus.Fields{
		"campaign_id": req.CampaignID,
		"login":       req.YandexLogin,
	})
	logEntry.Info("Creating applicant")

	applicant, err := h.applicantUseCase.CreateApplicant(c.Request().Context(), &domain.Applicant{
		CampaignID:  req.CampaignID,
		FullName:    req.FullName,
		YandexLogin: req.YandexLogin,
	}, req.TestingContestID)
	if err != nil {
		logEntry.WithError(err).Error("Failed to create applicant")
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	logEntry.WithField("applicant_id", applicant.ID).Info("Applicant created successfully")
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"applicant": toAPIApplicant(applicant),
	})
}
