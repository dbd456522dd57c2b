package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"admission-service/internal/domain"
)

// ContestHandler обрабатывает HTTP-запросы регистрации и импорта счетов
type ContestHandler struct {
	*BaseHandler
	contestSync domain.ContestSyncUseCase
	contestRepo domain.ContestRepository
}

// NewContestHandler создает новый экземпляр ContestHandler
func NewContestHandler(contestSync domain.ContestSyncUseCase, contestRepo domain.ContestRepository, logger *logrus.Logger) *ContestHandler {
	return &ContestHandler{
		BaseHandler: NewBaseHandler(logger),
		contestSync: contestSync,
		contestRepo: contestRepo,
	}
}

// PostContestRegister регистрирует все новые записи контеста
func (h *ContestHandler) PostContestRegister(c echo.Context) error {
	contestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", "invalid contest id"))
	}

	logEntry := h.logRequest(c, "register_participants").WithField("contest_id", contestID)
	logEntry.Info("Registering contest participants")

	results, err := h.contestSync.RegisterAll(c.Request().Context(), contestID)
	if err != nil {
		logEntry.WithError(err).Error("Failed to register participants")
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	registered := 0
	for _, r := range results {
		if r.Registered {
			registered++
		}
	}
	logEntry.WithFields(logrus.Fields{
		"total":      len(results),
		"registered": registered,
	}).Info("Registration finished")

	return c.JSON(http.StatusOK, map[string]interface{}{
		"results": toAPIRegistrationResults(results),
	})
}

// PostContestImportScores запускает импорт счетов контеста
func (h *ContestHandler) PostContestImportScores(c echo.Context) error {
	contestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", "invalid contest id"))
	}

	logEntry := h.logRequest(c, "import_scores").WithField("contest_id", contestID)
	logEntry.Info("Importing contest scores")

	contest, err := h.contestRepo.GetByID(c.Request().Context(), contestID)
	if err != nil {
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	onScoreboard, updated, err := h.contestSync.ImportScores(c.Request().Context(), contest)
	if err != nil {
		logEntry.WithError(err).Error("Score import aborted")
		return c.JSON(http.StatusBadGateway, toErrorResponse("CONTEST_API_ERROR", err.Error()))
	}

	logEntry.WithFields(logrus.Fields{
		"on_scoreboard": onScoreboard,
		"updated":       updated,
	}).Info("Score import finished")

	return c.JSON(http.StatusOK, ImportScoresResult{
		OnScoreboard: onScoreboard,
		Updated:      updated,
	})
}
