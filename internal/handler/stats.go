package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"admission-service/internal/domain"
)

// StatsHandler обрабатывает HTTP-запросы статистики
type StatsHandler struct {
	*BaseHandler
	statsUseCase domain.StatsUseCase
}

// NewStatsHandler создает новый экземпляр StatsHandler
func NewStatsHandler(statsUseCase domain.StatsUseCase, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		BaseHandler:  NewBaseHandler(logger),
		statsUseCase: statsUseCase,
	}
}

// GetOccupancyStats возвращает занятость слотов по потокам
func (h *StatsHandler) GetOccupancyStats(c echo.Context) error {
	stats, err := h.statsUseCase.GetOccupancyStats(c.Request().Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to get occupancy stats")
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"streams": toAPIOccupancy(stats),
	})
}
