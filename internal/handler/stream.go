package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"admission-service/internal/domain"
)

// StreamHandler обрабатывает HTTP-запросы потоков собеседований
type StreamHandler struct {
	*BaseHandler
	streamUseCase domain.StreamUseCase
}

// NewStreamHandler создает новый экземпляр StreamHandler
func NewStreamHandler(streamUseCase domain.StreamUseCase, logger *logrus.Logger) *StreamHandler {
	return &StreamHandler{
		BaseHandler:   NewBaseHandler(logger),
		streamUseCase: streamUseCase,
	}
}

// PostStream обрабатывает создание потока с нарезкой слотов
func (h *StreamHandler) PostStream(c echo.Context) error {
	var req CreateStreamRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WithError(err).Warn("Failed to bind create stream request")
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", err.Error()))
	}

	logEntry := h.logRequest(c, "create_stream").WithFields(logrus.Fields{
		"campaign_id": req.CampaignID,
		"venue_id":    req.VenueID,
		"date":        req.Date,
	})
	logEntry.Info("Creating interview stream")

	stream, err := h.streamUseCase.CreateStream(c.Request().Context(), &domain.NewStream{
		CampaignID:      req.CampaignID,
		VenueID:         req.VenueID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMin:     req.DurationMin,
		WithAssignments: req.WithAssignments,
	})
	if err != nil {
		logEntry.WithError(err).Error("Failed to create stream")
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	logEntry.WithField("slots_count", stream.SlotsCount).Info("Stream created successfully")
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"stream": toAPIStream(stream),
	})
}

// GetStream возвращает поток вместе со слотами
func (h *StreamHandler) GetStream(c echo.Context) error {
	streamID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", "invalid stream id"))
	}

	stream, slots, err := h.streamUseCase.GetStream(c.Request().Context(), streamID)
	if err != nil {
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"stream": toAPIStream(stream),
		"slots":  toAPISlots(slots),
	})
}

// PostStreamRecompute пересчитывает счетчики занятости потока
func (h *StreamHandler) PostStreamRecompute(c echo.Context) error {
	streamID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, toErrorResponse("INVALID_REQUEST", "invalid stream id"))
	}

	logEntry := h.logRequest(c, "recompute_occupancy").WithField("stream_id", streamID)
	logEntry.Info("Recomputing stream occupancy")

	stream, err := h.streamUseCase.RecomputeOccupancy(c.Request().Context(), streamID)
	if err != nil {
		logEntry.WithError(err).Error("Failed to recompute occupancy")
		if httpErr, exists := domain.ToHTTPError(err); exists {
			return c.JSON(getHTTPStatusCode(err), domain.ErrorResponse{Error: httpErr})
		}
		return c.JSON(http.StatusInternalServerError, toErrorResponse("INTERNAL_ERROR", err.Error()))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"stream": toAPIStream(stream),
	})
}
