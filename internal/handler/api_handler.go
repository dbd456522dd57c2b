package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"admission-service/internal/domain"
)

type APIHandler struct {
	*StreamHandler
	*InvitationHandler
	*ApplicantHandler
	*ContestHandler
	*StatsHandler
}

func NewAPIHandler(
	streamUseCase domain.StreamUseCase,
	invitationUseCase domain.InvitationUseCase,
	applicantUseCase domain.ApplicantUseCase,
	contestSync domain.ContestSyncUseCase,
	contestRepo domain.ContestRepository,
	statsUseCase domain.StatsUseCase,
	logger *logrus.Logger,
) *APIHandler {

	return &APIHandler{
		StreamHandler:     NewStreamHandler(streamUseCase, logger),
		InvitationHandler: NewInvitationHandler(invitationUseCase, logger),
		ApplicantHandler:  NewApplicantHandler(applicantUseCase, logger),
		ContestHandler:    NewContestHandler(contestSync, contestRepo, logger),
		StatsHandler:      NewStatsHandler(statsUseCase, logger),
	}
}

// RegisterRoutes привязывает обработчики к маршрутам.
func (h *APIHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/streams", h.PostStream)
	e.GET("/streams/:id", h.GetStream)
	e.POST("/streams/:id/recompute", h.PostStreamRecompute)

	e.POST("/invitations", h.PostInvitation)
	e.GET("/invitations/:token", h.GetInvitation)
	e.POST("/invitations/:token/accept", h.PostInvitationAccept)
	e.POST("/invitations/:token/decline", h.PostInvitationDecline)

	e.POST("/applicants", h.PostApplicant)

	e.POST("/contests/:id/register", h.PostContestRegister)
	e.POST("/contests/:id/import-scores", h.PostContestImportScores)

	e.GET("/stats/occupancy", h.GetOccupancyStats)
}
