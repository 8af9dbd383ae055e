package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/delivery/http/middleware"
	"github.com/parking-microservice/internal/pkg/utils"
	"github.com/parking-microservice/internal/usecase"
)

// StatsHandler exposes the manager dashboard summary.
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
	logger  *zap.Logger
}

func NewStatsHandler(statsUC *usecase.StatsUseCase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// Dashboard godoc
// @Summary Manager dashboard summary
// @Description Revenue over completed bookings, active booking count, live occupancy and the busiest 3-hour window, aggregated over the manager's lots.
// @Tags Manager
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=dto.StatsResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/manager/stats [get]
func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	managerID, _ := c.Locals(middleware.ManagerIDKey).(string)
	result, err := h.statsUC.Dashboard(c.Context(), managerID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
