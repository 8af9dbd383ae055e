package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/delivery/http/middleware"
	"github.com/parking-microservice/internal/pkg/utils"
	"github.com/parking-microservice/internal/pkg/validator"
	"github.com/parking-microservice/internal/usecase"
	"github.com/parking-microservice/internal/usecase/dto"
)

// LotHandler exposes the lot directory and manager lot registration.
type LotHandler struct {
	directoryUC *usecase.DirectoryUseCase
	logger      *zap.Logger
}

func NewLotHandler(directoryUC *usecase.DirectoryUseCase, logger *zap.Logger) *LotHandler {
	return &LotHandler{
		directoryUC: directoryUC,
		logger:      logger,
	}
}

// List godoc
// @Summary List all parking lots
// @Tags Lots
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.LotResult}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/lots [get]
func (h *LotHandler) List(c *fiber.Ctx) error {
	lots, err := h.directoryUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	results := dto.ConvertLots(lots)
	return utils.SendSuccess(c, results, &utils.Meta{
		Total: len(results),
	})
}

// GetByID godoc
// @Summary Get one parking lot
// @Tags Lots
// @Produce json
// @Param id path string true "Lot ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.LotResult}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/lots/{id} [get]
func (h *LotHandler) GetByID(c *fiber.Ctx) error {
	lot, err := h.directoryUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ConvertLot(*lot), nil)
}

// Status godoc
// @Summary Get a lot's occupancy status
// @Description Returns the driver-facing occupancy label: Available, Few Spots, Full or Unknown.
// @Tags Lots
// @Produce json
// @Param id path string true "Lot ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/lots/{id}/status [get]
func (h *LotHandler) Status(c *fiber.Ctx) error {
	lot, err := h.directoryUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{
		"lot_id":          lot.ID,
		"status":          lot.OccupancyStatus(),
		"available_spots": lot.AvailableSpots,
		"total_spots":     lot.TotalSpots,
	}, nil)
}

// Register godoc
// @Summary Register a new parking lot
// @Description Geocodes the address and creates the lot under the authenticated manager. All spots start free.
// @Tags Manager
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLotRequest true "New lot"
// @Success 200 {object} utils.SuccessResponse{data=dto.LotResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/manager/lots [post]
func (h *LotHandler) Register(c *fiber.Ctx) error {
	var req dto.CreateLotRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	managerID, _ := c.Locals(middleware.ManagerIDKey).(string)
	lot, err := h.directoryUC.Register(c.Context(), req, managerID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ConvertLot(*lot), nil)
}

// ListByManager godoc
// @Summary List the authenticated manager's lots
// @Tags Manager
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=[]dto.LotResult}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/manager/lots [get]
func (h *LotHandler) ListByManager(c *fiber.Ctx) error {
	managerID, _ := c.Locals(middleware.ManagerIDKey).(string)
	lots, err := h.directoryUC.ListByManager(c.Context(), managerID)
	if err != nil {
		return utils.SendError(c, err)
	}

	results := dto.ConvertLots(lots)
	return utils.SendSuccess(c, results, &utils.Meta{
		Total: len(results),
	})
}
