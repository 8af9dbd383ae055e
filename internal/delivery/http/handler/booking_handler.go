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

// BookingHandler exposes quoting, confirmation and cancellation of bookings.
type BookingHandler struct {
	bookingUC *usecase.BookingUseCase
	logger    *zap.Logger
}

func NewBookingHandler(bookingUC *usecase.BookingUseCase, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		bookingUC: bookingUC,
		logger:    logger,
	}
}

// Quote godoc
// @Summary Price a prospective booking
// @Description Computes the price for a window without persisting anything. Bookings starting between 18:00 and 21:00 cost 1.5x.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Booking window"
// @Success 200 {object} utils.SuccessResponse{data=dto.QuoteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/bookings/quote [post]
func (h *BookingHandler) Quote(c *fiber.Ctx) error {
	var req dto.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.bookingUC.Quote(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Confirm godoc
// @Summary Confirm a booking
// @Description Prices the window and persists the booking as active. Rejected when every spot is already booked for an overlapping window.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Booking"
// @Success 200 {object} utils.SuccessResponse{data=domain.Booking}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/bookings [post]
func (h *BookingHandler) Confirm(c *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	booking, err := h.bookingUC.Confirm(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, booking, nil)
}

// GetByID godoc
// @Summary Get one booking
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} utils.SuccessResponse{data=domain.Booking}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/bookings/{id} [get]
func (h *BookingHandler) GetByID(c *fiber.Ctx) error {
	booking, err := h.bookingUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, booking, nil)
}

// Cancel godoc
// @Summary Cancel an active booking
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} utils.SuccessResponse{data=domain.Booking}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *fiber.Ctx) error {
	booking, err := h.bookingUC.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, booking, nil)
}

// ListByLot godoc
// @Summary List bookings for one of the manager's lots
// @Tags Manager
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Booking}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/manager/lots/{id}/bookings [get]
func (h *BookingHandler) ListByLot(c *fiber.Ctx) error {
	bookings, err := h.bookingUC.ListByLot(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, bookings, &utils.Meta{
		Total: len(bookings),
	})
}

// ListByManager godoc
// @Summary List bookings across the authenticated manager's lots
// @Tags Manager
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Booking}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/manager/bookings [get]
func (h *BookingHandler) ListByManager(c *fiber.Ctx) error {
	managerID, _ := c.Locals(middleware.ManagerIDKey).(string)
	bookings, err := h.bookingUC.ListByManager(c.Context(), managerID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, bookings, &utils.Meta{
		Total: len(bookings),
	})
}
