package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/observability"
	"github.com/parking-microservice/internal/pkg/errors"
	"github.com/parking-microservice/internal/usecase/dto"
)

// Peak pricing: bookings starting between 18:00 and 21:00 local time cost
// 1.5x the hourly rate. Fixed policy constants.
const (
	peakStartHour  = 18
	peakEndHour    = 21
	peakMultiplier = 1.5
)

type BookingUseCase struct {
	bookingRepo repository.BookingRepository
	lotRepo     repository.LotRepository
	logger      *zap.Logger
}

func NewBookingUseCase(
	bookingRepo repository.BookingRepository,
	lotRepo repository.LotRepository,
	logger *zap.Logger,
) *BookingUseCase {
	return &BookingUseCase{
		bookingRepo: bookingRepo,
		lotRepo:     lotRepo,
		logger:      logger,
	}
}

// Price computes hourlyRate * hours, with the peak multiplier when the
// start hour falls in [18, 21).
func Price(hourlyRate float64, start time.Time, durationHours int) (float64, bool) {
	price := hourlyRate * float64(durationHours)
	hour := start.Hour()
	peak := hour >= peakStartHour && hour < peakEndHour
	if peak {
		price *= peakMultiplier
	}
	return price, peak
}

// Quote prices a prospective booking without persisting anything.
func (uc *BookingUseCase) Quote(ctx context.Context, req dto.QuoteRequest) (*dto.QuoteResponse, error) {
	if req.DurationHours <= 0 {
		return nil, errors.ErrBookingInvalidWindow
	}

	lot, err := uc.lotRepo.GetByID(ctx, req.LotID)
	if err != nil {
		return nil, err
	}

	price, peak := Price(lot.HourlyRate, req.StartTime, req.DurationHours)

	return &dto.QuoteResponse{
		LotID:         lot.ID,
		DurationHours: req.DurationHours,
		HourlyRate:    lot.HourlyRate,
		Peak:          peak,
		Price:         price,
	}, nil
}

// Confirm prices the window, rejects it when every spot is already booked
// for an overlapping window, and persists the booking as active.
func (uc *BookingUseCase) Confirm(ctx context.Context, req dto.CreateBookingRequest) (*domain.Booking, error) {
	if req.DurationHours <= 0 {
		return nil, errors.ErrBookingInvalidWindow
	}

	lot, err := uc.lotRepo.GetByID(ctx, req.LotID)
	if err != nil {
		return nil, err
	}

	end := req.StartTime.Add(time.Duration(req.DurationHours) * time.Hour)

	overlapping, err := uc.bookingRepo.CountActiveOverlapping(ctx, lot.ID, req.StartTime, end)
	if err != nil {
		uc.logger.Error("Overlap check failed", zap.String("lot_id", lot.ID), zap.Error(err))
		return nil, err
	}
	if overlapping >= lot.TotalSpots {
		observability.BookingsTotal.WithLabelValues("conflict").Inc()
		return nil, errors.ErrBookingConflict.WithDetails(map[string]interface{}{
			"lot_id":      lot.ID,
			"total_spots": lot.TotalSpots,
		})
	}

	price, peak := Price(lot.HourlyRate, req.StartTime, req.DurationHours)

	now := time.Now().UTC()
	booking := &domain.Booking{
		ID:            uuid.NewString(),
		LotID:         lot.ID,
		UserID:        req.UserID,
		StartTime:     req.StartTime,
		DurationHours: req.DurationHours,
		EndTime:       end,
		PricePaid:     price,
		Status:        domain.BookingStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.bookingRepo.Create(ctx, booking); err != nil {
		observability.BookingsTotal.WithLabelValues("error").Inc()
		uc.logger.Error("Failed to persist booking", zap.String("lot_id", lot.ID), zap.Error(err))
		return nil, err
	}

	observability.BookingsTotal.WithLabelValues("confirmed").Inc()
	uc.logger.Info("Booking confirmed",
		zap.String("booking_id", booking.ID),
		zap.String("lot_id", lot.ID),
		zap.Float64("price", price),
		zap.Bool("peak", peak))

	return booking, nil
}

func (uc *BookingUseCase) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	return uc.bookingRepo.GetByID(ctx, id)
}

// Cancel moves an active booking to cancelled. Completed bookings stay as
// they are.
func (uc *BookingUseCase) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusActive {
		return nil, errors.ErrBookingNotActive
	}

	if err := uc.bookingRepo.UpdateStatus(ctx, id, domain.BookingStatusCancelled); err != nil {
		uc.logger.Error("Failed to cancel booking", zap.String("booking_id", id), zap.Error(err))
		return nil, err
	}

	booking.Status = domain.BookingStatusCancelled
	uc.logger.Info("Booking cancelled", zap.String("booking_id", id))
	return booking, nil
}

func (uc *BookingUseCase) ListByLot(ctx context.Context, lotID string) ([]domain.Booking, error) {
	bookings, err := uc.bookingRepo.ListByLot(ctx, lotID)
	if err != nil {
		uc.logger.Error("Failed to list lot bookings",
			zap.String("lot_id", lotID), zap.Error(err))
		return nil, err
	}
	return bookings, nil
}

func (uc *BookingUseCase) ListByManager(ctx context.Context, managerID string) ([]domain.Booking, error) {
	bookings, err := uc.bookingRepo.ListByManager(ctx, managerID)
	if err != nil {
		uc.logger.Error("Failed to list manager bookings",
			zap.String("manager_id", managerID), zap.Error(err))
		return nil, err
	}
	return bookings, nil
}

// CompleteExpired marks active bookings past their end time as completed.
// Called by the worker's cron job.
func (uc *BookingUseCase) CompleteExpired(ctx context.Context) (int64, error) {
	updated, err := uc.bookingRepo.CompleteExpired(ctx, time.Now().UTC())
	if err != nil {
		uc.logger.Error("Failed to complete expired bookings", zap.Error(err))
		return 0, err
	}
	if updated > 0 {
		uc.logger.Info("Expired bookings completed", zap.Int64("count", updated))
	}
	return updated, nil
}
