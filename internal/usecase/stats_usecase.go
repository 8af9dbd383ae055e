package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/usecase/dto"
)

// peakWindowHours is the width of the sliding window used to report a
// manager's busiest hours.
const peakWindowHours = 3

type StatsUseCase struct {
	lotRepo     repository.LotRepository
	bookingRepo repository.BookingRepository
	logger      *zap.Logger
}

func NewStatsUseCase(
	lotRepo repository.LotRepository,
	bookingRepo repository.BookingRepository,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		lotRepo:     lotRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Dashboard aggregates one manager's lots and bookings into the dashboard
// summary.
func (uc *StatsUseCase) Dashboard(ctx context.Context, managerID string) (*dto.StatsResponse, error) {
	lots, err := uc.lotRepo.ListByManager(ctx, managerID)
	if err != nil {
		uc.logger.Error("Failed to load manager lots", zap.Error(err))
		return nil, err
	}

	bookings, err := uc.bookingRepo.ListByManager(ctx, managerID)
	if err != nil {
		uc.logger.Error("Failed to load manager bookings", zap.Error(err))
		return nil, err
	}

	stats := Summarize(lots, bookings)

	return &dto.StatsResponse{
		DashboardStats: stats,
		Lots:           len(lots),
	}, nil
}

// Summarize computes the dashboard numbers: revenue over completed
// bookings, live occupancy over the lots' spot counts, and the 3-hour
// window holding the most booking starts.
func Summarize(lots []domain.ParkingLot, bookings []domain.Booking) domain.DashboardStats {
	var stats domain.DashboardStats

	for _, b := range bookings {
		stats.TotalBookings++
		switch b.Status {
		case domain.BookingStatusCompleted:
			stats.TotalRevenue += b.PricePaid
		case domain.BookingStatusActive:
			stats.ActiveBookings++
		}
	}

	for _, lot := range lots {
		stats.TotalSpots += lot.TotalSpots
		stats.AvailableSpots += lot.AvailableSpots
	}
	if stats.TotalSpots > 0 {
		occupied := stats.TotalSpots - stats.AvailableSpots
		stats.LiveOccupancyPct = float64(occupied) / float64(stats.TotalSpots) * 100
	}

	stats.PeakHours = PeakWindow(bookings)

	return stats
}

// PeakWindow finds the 3-hour window (wrapping past midnight) with the most
// booking starts and formats it as e.g. "6 PM - 9 PM". Returns "N/A" when
// there are no bookings.
func PeakWindow(bookings []domain.Booking) string {
	if len(bookings) == 0 {
		return "N/A"
	}

	var hourCounts [24]int
	for _, b := range bookings {
		hourCounts[b.StartTime.Hour()]++
	}

	peakStart := -1
	maxBookings := 0
	for i := 0; i < 24; i++ {
		window := hourCounts[i] + hourCounts[(i+1)%24] + hourCounts[(i+2)%24]
		if window > maxBookings {
			maxBookings = window
			peakStart = i
		}
	}

	if peakStart == -1 || maxBookings == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%s - %s", formatHour(peakStart), formatHour(peakStart+peakWindowHours))
}

func formatHour(hour int) string {
	h := hour % 24
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d %s", display, ampm)
}
