package booking_controller

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sebiten/padel-app/logger"
	"github.com/sebiten/padel-app/models/booking_models"
	"github.com/sebiten/padel-app/models/payment_models"
	"github.com/sebiten/padel-app/models/slot_models"
	"github.com/sebiten/padel-app/store"
	"github.com/sebiten/padel-app/utils"
)

const bookingWorkflowTimeout = 60 * time.Second

// BookingService handles availability checks and the booking creation
// workflow.
type BookingService struct {
	Store store.Store
}

// NewBookingService creates a new BookingService.
func NewBookingService(s store.Store) *BookingService {
	return &BookingService{Store: s}
}

// CreateBookingRequest is the inbound booking creation body.
type CreateBookingRequest struct {
	CourtID     uuid.UUID `json:"court_id" binding:"required"`
	Date        string    `json:"date" binding:"required"`
	SlotID      uuid.UUID `json:"slot_id" binding:"required"`
	PlayerNames []string  `json:"player_names"`
	Notes       string    `json:"notes"`
}

// Availability returns the catalog slots whose start time is not taken by an
// active booking for the court and date. When the booked-times query fails,
// the full catalog is returned instead of an error: availability over
// consistency, a known double-booking risk kept on purpose.
func (s *BookingService) Availability(ctx context.Context, courtID uuid.UUID, date string) ([]slot_models.TimeSlot, error) {
	if _, err := s.Store.GetCourtByID(ctx, courtID); err != nil {
		return nil, err
	}

	catalog, err := s.Store.GetActiveTimeSlots(ctx)
	if err != nil {
		return nil, err
	}

	booked, err := s.Store.BookedStartTimes(ctx, courtID, date)
	if err != nil {
		logger.WarnLogger.Warnf("Availability check failed open for court %s on %s: %v", courtID, date, err)
		return catalog, nil
	}

	taken := make(map[string]bool, len(booked))
	for _, startTime := range booked {
		taken[startTime] = true
	}

	free := make([]slot_models.TimeSlot, 0, len(catalog))
	for _, slot := range catalog {
		if !taken[slot.StartTime] {
			free = append(free, slot)
		}
	}

	return free, nil
}

// Create runs the booking creation workflow: re-check the slot, compute the
// price, insert the pending booking, insert the paired pending payment, and
// delete the booking again when the payment insert fails. The steps are not
// one transaction; the compensating delete is the only consistency guard, so
// a crash between the two inserts leaves an orphan booking.
func (s *BookingService) Create(ctx context.Context, userID uuid.UUID, req *CreateBookingRequest) (*booking_models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, bookingWorkflowTimeout)
	defer cancel()

	court, err := s.Store.GetCourtByID(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}

	slot, err := s.Store.GetTimeSlotByID(ctx, req.SlotID)
	if err != nil {
		return nil, err
	}

	taken, err := s.Store.ActiveBookingExists(ctx, court.ID, req.Date, slot.StartTime)
	if err != nil {
		return nil, fmt.Errorf("failed to re-check slot availability: %w", err)
	}
	if taken {
		logger.WarnLogger.Warnf("Slot %s on %s for court %s lost to a concurrent booking", slot.StartTime, req.Date, court.ID)
		return nil, utils.ErrSlotUnavailable
	}

	totalPrice := court.PriceForSlot(slot.IsPeak)

	booking, err := booking_models.NewBooking(userID, court.ID, req.Date, slot.StartTime, slot.EndTime, totalPrice, req.PlayerNames, req.Notes)
	if err != nil {
		return nil, fmt.Errorf("internal error creating booking: %w", err)
	}

	created, err := s.Store.CreateBooking(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create pending booking: %w", err)
	}

	payment, err := payment_models.NewPayment(created.ID, userID, totalPrice)
	if err != nil {
		return nil, fmt.Errorf("internal error creating payment record: %w", err)
	}

	if _, err := s.Store.CreatePayment(ctx, payment); err != nil {
		logger.ErrorLogger.Errorf("Failed to create payment record for booking %s, rolling booking back: %v", created.ID, err)
		if delErr := s.Store.DeleteBooking(ctx, created.ID); delErr != nil {
			logger.ErrorLogger.Errorf("Critical: compensating delete of booking %s failed: %v", created.ID, delErr)
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrPaymentRecordCreationFailed, err)
	}

	return created, nil
}
