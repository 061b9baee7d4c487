package booking_controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sebiten/padel-app/logger"
	"github.com/sebiten/padel-app/models/shared_models"
	"github.com/sebiten/padel-app/utils"
)

// GetAvailability handles GET /bookings/availability?court_id=...&date=...
func (s *BookingService) GetAvailability(c *gin.Context) {
	courtID, err := uuid.Parse(c.Query("court_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_COURT", "error": "court_id must be a valid UUID"})
		return
	}

	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_DATE", "error": "date must be formatted YYYY-MM-DD"})
		return
	}

	slots, err := s.Availability(c.Request.Context(), courtID, date)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Court not found"})
			return
		}
		logger.ErrorLogger.Errorf("Failed to compute availability: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": "SERVER_ERROR", "error": "Failed to compute availability"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"court_id": courtID, "date": date, "available_slots": slots})
}

// CreateBooking handles POST /bookings.
func (s *BookingService) CreateBooking(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "error": err.Error()})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_BODY", "error": "Invalid request body", "details": err.Error()})
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_DATE", "error": "date must be formatted YYYY-MM-DD"})
		return
	}

	booking, err := s.Create(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Court or time slot not found"})
		case errors.Is(err, utils.ErrSlotUnavailable):
			// Losing the race refreshes the visible availability set.
			slots, availErr := s.Availability(c.Request.Context(), req.CourtID, req.Date)
			if availErr != nil {
				slots = nil
			}
			c.JSON(http.StatusConflict, gin.H{
				"code":            "SLOT_UNAVAILABLE",
				"error":           "Time slot is no longer available, please pick another",
				"available_slots": slots,
			})
		case errors.Is(err, utils.ErrPaymentRecordCreationFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"code": "PAYMENT_RECORD_FAILED", "error": "Failed to register the payment record, booking was rolled back"})
		default:
			logger.ErrorLogger.Errorf("Failed to create booking: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"code": "SERVER_ERROR", "error": "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Booking created", "booking": booking})
}

// GetMyBookings handles GET /bookings/my?status=...&limit=...
func (s *BookingService) GetMyBookings(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "error": err.Error()})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	bookings, err := s.Store.GetBookingsByUser(c.Request.Context(), userID, c.Query("status"), limit)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch bookings for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": "SERVER_ERROR", "error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetBookingDetails handles GET /bookings/:booking_id. Foreign bookings are
// reported as absent, not forbidden.
func (s *BookingService) GetBookingDetails(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "error": err.Error()})
		return
	}

	bookingID, err := uuid.Parse(c.Param("booking_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "booking_id must be a valid UUID"})
		return
	}

	booking, err := s.Store.GetBookingByID(c.Request.Context(), bookingID)
	if err != nil || booking.UserID != userID {
		if err != nil && !errors.Is(err, utils.ErrNotFound) {
			logger.ErrorLogger.Errorf("Failed to fetch booking %s: %v", bookingID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"code": "SERVER_ERROR", "error": "Failed to fetch booking"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Booking not found"})
		return
	}

	payment, err := s.Store.GetPaymentByBookingID(c.Request.Context(), bookingID)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		logger.ErrorLogger.Errorf("Failed to fetch payment for booking %s: %v", bookingID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": "SERVER_ERROR", "error": "Failed to fetch payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking, "payment": payment})
}

// CancelBooking handles PATCH /bookings/:booking_id/cancel. Only pending
// bookings can be cancelled by the user.
func (s *BookingService) CancelBooking(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "error": err.Error()})
		return
	}

	bookingID, err := uuid.Parse(c.Param("booking_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_ID", "error": "booking_id must be a valid UUID"})
		return
	}

	booking, err := s.Store.GetBookingByID(c.Request.Context(), bookingID)
	if err != nil || booking.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Booking not found"})
		return
	}

	if booking.Status != shared_models.BookingStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"code": "ALREADY_PROCESSED", "error": "Booking was already processed"})
		return
	}

	if err := s.Store.UpdateBookingStatus(c.Request.Context(), bookingID, shared_models.BookingStatusPending, shared_models.BookingStatusCancelled); err != nil {
		logger.ErrorLogger.Errorf("Failed to cancel booking %s: %v", bookingID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"code": "SERVER_ERROR", "error": "Failed to cancel booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}
