package payment_controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sebiten/padel-app/clients"
	"github.com/sebiten/padel-app/logger"
	"github.com/sebiten/padel-app/models/shared_models"
	"github.com/sebiten/padel-app/store"
	"github.com/sebiten/padel-app/utils"
)

// PaymentService builds checkout sessions for pending bookings.
type PaymentService struct {
	Store   store.Store
	MP      clients.MercadoPagoClientWrapper
	SiteURL string
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(s store.Store, mp clients.MercadoPagoClientWrapper, siteURL string) *PaymentService {
	return &PaymentService{Store: s, MP: mp, SiteURL: siteURL}
}

// CreateCheckoutRequest is the inbound checkout creation body.
type CreateCheckoutRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
}

// CheckoutResult carries the checkout link and the gateway preference id.
type CheckoutResult struct {
	InitPoint    string `json:"init_point"`
	PreferenceID string `json:"preference_id"`
}

// CreateCheckout loads the caller's pending booking and requests a checkout
// preference from the gateway. A booking that is missing or belongs to
// someone else is NotFound; one that already left pending is
// AlreadyProcessed. One outbound gateway call per invocation, with a fresh
// idempotency key each time.
func (s *PaymentService) CreateCheckout(ctx context.Context, userID uuid.UUID, payerEmail string, bookingID uuid.UUID) (*CheckoutResult, error) {
	booking, err := s.Store.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, utils.ErrNotFound
	}
	if booking.Status != shared_models.BookingStatusPending {
		return nil, utils.ErrAlreadyProcessed
	}

	court, err := s.Store.GetCourtByID(ctx, booking.CourtID)
	if err != nil {
		return nil, err
	}

	req := &clients.PreferenceRequest{
		Items: []clients.PreferenceItem{
			{
				ID:          fmt.Sprintf("booking-%s", booking.ID),
				Title:       fmt.Sprintf("Reserva Cancha %s #%d", court.Name, court.Number),
				Description: fmt.Sprintf("Reserva para el %s de %s a %s", booking.Date, booking.StartTime, booking.EndTime),
				CategoryID:  "services",
				Quantity:    1,
				UnitPrice:   booking.TotalPrice,
			},
		},
		Payer:             clients.PreferencePayer{Email: payerEmail},
		ExternalReference: fmt.Sprintf("booking_%s", booking.ID),
		NotificationURL:   fmt.Sprintf("%s/api/webhook", s.SiteURL),
		BackURLs: clients.PreferenceBackURLs{
			Success: fmt.Sprintf("%s/reserva/%s/confirmacion", s.SiteURL, booking.ID),
			Failure: fmt.Sprintf("%s/reserva/%s/pago?error=payment_failed", s.SiteURL, booking.ID),
			Pending: fmt.Sprintf("%s/reserva/%s/pago?status=pending", s.SiteURL, booking.ID),
		},
		AutoReturn: "approved",
		Metadata: map[string]interface{}{
			"booking_id": booking.ID.String(),
			"user_id":    booking.UserID.String(),
			"court_id":   booking.CourtID.String(),
			"date":       booking.Date,
			"start_time": booking.StartTime,
		},
	}

	pref, err := s.MP.CreatePreference(ctx, req)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to create checkout preference for booking %s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: %v", utils.ErrGatewayError, err)
	}
	if pref.InitPoint == "" {
		logger.ErrorLogger.Errorf("Gateway response for booking %s has no checkout link", booking.ID)
		return nil, fmt.Errorf("%w: missing checkout link", utils.ErrGatewayError)
	}

	// The link is still returned when persisting the preference id fails;
	// the reconciler resolves the booking from metadata, not from this id.
	if err := s.Store.SetPreferenceID(ctx, booking.ID, pref.ID); err != nil {
		logger.ErrorLogger.Errorf("Failed to persist preference id for booking %s: %v", booking.ID, err)
	}

	logger.InfoLogger.Infof("Checkout preference %s created for booking %s", pref.ID, booking.ID)
	return &CheckoutResult{InitPoint: pref.InitPoint, PreferenceID: pref.ID}, nil
}

// CreatePayment handles POST /payments/checkout.
func (s *PaymentService) CreatePayment(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHORIZED", "error": err.Error()})
		return
	}

	var req CreateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": "INVALID_BODY", "error": "Invalid request body", "details": err.Error()})
		return
	}

	result, err := s.CreateCheckout(c.Request.Context(), userID, utils.GetUserEmailFromContext(c), req.BookingID)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "error": "Booking not found"})
		case errors.Is(err, utils.ErrAlreadyProcessed):
			c.JSON(http.StatusBadRequest, gin.H{"code": "ALREADY_PROCESSED", "error": "Booking was already processed"})
		case errors.Is(err, utils.ErrGatewayError):
			c.JSON(http.StatusBadGateway, gin.H{"code": "GATEWAY_ERROR", "error": "Could not generate payment link"})
		default:
			logger.ErrorLogger.Errorf("Failed to create checkout: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"code": "SERVER_ERROR", "error": "Failed to create checkout"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
