package webhook_controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sebiten/padel-app/clients"
	"github.com/sebiten/padel-app/logger"
	"github.com/sebiten/padel-app/models/booking_models"
	"github.com/sebiten/padel-app/models/shared_models"
	"github.com/sebiten/padel-app/store"
	"github.com/sebiten/padel-app/utils"
)

// Mailer sends the booking confirmation email. Sending is best-effort and
// never blocks reconciliation.
type Mailer interface {
	SendBookingConfirmed(toEmail string, booking *booking_models.Booking) error
}

// WebhookService reconciles asynchronous gateway notifications into the
// payment and booking records.
type WebhookService struct {
	Store  store.Store
	MP     clients.MercadoPagoClientWrapper
	Mailer Mailer
}

// NewWebhookService creates a new WebhookService.
func NewWebhookService(s store.Store, mp clients.MercadoPagoClientWrapper, mailer Mailer) *WebhookService {
	return &WebhookService{Store: s, MP: mp, Mailer: mailer}
}

// Notification is the inbound webhook body. Only the event kind and the
// gateway payment id are trusted; everything else is re-fetched.
type Notification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ProcessNotification drives the payment state machine from one inbound
// event. Non-payment events are discarded without touching the store.
// Returns utils.ErrNotFound when the owning booking cannot be resolved yet,
// so the sender redelivers later, and utils.ErrGatewayError when the
// authoritative detail cannot be fetched.
func (s *WebhookService) ProcessNotification(ctx context.Context, evt *Notification) error {
	if evt.Type != "payment" || evt.Data.ID == "" {
		logger.InfoLogger.Infof("Ignoring webhook event of type %q", evt.Type)
		return nil
	}

	detail, err := s.MP.GetPayment(ctx, evt.Data.ID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch gateway payment %s: %v", evt.Data.ID, err)
		return fmt.Errorf("%w: %v", utils.ErrGatewayError, err)
	}

	if detail.Status != "approved" {
		// Rejected and cancelled payments currently have no reconciliation
		// path; they are acknowledged without action.
		logger.InfoLogger.Infof("Gateway payment %d has status %q, no action taken", detail.ID, detail.Status)
		return nil
	}

	bookingID, ok := resolveBookingID(detail)
	if !ok {
		logger.WarnLogger.Warnf("Gateway payment %d carries no resolvable booking reference", detail.ID)
		return utils.ErrNotFound
	}

	booking, err := s.Store.GetBookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			// The notification can arrive before the local record commits;
			// a 404 makes the sender retry later.
			logger.WarnLogger.Warnf("Booking %s not found for gateway payment %d, possibly an early webhook", bookingID, detail.ID)
			return utils.ErrNotFound
		}
		return err
	}

	mpPaymentID := strconv.FormatInt(detail.ID, 10)

	exists, err := s.Store.PaymentExistsByMPPaymentID(ctx, mpPaymentID)
	if err != nil {
		return err
	}
	if exists {
		logger.InfoLogger.Infof("Gateway payment %s already recorded, skipping redelivery", mpPaymentID)
		return nil
	}

	if err := s.Store.ApprovePayment(ctx, bookingID, mpPaymentID, detail.Payer.Email, detail.PaymentTypeID); err != nil {
		return fmt.Errorf("failed to approve payment for booking %s: %w", bookingID, err)
	}

	if err := s.Store.UpdateBookingStatus(ctx, bookingID, shared_models.BookingStatusPending, shared_models.BookingStatusConfirmed); err != nil {
		return fmt.Errorf("failed to confirm booking %s: %w", bookingID, err)
	}

	logger.InfoLogger.Infof("Booking %s confirmed by gateway payment %s", bookingID, mpPaymentID)

	if s.Mailer != nil && detail.Payer.Email != "" {
		booking.Status = shared_models.BookingStatusConfirmed
		if err := s.Mailer.SendBookingConfirmed(detail.Payer.Email, booking); err != nil {
			logger.WarnLogger.Warnf("Failed to send confirmation email for booking %s: %v", bookingID, err)
		}
	}

	return nil
}

// resolveBookingID pulls the booking reference out of the gateway payment's
// correlation metadata, falling back to the external reference.
func resolveBookingID(detail *clients.PaymentDetail) (uuid.UUID, bool) {
	if raw, ok := detail.Metadata["booking_id"].(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			return id, true
		}
	}
	if ref := strings.TrimPrefix(detail.ExternalReference, "booking_"); ref != detail.ExternalReference {
		if id, err := uuid.Parse(ref); err == nil {
			return id, true
		}
	}
	return uuid.Nil, false
}

// HandleWebhook handles POST /api/webhook. The sender is always answered
// with 200 once processing completes, including intentional no-ops, to stop
// redelivery; only an unresolved record (404) or a gateway fetch failure
// (502) invites a retry.
func (s *WebhookService) HandleWebhook(c *gin.Context) {
	var evt Notification
	if err := c.ShouldBindJSON(&evt); err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "Ignored"})
		return
	}

	if err := s.ProcessNotification(c.Request.Context(), &evt); err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, utils.ErrGatewayError):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Gateway lookup failed"})
		default:
			logger.ErrorLogger.Errorf("Webhook processing failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook processing failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}
