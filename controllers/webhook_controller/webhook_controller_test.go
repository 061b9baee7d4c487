package webhook_controller_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebiten/padel-app/clients"
	"github.com/sebiten/padel-app/controllers/booking_controller"
	"github.com/sebiten/padel-app/controllers/webhook_controller"
	"github.com/sebiten/padel-app/models/booking_models"
	"github.com/sebiten/padel-app/models/court_models"
	"github.com/sebiten/padel-app/models/shared_models"
	"github.com/sebiten/padel-app/models/slot_models"
	"github.com/sebiten/padel-app/store"
	"github.com/sebiten/padel-app/utils"
)

// fakeGateway serves one canned payment detail per gateway payment id.
type fakeGateway struct {
	payments map[string]*clients.PaymentDetail
	fetchErr error
	calls    int
}

func (f *fakeGateway) CreatePreference(ctx context.Context, req *clients.PreferenceRequest) (*clients.PreferenceResponse, error) {
	return nil, errors.New("not used in reconciliation")
}

func (f *fakeGateway) GetPayment(ctx context.Context, paymentID string) (*clients.PaymentDetail, error) {
	f.calls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	detail, ok := f.payments[paymentID]
	if !ok {
		return nil, errors.New("payment API error: 404")
	}
	return detail, nil
}

// recordingMailer captures confirmation emails instead of sending them.
type recordingMailer struct {
	sent []string
}

func (m *recordingMailer) SendBookingConfirmed(toEmail string, booking *booking_models.Booking) error {
	m.sent = append(m.sent, toEmail)
	return nil
}

type webhookFixture struct {
	store   *store.Memory
	userID  uuid.UUID
	booking *booking_models.Booking
}

func newWebhookFixture(t *testing.T) *webhookFixture {
	t.Helper()

	mem := store.NewMemory()
	userID := uuid.New()

	court, err := court_models.NewCourt("Cancha Cubierta", 2, "indoor", 2500, nil, "")
	require.NoError(t, err)
	mem.AddCourt(*court)

	slot, err := slot_models.NewTimeSlot("10:00", "11:00", false)
	require.NoError(t, err)
	mem.AddTimeSlot(*slot)

	bookingSvc := booking_controller.NewBookingService(mem)
	booking, err := bookingSvc.Create(context.Background(), userID, &booking_controller.CreateBookingRequest{
		CourtID: court.ID,
		Date:    "2026-09-10",
		SlotID:  slot.ID,
	})
	require.NoError(t, err)

	return &webhookFixture{store: mem, userID: userID, booking: booking}
}

func approvedDetail(bookingID uuid.UUID, gatewayID int64) *clients.PaymentDetail {
	return &clients.PaymentDetail{
		ID:                gatewayID,
		Status:            "approved",
		TransactionAmount: 2500,
		ExternalReference: "booking_" + bookingID.String(),
		PaymentTypeID:     "credit_card",
		Payer:             clients.PaymentPayer{Email: "ana@example.com"},
		Metadata:          map[string]interface{}{"booking_id": bookingID.String()},
	}
}

func paymentEvent(id string) *webhook_controller.Notification {
	evt := &webhook_controller.Notification{Type: "payment"}
	evt.Data.ID = id
	return evt
}

func TestProcessNotification(t *testing.T) {
	ctx := context.Background()

	t.Run("NonPaymentEventIsIgnored", func(t *testing.T) {
		f := newWebhookFixture(t)
		gw := &fakeGateway{}
		svc := webhook_controller.NewWebhookService(f.store, gw, nil)

		evt := &webhook_controller.Notification{Type: "merchant_order"}
		evt.Data.ID = "999"
		require.NoError(t, svc.ProcessNotification(ctx, evt))

		// The gateway was never consulted and the booking is untouched.
		assert.Zero(t, gw.calls)
		stored, err := f.store.GetBookingByID(ctx, f.booking.ID)
		require.NoError(t, err)
		assert.Equal(t, shared_models.BookingStatusPending, stored.Status)
	})

	t.Run("ApprovedPaymentConfirmsBooking", func(t *testing.T) {
		f := newWebhookFixture(t)
		gw := &fakeGateway{payments: map[string]*clients.PaymentDetail{
			"555": approvedDetail(f.booking.ID, 555),
		}}
		mailer := &recordingMailer{}
		svc := webhook_controller.NewWebhookService(f.store, gw, mailer)

		require.NoError(t, svc.ProcessNotification(ctx, paymentEvent("555")))

		stored, err := f.store.GetBookingByID(ctx, f.booking.ID)
		require.NoError(t, err)
		assert.Equal(t, shared_models.BookingStatusConfirmed, stored.Status)

		payment, err := f.store.GetPaymentByBookingID(ctx, f.booking.ID)
		require.NoError(t, err)
		assert.Equal(t, shared_models.PaymentStatusApproved, payment.Status)
		require.NotNil(t, payment.MPPaymentID)
		assert.Equal(t, "555", *payment.MPPaymentID)
		require.NotNil(t, payment.PayerEmail)
		assert.Equal(t, "ana@example.com", *payment.PayerEmail)
		require.NotNil(t, payment.PaymentType)
		assert.Equal(t, "credit_card", *payment.PaymentType)

		assert.Equal(t, []string{"ana@example.com"}, mailer.sent)
	})

	t.Run("RedeliveryIsANoOp", func(t *testing.T) {
		f := newWebhookFixture(t)
		gw := &fakeGateway{payments: map[string]*clients.PaymentDetail{
			"555": approvedDetail(f.booking.ID, 555),
		}}
		mailer := &recordingMailer{}
		svc := webhook_controller.NewWebhookService(f.store, gw, mailer)

		require.NoError(t, svc.ProcessNotification(ctx, paymentEvent("555")))
		require.NoError(t, svc.ProcessNotification(ctx, paymentEvent("555")))

		stored, err := f.store.GetBookingByID(ctx, f.booking.ID)
		require.NoError(t, err)
		assert.Equal(t, shared_models.BookingStatusConfirmed, stored.Status)

		// Only the first delivery sent mail.
		assert.Len(t, mailer.sent, 1)
	})

	t.Run("NonApprovedStatusIsAcknowledgedWithoutAction", func(t *testing.T) {
		f := newWebhookFixture(t)
		detail := approvedDetail(f.booking.ID, 777)
		detail.Status = "rejected"
		gw := &fakeGateway{payments: map[string]*clients.PaymentDetail{"777": detail}}
		svc := webhook_controller.NewWebhookService(f.store, gw, nil)

		require.NoError(t, svc.ProcessNotification(ctx, paymentEvent("777")))

		stored, err := f.store.GetBookingByID(ctx, f.booking.ID)
		require.NoError(t, err)
		assert.Equal(t, shared_models.BookingStatusPending, stored.Status)
	})

	t.Run("FallsBackToExternalReference", func(t *testing.T) {
		f := newWebhookFixture(t)
		detail := approvedDetail(f.booking.ID, 888)
		detail.Metadata = nil
		gw := &fakeGateway{payments: map[string]*clients.PaymentDetail{"888": detail}}
		svc := webhook_controller.NewWebhookService(f.store, gw, nil)

		require.NoError(t, svc.ProcessNotification(ctx, paymentEvent("888")))

		stored, err := f.store.GetBookingByID(ctx, f.booking.ID)
		require.NoError(t, err)
		assert.Equal(t, shared_models.BookingStatusConfirmed, stored.Status)
	})

	t.Run("UnresolvableBookingReference", func(t *testing.T) {
		f := newWebhookFixture(t)
		detail := approvedDetail(f.booking.ID, 999)
		detail.Metadata = nil
		detail.ExternalReference = "order-42"
		gw := &fakeGateway{payments: map[string]*clients.PaymentDetail{"999": detail}}
		svc := webhook_controller.NewWebhookService(f.store, gw, nil)

		err := svc.ProcessNotification(ctx, paymentEvent("999"))
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("UnknownBookingInvitesRetry", func(t *testing.T) {
		f := newWebhookFixture(t)
		gw := &fakeGateway{payments: map[string]*clients.PaymentDetail{
			"111": approvedDetail(uuid.New(), 111),
		}}
		svc := webhook_controller.NewWebhookService(f.store, gw, nil)

		err := svc.ProcessNotification(ctx, paymentEvent("111"))
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("GatewayFetchFailure", func(t *testing.T) {
		f := newWebhookFixture(t)
		gw := &fakeGateway{fetchErr: errors.New("timeout")}
		svc := webhook_controller.NewWebhookService(f.store, gw, nil)

		err := svc.ProcessNotification(ctx, paymentEvent("555"))
		assert.ErrorIs(t, err, utils.ErrGatewayError)
	})
}

func TestHandleWebhook(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(svc *webhook_controller.WebhookService) *gin.Engine {
		r := gin.New()
		r.POST("/api/webhook", svc.HandleWebhook)
		return r
	}

	post := func(r *gin.Engine, body string) *httptest.ResponseRecorder {
		req, _ := http.NewRequest("POST", "/api/webhook", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("MalformedBodyIsAcknowledged", func(t *testing.T) {
		f := newWebhookFixture(t)
		svc := webhook_controller.NewWebhookService(f.store, &fakeGateway{}, nil)

		w := post(newRouter(svc), "not json")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Ignored")
	})

	t.Run("ApprovedPaymentReturnsOK", func(t *testing.T) {
		f := newWebhookFixture(t)
		gw := &fakeGateway{payments: map[string]*clients.PaymentDetail{
			"555": approvedDetail(f.booking.ID, 555),
		}}
		svc := webhook_controller.NewWebhookService(f.store, gw, nil)

		w := post(newRouter(svc), `{"type":"payment","data":{"id":"555"}}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("UnknownBookingReturnsNotFound", func(t *testing.T) {
		f := newWebhookFixture(t)
		gw := &fakeGateway{payments: map[string]*clients.PaymentDetail{
			"111": approvedDetail(uuid.New(), 111),
		}}
		svc := webhook_controller.NewWebhookService(f.store, gw, nil)

		w := post(newRouter(svc), `{"type":"payment","data":{"id":"111"}}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GatewayFailureReturnsBadGateway", func(t *testing.T) {
		f := newWebhookFixture(t)
		gw := &fakeGateway{fetchErr: errors.New("timeout")}
		svc := webhook_controller.NewWebhookService(f.store, gw, nil)

		w := post(newRouter(svc), `{"type":"payment","data":{"id":"555"}}`)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
