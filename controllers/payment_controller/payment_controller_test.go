package payment_controller_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebiten/padel-app/clients"
	"github.com/sebiten/padel-app/controllers/booking_controller"
	"github.com/sebiten/padel-app/controllers/payment_controller"
	"github.com/sebiten/padel-app/models/court_models"
	"github.com/sebiten/padel-app/models/shared_models"
	"github.com/sebiten/padel-app/models/slot_models"
	"github.com/sebiten/padel-app/store"
	"github.com/sebiten/padel-app/utils"
)

// fakeGateway records the last preference request and answers with canned
// responses.
type fakeGateway struct {
	lastPreference *clients.PreferenceRequest
	preferenceErr  error
	initPoint      string
}

func (f *fakeGateway) CreatePreference(ctx context.Context, req *clients.PreferenceRequest) (*clients.PreferenceResponse, error) {
	f.lastPreference = req
	if f.preferenceErr != nil {
		return nil, f.preferenceErr
	}
	return &clients.PreferenceResponse{ID: "pref-123", InitPoint: f.initPoint}, nil
}

func (f *fakeGateway) GetPayment(ctx context.Context, paymentID string) (*clients.PaymentDetail, error) {
	return nil, errors.New("not used in checkout")
}

type checkoutFixture struct {
	store   *store.Memory
	userID  uuid.UUID
	court   court_models.Court
	booking uuid.UUID
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()

	mem := store.NewMemory()
	userID := uuid.New()

	peak := int64(2500)
	court, err := court_models.NewCourt("Cancha Principal", 1, "outdoor", 2000, &peak, "")
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

	return &checkoutFixture{store: mem, userID: userID, court: *court, booking: booking.ID}
}

func TestCreateCheckout(t *testing.T) {
	ctx := context.Background()
	siteURL := "https://padel.example.com"

	t.Run("BuildsPreferenceAndReturnsLink", func(t *testing.T) {
		f := newCheckoutFixture(t)
		gw := &fakeGateway{initPoint: "https://mp.example.com/init/abc"}
		svc := payment_controller.NewPaymentService(f.store, gw, siteURL)

		result, err := svc.CreateCheckout(ctx, f.userID, "ana@example.com", f.booking)
		require.NoError(t, err)
		assert.Equal(t, "https://mp.example.com/init/abc", result.InitPoint)
		assert.Equal(t, "pref-123", result.PreferenceID)

		req := gw.lastPreference
		require.NotNil(t, req)
		require.Len(t, req.Items, 1)
		assert.Equal(t, "Reserva Cancha Cancha Principal #1", req.Items[0].Title)
		assert.Equal(t, int64(2000), req.Items[0].UnitPrice)
		assert.Equal(t, 1, req.Items[0].Quantity)
		assert.Equal(t, "ana@example.com", req.Payer.Email)
		assert.Equal(t, fmt.Sprintf("booking_%s", f.booking), req.ExternalReference)
		assert.Equal(t, siteURL+"/api/webhook", req.NotificationURL)
		assert.Equal(t, fmt.Sprintf("%s/reserva/%s/confirmacion", siteURL, f.booking), req.BackURLs.Success)
		assert.Equal(t, "approved", req.AutoReturn)
		assert.Equal(t, f.booking.String(), req.Metadata["booking_id"])
	})

	t.Run("PreferenceIDIsPersisted", func(t *testing.T) {
		f := newCheckoutFixture(t)
		gw := &fakeGateway{initPoint: "https://mp.example.com/init/abc"}
		svc := payment_controller.NewPaymentService(f.store, gw, siteURL)

		_, err := svc.CreateCheckout(ctx, f.userID, "", f.booking)
		require.NoError(t, err)

		payment, err := f.store.GetPaymentByBookingID(ctx, f.booking)
		require.NoError(t, err)
		require.NotNil(t, payment.MPPreferenceID)
		assert.Equal(t, "pref-123", *payment.MPPreferenceID)
	})

	t.Run("ForeignBookingLooksAbsent", func(t *testing.T) {
		f := newCheckoutFixture(t)
		svc := payment_controller.NewPaymentService(f.store, &fakeGateway{initPoint: "x"}, siteURL)

		_, err := svc.CreateCheckout(ctx, uuid.New(), "", f.booking)
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("NonPendingBookingIsAlreadyProcessed", func(t *testing.T) {
		f := newCheckoutFixture(t)
		require.NoError(t, f.store.UpdateBookingStatus(ctx, f.booking, shared_models.BookingStatusPending, shared_models.BookingStatusConfirmed))
		svc := payment_controller.NewPaymentService(f.store, &fakeGateway{initPoint: "x"}, siteURL)

		_, err := svc.CreateCheckout(ctx, f.userID, "", f.booking)
		assert.ErrorIs(t, err, utils.ErrAlreadyProcessed)
	})

	t.Run("GatewayFailure", func(t *testing.T) {
		f := newCheckoutFixture(t)
		gw := &fakeGateway{preferenceErr: errors.New("503 service unavailable")}
		svc := payment_controller.NewPaymentService(f.store, gw, siteURL)

		_, err := svc.CreateCheckout(ctx, f.userID, "", f.booking)
		assert.ErrorIs(t, err, utils.ErrGatewayError)
	})

	t.Run("MissingCheckoutLinkIsGatewayError", func(t *testing.T) {
		f := newCheckoutFixture(t)
		gw := &fakeGateway{initPoint: ""}
		svc := payment_controller.NewPaymentService(f.store, gw, siteURL)

		_, err := svc.CreateCheckout(ctx, f.userID, "", f.booking)
		assert.ErrorIs(t, err, utils.ErrGatewayError)
	})
}
