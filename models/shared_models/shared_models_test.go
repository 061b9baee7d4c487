package shared_models_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebiten/padel-app/models/shared_models"
)

func TestBookingTransitions(t *testing.T) {
	allowed := [][2]string{
		{shared_models.BookingStatusPending, shared_models.BookingStatusConfirmed},
		{shared_models.BookingStatusPending, shared_models.BookingStatusCancelled},
		{shared_models.BookingStatusConfirmed, shared_models.BookingStatusCompleted},
	}
	for _, pair := range allowed {
		assert.True(t, shared_models.CanTransitionBooking(pair[0], pair[1]), "%s -> %s should be allowed", pair[0], pair[1])
	}

	denied := [][2]string{
		{shared_models.BookingStatusConfirmed, shared_models.BookingStatusCancelled},
		{shared_models.BookingStatusConfirmed, shared_models.BookingStatusPending},
		{shared_models.BookingStatusCancelled, shared_models.BookingStatusConfirmed},
		{shared_models.BookingStatusCompleted, shared_models.BookingStatusPending},
		{shared_models.BookingStatusPending, shared_models.BookingStatusCompleted},
	}
	for _, pair := range denied {
		assert.False(t, shared_models.CanTransitionBooking(pair[0], pair[1]), "%s -> %s should be denied", pair[0], pair[1])
	}
}

func TestPaymentTransitions(t *testing.T) {
	assert.True(t, shared_models.CanTransitionPayment(shared_models.PaymentStatusPending, shared_models.PaymentStatusApproved))
	assert.True(t, shared_models.CanTransitionPayment(shared_models.PaymentStatusPending, shared_models.PaymentStatusRejected))

	// Terminal statuses never move again.
	assert.False(t, shared_models.CanTransitionPayment(shared_models.PaymentStatusApproved, shared_models.PaymentStatusRejected))
	assert.False(t, shared_models.CanTransitionPayment(shared_models.PaymentStatusRejected, shared_models.PaymentStatusApproved))
	assert.False(t, shared_models.CanTransitionPayment(shared_models.PaymentStatusApproved, shared_models.PaymentStatusPending))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userID := uuid.New()
	token, err := shared_models.GenerateAccessToken(userID, "ana@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := shared_models.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := shared_models.GenerateAccessToken(uuid.New(), "", -time.Hour)
	require.NoError(t, err)

	_, err = shared_models.ParseAccessToken(token)
	assert.Error(t, err)
}
