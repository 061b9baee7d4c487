package court_models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebiten/padel-app/models/court_models"
)

func TestNewCourt(t *testing.T) {
	peak := int64(2500)
	court, err := court_models.NewCourt("Cancha Principal", 1, "outdoor", 2000, &peak, "Césped sintético")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, court.ID)
	assert.True(t, court.IsActive)
	assert.Equal(t, int64(2000), court.PricePerHour)
	require.NotNil(t, court.PeakPricePerHour)
	assert.Equal(t, int64(2500), *court.PeakPricePerHour)
}

func TestPriceForSlot(t *testing.T) {
	peak := int64(2500)

	t.Run("OffPeakUsesBasePrice", func(t *testing.T) {
		court := court_models.Court{PricePerHour: 2000, PeakPricePerHour: &peak}
		assert.Equal(t, int64(2000), court.PriceForSlot(false))
	})

	t.Run("PeakUsesPeakPrice", func(t *testing.T) {
		court := court_models.Court{PricePerHour: 2000, PeakPricePerHour: &peak}
		assert.Equal(t, int64(2500), court.PriceForSlot(true))
	})

	t.Run("PeakWithoutPeakPriceFallsBackToBase", func(t *testing.T) {
		court := court_models.Court{PricePerHour: 2000}
		assert.Equal(t, int64(2000), court.PriceForSlot(true))
	})
}
