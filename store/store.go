// Package store exposes the record store behind a narrow interface so the
// booking, payment and webhook workflows can be exercised against in-memory
// fakes in tests. The production implementation delegates to the model
// packages over a pgx pool.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/sebiten/padel-app/models/booking_models"
	"github.com/sebiten/padel-app/models/court_models"
	"github.com/sebiten/padel-app/models/payment_models"
	"github.com/sebiten/padel-app/models/slot_models"
)

// Store is the transactional record store as seen by the controllers. Each
// call is its own atomic unit; multi-step workflows are not wrapped in a
// transaction here.
type Store interface {
	GetActiveCourts(ctx context.Context) ([]court_models.Court, error)
	GetCourtByID(ctx context.Context, courtID uuid.UUID) (*court_models.Court, error)

	GetActiveTimeSlots(ctx context.Context) ([]slot_models.TimeSlot, error)
	GetTimeSlotByID(ctx context.Context, slotID uuid.UUID) (*slot_models.TimeSlot, error)

	ActiveBookingExists(ctx context.Context, courtID uuid.UUID, date, startTime string) (bool, error)
	BookedStartTimes(ctx context.Context, courtID uuid.UUID, date string) ([]string, error)
	CreateBooking(ctx context.Context, booking *booking_models.Booking) (*booking_models.Booking, error)
	GetBookingByID(ctx context.Context, bookingID uuid.UUID) (*booking_models.Booking, error)
	DeleteBooking(ctx context.Context, bookingID uuid.UUID) error
	UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, from, to string) error
	GetBookingsByUser(ctx context.Context, userID uuid.UUID, status string, limit int) ([]booking_models.Booking, error)

	CreatePayment(ctx context.Context, payment *payment_models.Payment) (*payment_models.Payment, error)
	GetPaymentByBookingID(ctx context.Context, bookingID uuid.UUID) (*payment_models.Payment, error)
	SetPreferenceID(ctx context.Context, bookingID uuid.UUID, preferenceID string) error
	PaymentExistsByMPPaymentID(ctx context.Context, mpPaymentID string) (bool, error)
	ApprovePayment(ctx context.Context, bookingID uuid.UUID, mpPaymentID, payerEmail, paymentType string) error
}
