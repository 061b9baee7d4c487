package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sebiten/padel-app/models/booking_models"
	"github.com/sebiten/padel-app/models/court_models"
	"github.com/sebiten/padel-app/models/payment_models"
	"github.com/sebiten/padel-app/models/slot_models"
)

// Postgres implements Store over a pgx connection pool.
type Postgres struct {
	DB *pgxpool.Pool
}

// NewPostgres creates a Store backed by the given pool.
func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{DB: db}
}

func (p *Postgres) GetActiveCourts(ctx context.Context) ([]court_models.Court, error) {
	return court_models.GetActiveCourts(ctx, p.DB)
}

func (p *Postgres) GetCourtByID(ctx context.Context, courtID uuid.UUID) (*court_models.Court, error) {
	return court_models.GetCourtByID(ctx, p.DB, courtID)
}

func (p *Postgres) GetActiveTimeSlots(ctx context.Context) ([]slot_models.TimeSlot, error) {
	return slot_models.GetActiveTimeSlots(ctx, p.DB)
}

func (p *Postgres) GetTimeSlotByID(ctx context.Context, slotID uuid.UUID) (*slot_models.TimeSlot, error) {
	return slot_models.GetTimeSlotByID(ctx, p.DB, slotID)
}

func (p *Postgres) ActiveBookingExists(ctx context.Context, courtID uuid.UUID, date, startTime string) (bool, error) {
	return booking_models.ActiveBookingExists(ctx, p.DB, courtID, date, startTime)
}

func (p *Postgres) BookedStartTimes(ctx context.Context, courtID uuid.UUID, date string) ([]string, error) {
	return booking_models.BookedStartTimes(ctx, p.DB, courtID, date)
}

func (p *Postgres) CreateBooking(ctx context.Context, booking *booking_models.Booking) (*booking_models.Booking, error) {
	return booking_models.CreateBooking(ctx, p.DB, booking)
}

func (p *Postgres) GetBookingByID(ctx context.Context, bookingID uuid.UUID) (*booking_models.Booking, error) {
	return booking_models.GetBookingByID(ctx, p.DB, bookingID)
}

func (p *Postgres) DeleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	return booking_models.DeleteBooking(ctx, p.DB, bookingID)
}

func (p *Postgres) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, from, to string) error {
	return booking_models.UpdateBookingStatus(ctx, p.DB, bookingID, from, to)
}

func (p *Postgres) GetBookingsByUser(ctx context.Context, userID uuid.UUID, status string, limit int) ([]booking_models.Booking, error) {
	return booking_models.GetBookingsByUser(ctx, p.DB, userID, status, limit)
}

func (p *Postgres) CreatePayment(ctx context.Context, payment *payment_models.Payment) (*payment_models.Payment, error) {
	return payment_models.CreatePayment(ctx, p.DB, payment)
}

func (p *Postgres) GetPaymentByBookingID(ctx context.Context, bookingID uuid.UUID) (*payment_models.Payment, error) {
	return payment_models.GetPaymentByBookingID(ctx, p.DB, bookingID)
}

func (p *Postgres) SetPreferenceID(ctx context.Context, bookingID uuid.UUID, preferenceID string) error {
	return payment_models.SetPreferenceID(ctx, p.DB, bookingID, preferenceID)
}

func (p *Postgres) PaymentExistsByMPPaymentID(ctx context.Context, mpPaymentID string) (bool, error) {
	return payment_models.ExistsByMPPaymentID(ctx, p.DB, mpPaymentID)
}

func (p *Postgres) ApprovePayment(ctx context.Context, bookingID uuid.UUID, mpPaymentID, payerEmail, paymentType string) error {
	return payment_models.ApprovePayment(ctx, p.DB, bookingID, mpPaymentID, payerEmail, paymentType)
}
