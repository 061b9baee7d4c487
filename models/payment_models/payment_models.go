package payment_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sebiten/padel-app/logger"
	"github.com/sebiten/padel-app/models/shared_models"
	"github.com/sebiten/padel-app/utils"
)

// Payment is the record paired with a booking. It is created pending
// alongside the booking and moved to a terminal status at most once by the
// webhook reconciler. MPPaymentID is the gateway's payment id; once recorded
// it uniquely identifies this payment, and a repeat notification for the same
// id is a no-op.
type Payment struct {
	ID             uuid.UUID `json:"id"`
	BookingID      uuid.UUID `json:"booking_id"`
	UserID         uuid.UUID `json:"user_id"`
	Amount         int64     `json:"amount"`
	Status         string    `json:"status"`
	MPPreferenceID *string   `json:"mp_preference_id"`
	MPPaymentID    *string   `json:"mp_payment_id"`
	PayerEmail     *string   `json:"payer_email"`
	PaymentType    *string   `json:"payment_type"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewPayment creates a pending Payment struct for a booking.
func NewPayment(bookingID, userID uuid.UUID, amount int64) (*Payment, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for payment: %w", err)
	}
	now := time.Now()
	return &Payment{
		ID:        id,
		BookingID: bookingID,
		UserID:    userID,
		Amount:    amount,
		Status:    shared_models.PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CreatePayment inserts a new payment record into the database.
func CreatePayment(ctx context.Context, db *pgxpool.Pool, payment *Payment) (*Payment, error) {
	logger.InfoLogger.Infof("Attempting to create payment record for booking %s", payment.BookingID)

	query := `
		INSERT INTO payments (
			id, booking_id, user_id, amount, status,
			mp_preference_id, mp_payment_id, payer_email, payment_type,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		) RETURNING id`

	var insertedID uuid.UUID
	err := db.QueryRow(ctx, query,
		payment.ID, payment.BookingID, payment.UserID, payment.Amount, payment.Status,
		payment.MPPreferenceID, payment.MPPaymentID, payment.PayerEmail, payment.PaymentType,
		payment.CreatedAt, payment.UpdatedAt,
	).Scan(&insertedID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert payment for booking %s: %v", payment.BookingID, err)
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	payment.ID = insertedID
	logger.InfoLogger.Infof("Payment %s created for booking %s", payment.ID, payment.BookingID)
	return payment, nil
}

// GetPaymentByBookingID fetches the payment record paired with a booking.
func GetPaymentByBookingID(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID) (*Payment, error) {
	payment := &Payment{}
	query := `
		SELECT id, booking_id, user_id, amount, status,
		       mp_preference_id, mp_payment_id, payer_email, payment_type,
		       created_at, updated_at
		FROM payments
		WHERE booking_id = $1`

	err := db.QueryRow(ctx, query, bookingID).Scan(
		&payment.ID, &payment.BookingID, &payment.UserID, &payment.Amount, &payment.Status,
		&payment.MPPreferenceID, &payment.MPPaymentID, &payment.PayerEmail, &payment.PaymentType,
		&payment.CreatedAt, &payment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnLogger.Warnf("Payment for booking %s not found", bookingID)
			return nil, utils.ErrNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch payment for booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("database error fetching payment: %w", err)
	}

	return payment, nil
}

// SetPreferenceID records the gateway checkout-preference id onto the payment
// paired with the booking.
func SetPreferenceID(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID, preferenceID string) error {
	query := `
		UPDATE payments
		SET mp_preference_id = $2, updated_at = $3
		WHERE booking_id = $1`

	cmdTag, err := db.Exec(ctx, query, bookingID, preferenceID, time.Now())
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to set preference id for booking %s: %v", bookingID, err)
		return fmt.Errorf("failed to set preference id: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("payment for booking %s not found for update", bookingID)
	}

	logger.InfoLogger.Infof("Payment for booking %s updated with preference %s", bookingID, preferenceID)
	return nil
}

// ExistsByMPPaymentID reports whether any payment already references the
// given gateway payment id. This is the webhook replay guard.
func ExistsByMPPaymentID(ctx context.Context, db *pgxpool.Pool, mpPaymentID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM payments WHERE mp_payment_id = $1)`

	if err := db.QueryRow(ctx, query, mpPaymentID).Scan(&exists); err != nil {
		logger.ErrorLogger.Errorf("Failed to check payment by gateway id %s: %v", mpPaymentID, err)
		return false, fmt.Errorf("failed to check payment by gateway id: %w", err)
	}
	return exists, nil
}

// ApprovePayment transitions a booking's pending payment to approved and
// records the gateway payment detail. The WHERE clause pins the pending
// status, so a payment that already reached a terminal state is untouched.
func ApprovePayment(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID, mpPaymentID, payerEmail, paymentType string) error {
	if !shared_models.CanTransitionPayment(shared_models.PaymentStatusPending, shared_models.PaymentStatusApproved) {
		return fmt.Errorf("illegal payment transition")
	}

	query := `
		UPDATE payments
		SET status = $2, mp_payment_id = $3, payer_email = $4, payment_type = $5, updated_at = $6
		WHERE booking_id = $1 AND status = $7`

	cmdTag, err := db.Exec(ctx, query,
		bookingID, shared_models.PaymentStatusApproved, mpPaymentID, payerEmail, paymentType,
		time.Now(), shared_models.PaymentStatusPending,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to approve payment for booking %s: %v", bookingID, err)
		return fmt.Errorf("failed to approve payment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("pending payment for booking %s not found", bookingID)
	}

	logger.InfoLogger.Infof("Payment for booking %s approved (gateway payment %s)", bookingID, mpPaymentID)
	return nil
}
