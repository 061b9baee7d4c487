package booking_models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sebiten/padel-app/logger"
	"github.com/sebiten/padel-app/models/shared_models"
	"github.com/sebiten/padel-app/utils"
)

// Booking represents a user's reservation of a court for one time slot on a
// calendar date. Dates are stored and compared as plain "YYYY-MM-DD" strings;
// the schedule is time-zone-naive.
type Booking struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	CourtID     uuid.UUID `json:"court_id"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	TotalPrice  int64     `json:"total_price"`
	Status      string    `json:"status"`
	PlayerNames []string  `json:"player_names"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewBooking creates a pending Booking with sanitized inputs: blank player
// names are dropped and blank notes are stored as absent rather than as an
// empty string.
func NewBooking(userID, courtID uuid.UUID, date, startTime, endTime string, totalPrice int64, playerNames []string, notes string) (*Booking, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for booking: %w", err)
	}

	players := make([]string, 0, len(playerNames))
	for _, name := range playerNames {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			players = append(players, trimmed)
		}
	}

	var notesPtr *string
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		notesPtr = &trimmed
	}

	now := time.Now()
	return &Booking{
		ID:          id,
		UserID:      userID,
		CourtID:     courtID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		TotalPrice:  totalPrice,
		Status:      shared_models.BookingStatusPending,
		PlayerNames: players,
		Notes:       notesPtr,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CreateBooking inserts a new booking record into the database.
func CreateBooking(ctx context.Context, db *pgxpool.Pool, booking *Booking) (*Booking, error) {
	logger.InfoLogger.Infof("Attempting to create booking for court %s on %s at %s", booking.CourtID, booking.Date, booking.StartTime)

	query := `
		INSERT INTO bookings (
			id, user_id, court_id, date, start_time, end_time,
			total_price, status, player_names, notes, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING id`

	var insertedID uuid.UUID
	err := db.QueryRow(ctx, query,
		booking.ID, booking.UserID, booking.CourtID, booking.Date,
		booking.StartTime, booking.EndTime, booking.TotalPrice, booking.Status,
		booking.PlayerNames, booking.Notes, booking.CreatedAt, booking.UpdatedAt,
	).Scan(&insertedID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert booking for court %s: %v", booking.CourtID, err)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.ID = insertedID
	logger.InfoLogger.Infof("Booking %s created for court %s on %s at %s", booking.ID, booking.CourtID, booking.Date, booking.StartTime)
	return booking, nil
}

// GetBookingByID fetches a booking record by its ID.
func GetBookingByID(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID) (*Booking, error) {
	booking := &Booking{}
	query := `
		SELECT id, user_id, court_id, date, start_time, end_time,
		       total_price, status, player_names, notes, created_at, updated_at
		FROM bookings
		WHERE id = $1`

	err := db.QueryRow(ctx, query, bookingID).Scan(
		&booking.ID, &booking.UserID, &booking.CourtID, &booking.Date,
		&booking.StartTime, &booking.EndTime, &booking.TotalPrice, &booking.Status,
		&booking.PlayerNames, &booking.Notes, &booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnLogger.Warnf("Booking with ID %s not found", bookingID)
			return nil, utils.ErrNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("database error fetching booking: %w", err)
	}

	return booking, nil
}

// ActiveBookingExists reports whether an active (pending or confirmed)
// booking already holds the given court/date/start tuple. This re-check is
// the only double-booking guard; there is no database constraint behind it.
func ActiveBookingExists(ctx context.Context, db *pgxpool.Pool, courtID uuid.UUID, date, startTime string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE court_id = $1 AND date = $2 AND start_time = $3 AND status = ANY($4)
		)`

	err := db.QueryRow(ctx, query, courtID, date, startTime, shared_models.ActiveBookingStatuses).Scan(&exists)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to check existing booking for court %s on %s at %s: %v", courtID, date, startTime, err)
		return false, fmt.Errorf("failed to check existing booking: %w", err)
	}
	return exists, nil
}

// BookedStartTimes returns the start times of active bookings for a court and
// date. The availability set is the slot catalog minus these.
func BookedStartTimes(ctx context.Context, db *pgxpool.Pool, courtID uuid.UUID, date string) ([]string, error) {
	query := `
		SELECT start_time FROM bookings
		WHERE court_id = $1 AND date = $2 AND status = ANY($3)`

	rows, err := db.Query(ctx, query, courtID, date, shared_models.ActiveBookingStatuses)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch booked start times for court %s on %s: %v", courtID, date, err)
		return nil, fmt.Errorf("failed to fetch booked start times: %w", err)
	}
	defer rows.Close()

	var startTimes []string
	for rows.Next() {
		var startTime string
		if err := rows.Scan(&startTime); err != nil {
			return nil, fmt.Errorf("failed to scan start time: %w", err)
		}
		startTimes = append(startTimes, startTime)
	}

	return startTimes, nil
}

// DeleteBooking removes a booking row. Used as the compensating action when
// the paired payment record cannot be created.
func DeleteBooking(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID) error {
	cmdTag, err := db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to delete booking %s: %v", bookingID, err)
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("booking with ID %s not found for delete", bookingID)
	}

	logger.InfoLogger.Infof("Booking %s deleted", bookingID)
	return nil
}

// UpdateBookingStatus transitions a booking from one status to another. The
// transition must be listed in the transition table, and the row must still
// carry the expected current status, so stale or illegal updates affect
// nothing and are reported as errors.
func UpdateBookingStatus(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID, from, to string) error {
	if !shared_models.CanTransitionBooking(from, to) {
		return fmt.Errorf("illegal booking transition %s -> %s", from, to)
	}

	query := `
		UPDATE bookings
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2`

	cmdTag, err := db.Exec(ctx, query, bookingID, from, to, time.Now())
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update booking %s status: %v", bookingID, err)
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("booking %s is not in status %s", bookingID, from)
	}

	logger.InfoLogger.Infof("Booking %s status updated %s -> %s", bookingID, from, to)
	return nil
}

// GetBookingsByUser retrieves a user's bookings newest first, with an
// optional status filter.
func GetBookingsByUser(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID, status string, limit int) ([]Booking, error) {
	baseQuery := `
		SELECT id, user_id, court_id, date, start_time, end_time,
		       total_price, status, player_names, notes, created_at, updated_at
		FROM bookings
		WHERE user_id = $1`

	var rows pgx.Rows
	var err error
	if status != "" {
		rows, err = db.Query(ctx, baseQuery+` AND status = $2 ORDER BY date DESC, start_time DESC LIMIT $3`, userID, status, limit)
	} else {
		rows, err = db.Query(ctx, baseQuery+` ORDER BY date DESC, start_time DESC LIMIT $2`, userID, limit)
	}
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch bookings for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var booking Booking
		if err := rows.Scan(
			&booking.ID, &booking.UserID, &booking.CourtID, &booking.Date,
			&booking.StartTime, &booking.EndTime, &booking.TotalPrice, &booking.Status,
			&booking.PlayerNames, &booking.Notes, &booking.CreatedAt, &booking.UpdatedAt,
		); err != nil {
			logger.ErrorLogger.Errorf("Failed to scan booking row: %v", err)
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}
