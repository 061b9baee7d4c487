package slot_models

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sebiten/padel-app/logger"
	"github.com/sebiten/padel-app/utils"
)

// TimeSlot is one fixed interval of the daily schedule. The catalog is
// reference data shared by every court.
type TimeSlot struct {
	ID        uuid.UUID `json:"id"`
	StartTime string    `json:"start_time"` // "HH:MM"
	EndTime   string    `json:"end_time"`
	IsPeak    bool      `json:"is_peak"`
	IsActive  bool      `json:"is_active"`
}

// NewTimeSlot creates a new TimeSlot struct.
func NewTimeSlot(startTime, endTime string, isPeak bool) (*TimeSlot, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for time slot: %w", err)
	}
	return &TimeSlot{
		ID:        id,
		StartTime: startTime,
		EndTime:   endTime,
		IsPeak:    isPeak,
		IsActive:  true,
	}, nil
}

// GetActiveTimeSlots fetches the slot catalog ordered by start time.
func GetActiveTimeSlots(ctx context.Context, db *pgxpool.Pool) ([]TimeSlot, error) {
	query := `
		SELECT id, start_time, end_time, is_peak, is_active
		FROM time_slots
		WHERE is_active = true
		ORDER BY start_time`

	rows, err := db.Query(ctx, query)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch time slots: %v", err)
		return nil, fmt.Errorf("failed to fetch time slots: %w", err)
	}
	defer rows.Close()

	var slots []TimeSlot
	for rows.Next() {
		var slot TimeSlot
		if err := rows.Scan(&slot.ID, &slot.StartTime, &slot.EndTime, &slot.IsPeak, &slot.IsActive); err != nil {
			logger.ErrorLogger.Errorf("Failed to scan time slot row: %v", err)
			return nil, fmt.Errorf("failed to scan time slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// GetTimeSlotByID fetches a single active slot.
func GetTimeSlotByID(ctx context.Context, db *pgxpool.Pool, slotID uuid.UUID) (*TimeSlot, error) {
	slot := &TimeSlot{}
	query := `
		SELECT id, start_time, end_time, is_peak, is_active
		FROM time_slots
		WHERE id = $1 AND is_active = true`

	err := db.QueryRow(ctx, query, slotID).Scan(&slot.ID, &slot.StartTime, &slot.EndTime, &slot.IsPeak, &slot.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnLogger.Warnf("Time slot with ID %s not found", slotID)
			return nil, utils.ErrNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch time slot %s: %v", slotID, err)
		return nil, fmt.Errorf("database error fetching time slot: %w", err)
	}

	return slot, nil
}

// CountTimeSlots returns the number of slot rows, active or not.
func CountTimeSlots(ctx context.Context, db *pgxpool.Pool) (int, error) {
	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM time_slots`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count time slots: %w", err)
	}
	return count, nil
}

// CreateTimeSlot inserts a slot row. Used by reference-data seeding.
func CreateTimeSlot(ctx context.Context, db *pgxpool.Pool, slot *TimeSlot) error {
	query := `
		INSERT INTO time_slots (id, start_time, end_time, is_peak, is_active)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := db.Exec(ctx, query, slot.ID, slot.StartTime, slot.EndTime, slot.IsPeak, slot.IsActive)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert time slot %s-%s: %v", slot.StartTime, slot.EndTime, err)
		return fmt.Errorf("failed to create time slot: %w", err)
	}

	return nil
}
