package court_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sebiten/padel-app/logger"
	"github.com/sebiten/padel-app/utils"
)

// Court is reference data describing a single padel court. Courts are edited
// by an administrator and read-only to the booking flow.
type Court struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Number           int       `json:"number"`
	Kind             string    `json:"kind"` // "indoor" or "outdoor"
	PricePerHour     int64     `json:"price_per_hour"`
	PeakPricePerHour *int64    `json:"peak_price_per_hour"`
	Description      string    `json:"description"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewCourt creates a new Court struct.
func NewCourt(name string, number int, kind string, pricePerHour int64, peakPricePerHour *int64, description string) (*Court, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for court: %w", err)
	}
	return &Court{
		ID:               id,
		Name:             name,
		Number:           number,
		Kind:             kind,
		PricePerHour:     pricePerHour,
		PeakPricePerHour: peakPricePerHour,
		Description:      description,
		IsActive:         true,
		CreatedAt:        time.Now(),
	}, nil
}

// PriceForSlot returns the total price for one slot on this court: the peak
// price when the slot is peak and a peak price is defined, the base price
// otherwise.
func (c *Court) PriceForSlot(isPeak bool) int64 {
	if isPeak && c.PeakPricePerHour != nil {
		return *c.PeakPricePerHour
	}
	return c.PricePerHour
}

// GetActiveCourts fetches all active courts ordered by their number.
func GetActiveCourts(ctx context.Context, db *pgxpool.Pool) ([]Court, error) {
	query := `
		SELECT id, name, number, kind, price_per_hour, peak_price_per_hour, description, is_active, created_at
		FROM courts
		WHERE is_active = true
		ORDER BY number`

	rows, err := db.Query(ctx, query)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch courts: %v", err)
		return nil, fmt.Errorf("failed to fetch courts: %w", err)
	}
	defer rows.Close()

	var courts []Court
	for rows.Next() {
		var court Court
		if err := rows.Scan(
			&court.ID, &court.Name, &court.Number, &court.Kind,
			&court.PricePerHour, &court.PeakPricePerHour, &court.Description,
			&court.IsActive, &court.CreatedAt,
		); err != nil {
			logger.ErrorLogger.Errorf("Failed to scan court row: %v", err)
			return nil, fmt.Errorf("failed to scan court: %w", err)
		}
		courts = append(courts, court)
	}

	return courts, nil
}

// GetCourtByID fetches a single active court.
func GetCourtByID(ctx context.Context, db *pgxpool.Pool, courtID uuid.UUID) (*Court, error) {
	court := &Court{}
	query := `
		SELECT id, name, number, kind, price_per_hour, peak_price_per_hour, description, is_active, created_at
		FROM courts
		WHERE id = $1 AND is_active = true`

	err := db.QueryRow(ctx, query, courtID).Scan(
		&court.ID, &court.Name, &court.Number, &court.Kind,
		&court.PricePerHour, &court.PeakPricePerHour, &court.Description,
		&court.IsActive, &court.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnLogger.Warnf("Court with ID %s not found", courtID)
			return nil, utils.ErrNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch court %s: %v", courtID, err)
		return nil, fmt.Errorf("database error fetching court: %w", err)
	}

	return court, nil
}

// CountCourts returns the number of court rows, active or not.
func CountCourts(ctx context.Context, db *pgxpool.Pool) (int, error) {
	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM courts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count courts: %w", err)
	}
	return count, nil
}

// CreateCourt inserts a court row. Used by reference-data seeding.
func CreateCourt(ctx context.Context, db *pgxpool.Pool, court *Court) error {
	query := `
		INSERT INTO courts (id, name, number, kind, price_per_hour, peak_price_per_hour, description, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := db.Exec(ctx, query,
		court.ID, court.Name, court.Number, court.Kind,
		court.PricePerHour, court.PeakPricePerHour, court.Description,
		court.IsActive, court.CreatedAt,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert court %q: %v", court.Name, err)
		return fmt.Errorf("failed to create court: %w", err)
	}

	logger.InfoLogger.Infof("Court %q (#%d) created", court.Name, court.Number)
	return nil
}
