// Package seed inserts the court and slot reference catalogs when the
// tables are empty, so a fresh deployment is immediately bookable.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sebiten/padel-app/logger"
	"github.com/sebiten/padel-app/models/court_models"
	"github.com/sebiten/padel-app/models/slot_models"
)

type courtSeed struct {
	name        string
	number      int
	kind        string
	price       int64
	peakPrice   int64
	description string
}

var defaultCourts = []courtSeed{
	{"Cancha Principal", 1, "outdoor", 2000, 2500, "Cancha profesional con piso de césped sintético"},
	{"Cancha Cubierta", 2, "indoor", 2500, 3000, "Cancha cubierta con iluminación LED"},
	{"Cancha Panorámica", 3, "outdoor", 2000, 2500, "Cancha con vista panorámica y excelente ventilación"},
	{"Cancha Premium", 4, "indoor", 3000, 3500, "Cancha premium con piso de última generación"},
}

// Hourly schedule 08:00-23:00; evening slots are peak priced.
var defaultSlots = []struct {
	start, end string
	isPeak     bool
}{
	{"08:00", "09:00", false},
	{"09:00", "10:00", false},
	{"10:00", "11:00", false},
	{"11:00", "12:00", false},
	{"12:00", "13:00", false},
	{"13:00", "14:00", false},
	{"14:00", "15:00", false},
	{"15:00", "16:00", false},
	{"16:00", "17:00", false},
	{"17:00", "18:00", false},
	{"18:00", "19:00", true},
	{"19:00", "20:00", true},
	{"20:00", "21:00", true},
	{"21:00", "22:00", true},
	{"22:00", "23:00", false},
}

// EnsureReferenceData seeds courts and time slots when their tables are
// empty. Existing data is never touched.
func EnsureReferenceData(ctx context.Context, db *pgxpool.Pool) error {
	courtCount, err := court_models.CountCourts(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to inspect courts table: %w", err)
	}

	if courtCount == 0 {
		logger.InfoLogger.Info("Courts table empty, seeding sample courts")
		for _, seed := range defaultCourts {
			peak := seed.peakPrice
			court, err := court_models.NewCourt(seed.name, seed.number, seed.kind, seed.price, &peak, seed.description)
			if err != nil {
				return err
			}
			if err := court_models.CreateCourt(ctx, db, court); err != nil {
				return err
			}
		}
	}

	slotCount, err := slot_models.CountTimeSlots(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to inspect time_slots table: %w", err)
	}

	if slotCount == 0 {
		logger.InfoLogger.Info("Time slots table empty, seeding hourly catalog")
		for _, seed := range defaultSlots {
			slot, err := slot_models.NewTimeSlot(seed.start, seed.end, seed.isPeak)
			if err != nil {
				return err
			}
			if err := slot_models.CreateTimeSlot(ctx, db, slot); err != nil {
				return err
			}
		}
	}

	return nil
}
