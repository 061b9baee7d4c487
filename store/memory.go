package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sebiten/padel-app/models/booking_models"
	"github.com/sebiten/padel-app/models/court_models"
	"github.com/sebiten/padel-app/models/payment_models"
	"github.com/sebiten/padel-app/models/shared_models"
	"github.com/sebiten/padel-app/models/slot_models"
	"github.com/sebiten/padel-app/utils"
)

// Memory is an in-process Store keeping every record in maps. It backs the
// workflow tests and can run the service without a database for local poking.
type Memory struct {
	mu       sync.RWMutex
	courts   map[uuid.UUID]court_models.Court
	slots    map[uuid.UUID]slot_models.TimeSlot
	bookings map[uuid.UUID]booking_models.Booking
	payments map[uuid.UUID]payment_models.Payment
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		courts:   make(map[uuid.UUID]court_models.Court),
		slots:    make(map[uuid.UUID]slot_models.TimeSlot),
		bookings: make(map[uuid.UUID]booking_models.Booking),
		payments: make(map[uuid.UUID]payment_models.Payment),
	}
}

// AddCourt registers a court in the catalog.
func (m *Memory) AddCourt(court court_models.Court) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courts[court.ID] = court
}

// AddTimeSlot registers a time slot in the catalog.
func (m *Memory) AddTimeSlot(slot slot_models.TimeSlot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot.ID] = slot
}

func (m *Memory) GetActiveCourts(ctx context.Context) ([]court_models.Court, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var courts []court_models.Court
	for _, court := range m.courts {
		if court.IsActive {
			courts = append(courts, court)
		}
	}
	sort.Slice(courts, func(i, j int) bool { return courts[i].Number < courts[j].Number })
	return courts, nil
}

func (m *Memory) GetCourtByID(ctx context.Context, courtID uuid.UUID) (*court_models.Court, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	court, ok := m.courts[courtID]
	if !ok || !court.IsActive {
		return nil, utils.ErrNotFound
	}
	return &court, nil
}

func (m *Memory) GetActiveTimeSlots(ctx context.Context) ([]slot_models.TimeSlot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var slots []slot_models.TimeSlot
	for _, slot := range m.slots {
		if slot.IsActive {
			slots = append(slots, slot)
		}
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].StartTime < slots[j].StartTime })
	return slots, nil
}

func (m *Memory) GetTimeSlotByID(ctx context.Context, slotID uuid.UUID) (*slot_models.TimeSlot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	slot, ok := m.slots[slotID]
	if !ok || !slot.IsActive {
		return nil, utils.ErrNotFound
	}
	return &slot, nil
}

func (m *Memory) ActiveBookingExists(ctx context.Context, courtID uuid.UUID, date, startTime string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, booking := range m.bookings {
		if booking.CourtID == courtID && booking.Date == date && booking.StartTime == startTime && isActiveStatus(booking.Status) {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) BookedStartTimes(ctx context.Context, courtID uuid.UUID, date string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var startTimes []string
	for _, booking := range m.bookings {
		if booking.CourtID == courtID && booking.Date == date && isActiveStatus(booking.Status) {
			startTimes = append(startTimes, booking.StartTime)
		}
	}
	return startTimes, nil
}

func (m *Memory) CreateBooking(ctx context.Context, booking *booking_models.Booking) (*booking_models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bookings[booking.ID] = *booking
	return booking, nil
}

func (m *Memory) GetBookingByID(ctx context.Context, bookingID uuid.UUID) (*booking_models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	booking, ok := m.bookings[bookingID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &booking, nil
}

func (m *Memory) DeleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bookings[bookingID]; !ok {
		return fmt.Errorf("booking with ID %s not found for delete", bookingID)
	}
	delete(m.bookings, bookingID)
	return nil
}

func (m *Memory) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, from, to string) error {
	if !shared_models.CanTransitionBooking(from, to) {
		return fmt.Errorf("illegal booking transition %s -> %s", from, to)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	booking, ok := m.bookings[bookingID]
	if !ok || booking.Status != from {
		return fmt.Errorf("booking %s is not in status %s", bookingID, from)
	}
	booking.Status = to
	booking.UpdatedAt = time.Now()
	m.bookings[bookingID] = booking
	return nil
}

func (m *Memory) GetBookingsByUser(ctx context.Context, userID uuid.UUID, status string, limit int) ([]booking_models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var bookings []booking_models.Booking
	for _, booking := range m.bookings {
		if booking.UserID != userID {
			continue
		}
		if status != "" && booking.Status != status {
			continue
		}
		bookings = append(bookings, booking)
	}
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date > bookings[j].Date
		}
		return bookings[i].StartTime > bookings[j].StartTime
	})
	if limit > 0 && len(bookings) > limit {
		bookings = bookings[:limit]
	}
	return bookings, nil
}

func (m *Memory) CreatePayment(ctx context.Context, payment *payment_models.Payment) (*payment_models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.payments[payment.ID] = *payment
	return payment, nil
}

func (m *Memory) GetPaymentByBookingID(ctx context.Context, bookingID uuid.UUID) (*payment_models.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, payment := range m.payments {
		if payment.BookingID == bookingID {
			found := payment
			return &found, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (m *Memory) SetPreferenceID(ctx context.Context, bookingID uuid.UUID, preferenceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, payment := range m.payments {
		if payment.BookingID == bookingID {
			payment.MPPreferenceID = &preferenceID
			payment.UpdatedAt = time.Now()
			m.payments[id] = payment
			return nil
		}
	}
	return fmt.Errorf("no payment found for booking %s", bookingID)
}

func (m *Memory) PaymentExistsByMPPaymentID(ctx context.Context, mpPaymentID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, payment := range m.payments {
		if payment.MPPaymentID != nil && *payment.MPPaymentID == mpPaymentID {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) ApprovePayment(ctx context.Context, bookingID uuid.UUID, mpPaymentID, payerEmail, paymentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, payment := range m.payments {
		if payment.BookingID == bookingID && payment.Status == shared_models.PaymentStatusPending {
			payment.Status = shared_models.PaymentStatusApproved
			payment.MPPaymentID = &mpPaymentID
			payment.PayerEmail = &payerEmail
			payment.PaymentType = &paymentType
			payment.UpdatedAt = time.Now()
			m.payments[id] = payment
			return nil
		}
	}
	return fmt.Errorf("no pending payment found for booking %s", bookingID)
}

func isActiveStatus(status string) bool {
	for _, active := range shared_models.ActiveBookingStatuses {
		if status == active {
			return true
		}
	}
	return false
}
