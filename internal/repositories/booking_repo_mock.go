package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"acaciacamp/internal/models"

	"github.com/google/uuid"
)

// MockBookingRepository is an in-memory implementation of BookingRepository.
type MockBookingRepository struct {
	bookings map[string]models.Booking
	mu       sync.RWMutex
}

// NewMockBookingRepository creates a new instance of MockBookingRepository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		bookings: make(map[string]models.Booking),
	}
}

// Create adds a new booking.
func (r *MockBookingRepository) Create(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	r.bookings[booking.ID] = *booking
	return nil
}

// GetByID returns a booking by its ID.
func (r *MockBookingRepository) GetByID(id string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking with ID %s: %w", id, ErrNotFound)
	}
	return &booking, nil
}

// ListByUser returns all bookings made by a user, newest first.
func (r *MockBookingRepository) ListByUser(userID string) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bookings []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

// UpdateStatus updates the status of a booking.
func (r *MockBookingRepository) UpdateStatus(id string, status models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking with ID %s: %w", id, ErrNotFound)
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	r.bookings[id] = booking
	return nil
}
