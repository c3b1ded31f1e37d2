package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"acaciacamp/internal/models"
	"acaciacamp/internal/repositories"
)

// Errors surfaced by BookingService.
var (
	ErrInvalidDateRange = errors.New("check-out must be after check-in")
	ErrRoomUnavailable  = errors.New("room is not available")
)

// EventPublisher is the subset of the message-queue client the booking
// service needs. Satisfied by *rabbitmq.Client; mocked in tests.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// BookingService handles business logic related to bookings.
type BookingService struct {
	bookingRepo repositories.BookingRepository
	roomRepo    repositories.RoomRepository
	mqClient    EventPublisher
}

// NewBookingService creates a new BookingService. mqClient may be nil, in
// which case booking events are not published.
func NewBookingService(bookingRepo repositories.BookingRepository, roomRepo repositories.RoomRepository, mqClient EventPublisher) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		mqClient:    mqClient,
	}
}

// CreateBooking reserves a room for a date range. The total amount is the
// room's nightly price times the number of nights, fixed at creation time.
func (s *BookingService) CreateBooking(userID, roomID string, checkIn, checkOut time.Time) (*models.Booking, error) {
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("create booking: %w", ErrInvalidDateRange)
	}

	room, err := s.roomRepo.GetByID(roomID)
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", roomID, err)
	}
	if room.Status != models.RoomAvailable {
		return nil, fmt.Errorf("create booking for room %s: %w", roomID, ErrRoomUnavailable)
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	if nights < 1 {
		nights = 1
	}

	booking := &models.Booking{
		UserID:      userID,
		RoomID:      roomID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Status:      models.BookingPending,
		TotalAmount: float64(nights) * room.Price,
	}

	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, fmt.Errorf("failed to create booking in repository: %w", err)
	}

	// Publish a booking.created event. A broker outage must not fail the
	// booking itself.
	if s.mqClient != nil {
		event := map[string]interface{}{
			"bookingID": booking.ID,
			"userID":    booking.UserID,
			"roomID":    booking.RoomID,
			"status":    booking.Status,
			"total":     booking.TotalAmount,
		}
		body, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal booking event to JSON: %v", err)
		} else if err := s.mqClient.Publish("booking", "booking.created", body); err != nil {
			log.Printf("Warning: Failed to publish booking created event for booking %s: %v", booking.ID, err)
		} else {
			log.Printf("Successfully published booking created event for booking %s", booking.ID)
		}
	} else {
		log.Println("Message queue client is not initialized. Skipping event publication.")
	}

	return booking, nil
}

// GetBookingByID retrieves a single booking by its ID.
func (s *BookingService) GetBookingByID(id string) (*models.Booking, error) {
	return s.bookingRepo.GetByID(id)
}

// ListUserBookings returns all bookings made by a user, newest first.
func (s *BookingService) ListUserBookings(userID string) ([]models.Booking, error) {
	return s.bookingRepo.ListByUser(userID)
}

// UpdateBookingStatus updates the status of an existing booking.
func (s *BookingService) UpdateBookingStatus(id string, status models.BookingStatus) error {
	validStatuses := map[models.BookingStatus]bool{
		models.BookingPending:   true,
		models.BookingConfirmed: true,
		models.BookingCancelled: true,
		models.BookingCompleted: true,
	}
	if _, ok := validStatuses[status]; !ok {
		return fmt.Errorf("invalid booking status: %s", status)
	}

	if err := s.bookingRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update booking status for booking %s: %w", id, err)
	}
	return nil
}
