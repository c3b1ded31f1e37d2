package repositories

import "acaciacamp/internal/models"

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	ListByUser(userID string) ([]models.Booking, error)
	UpdateStatus(id string, status models.BookingStatus) error
}
