package repositories

import "acaciacamp/internal/models"

// RoomRepository defines the interface for room data access.
type RoomRepository interface {
	GetAll() ([]models.Room, error)
	GetByID(id string) (*models.Room, error)
	Create(room *models.Room) error
	Update(room *models.Room) error
	Delete(id string) error
}
