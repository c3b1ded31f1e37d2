package services

import (
	"acaciacamp/internal/models"
	"acaciacamp/internal/repositories"
)

// RoomService handles business logic related to rooms.
type RoomService struct {
	repo repositories.RoomRepository
}

// NewRoomService creates a new RoomService.
func NewRoomService(repo repositories.RoomRepository) *RoomService {
	return &RoomService{
		repo: repo,
	}
}

// GetAllRooms retrieves all rooms.
func (s *RoomService) GetAllRooms() ([]models.Room, error) {
	return s.repo.GetAll()
}

// GetRoomByID retrieves a single room by its ID.
func (s *RoomService) GetRoomByID(id string) (*models.Room, error) {
	return s.repo.GetByID(id)
}

// CreateRoom creates a new room.
func (s *RoomService) CreateRoom(room *models.Room) error {
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	return s.repo.Create(room)
}

// UpdateRoom updates an existing room.
func (s *RoomService) UpdateRoom(room *models.Room) error {
	return s.repo.Update(room)
}

// DeleteRoom deletes a room by its ID.
func (s *RoomService) DeleteRoom(id string) error {
	return s.repo.Delete(id)
}
