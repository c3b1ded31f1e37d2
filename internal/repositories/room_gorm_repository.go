package repositories

import (
	"errors"
	"fmt"

	"acaciacamp/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRoomRepository is a GORM implementation of RoomRepository.
type GORMRoomRepository struct {
	db *gorm.DB
}

// NewGORMRoomRepository creates a new instance of GORMRoomRepository.
func NewGORMRoomRepository(db *gorm.DB) *GORMRoomRepository {
	return &GORMRoomRepository{
		db: db,
	}
}

// GetAll retrieves all rooms from the database.
func (r *GORMRoomRepository) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	if err := r.db.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to get all rooms: %w", err)
	}
	return rooms, nil
}

// GetByID retrieves a single room by its ID.
func (r *GORMRoomRepository) GetByID(id string) (*models.Room, error) {
	var room models.Room
	if err := r.db.First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("room with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get room by ID %s: %w", id, err)
	}
	return &room, nil
}

// Create inserts a new room.
func (r *GORMRoomRepository) Create(room *models.Room) error {
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	if err := r.db.Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

// Update updates an existing room.
func (r *GORMRoomRepository) Update(room *models.Room) error {
	res := r.db.Save(room)
	if res.Error != nil {
		return fmt.Errorf("failed to update room: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("room with ID %s: %w", room.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a room by its ID.
func (r *GORMRoomRepository) Delete(id string) error {
	res := r.db.Delete(&models.Room{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete room %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("room with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
