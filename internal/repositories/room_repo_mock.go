package repositories

import (
	"fmt"
	"sync"
	"time"

	"acaciacamp/internal/models"

	"github.com/google/uuid"
)

// MockRoomRepository is an in-memory implementation of RoomRepository.
type MockRoomRepository struct {
	rooms map[string]models.Room
	mu    sync.RWMutex
}

// NewMockRoomRepository creates a new instance of MockRoomRepository.
func NewMockRoomRepository() *MockRoomRepository {
	return &MockRoomRepository{
		rooms: make(map[string]models.Room),
	}
}

// GetAll returns all rooms.
func (r *MockRoomRepository) GetAll() ([]models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roomList := make([]models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		roomList = append(roomList, room)
	}
	return roomList, nil
}

// GetByID returns a room by its ID.
func (r *MockRoomRepository) GetByID(id string) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, fmt.Errorf("room with ID %s: %w", id, ErrNotFound)
	}
	return &room, nil
}

// Create adds a new room.
func (r *MockRoomRepository) Create(room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	room.CreatedAt = time.Now()
	room.UpdatedAt = room.CreatedAt
	r.rooms[room.ID] = *room
	return nil
}

// Update replaces an existing room.
func (r *MockRoomRepository) Update(room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[room.ID]; !ok {
		return fmt.Errorf("room with ID %s: %w", room.ID, ErrNotFound)
	}
	room.UpdatedAt = time.Now()
	r.rooms[room.ID] = *room
	return nil
}

// Delete removes a room by its ID.
func (r *MockRoomRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[id]; !ok {
		return fmt.Errorf("room with ID %s: %w", id, ErrNotFound)
	}
	delete(r.rooms, id)
	return nil
}
