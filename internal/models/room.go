package models

import "time"

// RoomStatus describes the availability of a room.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

// Room represents a bookable room or tent at the camp.
type Room struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string     `json:"name" gorm:"type:varchar(255)" validate:"required,min=3,max=255"`
	Description string     `json:"description" validate:"omitempty,max=1000"`
	Type        string     `json:"type" gorm:"type:varchar(50)" validate:"required"`
	Capacity    int        `json:"capacity" validate:"required,gt=0"`
	Price       float64    `json:"price" validate:"required,gt=0"` // per night
	Status      RoomStatus `json:"status" gorm:"type:varchar(20);default:available" validate:"omitempty,oneof=available occupied maintenance"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
