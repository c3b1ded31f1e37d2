package models

import "time"

// Role is the single authorization dimension of an account.
type Role string

const (
	RoleGuest     Role = "guest"
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
)

// Status controls whether an account is allowed to log in.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// User represents a registered account.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"type:varchar(255)" validate:"required,min=2,max=255"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash
	Role      Role      `json:"role" gorm:"type:varchar(20);default:guest" validate:"omitempty,oneof=guest admin developer"`
	Status    Status    `json:"status" gorm:"type:varchar(20);default:active" validate:"omitempty,oneof=active inactive pending"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a copy of the user with the password hash blanked out,
// safe to serialize for clients or session storage.
func (u User) Snapshot() User {
	u.Password = ""
	return u
}
