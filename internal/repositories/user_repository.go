package repositories

import "acaciacamp/internal/models"

// UserUpdate carries a partial update for a user. Only the fields present
// (non-nil) are written; everything else is left untouched. The set of
// fields doubles as the allow-list of what callers may change.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string // already hashed by the caller
	Role     *models.Role
	Status   *models.Status
}

// Empty reports whether the update would change nothing.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Password == nil && u.Role == nil && u.Status == nil
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Update(id string, update UserUpdate) (*models.User, error)
	Delete(id string) (bool, error)
	List(limit, offset int) ([]models.User, error)
}
