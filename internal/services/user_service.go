package services

import (
	"fmt"
	"log"

	"acaciacamp/internal/models"
	"acaciacamp/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

const defaultListLimit = 10

// UserService handles administrative user management: listing, partial
// updates, and deletion. Registration and login live in AuthService.
type UserService struct {
	userRepo  repositories.UserRepository
	auditRepo repositories.AuditLogRepository
}

// NewUserService creates a new UserService. auditRepo may be nil.
func NewUserService(userRepo repositories.UserRepository, auditRepo repositories.AuditLogRepository) *UserService {
	return &UserService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
	}
}

// ListUsers returns users newest first. A non-positive limit falls back to
// the default page size.
func (s *UserService) ListUsers(limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.userRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = users[i].Snapshot()
	}
	return users, nil
}

// GetUser returns a single user, password hash blanked.
func (s *UserService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	snapshot := user.Snapshot()
	return &snapshot, nil
}

// UpdateUser applies a partial update. Only the allow-listed fields in
// UserUpdate can change. A password in the update is treated as plaintext
// and re-hashed here before it reaches storage.
func (s *UserService) UpdateUser(actorID, id string, update repositories.UserUpdate) (*models.User, error) {
	if update.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashedStr := string(hashed)
		update.Password = &hashedStr
	}

	user, err := s.userRepo.Update(id, update)
	if err != nil {
		return nil, err
	}

	s.audit(actorID, "user.update", id)

	snapshot := user.Snapshot()
	return &snapshot, nil
}

// DeleteUser removes a user and reports whether a row was removed.
func (s *UserService) DeleteUser(actorID, id string) (bool, error) {
	removed, err := s.userRepo.Delete(id)
	if err != nil {
		return false, err
	}
	if removed {
		s.audit(actorID, "user.delete", id)
	}
	return removed, nil
}

func (s *UserService) audit(actorID, action, entityID string) {
	if s.auditRepo == nil {
		return
	}
	entry := &models.AuditLog{
		UserID:     actorID,
		Action:     action,
		EntityType: "user",
		EntityID:   entityID,
	}
	if err := s.auditRepo.Record(entry); err != nil {
		log.Printf("Warning: failed to record audit entry %s on user %s: %v", action, entityID, err)
	}
}
