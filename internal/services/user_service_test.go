package services_test

import (
	"testing"

	"acaciacamp/internal/models"
	"acaciacamp/internal/repositories"
	"acaciacamp/internal/services"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func seedUser(t *testing.T, repo repositories.UserRepository, name, email string) *models.User {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secretpw"), bcrypt.DefaultCost)
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleGuest,
		Status:   models.StatusActive,
	}
	assert.NoError(t, repo.Create(user))
	return user
}

func TestUserService_UpdateUser(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	svc := services.NewUserService(userRepo, nil)

	user := seedUser(t, userRepo, "Ann", "ann@x.com")

	// Name-only update leaves everything else untouched.
	newName := "Ann B"
	updated, err := svc.UpdateUser("admin-1", user.ID, repositories.UserUpdate{Name: &newName})
	assert.NoError(t, err)
	assert.Equal(t, "Ann B", updated.Name)
	assert.Equal(t, "ann@x.com", updated.Email)
	assert.Equal(t, models.RoleGuest, updated.Role)

	// A password in the update is re-hashed before storage.
	newPassword := "newsecret"
	_, err = svc.UpdateUser("admin-1", user.ID, repositories.UserUpdate{Password: &newPassword})
	assert.NoError(t, err)

	stored, err := userRepo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, "newsecret", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newsecret")))

	// Role and status changes go through the same allow-list.
	role := models.RoleDeveloper
	status := models.StatusInactive
	updated, err = svc.UpdateUser("admin-1", user.ID, repositories.UserUpdate{Role: &role, Status: &status})
	assert.NoError(t, err)
	assert.Equal(t, models.RoleDeveloper, updated.Role)
	assert.Equal(t, models.StatusInactive, updated.Status)

	// Responses never carry the hash.
	assert.Empty(t, updated.Password)

	// Unknown user
	_, err = svc.UpdateUser("admin-1", "no-such-user", repositories.UserUpdate{Name: &newName})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// Email collision with another account
	other := seedUser(t, userRepo, "Bob", "bob@x.com")
	takenEmail := "ann@x.com"
	_, err = svc.UpdateUser("admin-1", other.ID, repositories.UserUpdate{Email: &takenEmail})
	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)
}

func TestUserService_DeleteUser(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	svc := services.NewUserService(userRepo, nil)

	user := seedUser(t, userRepo, "Ann", "ann@x.com")

	removed, err := svc.DeleteUser("admin-1", user.ID)
	assert.NoError(t, err)
	assert.True(t, removed)

	// Deleting again reports that nothing was removed.
	removed, err = svc.DeleteUser("admin-1", user.ID)
	assert.NoError(t, err)
	assert.False(t, removed)
}

func TestUserService_ListUsers(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	svc := services.NewUserService(userRepo, nil)

	seedUser(t, userRepo, "Ann", "ann@x.com")
	seedUser(t, userRepo, "Bob", "bob@x.com")
	seedUser(t, userRepo, "Cleo", "cleo@x.com")

	// Newest first.
	users, err := svc.ListUsers(10, 0)
	assert.NoError(t, err)
	assert.Len(t, users, 3)
	assert.Equal(t, "cleo@x.com", users[0].Email)
	assert.Equal(t, "ann@x.com", users[2].Email)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}

	// Pagination.
	users, err = svc.ListUsers(1, 1)
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "bob@x.com", users[0].Email)

	// Offset past the end yields an empty page, not an error.
	users, err = svc.ListUsers(10, 5)
	assert.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserService_DuplicateEmailOnCreate(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()

	seedUser(t, userRepo, "Ann", "ann@x.com")

	second := &models.User{Name: "Bob", Email: "ann@x.com", Password: "hash"}
	err := userRepo.Create(second)
	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)

	// No second row exists.
	users, listErr := userRepo.List(10, 0)
	assert.NoError(t, listErr)
	assert.Len(t, users, 1)
}
