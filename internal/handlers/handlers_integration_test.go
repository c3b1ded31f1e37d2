package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"acaciacamp/internal/handlers"
	"acaciacamp/internal/middleware"
	"acaciacamp/internal/models"
	"acaciacamp/internal/repositories"
	"acaciacamp/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp sets up a Fiber app for testing with in-memory SQLite and all
// handlers/services wired the way main does it.
func setupApp() (*fiber.App, repositories.UserRepository, repositories.RoomRepository, error) {
	viper.SetDefault("JWT_SECRET", "test_jwt_secret")
	viper.AutomaticEnv()
	jwtSecret := viper.GetString("JWT_SECRET")

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to in-memory database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Room{}, &models.Booking{}, &models.AuditLog{}); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	roomRepo := repositories.NewGORMRoomRepository(db)
	bookingRepo := repositories.NewGORMBookingRepository(db)
	auditRepo := repositories.NewGORMAuditLogRepository(db)

	authService := services.NewAuthService(userRepo, auditRepo, jwtSecret)
	userService := services.NewUserService(userRepo, auditRepo)
	roomService := services.NewRoomService(roomRepo)
	bookingService := services.NewBookingService(bookingRepo, roomRepo, nil) // nil for the MQ client

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	roomHandler := handlers.NewRoomHandler(roomService)
	bookingHandler := handlers.NewBookingHandler(bookingService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)
	roomHandler.RegisterPublicRoutes(apiV1)

	authed := apiV1.Group("", middleware.AuthRequired(authService))
	bookingHandler.RegisterRoutes(authed)

	adminOnly := authed.Group("", middleware.RoleRequired(models.RoleAdmin))
	userHandler.RegisterRoutes(adminOnly)
	roomHandler.RegisterAdminRoutes(adminOnly)
	bookingHandler.RegisterAdminRoutes(adminOnly)

	return app, userRepo, roomRepo, nil
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, path, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	if len(raw) > 0 {
		assert.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp.StatusCode, decoded
}

func seedAccount(t *testing.T, userRepo repositories.UserRepository, email string, role models.Role, status models.Status) {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secretpw"), bcrypt.DefaultCost)
	user := &models.User{
		Name:     "Seeded",
		Email:    email,
		Password: string(hashed),
		Role:     role,
		Status:   status,
	}
	assert.NoError(t, userRepo.Create(user))
}

func TestRegisterAndLoginFlow(t *testing.T) {
	app, _, _, err := setupApp()
	assert.NoError(t, err)

	// Register a guest; they land on the dashboard.
	status, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Ann",
		"email":    "ann@flow.test",
		"password": "secretpw",
	})
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "/dashboard", body["destination"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "guest", user["role"])
	_, exposed := user["password"]
	assert.False(t, exposed, "password hash must never appear in responses")

	// Registering the same email again conflicts.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name":     "Bob",
		"email":    "ann@flow.test",
		"password": "otherpw",
	})
	assert.Equal(t, http.StatusConflict, status)

	// Login with the right password works; a typo does not.
	status, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ann@flow.test",
		"password": "secretpw",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "/dashboard", body["destination"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ann@flow.test",
		"password": "secretpwx",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	// Unknown email is indistinguishable from a wrong password.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "nouser@flow.test",
		"password": "whatever",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLoginInactiveAccount(t *testing.T) {
	app, userRepo, _, err := setupApp()
	assert.NoError(t, err)

	seedAccount(t, userRepo, "off@inactive.test", models.RoleGuest, models.StatusInactive)

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "off@inactive.test",
		"password": "secretpw",
	})
	assert.Equal(t, http.StatusForbidden, status)
}

func TestRoleBasedDestinationsAndGating(t *testing.T) {
	app, userRepo, _, err := setupApp()
	assert.NoError(t, err)

	seedAccount(t, userRepo, "admin@gate.test", models.RoleAdmin, models.StatusActive)
	seedAccount(t, userRepo, "dev@gate.test", models.RoleDeveloper, models.StatusActive)
	seedAccount(t, userRepo, "guest@gate.test", models.RoleGuest, models.StatusActive)

	login := func(email string) (string, string) {
		status, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    email,
			"password": "secretpw",
		})
		assert.Equal(t, http.StatusOK, status)
		return body["token"].(string), body["destination"].(string)
	}

	adminToken, adminDest := login("admin@gate.test")
	_, devDest := login("dev@gate.test")
	guestToken, guestDest := login("guest@gate.test")

	assert.Equal(t, "/admin", adminDest)
	assert.Equal(t, "/developer", devDest)
	assert.Equal(t, "/dashboard", guestDest)

	// The user management surface requires the admin role.
	status, body := doJSON(t, app, http.MethodGet, "/api/v1/users/", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["users"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/users/", guestToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/users/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAdminUserManagement(t *testing.T) {
	app, userRepo, _, err := setupApp()
	assert.NoError(t, err)

	seedAccount(t, userRepo, "admin@mgmt.test", models.RoleAdmin, models.StatusActive)
	seedAccount(t, userRepo, "target@mgmt.test", models.RoleGuest, models.StatusActive)

	status, body := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@mgmt.test",
		"password": "secretpw",
	})
	assert.Equal(t, http.StatusOK, status)
	adminToken := body["token"].(string)

	target, err := userRepo.GetByEmail("target@mgmt.test")
	assert.NoError(t, err)

	// Promote the target to developer and deactivate them.
	status, body = doJSON(t, app, http.MethodPut, "/api/v1/users/"+target.ID, adminToken, map[string]string{
		"role":   "developer",
		"status": "inactive",
	})
	assert.Equal(t, http.StatusOK, status)
	updated := body["user"].(map[string]interface{})
	assert.Equal(t, "developer", updated["role"])
	assert.Equal(t, "inactive", updated["status"])

	// Deactivated accounts can no longer log in.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "target@mgmt.test",
		"password": "secretpw",
	})
	assert.Equal(t, http.StatusForbidden, status)

	// Delete, then confirm a second delete 404s.
	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/users/"+target.ID, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/users/"+target.ID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBookingFlow(t *testing.T) {
	app, userRepo, roomRepo, err := setupApp()
	assert.NoError(t, err)

	seedAccount(t, userRepo, "guest@booking.test", models.RoleGuest, models.StatusActive)

	room := &models.Room{
		Name:     "Acacia View Tent",
		Type:     "tent",
		Capacity: 2,
		Price:    120.00,
		Status:   models.RoomAvailable,
	}
	assert.NoError(t, roomRepo.Create(room))

	// Rooms are public.
	status, body := doJSON(t, app, http.MethodGet, "/api/v1/rooms/", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["rooms"])

	// Booking requires authentication.
	payload := map[string]string{
		"room_id":   room.ID,
		"check_in":  "2026-09-10",
		"check_out": "2026-09-12",
	}
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/bookings/", "", payload)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "guest@booking.test",
		"password": "secretpw",
	})
	assert.Equal(t, http.StatusOK, status)
	guestToken := body["token"].(string)

	status, body = doJSON(t, app, http.MethodPost, "/api/v1/bookings/", guestToken, payload)
	assert.Equal(t, http.StatusCreated, status)
	booking := body["booking"].(map[string]interface{})
	assert.Equal(t, "pending", booking["status"])
	assert.Equal(t, 240.00, booking["total_amount"]) // two nights at 120

	// Reversed dates are rejected.
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/bookings/", guestToken, map[string]string{
		"room_id":   room.ID,
		"check_in":  "2026-09-12",
		"check_out": "2026-09-10",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// The guest sees their booking in the list.
	status, body = doJSON(t, app, http.MethodGet, "/api/v1/bookings/", guestToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["bookings"], 1)
}
