package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"acaciacamp/internal/models"
	"acaciacamp/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// Errors surfaced by AuthService. Unknown-email and wrong-password both
// map to ErrInvalidCredentials so callers cannot probe which emails are
// registered. An inactive account with a correct password is reported
// separately as ErrAccountInactive.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is not active")
)

// Landing destinations by role. Every successful login or registration
// resolves to exactly one of these.
const (
	DestAdmin     = "/admin"
	DestDeveloper = "/developer"
	DestDashboard = "/dashboard"
)

// LandingFor returns the post-login destination for a role.
func LandingFor(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return DestAdmin
	case models.RoleDeveloper:
		return DestDeveloper
	default:
		return DestDashboard
	}
}

// AuthResult is returned on successful login or registration.
type AuthResult struct {
	User        models.User `json:"user"` // password hash blanked
	Token       string      `json:"token"`
	Destination string      `json:"destination"`
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	auditRepo  repositories.AuditLogRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService. auditRepo may be nil, in which
// case auth events are not recorded.
func NewAuthService(userRepo repositories.UserRepository, auditRepo repositories.AuditLogRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// Register creates a new guest account, hashes the password, and
// establishes a session token.
func (s *AuthService) Register(name, email, password string) (*AuthResult, error) {
	existing, err := s.userRepo.GetByEmail(email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("register: %w", ErrEmailTaken)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleGuest,
		Status:   models.StatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		// Another registration may have won the race between the duplicate
		// check above and the insert.
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, fmt.Errorf("register: %w", ErrEmailTaken)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.audit(user.ID, "user.register", "user", user.ID, "")

	return &AuthResult{
		User:        user.Snapshot(),
		Token:       token,
		Destination: LandingFor(user.Role),
	}, nil
}

// Login authenticates a user and returns a session token plus the
// role-based landing destination.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("login: %w", ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("login: %w", ErrInvalidCredentials)
	}

	if user.Status != models.StatusActive {
		return nil, fmt.Errorf("login: %w", ErrAccountInactive)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	s.audit(user.ID, "user.login", "user", user.ID, "")

	return &AuthResult{
		User:        user.Snapshot(),
		Token:       token,
		Destination: LandingFor(user.Role),
	}, nil
}

// GetUser returns the stored record for a user ID, password hash blanked.
// Used by session restoration to revalidate a cached snapshot.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	snapshot := user.Snapshot()
	return &snapshot, nil
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// audit records an auth event. Failures are logged, not propagated; an
// unavailable audit trail must not block a login.
func (s *AuthService) audit(userID, action, entityType, entityID, details string) {
	if s.auditRepo == nil {
		return
	}
	entry := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}
	if err := s.auditRepo.Record(entry); err != nil {
		log.Printf("Warning: failed to record audit entry %s for user %s: %v", action, userID, err)
	}
}
