package repositories

import (
	"fmt"
	"sync"
	"time"

	"acaciacamp/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLogRepository records security-relevant actions. Append-only.
type AuditLogRepository interface {
	Record(entry *models.AuditLog) error
	ListByUser(userID string, limit int) ([]models.AuditLog, error)
}

// GORMAuditLogRepository is a GORM implementation of AuditLogRepository.
type GORMAuditLogRepository struct {
	db *gorm.DB
}

// NewGORMAuditLogRepository creates a new instance of GORMAuditLogRepository.
func NewGORMAuditLogRepository(db *gorm.DB) *GORMAuditLogRepository {
	return &GORMAuditLogRepository{db: db}
}

// Record appends an audit entry.
func (r *GORMAuditLogRepository) Record(entry *models.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}

// ListByUser returns the most recent audit entries for a user.
func (r *GORMAuditLogRepository) ListByUser(userID string, limit int) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&entries, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit entries for user %s: %w", userID, err)
	}
	return entries, nil
}

// MockAuditLogRepository is an in-memory implementation of AuditLogRepository.
type MockAuditLogRepository struct {
	entries []models.AuditLog
	mu      sync.RWMutex
}

// NewMockAuditLogRepository creates a new instance of MockAuditLogRepository.
func NewMockAuditLogRepository() *MockAuditLogRepository {
	return &MockAuditLogRepository{}
}

// Record appends an audit entry.
func (r *MockAuditLogRepository) Record(entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

// ListByUser returns the most recent audit entries for a user.
func (r *MockAuditLogRepository) ListByUser(userID string, limit int) ([]models.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []models.AuditLog
	for i := len(r.entries) - 1; i >= 0 && (limit <= 0 || len(entries) < limit); i-- {
		if r.entries[i].UserID == userID {
			entries = append(entries, r.entries[i])
		}
	}
	return entries, nil
}
