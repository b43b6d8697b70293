package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/sweatandcode/tasksher/app/models"
)

// usageLogRepository implements the UsageLogRepository interface
type usageLogRepository struct {
	db *gorm.DB
}

// NewUsageLogRepository creates a new usage log repository instance
func NewUsageLogRepository(db *gorm.DB) UsageLogRepository {
	return &usageLogRepository{db: db}
}

// Create appends a usage log entry
func (r *usageLogRepository) Create(entry *models.UsageLog) error {
	return r.db.Create(entry).Error
}

// GetByUserID retrieves a user's usage entries since the given time, newest first
func (r *usageLogRepository) GetByUserID(userID uint, since time.Time) ([]models.UsageLog, error) {
	var entries []models.UsageLog
	err := r.db.Where("user_id = ? AND timestamp >= ?", userID, since).
		Order("timestamp DESC").
		Find(&entries).Error
	return entries, err
}

// SumCreditsByUserID totals credits consumed by a user since the given time
func (r *usageLogRepository) SumCreditsByUserID(userID uint, since time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&models.UsageLog{}).
		Where("user_id = ? AND timestamp >= ?", userID, since).
		Select("COALESCE(SUM(credits_consumed), 0)").
		Scan(&total).Error
	return total, err
}
