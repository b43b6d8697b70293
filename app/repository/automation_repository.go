package repository

import (
	"gorm.io/gorm"

	"github.com/sweatandcode/tasksher/app/models"
)

// automationRepository implements the AutomationRepository interface
type automationRepository struct {
	db *gorm.DB
}

// NewAutomationRepository creates a new automation repository instance
func NewAutomationRepository(db *gorm.DB) AutomationRepository {
	return &automationRepository{db: db}
}

// Create creates a new automation in the database
func (r *automationRepository) Create(automation *models.Automation) error {
	return r.db.Create(automation).Error
}

// GetByUUID retrieves an automation by its UUID, scoped to the owning user
func (r *automationRepository) GetByUUID(userID uint, uuid string) (*models.Automation, error) {
	var automation models.Automation
	err := r.db.Where("user_id = ? AND uuid = ?", userID, uuid).First(&automation).Error
	if err != nil {
		return nil, err
	}
	return &automation, nil
}

// GetByUserID retrieves all automations for a user, newest first
func (r *automationRepository) GetByUserID(userID uint) ([]models.Automation, error) {
	var automations []models.Automation
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&automations).Error
	return automations, err
}

// Update updates an existing automation
func (r *automationRepository) Update(automation *models.Automation) error {
	return r.db.Save(automation).Error
}

// Delete removes an automation, scoped to the owning user
func (r *automationRepository) Delete(userID uint, uuid string) error {
	result := r.db.Where("user_id = ? AND uuid = ?", userID, uuid).Delete(&models.Automation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountActiveByUserID counts a user's enabled automations
func (r *automationRepository) CountActiveByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Automation{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}
