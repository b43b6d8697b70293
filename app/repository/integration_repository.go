package repository

import (
	"gorm.io/gorm"

	"github.com/sweatandcode/tasksher/app/models"
)

// integrationRepository implements the IntegrationRepository interface
type integrationRepository struct {
	db *gorm.DB
}

// NewIntegrationRepository creates a new integration repository instance
func NewIntegrationRepository(db *gorm.DB) IntegrationRepository {
	return &integrationRepository{db: db}
}

// Create creates a new integration in the database
func (r *integrationRepository) Create(integration *models.Integration) error {
	return r.db.Create(integration).Error
}

// GetByUUID retrieves an integration by its UUID, scoped to the owning user
func (r *integrationRepository) GetByUUID(userID uint, uuid string) (*models.Integration, error) {
	var integration models.Integration
	err := r.db.Where("user_id = ? AND uuid = ?", userID, uuid).First(&integration).Error
	if err != nil {
		return nil, err
	}
	return &integration, nil
}

// GetByUserID retrieves all integrations for a user
func (r *integrationRepository) GetByUserID(userID uint) ([]models.Integration, error) {
	var integrations []models.Integration
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&integrations).Error
	return integrations, err
}

// Update updates an existing integration
func (r *integrationRepository) Update(integration *models.Integration) error {
	return r.db.Save(integration).Error
}

// Delete removes an integration, scoped to the owning user
func (r *integrationRepository) Delete(userID uint, uuid string) error {
	result := r.db.Where("user_id = ? AND uuid = ?", userID, uuid).Delete(&models.Integration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
