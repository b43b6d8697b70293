package repository

import (
	"gorm.io/gorm"

	"github.com/sweatandcode/tasksher/app/models"
)

// profileRepository implements the ProfileRepository interface
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository instance
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// GetOrCreate returns the profile for a user, creating a default one if missing
func (r *profileRepository) GetOrCreate(userID uint) (*models.Profile, error) {
	return models.GetOrCreateProfile(r.db, userID)
}

// GetByUserID retrieves a profile without creating it
func (r *profileRepository) GetByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update updates an existing profile
func (r *profileRepository) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// AddCreditsUsed increments the consumed credit counter atomically
func (r *profileRepository) AddCreditsUsed(userID uint, credits int) error {
	return r.db.Model(&models.Profile{}).
		Where("user_id = ?", userID).
		UpdateColumn("credits_used", gorm.Expr("credits_used + ?", credits)).Error
}
