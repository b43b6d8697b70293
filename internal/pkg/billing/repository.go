package billing

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sweatandcode/tasksher/app/models"
)

// Repository provides DB operations used by the billing service.
type Repository interface {
	UpsertSubscription(sub *models.StripeSubscription) error
	GetSubscriptionByUserID(userID uint) (*models.StripeSubscription, error)
	GetSubscriptionByCustomerID(customerID string) (*models.StripeSubscription, error)
	GetOrCreateProfile(userID uint) (*models.Profile, error)
	SaveProfile(p *models.Profile) error
	CreateWebhookEventIfNotExists(event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error)
	MarkWebhookProcessed(id uint, processingError string) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a billing repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) UpsertSubscription(sub *models.StripeSubscription) error {
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"customer_id",
			"subscription_id",
			"price_id",
			"status",
			"current_period_start",
			"current_period_end",
			"cancel_at_period_end",
			"payment_method_brand",
			"payment_method_last4",
			"raw_payload_json",
			"updated_at",
		}),
	}).Create(sub).Error; err != nil {
		return err
	}

	// Ensure ID is populated after upsert.
	return r.db.Where("user_id = ?", sub.UserID).First(sub).Error
}

func (r *gormRepository) GetSubscriptionByUserID(userID uint) (*models.StripeSubscription, error) {
	var sub models.StripeSubscription
	if err := r.db.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) GetSubscriptionByCustomerID(customerID string) (*models.StripeSubscription, error) {
	var sub models.StripeSubscription
	if err := r.db.Where("customer_id = ?", customerID).First(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *gormRepository) GetOrCreateProfile(userID uint) (*models.Profile, error) {
	return models.GetOrCreateProfile(r.db, userID)
}

func (r *gormRepository) SaveProfile(p *models.Profile) error {
	return r.db.Save(p).Error
}

func (r *gormRepository) CreateWebhookEventIfNotExists(event *models.BillingWebhookEvent) (bool, *models.BillingWebhookEvent, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "provider"},
			{Name: "provider_event_id"},
		},
		DoNothing: true,
	}).Create(event)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.BillingWebhookEvent
	if err := r.db.Where("provider = ? AND provider_event_id = ?", event.Provider, event.ProviderEventID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormRepository) MarkWebhookProcessed(id uint, processingError string) error {
	now := time.Now()
	updates := map[string]interface{}{
		"processed_at":     &now,
		"processing_error": processingError,
	}
	return r.db.Model(&models.BillingWebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}
