package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AutomationTypeEmailReply = "email_reply"
	AutomationTypeNewsletter = "newsletter"
	AutomationTypeNotionTask = "notion_task"
)

// Automation is a user-configured recurring job (e.g. auto email replies).
type Automation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UUID          string    `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Name          string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,min=2,max=150"`
	Type          string    `gorm:"type:varchar(50);not null" json:"type" validate:"oneof=email_reply newsletter notion_task"`
	Configuration string    `gorm:"type:longtext" json:"configuration"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Automation) BeforeCreate(tx *gorm.DB) error {
	if a.UUID == "" {
		a.UUID = uuid.New().String()
	}
	return nil
}

func (a *Automation) Validate() error {
	v := validator.New()

	return v.Struct(a)
}
