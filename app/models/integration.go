package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Integration is a connected third-party service (Gmail, Notion, ...)
// holding the per-user connection configuration.
type Integration struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UUID          string    `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	ServiceName   string    `gorm:"type:varchar(100);not null" json:"service_name" validate:"required,min=2,max=100"`
	Configuration string    `gorm:"type:longtext" json:"configuration"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (i *Integration) BeforeCreate(tx *gorm.DB) error {
	if i.UUID == "" {
		i.UUID = uuid.New().String()
	}
	return nil
}

func (i *Integration) Validate() error {
	v := validator.New()

	return v.Struct(i)
}
