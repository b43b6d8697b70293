package models

import "time"

// UsageLog records credits consumed per automation run.
type UsageLog struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	AutomationType  string    `gorm:"type:varchar(50);not null" json:"automation_type"`
	CreditsConsumed int       `gorm:"not null;default:1" json:"credits_consumed"`
	Timestamp       time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}
