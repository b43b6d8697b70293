package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// Free-tier accounts get a fixed monthly credit allotment.
const FreeCreditsLimit = 10

// Profile stores per-user dashboard data: display info, plan flag and
// metered credit usage.
type Profile struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName       string    `gorm:"type:varchar(100);default:''" json:"full_name" validate:"max=100"`
	AvatarURL      string    `gorm:"type:varchar(500);default:''" json:"avatar_url" validate:"max=500"`
	Plan           string    `gorm:"type:varchar(20);not null;default:'free'" json:"subscription_plan" validate:"oneof=free pro"`
	SubscriptionID string    `gorm:"type:varchar(191);default:''" json:"subscription_id"`
	CreditsUsed    int       `gorm:"not null;default:0" json:"credits_used"`
	CreditsLimit   int       `gorm:"not null;default:10" json:"credits_limit"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetOrCreateProfile returns the existing profile or creates free-tier defaults.
func GetOrCreateProfile(db *gorm.DB, userID uint) (*Profile, error) {
	var p Profile
	if err := db.Where("user_id = ?", userID).First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			p = Profile{UserID: userID, Plan: PlanFree, CreditsLimit: FreeCreditsLimit}
			if err := db.Create(&p).Error; err != nil {
				return nil, err
			}
			return &p, nil
		}
		return nil, err
	}
	return &p, nil
}

// CreditsRemaining never reports below zero even when usage overshoots the limit.
func (p *Profile) CreditsRemaining() int {
	remaining := p.CreditsLimit - p.CreditsUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}
