package models

import "time"

const (
	SubscriptionStatusActive            = "active"
	SubscriptionStatusTrialing          = "trialing"
	SubscriptionStatusPastDue           = "past_due"
	SubscriptionStatusCanceled          = "canceled"
	SubscriptionStatusUnpaid            = "unpaid"
	SubscriptionStatusIncomplete        = "incomplete"
	SubscriptionStatusIncompleteExpired = "incomplete_expired"
	SubscriptionStatusPaused            = "paused"
	SubscriptionStatusNotStarted        = "not_started"
)

// StripeSubscription mirrors the gateway-owned subscription state for a user.
// Rows are written only from verified webhook payloads; the dashboard reads
// them to derive the effective plan.
type StripeSubscription struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	CustomerID         string     `gorm:"type:varchar(191);not null;index" json:"customer_id"`
	SubscriptionID     string     `gorm:"type:varchar(191);not null;default:'';index" json:"subscription_id"`
	PriceID            string     `gorm:"type:varchar(191);default:''" json:"price_id"`
	Status             string     `gorm:"type:varchar(30);not null;default:'not_started';index" json:"subscription_status"`
	CurrentPeriodStart *time.Time `gorm:"type:timestamp;default:null" json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *time.Time `gorm:"type:timestamp;default:null" json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  bool       `gorm:"default:false" json:"cancel_at_period_end"`
	PaymentMethodBrand string     `gorm:"type:varchar(50);default:''" json:"payment_method_brand"`
	PaymentMethodLast4 string     `gorm:"type:varchar(4);default:''" json:"payment_method_last4"`
	RawPayloadJSON     string     `gorm:"type:longtext" json:"-"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
