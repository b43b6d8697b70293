package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusProcessing = "processing"
	TaskStatusCompleted  = "completed"
	TaskStatusFailed     = "failed"
)

// Task is a single automation run with its input/output payloads.
type Task struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UUID           string     `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	UserID         uint       `gorm:"not null;index" json:"user_id"`
	AutomationID   *uint      `gorm:"index" json:"automation_id,omitempty"`
	Status         string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	InputData      string     `gorm:"type:longtext" json:"input_data"`
	OutputData     string     `gorm:"type:longtext" json:"output_data"`
	ErrorMessage   string     `gorm:"type:text" json:"error_message"`
	ProcessingTime int64      `gorm:"default:0" json:"processing_time"` // milliseconds
	CompletedAt    *time.Time `gorm:"type:timestamp;default:null" json:"completed_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.UUID == "" {
		t.UUID = uuid.New().String()
	}
	return nil
}

// IsFinished reports whether the task reached a terminal status.
func (t *Task) IsFinished() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusFailed
}
