package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType defines the type of job
type JobType string

const (
	JobTypeAutomationRun JobType = "automation_run"
	JobTypeCreditsFlush  JobType = "credits_flush"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job represents a background job
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// MarkAsProcessing transitions the job to processing
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.ProcessedAt = &now
	j.UpdatedAt = now
}

// MarkAsCompleted transitions the job to completed
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.CompletedAt = &now
	j.UpdatedAt = now
}

// MarkAsFailed transitions the job to failed and records the error
func (j *Job) MarkAsFailed(errMsg string) {
	j.Status = JobStatusFailed
	j.ErrorMsg = errMsg
	j.RetryCount++
	j.UpdatedAt = time.Now()
}

// IsRetryable reports whether the job may be retried
func (j *Job) IsRetryable() bool {
	return j.RetryCount < j.MaxRetries
}

// AutomationRunJobPayload contains the payload for automation run jobs
type AutomationRunJobPayload struct {
	TaskUUID string `json:"task_uuid"`
	UserID   uint   `json:"user_id"`
}

// ToMap converts the payload to a map for storage
func (p AutomationRunJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"task_uuid": p.TaskUUID,
		"user_id":   p.UserID,
	}
}

// AutomationRunJobPayloadFromMap creates a payload from a map
func AutomationRunJobPayloadFromMap(data map[string]interface{}) (*AutomationRunJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload AutomationRunJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}
