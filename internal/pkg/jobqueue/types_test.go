package jobqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStatusTransitions(t *testing.T) {
	job := &Job{Status: JobStatusPending, MaxRetries: DefaultMaxRetries}

	job.MarkAsProcessing()
	assert.Equal(t, JobStatusProcessing, job.Status)
	require.NotNil(t, job.ProcessedAt)

	job.MarkAsCompleted()
	assert.Equal(t, JobStatusCompleted, job.Status)
	require.NotNil(t, job.CompletedAt)
}

func TestJobRetryAccounting(t *testing.T) {
	job := &Job{Status: JobStatusPending, MaxRetries: 2}

	job.MarkAsFailed("boom")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "boom", job.ErrorMsg)
	assert.True(t, job.IsRetryable())

	job.MarkAsFailed("boom again")
	assert.False(t, job.IsRetryable())
}

func TestAutomationRunJobPayloadRoundTrip(t *testing.T) {
	payload := AutomationRunJobPayload{TaskUUID: "11111111-2222-3333-4444-555555555555", UserID: 42}

	decoded, err := AutomationRunJobPayloadFromMap(payload.ToMap())
	require.NoError(t, err)
	assert.Equal(t, payload.TaskUUID, decoded.TaskUUID)
	assert.Equal(t, payload.UserID, decoded.UserID)
}
