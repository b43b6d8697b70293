package jobqueue

import (
	"context"
	"fmt"
	"time"

	"github.com/sweatandcode/tasksher/app/models"
	"github.com/sweatandcode/tasksher/app/repository"
	"github.com/sweatandcode/tasksher/internal/pkg/metrics/counter"
)

// processAutomationRunJob executes one queued automation task.
func (q *Queue) processAutomationRunJob(ctx context.Context, job *Job) error {
	payload, err := AutomationRunJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid automation run payload: %w", err)
	}

	taskRepo := repository.GetGlobalRepositories().Task
	task, err := taskRepo.GetByUUID(payload.UserID, payload.TaskUUID)
	if err != nil {
		return fmt.Errorf("task %s not found: %w", payload.TaskUUID, err)
	}
	if task.IsFinished() {
		return nil
	}

	started := time.Now()
	task.Status = models.TaskStatusProcessing
	if err := taskRepo.Update(task); err != nil {
		return err
	}

	automationType := models.AutomationTypeEmailReply
	if task.AutomationID != nil {
		if automation, err := findAutomationByID(payload.UserID, *task.AutomationID); err == nil {
			automationType = automation.Type
		}
	}

	output, runErr := runAutomation(automationType, task.InputData)
	elapsed := time.Since(started)
	now := time.Now()

	task.ProcessingTime = elapsed.Milliseconds()
	task.CompletedAt = &now
	if runErr != nil {
		task.Status = models.TaskStatusFailed
		task.ErrorMessage = runErr.Error()
		if err := taskRepo.Update(task); err != nil {
			return err
		}
		return nil
	}

	task.Status = models.TaskStatusCompleted
	task.OutputData = output
	if err := taskRepo.Update(task); err != nil {
		return err
	}

	// Usage accounting: durable log row plus the Redis-buffered counter
	// that a flush job later folds into profiles.credits_used.
	usage := &models.UsageLog{
		UserID:          payload.UserID,
		AutomationType:  automationType,
		CreditsConsumed: 1,
	}
	if err := repository.GetGlobalRepositories().UsageLog.Create(usage); err != nil {
		return err
	}
	return counter.AddCreditUsage(payload.UserID, 1)
}

// processCreditsFlushJob folds buffered credit usage into the profiles table.
func (q *Queue) processCreditsFlushJob(job *Job) error {
	return counter.FlushAll()
}

func findAutomationByID(userID uint, automationID uint) (*models.Automation, error) {
	automations, err := repository.GetGlobalRepositories().Automation.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	for i := range automations {
		if automations[i].ID == automationID {
			return &automations[i], nil
		}
	}
	return nil, fmt.Errorf("automation %d not found", automationID)
}

func runAutomation(automationType, input string) (string, error) {
	switch automationType {
	case models.AutomationTypeEmailReply:
		return fmt.Sprintf(`{"action":"email_reply","summary":"Drafted reply","input_bytes":%d}`, len(input)), nil
	case models.AutomationTypeNewsletter:
		return fmt.Sprintf(`{"action":"newsletter","summary":"Generated newsletter draft","input_bytes":%d}`, len(input)), nil
	case models.AutomationTypeNotionTask:
		return fmt.Sprintf(`{"action":"notion_task","summary":"Created Notion task","input_bytes":%d}`, len(input)), nil
	default:
		return "", fmt.Errorf("unsupported automation type: %s", automationType)
	}
}
