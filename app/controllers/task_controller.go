package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sweatandcode/tasksher/app/models"
	"github.com/sweatandcode/tasksher/app/repository"
	"github.com/sweatandcode/tasksher/internal/pkg/jobqueue"
	"github.com/sweatandcode/tasksher/internal/pkg/usercontext"
)

type createTaskRequest struct {
	AutomationUUID string `json:"automation_uuid"`
	InputData      string `json:"input_data"`
}

// HandleListTasks returns a page of the user's tasks plus status counts.
func HandleListTasks(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	repo := repository.GetGlobalFactory().GetTaskRepository()
	tasks, err := repo.GetByUserID(userCtx.UserID, (page-1)*limit, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load tasks"})
	}

	counts := fiber.Map{}
	for _, status := range []string{models.TaskStatusPending, models.TaskStatusProcessing, models.TaskStatusCompleted, models.TaskStatusFailed} {
		n, err := repo.CountByUserIDAndStatus(userCtx.UserID, status)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load tasks"})
		}
		counts[status] = n
	}

	return c.JSON(fiber.Map{
		"tasks":  tasks,
		"page":   page,
		"limit":  limit,
		"counts": counts,
	})
}

// HandleGetTask returns a single task by UUID.
func HandleGetTask(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	task, err := repository.GetGlobalFactory().GetTaskRepository().GetByUUID(userCtx.UserID, c.Params("uuid"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Task not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load task"})
	}
	return c.JSON(task)
}

// HandleCreateTask queues an automation run, consuming one credit.
func HandleCreateTask(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)

	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Request body must be valid JSON"})
	}

	factory := repository.GetGlobalFactory()
	profile, err := factory.GetProfileRepository().GetOrCreate(userCtx.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load profile"})
	}
	if profile.CreditsRemaining() <= 0 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "credit_limit_reached", "message": "Monthly credit limit reached. Upgrade to Pro for more credits."})
	}

	task := &models.Task{
		UserID:    userCtx.UserID,
		Status:    models.TaskStatusPending,
		InputData: req.InputData,
	}

	if req.AutomationUUID != "" {
		automation, err := factory.GetAutomationRepository().GetByUUID(userCtx.UserID, req.AutomationUUID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Automation not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load automation"})
		}
		if !automation.IsActive {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "automation_inactive", "message": "This automation is paused"})
		}
		task.AutomationID = &automation.ID
	}

	if err := factory.GetTaskRepository().Create(task); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create task"})
	}

	queue := jobqueue.GetQueue()
	if queue == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "queue_unavailable", "message": "Task queue is not running"})
	}
	payload := jobqueue.AutomationRunJobPayload{
		TaskUUID: task.UUID,
		UserID:   userCtx.UserID,
	}
	if _, err := queue.EnqueueJob(jobqueue.JobTypeAutomationRun, payload.ToMap()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to queue task"})
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}
