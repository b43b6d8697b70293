package repository

import (
	"gorm.io/gorm"

	"github.com/sweatandcode/tasksher/app/models"
)

// taskRepository implements the TaskRepository interface
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository instance
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create creates a new task in the database
func (r *taskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// GetByUUID retrieves a task by its UUID, scoped to the owning user
func (r *taskRepository) GetByUUID(userID uint, uuid string) (*models.Task, error) {
	var task models.Task
	err := r.db.Where("user_id = ? AND uuid = ?", userID, uuid).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// GetByUserID retrieves a paginated list of a user's tasks, newest first
func (r *taskRepository) GetByUserID(userID uint, offset, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

// Update updates an existing task
func (r *taskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// CountByUserIDAndStatus counts a user's tasks in the given status
func (r *taskRepository) CountByUserIDAndStatus(userID uint, status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}
