package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/sweatandcode/tasksher/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByProvider(provider, providerID string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	Count() (int64, error)
}

// ProfileRepository defines the interface for profile-related database operations
type ProfileRepository interface {
	GetOrCreate(userID uint) (*models.Profile, error)
	GetByUserID(userID uint) (*models.Profile, error)
	Update(profile *models.Profile) error
	AddCreditsUsed(userID uint, credits int) error
}

// AutomationRepository defines the interface for automation-related database operations
type AutomationRepository interface {
	Create(automation *models.Automation) error
	GetByUUID(userID uint, uuid string) (*models.Automation, error)
	GetByUserID(userID uint) ([]models.Automation, error)
	Update(automation *models.Automation) error
	Delete(userID uint, uuid string) error
	CountActiveByUserID(userID uint) (int64, error)
}

// TaskRepository defines the interface for task-related database operations
type TaskRepository interface {
	Create(task *models.Task) error
	GetByUUID(userID uint, uuid string) (*models.Task, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Task, error)
	Update(task *models.Task) error
	CountByUserIDAndStatus(userID uint, status string) (int64, error)
}

// IntegrationRepository defines the interface for integration-related database operations
type IntegrationRepository interface {
	Create(integration *models.Integration) error
	GetByUUID(userID uint, uuid string) (*models.Integration, error)
	GetByUserID(userID uint) ([]models.Integration, error)
	Update(integration *models.Integration) error
	Delete(userID uint, uuid string) error
}

// UsageLogRepository defines the interface for usage log operations
type UsageLogRepository interface {
	Create(entry *models.UsageLog) error
	GetByUserID(userID uint, since time.Time) ([]models.UsageLog, error)
	SumCreditsByUserID(userID uint, since time.Time) (int64, error)
}

// Repositories bundles all repository instances
type Repositories struct {
	User        UserRepository
	Profile     ProfileRepository
	Automation  AutomationRepository
	Task        TaskRepository
	Integration IntegrationRepository
	UsageLog    UsageLogRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Profile:     NewProfileRepository(db),
		Automation:  NewAutomationRepository(db),
		Task:        NewTaskRepository(db),
		Integration: NewIntegrationRepository(db),
		UsageLog:    NewUsageLogRepository(db),
	}
}
