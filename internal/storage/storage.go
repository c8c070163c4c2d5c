package storage

import (
	"errors"

	"github.com/jstrand/planwise/internal/models"
)

// ErrNotFound is returned when a requested record does not exist for the
// given user.
var ErrNotFound = errors.New("record not found")

// Store is the persistence surface the scheduling core consumes. All reads
// are scoped to a user; writes replace whole records.
type Store interface {
	// Lifecycle
	Init() error
	Close() error

	// Users
	GetUser(userID string) (models.User, error)
	SaveUser(models.User) error

	// Tasks
	GetTask(userID, taskID string) (models.Task, error)
	GetTasks(userID string, taskIDs []string) ([]models.Task, error)
	GetAllTasks(userID string) ([]models.Task, error)
	SaveTask(models.Task) error
	ReplaceScheduledSlots(userID, taskID string, slots []models.ScheduledSlot) error

	// Calendar day overrides
	GetCalendarDay(userID, date string) (models.CalendarDay, error)
	SaveCalendarDay(models.CalendarDay) error

	// Recurring day settings, active rows ordered by creation time
	GetDaySettings(userID string) ([]models.DaySetting, error)
	SaveDaySetting(models.DaySetting) error

	// Scheduling rules, active rows ordered by priority_order ascending
	GetRules(userID string) ([]models.Rule, error)
	SaveRule(models.Rule) error
}
