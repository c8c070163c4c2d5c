// Package engine is the scheduling decision core: it validates proposed
// task placements, proposes scored candidate slots, and auto-places
// batches of tasks. All failure information is returned in-band in the
// result structures; the engine never panics past its public boundary.
package engine

import (
	"time"

	"github.com/jstrand/planwise/internal/daycontext"
	"github.com/jstrand/planwise/internal/logger"
	"github.com/jstrand/planwise/internal/models"
	"github.com/jstrand/planwise/internal/utils"
)

// Store is the slice of the persistence layer the engine reads and writes.
type Store interface {
	GetUser(userID string) (models.User, error)
	GetTask(userID, taskID string) (models.Task, error)
	GetTasks(userID string, taskIDs []string) ([]models.Task, error)
	ReplaceScheduledSlots(userID, taskID string, slots []models.ScheduledSlot) error
	GetRules(userID string) ([]models.Rule, error)
}

type Engine struct {
	store    Store
	resolver *daycontext.Resolver
}

func New(store Store, resolver *daycontext.Resolver) *Engine {
	return &Engine{store: store, resolver: resolver}
}

// DayContexts resolves effective day contexts for an inclusive date range.
func (e *Engine) DayContexts(userID, startDate, endDate string) ([]models.DayContext, error) {
	return e.resolver.ResolveRange(userID, startDate, endDate)
}

// dayContextOrFallback resolves the day context for a date, falling back
// to a synthetic context built from the user's default work environment
// with empty slot lists when resolution fails.
func (e *Engine) dayContextOrFallback(userID, date string) models.DayContext {
	ctx, err := e.resolver.Resolve(userID, date)
	if err == nil {
		return ctx
	}
	logger.Warn("Day context resolution failed, falling back to user default",
		"user_id", userID, "date", date, "error", err)

	env := models.EnvironmentHome
	if user, uerr := e.store.GetUser(userID); uerr == nil && user.DefaultWorkEnvironment != "" {
		env = user.DefaultWorkEnvironment
	}
	return models.DayContext{
		Date:              date,
		UserID:            userID,
		WorkEnvironment:   env,
		FocusSlots:        []models.FocusSlot{},
		AvailabilitySlots: []models.AvailabilitySlot{},
		Source:            models.SourceDefault,
	}
}

// userLocation loads the user's configured timezone, defaulting to UTC
// when the user record or timezone is unusable.
func (e *Engine) userLocation(userID string) *time.Location {
	user, err := e.store.GetUser(userID)
	if err != nil {
		return time.UTC
	}
	loc, err := utils.LoadLocation(user.Timezone)
	if err != nil {
		logger.Warn("Invalid user timezone, using UTC", "user_id", userID, "timezone", user.Timezone)
		return time.UTC
	}
	return loc
}
