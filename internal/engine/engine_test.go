package engine

import (
	"time"

	"github.com/jstrand/planwise/internal/daycontext"
	"github.com/jstrand/planwise/internal/models"
	"github.com/jstrand/planwise/internal/storage"
)

// fakeStore satisfies both the engine's Store and the resolver's Source so
// one fixture drives the whole decision path.
type fakeStore struct {
	users     map[string]models.User
	tasks     map[string]models.Task
	rules     []models.Rule
	settings  []models.DaySetting
	overrides map[string]models.CalendarDay
	replaced  map[string][]models.ScheduledSlot

	tasksErr   error
	rulesErr   error
	replaceErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     map[string]models.User{},
		tasks:     map[string]models.Task{},
		overrides: map[string]models.CalendarDay{},
		replaced:  map[string][]models.ScheduledSlot{},
	}
}

func (f *fakeStore) GetUser(userID string) (models.User, error) {
	if user, ok := f.users[userID]; ok {
		return user, nil
	}
	return models.User{}, storage.ErrNotFound
}

func (f *fakeStore) GetTask(userID, taskID string) (models.Task, error) {
	if f.tasksErr != nil {
		return models.Task{}, f.tasksErr
	}
	if task, ok := f.tasks[taskID]; ok {
		return task, nil
	}
	return models.Task{}, storage.ErrNotFound
}

func (f *fakeStore) GetTasks(userID string, taskIDs []string) ([]models.Task, error) {
	if f.tasksErr != nil {
		return nil, f.tasksErr
	}
	var out []models.Task
	for _, id := range taskIDs {
		if task, ok := f.tasks[id]; ok {
			out = append(out, task)
		}
	}
	return out, nil
}

func (f *fakeStore) ReplaceScheduledSlots(userID, taskID string, slots []models.ScheduledSlot) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced[taskID] = slots
	return nil
}

func (f *fakeStore) GetRules(userID string) ([]models.Rule, error) {
	if f.rulesErr != nil {
		return nil, f.rulesErr
	}
	return f.rules, nil
}

func (f *fakeStore) GetDaySettings(userID string) ([]models.DaySetting, error) {
	return f.settings, nil
}

func (f *fakeStore) GetCalendarDay(userID, date string) (models.CalendarDay, error) {
	if day, ok := f.overrides[date]; ok {
		return day, nil
	}
	return models.CalendarDay{}, storage.ErrNotFound
}

func newTestEngine(store *fakeStore) *Engine {
	return New(store, daycontext.NewResolver(store, models.SystemDefaults()))
}

// 2025-06-02 is a Monday.
func dayTime(day, hour, min int) time.Time {
	return time.Date(2025, 6, day, hour, min, 0, 0, time.UTC)
}

func focusTask(id string, duration int) models.Task {
	return models.Task{
		ID:                       id,
		UserID:                   "u1",
		Title:                    "Deep work " + id,
		Priority:                 models.PriorityHigh,
		EstimatedDurationMinutes: duration,
		RequiresFocus:            true,
	}
}
