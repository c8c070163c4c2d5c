package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jstrand/planwise/internal/models"
)

func newTestStore(t *testing.T) *SQLStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "planwise.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedUser(t *testing.T, store *SQLStore) models.User {
	t.Helper()
	user := models.User{
		ID:                     "u1",
		Username:               "tester",
		DefaultWorkEnvironment: models.EnvironmentHome,
		Timezone:               "UTC",
	}
	if err := store.SaveUser(user); err != nil {
		t.Fatalf("SaveUser() failed: %v", err)
	}
	return user
}

func TestSQLStore_InitIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	if err := store.Init(); err != nil {
		t.Fatalf("second Init() failed: %v", err)
	}
}

func TestSQLStore_UserRoundTrip(t *testing.T) {
	store := newTestStore(t)
	seedUser(t, store)

	got, err := store.GetUser("u1")
	if err != nil {
		t.Fatalf("GetUser() failed: %v", err)
	}
	if got.Username != "tester" || got.DefaultWorkEnvironment != models.EnvironmentHome {
		t.Errorf("unexpected user: %+v", got)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps should be filled on save")
	}

	// Update keeps the identity and bumps the record.
	got.Timezone = "Europe/Berlin"
	if err := store.SaveUser(got); err != nil {
		t.Fatalf("SaveUser() update failed: %v", err)
	}
	updated, err := store.GetUser("u1")
	if err != nil {
		t.Fatalf("GetUser() after update failed: %v", err)
	}
	if updated.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q, want Europe/Berlin", updated.Timezone)
	}

	if _, err := store.GetUser("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSQLStore_TaskRoundTrip(t *testing.T) {
	store := newTestStore(t)
	seedUser(t, store)

	category := "cat-1"
	deadline := time.Date(2025, 6, 10, 17, 0, 0, 0, time.UTC)
	task := models.Task{
		ID:                       "t1",
		UserID:                   "u1",
		Title:                    "Write report",
		Description:              "quarterly numbers",
		CategoryID:               &category,
		Priority:                 models.PriorityHigh,
		EstimatedDurationMinutes: 90,
		Deadline:                 &deadline,
		RequiresFocus:            true,
		FittingEnvironments:      []models.WorkEnvironment{models.EnvironmentHome, models.EnvironmentOffice},
	}
	if err := store.SaveTask(task); err != nil {
		t.Fatalf("SaveTask() failed: %v", err)
	}

	got, err := store.GetTask("u1", "t1")
	if err != nil {
		t.Fatalf("GetTask() failed: %v", err)
	}
	if got.Title != task.Title || got.Priority != models.PriorityHigh || !got.RequiresFocus {
		t.Errorf("unexpected task: %+v", got)
	}
	if got.CategoryID == nil || *got.CategoryID != "cat-1" {
		t.Errorf("CategoryID = %v, want cat-1", got.CategoryID)
	}
	if got.Deadline == nil || !got.Deadline.Equal(deadline) {
		t.Errorf("Deadline = %v, want %v", got.Deadline, deadline)
	}
	if len(got.FittingEnvironments) != 2 {
		t.Errorf("FittingEnvironments = %v", got.FittingEnvironments)
	}
	if len(got.ScheduledSlots) != 0 {
		t.Errorf("new task should have no scheduled slots, got %v", got.ScheduledSlots)
	}

	if _, err := store.GetTask("u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTask(missing) error = %v, want ErrNotFound", err)
	}
	// Tasks are scoped by user.
	if _, err := store.GetTask("someone-else", "t1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTask(wrong user) error = %v, want ErrNotFound", err)
	}
}

func TestSQLStore_GetTasksSubset(t *testing.T) {
	store := newTestStore(t)
	seedUser(t, store)

	for _, id := range []string{"a", "b", "c"} {
		task := models.Task{
			ID: id, UserID: "u1", Title: "Task " + id,
			Priority: models.PriorityMedium, EstimatedDurationMinutes: 30,
		}
		if err := store.SaveTask(task); err != nil {
			t.Fatalf("SaveTask(%s) failed: %v", id, err)
		}
	}

	tasks, err := store.GetTasks("u1", []string{"a", "c", "ghost"})
	if err != nil {
		t.Fatalf("GetTasks() failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}

	tasks, err = store.GetTasks("u1", nil)
	if err != nil {
		t.Fatalf("GetTasks(empty) failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("empty id list should return no tasks, got %d", len(tasks))
	}

	all, err := store.GetAllTasks("u1")
	if err != nil {
		t.Fatalf("GetAllTasks() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("GetAllTasks() returned %d tasks, want 3", len(all))
	}
}

func TestSQLStore_ReplaceScheduledSlots(t *testing.T) {
	store := newTestStore(t)
	seedUser(t, store)

	task := models.Task{
		ID: "t1", UserID: "u1", Title: "Task",
		Priority: models.PriorityMedium, EstimatedDurationMinutes: 60,
	}
	if err := store.SaveTask(task); err != nil {
		t.Fatalf("SaveTask() failed: %v", err)
	}

	dayID := "cd-1"
	slots := []models.ScheduledSlot{{
		StartTime:     time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		CalendarDayID: &dayID,
	}}
	if err := store.ReplaceScheduledSlots("u1", "t1", slots); err != nil {
		t.Fatalf("ReplaceScheduledSlots() failed: %v", err)
	}

	got, err := store.GetTask("u1", "t1")
	if err != nil {
		t.Fatalf("GetTask() failed: %v", err)
	}
	if len(got.ScheduledSlots) != 1 {
		t.Fatalf("expected 1 scheduled slot, got %d", len(got.ScheduledSlots))
	}
	if !got.ScheduledSlots[0].StartTime.Equal(slots[0].StartTime) {
		t.Errorf("StartTime = %v, want %v", got.ScheduledSlots[0].StartTime, slots[0].StartTime)
	}
	if got.ScheduledSlots[0].CalendarDayID == nil || *got.ScheduledSlots[0].CalendarDayID != "cd-1" {
		t.Errorf("CalendarDayID = %v, want cd-1", got.ScheduledSlots[0].CalendarDayID)
	}

	if err := store.ReplaceScheduledSlots("u1", "ghost", slots); !errors.Is(err, ErrNotFound) {
		t.Errorf("ReplaceScheduledSlots(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSQLStore_CalendarDayUpsert(t *testing.T) {
	store := newTestStore(t)
	seedUser(t, store)

	day := models.CalendarDay{
		ID:              "cd-1",
		UserID:          "u1",
		Date:            "2025-06-02",
		WorkEnvironment: models.EnvironmentOffice,
		FocusSlots: []models.FocusSlot{
			{StartTime: "10:00", EndTime: "12:00", FocusLevel: models.FocusHigh},
		},
	}
	if err := store.SaveCalendarDay(day); err != nil {
		t.Fatalf("SaveCalendarDay() failed: %v", err)
	}

	got, err := store.GetCalendarDay("u1", "2025-06-02")
	if err != nil {
		t.Fatalf("GetCalendarDay() failed: %v", err)
	}
	if got.WorkEnvironment != models.EnvironmentOffice || len(got.FocusSlots) != 1 {
		t.Errorf("unexpected calendar day: %+v", got)
	}
	if len(got.AvailabilitySlots) != 0 {
		t.Errorf("AvailabilitySlots should be empty, got %v", got.AvailabilitySlots)
	}

	// Saving the same (user, date) again replaces the record.
	day.WorkEnvironment = models.EnvironmentOutdoors
	if err := store.SaveCalendarDay(day); err != nil {
		t.Fatalf("SaveCalendarDay() upsert failed: %v", err)
	}
	got, err = store.GetCalendarDay("u1", "2025-06-02")
	if err != nil {
		t.Fatalf("GetCalendarDay() after upsert failed: %v", err)
	}
	if got.WorkEnvironment != models.EnvironmentOutdoors {
		t.Errorf("WorkEnvironment = %q, want outdoors", got.WorkEnvironment)
	}

	if _, err := store.GetCalendarDay("u1", "2025-06-03"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCalendarDay(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSQLStore_DaySettingsOrderedAndFiltered(t *testing.T) {
	store := newTestStore(t)
	seedUser(t, store)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	save := func(id string, createdAt time.Time, active bool) {
		t.Helper()
		setting := models.DaySetting{
			ID:     id,
			UserID: "u1",
			Type:   models.SettingWorkEnvironment,
			Value:  models.SettingValue{WorkEnvironment: models.EnvironmentOffice},
			Recurrence: models.RecurrencePattern{
				Type: models.RecurrenceDaily, StartDate: "2025-01-01", Interval: 1,
			},
			IsActive:  active,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		if err := store.SaveDaySetting(setting); err != nil {
			t.Fatalf("SaveDaySetting(%s) failed: %v", id, err)
		}
	}

	save("newer", base.Add(2*time.Hour), true)
	save("older", base, true)
	save("inactive", base.Add(time.Hour), false)

	settings, err := store.GetDaySettings("u1")
	if err != nil {
		t.Fatalf("GetDaySettings() failed: %v", err)
	}
	if len(settings) != 2 {
		t.Fatalf("expected 2 active settings, got %d", len(settings))
	}
	if settings[0].ID != "older" || settings[1].ID != "newer" {
		t.Errorf("settings out of order: %s then %s", settings[0].ID, settings[1].ID)
	}
	if settings[0].Recurrence.Type != models.RecurrenceDaily {
		t.Errorf("recurrence did not survive the round trip: %+v", settings[0].Recurrence)
	}
}

func TestSQLStore_RulesOrderedByPriority(t *testing.T) {
	store := newTestStore(t)
	seedUser(t, store)

	save := func(id string, order int, active bool) {
		t.Helper()
		rule := models.Rule{
			ID:     id,
			UserID: "u1",
			Name:   "rule " + id,
			Conditions: []models.RuleCondition{
				{Source: models.ConditionSourceTaskProperty, Field: "priority", Operator: models.OperatorEquals, Value: "high"},
			},
			Action:        models.ActionWarn,
			PriorityOrder: order,
			IsActive:      active,
		}
		if err := store.SaveRule(rule); err != nil {
			t.Fatalf("SaveRule(%s) failed: %v", id, err)
		}
	}

	save("late", 200, true)
	save("early", 10, true)
	save("disabled", 1, false)

	rules, err := store.GetRules("u1")
	if err != nil {
		t.Fatalf("GetRules() failed: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("expected 2 active rules, got %d", len(rules))
	}
	if rules[0].ID != "early" || rules[1].ID != "late" {
		t.Errorf("rules out of order: %s then %s", rules[0].ID, rules[1].ID)
	}
	if len(rules[0].Conditions) != 1 || rules[0].Conditions[0].Field != "priority" {
		t.Errorf("conditions did not survive the round trip: %+v", rules[0].Conditions)
	}
	// JSON round trip turns condition values into their decoded forms.
	if rules[0].Conditions[0].Value != "high" {
		t.Errorf("condition value = %v, want \"high\"", rules[0].Conditions[0].Value)
	}
}
