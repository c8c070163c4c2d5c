package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/jstrand/planwise/internal/logger"
	"github.com/jstrand/planwise/internal/models"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// SQLStore implements Store over sqlx for both the file-backed SQLite
// database (default) and PostgreSQL. Queries are written with ? markers
// and rebound per driver.
type SQLStore struct {
	driver string
	dsn    string
	db     *sqlx.DB
}

// NewSQLiteStore creates a store backed by a SQLite database file.
func NewSQLiteStore(path string) *SQLStore {
	return &SQLStore{driver: DriverSQLite, dsn: path}
}

// NewPostgresStore creates a store backed by a PostgreSQL database.
func NewPostgresStore(connStr string) *SQLStore {
	return &SQLStore{driver: DriverPostgres, dsn: connStr}
}

func (s *SQLStore) Init() error {
	if s.db != nil {
		return nil
	}
	if s.driver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(s.dsn), 0700); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sqlx.Open(s.driver, s.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if s.driver == DriverSQLite {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return fmt.Errorf("enabling WAL mode: %w", err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
			db.Close()
			return fmt.Errorf("enabling foreign keys: %w", err)
		}
	}

	schema := sqliteSchema
	if s.driver == DriverPostgres {
		schema = postgresSchema
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// rebind converts ?-style placeholders to the driver's notation.
func (s *SQLStore) rebind(query string) string {
	return s.db.Rebind(query)
}

func marshalJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding json column: %w", err)
	}
	return string(b), nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// touch fills creation/update timestamps, keeping an existing creation
// time when the record is being rewritten.
func touch(createdAt *time.Time, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}

// Users

type userRow struct {
	ID                     string `db:"user_id"`
	Username               string `db:"username"`
	DefaultWorkEnvironment string `db:"default_work_environment"`
	Timezone               string `db:"timezone"`
	CreatedAt              string `db:"created_at"`
	UpdatedAt              string `db:"updated_at"`
}

func (r userRow) toModel() (models.User, error) {
	createdAt, err := parseTimestamp(r.CreatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("parsing user created_at: %w", err)
	}
	updatedAt, err := parseTimestamp(r.UpdatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("parsing user updated_at: %w", err)
	}
	return models.User{
		ID:                     r.ID,
		Username:               r.Username,
		DefaultWorkEnvironment: models.WorkEnvironment(r.DefaultWorkEnvironment),
		Timezone:               r.Timezone,
		CreatedAt:              createdAt,
		UpdatedAt:              updatedAt,
	}, nil
}

func (s *SQLStore) GetUser(userID string) (models.User, error) {
	var row userRow
	err := s.db.Get(&row, s.rebind("SELECT * FROM users WHERE user_id = ?"), userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("loading user: %w", err)
	}
	return row.toModel()
}

func (s *SQLStore) SaveUser(user models.User) error {
	touch(&user.CreatedAt, &user.UpdatedAt)
	_, err := s.db.Exec(s.rebind(`
		INSERT INTO users (user_id, username, default_work_environment, timezone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			default_work_environment = EXCLUDED.default_work_environment,
			timezone = EXCLUDED.timezone,
			updated_at = EXCLUDED.updated_at`),
		user.ID, user.Username, string(user.DefaultWorkEnvironment), user.Timezone,
		formatTimestamp(user.CreatedAt), formatTimestamp(user.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

// Tasks

type taskRow struct {
	ID                       string  `db:"task_id"`
	UserID                   string  `db:"user_id"`
	Title                    string  `db:"title"`
	Description              string  `db:"description"`
	CategoryID               *string `db:"category_id"`
	Priority                 string  `db:"priority"`
	EstimatedDurationMinutes int     `db:"estimated_duration_minutes"`
	Deadline                 *string `db:"deadline"`
	RequiresFocus            bool    `db:"requires_focus"`
	FittingEnvironments      string  `db:"fitting_environments"`
	ScheduledSlots           string  `db:"scheduled_slots"`
	CreatedAt                string  `db:"created_at"`
	UpdatedAt                string  `db:"updated_at"`
}

func (r taskRow) toModel() (models.Task, error) {
	task := models.Task{
		ID:                       r.ID,
		UserID:                   r.UserID,
		Title:                    r.Title,
		Description:              r.Description,
		CategoryID:               r.CategoryID,
		Priority:                 models.Priority(r.Priority),
		EstimatedDurationMinutes: r.EstimatedDurationMinutes,
		RequiresFocus:            r.RequiresFocus,
	}
	if r.Deadline != nil {
		deadline, err := parseTimestamp(*r.Deadline)
		if err != nil {
			return models.Task{}, fmt.Errorf("parsing task deadline: %w", err)
		}
		task.Deadline = &deadline
	}
	if err := json.Unmarshal([]byte(r.FittingEnvironments), &task.FittingEnvironments); err != nil {
		return models.Task{}, fmt.Errorf("decoding fitting_environments: %w", err)
	}
	if err := json.Unmarshal([]byte(r.ScheduledSlots), &task.ScheduledSlots); err != nil {
		return models.Task{}, fmt.Errorf("decoding scheduled_slots: %w", err)
	}
	var err error
	if task.CreatedAt, err = parseTimestamp(r.CreatedAt); err != nil {
		return models.Task{}, fmt.Errorf("parsing task created_at: %w", err)
	}
	if task.UpdatedAt, err = parseTimestamp(r.UpdatedAt); err != nil {
		return models.Task{}, fmt.Errorf("parsing task updated_at: %w", err)
	}
	return task, nil
}

func (s *SQLStore) GetTask(userID, taskID string) (models.Task, error) {
	var row taskRow
	err := s.db.Get(&row, s.rebind("SELECT * FROM tasks WHERE user_id = ? AND task_id = ?"), userID, taskID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, ErrNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("loading task: %w", err)
	}
	return row.toModel()
}

func (s *SQLStore) GetTasks(userID string, taskIDs []string) ([]models.Task, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		"SELECT * FROM tasks WHERE user_id = ? AND task_id IN (?) ORDER BY created_at", userID, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("building task query: %w", err)
	}
	var rows []taskRow
	if err := s.db.Select(&rows, s.rebind(query), args...); err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	tasks := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		task, err := row.toModel()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *SQLStore) GetAllTasks(userID string) ([]models.Task, error) {
	var rows []taskRow
	err := s.db.Select(&rows, s.rebind("SELECT * FROM tasks WHERE user_id = ? ORDER BY created_at"), userID)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	tasks := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		task, err := row.toModel()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (s *SQLStore) SaveTask(task models.Task) error {
	touch(&task.CreatedAt, &task.UpdatedAt)
	if task.FittingEnvironments == nil {
		task.FittingEnvironments = []models.WorkEnvironment{}
	}
	if task.ScheduledSlots == nil {
		task.ScheduledSlots = []models.ScheduledSlot{}
	}
	envs, err := marshalJSON(task.FittingEnvironments)
	if err != nil {
		return err
	}
	slots, err := marshalJSON(task.ScheduledSlots)
	if err != nil {
		return err
	}
	var deadline *string
	if task.Deadline != nil {
		d := formatTimestamp(*task.Deadline)
		deadline = &d
	}
	_, err = s.db.Exec(s.rebind(`
		INSERT INTO tasks (task_id, user_id, title, description, category_id, priority,
			estimated_duration_minutes, deadline, requires_focus, fitting_environments,
			scheduled_slots, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (task_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			category_id = EXCLUDED.category_id,
			priority = EXCLUDED.priority,
			estimated_duration_minutes = EXCLUDED.estimated_duration_minutes,
			deadline = EXCLUDED.deadline,
			requires_focus = EXCLUDED.requires_focus,
			fitting_environments = EXCLUDED.fitting_environments,
			scheduled_slots = EXCLUDED.scheduled_slots,
			updated_at = EXCLUDED.updated_at`),
		task.ID, task.UserID, task.Title, task.Description, task.CategoryID,
		string(task.Priority), task.EstimatedDurationMinutes, deadline, task.RequiresFocus,
		envs, slots, formatTimestamp(task.CreatedAt), formatTimestamp(task.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving task: %w", err)
	}
	return nil
}

// ReplaceScheduledSlots overwrites a task's scheduled slots. Each call is
// its own transaction so an auto-schedule batch commits task by task.
func (s *SQLStore) ReplaceScheduledSlots(userID, taskID string, slots []models.ScheduledSlot) error {
	if slots == nil {
		slots = []models.ScheduledSlot{}
	}
	encoded, err := marshalJSON(slots)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(s.rebind(
		"UPDATE tasks SET scheduled_slots = ?, updated_at = ? WHERE user_id = ? AND task_id = ?"),
		encoded, formatTimestamp(time.Now()), userID, taskID)
	if err != nil {
		return fmt.Errorf("updating scheduled slots: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating scheduled slots: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Calendar day overrides

type calendarDayRow struct {
	ID                string `db:"calendar_day_id"`
	UserID            string `db:"user_id"`
	Date              string `db:"date"`
	WorkEnvironment   string `db:"work_environment"`
	FocusSlots        string `db:"focus_slots"`
	AvailabilitySlots string `db:"availability_slots"`
	CreatedAt         string `db:"created_at"`
	UpdatedAt         string `db:"updated_at"`
}

func (r calendarDayRow) toModel() (models.CalendarDay, error) {
	day := models.CalendarDay{
		ID:              r.ID,
		UserID:          r.UserID,
		Date:            r.Date,
		WorkEnvironment: models.WorkEnvironment(r.WorkEnvironment),
	}
	if err := json.Unmarshal([]byte(r.FocusSlots), &day.FocusSlots); err != nil {
		return models.CalendarDay{}, fmt.Errorf("decoding focus_slots: %w", err)
	}
	if err := json.Unmarshal([]byte(r.AvailabilitySlots), &day.AvailabilitySlots); err != nil {
		return models.CalendarDay{}, fmt.Errorf("decoding availability_slots: %w", err)
	}
	var err error
	if day.CreatedAt, err = parseTimestamp(r.CreatedAt); err != nil {
		return models.CalendarDay{}, fmt.Errorf("parsing calendar day created_at: %w", err)
	}
	if day.UpdatedAt, err = parseTimestamp(r.UpdatedAt); err != nil {
		return models.CalendarDay{}, fmt.Errorf("parsing calendar day updated_at: %w", err)
	}
	return day, nil
}

func (s *SQLStore) GetCalendarDay(userID, date string) (models.CalendarDay, error) {
	var row calendarDayRow
	err := s.db.Get(&row,
		s.rebind("SELECT * FROM calendar_days WHERE user_id = ? AND date = ?"), userID, date)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CalendarDay{}, ErrNotFound
	}
	if err != nil {
		return models.CalendarDay{}, fmt.Errorf("loading calendar day: %w", err)
	}
	return row.toModel()
}

func (s *SQLStore) SaveCalendarDay(day models.CalendarDay) error {
	touch(&day.CreatedAt, &day.UpdatedAt)
	if day.FocusSlots == nil {
		day.FocusSlots = []models.FocusSlot{}
	}
	if day.AvailabilitySlots == nil {
		day.AvailabilitySlots = []models.AvailabilitySlot{}
	}
	focus, err := marshalJSON(day.FocusSlots)
	if err != nil {
		return err
	}
	availability, err := marshalJSON(day.AvailabilitySlots)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(s.rebind(`
		INSERT INTO calendar_days (calendar_day_id, user_id, date, work_environment,
			focus_slots, availability_slots, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO UPDATE SET
			work_environment = EXCLUDED.work_environment,
			focus_slots = EXCLUDED.focus_slots,
			availability_slots = EXCLUDED.availability_slots,
			updated_at = EXCLUDED.updated_at`),
		day.ID, day.UserID, day.Date, string(day.WorkEnvironment),
		focus, availability, formatTimestamp(day.CreatedAt), formatTimestamp(day.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving calendar day: %w", err)
	}
	return nil
}

// Day settings

type daySettingRow struct {
	ID                string `db:"setting_id"`
	UserID            string `db:"user_id"`
	SettingType       string `db:"setting_type"`
	Value             string `db:"value"`
	RecurrencePattern string `db:"recurrence_pattern"`
	IsActive          bool   `db:"is_active"`
	CreatedAt         string `db:"created_at"`
	UpdatedAt         string `db:"updated_at"`
}

func (r daySettingRow) toModel() (models.DaySetting, error) {
	setting := models.DaySetting{
		ID:       r.ID,
		UserID:   r.UserID,
		Type:     models.SettingType(r.SettingType),
		IsActive: r.IsActive,
	}
	if err := json.Unmarshal([]byte(r.Value), &setting.Value); err != nil {
		return models.DaySetting{}, fmt.Errorf("decoding setting value: %w", err)
	}
	if err := json.Unmarshal([]byte(r.RecurrencePattern), &setting.Recurrence); err != nil {
		return models.DaySetting{}, fmt.Errorf("decoding recurrence pattern: %w", err)
	}
	var err error
	if setting.CreatedAt, err = parseTimestamp(r.CreatedAt); err != nil {
		return models.DaySetting{}, fmt.Errorf("parsing setting created_at: %w", err)
	}
	if setting.UpdatedAt, err = parseTimestamp(r.UpdatedAt); err != nil {
		return models.DaySetting{}, fmt.Errorf("parsing setting updated_at: %w", err)
	}
	return setting, nil
}

// GetDaySettings returns active settings ordered by creation time so the
// resolver's last-applied-wins tie-break is deterministic.
func (s *SQLStore) GetDaySettings(userID string) ([]models.DaySetting, error) {
	var rows []daySettingRow
	err := s.db.Select(&rows, s.rebind(
		"SELECT * FROM day_settings WHERE user_id = ? AND is_active = ? ORDER BY created_at, setting_id"),
		userID, true)
	if err != nil {
		return nil, fmt.Errorf("loading day settings: %w", err)
	}
	settings := make([]models.DaySetting, 0, len(rows))
	for _, row := range rows {
		setting, err := row.toModel()
		if err != nil {
			// One corrupt record must not take down resolution for the
			// whole user.
			logger.Warn("Skipping unreadable day setting", "setting_id", row.ID, "error", err)
			continue
		}
		settings = append(settings, setting)
	}
	return settings, nil
}

func (s *SQLStore) SaveDaySetting(setting models.DaySetting) error {
	touch(&setting.CreatedAt, &setting.UpdatedAt)
	value, err := marshalJSON(setting.Value)
	if err != nil {
		return err
	}
	pattern, err := marshalJSON(setting.Recurrence)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(s.rebind(`
		INSERT INTO day_settings (setting_id, user_id, setting_type, value,
			recurrence_pattern, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (setting_id) DO UPDATE SET
			setting_type = EXCLUDED.setting_type,
			value = EXCLUDED.value,
			recurrence_pattern = EXCLUDED.recurrence_pattern,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at`),
		setting.ID, setting.UserID, string(setting.Type), value, pattern,
		setting.IsActive, formatTimestamp(setting.CreatedAt), formatTimestamp(setting.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving day setting: %w", err)
	}
	return nil
}

// Scheduling rules

type ruleRow struct {
	ID            string `db:"rule_id"`
	UserID        string `db:"user_id"`
	Name          string `db:"name"`
	Description   string `db:"description"`
	Conditions    string `db:"conditions"`
	Action        string `db:"action"`
	AlertMessage  string `db:"alert_message"`
	PriorityOrder int    `db:"priority_order"`
	IsActive      bool   `db:"is_active"`
	CreatedAt     string `db:"created_at"`
	UpdatedAt     string `db:"updated_at"`
}

func (r ruleRow) toModel() (models.Rule, error) {
	rule := models.Rule{
		ID:            r.ID,
		UserID:        r.UserID,
		Name:          r.Name,
		Description:   r.Description,
		Action:        models.RuleAction(r.Action),
		AlertMessage:  r.AlertMessage,
		PriorityOrder: r.PriorityOrder,
		IsActive:      r.IsActive,
	}
	if err := json.Unmarshal([]byte(r.Conditions), &rule.Conditions); err != nil {
		return models.Rule{}, fmt.Errorf("decoding rule conditions: %w", err)
	}
	var err error
	if rule.CreatedAt, err = parseTimestamp(r.CreatedAt); err != nil {
		return models.Rule{}, fmt.Errorf("parsing rule created_at: %w", err)
	}
	if rule.UpdatedAt, err = parseTimestamp(r.UpdatedAt); err != nil {
		return models.Rule{}, fmt.Errorf("parsing rule updated_at: %w", err)
	}
	return rule, nil
}

// GetRules returns active rules ordered by priority_order ascending, so
// lower values evaluate first.
func (s *SQLStore) GetRules(userID string) ([]models.Rule, error) {
	var rows []ruleRow
	err := s.db.Select(&rows, s.rebind(
		"SELECT * FROM scheduling_rules WHERE user_id = ? AND is_active = ? ORDER BY priority_order, created_at"),
		userID, true)
	if err != nil {
		return nil, fmt.Errorf("loading scheduling rules: %w", err)
	}
	rules := make([]models.Rule, 0, len(rows))
	for _, row := range rows {
		rule, err := row.toModel()
		if err != nil {
			logger.Warn("Skipping unreadable scheduling rule", "rule_id", row.ID, "error", err)
			continue
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (s *SQLStore) SaveRule(rule models.Rule) error {
	touch(&rule.CreatedAt, &rule.UpdatedAt)
	if rule.Conditions == nil {
		rule.Conditions = []models.RuleCondition{}
	}
	conditions, err := marshalJSON(rule.Conditions)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(s.rebind(`
		INSERT INTO scheduling_rules (rule_id, user_id, name, description, conditions,
			action, alert_message, priority_order, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (rule_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			conditions = EXCLUDED.conditions,
			action = EXCLUDED.action,
			alert_message = EXCLUDED.alert_message,
			priority_order = EXCLUDED.priority_order,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at`),
		rule.ID, rule.UserID, rule.Name, rule.Description, conditions,
		string(rule.Action), rule.AlertMessage, rule.PriorityOrder, rule.IsActive,
		formatTimestamp(rule.CreatedAt), formatTimestamp(rule.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving scheduling rule: %w", err)
	}
	return nil
}
