package storage

// Schema DDL per dialect. Time values are stored as RFC3339 strings and
// dates as YYYY-MM-DD strings so the same read/write code serves both
// drivers; slot lists, conditions, patterns, and setting values are JSON
// text columns.

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	user_id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	default_work_environment TEXT NOT NULL DEFAULT 'home',
	timezone TEXT NOT NULL DEFAULT 'UTC',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	task_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(user_id),
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category_id TEXT,
	priority TEXT NOT NULL DEFAULT 'medium',
	estimated_duration_minutes INTEGER NOT NULL,
	deadline TEXT,
	requires_focus INTEGER NOT NULL DEFAULT 0,
	fitting_environments TEXT NOT NULL DEFAULT '[]',
	scheduled_slots TEXT NOT NULL DEFAULT '[]',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);

CREATE TABLE IF NOT EXISTS calendar_days (
	calendar_day_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(user_id),
	date TEXT NOT NULL,
	work_environment TEXT NOT NULL,
	focus_slots TEXT NOT NULL DEFAULT '[]',
	availability_slots TEXT NOT NULL DEFAULT '[]',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	UNIQUE(user_id, date)
);

CREATE TABLE IF NOT EXISTS day_settings (
	setting_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(user_id),
	setting_type TEXT NOT NULL,
	value TEXT NOT NULL DEFAULT '{}',
	recurrence_pattern TEXT NOT NULL DEFAULT '{}',
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_day_settings_user ON day_settings(user_id);

CREATE TABLE IF NOT EXISTS scheduling_rules (
	rule_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(user_id),
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	conditions TEXT NOT NULL DEFAULT '[]',
	action TEXT NOT NULL,
	alert_message TEXT NOT NULL DEFAULT '',
	priority_order INTEGER NOT NULL DEFAULT 100,
	is_active INTEGER NOT NULL DEFAULT 1,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scheduling_rules_user ON scheduling_rules(user_id);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS users (
	user_id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	default_work_environment TEXT NOT NULL DEFAULT 'home',
	timezone TEXT NOT NULL DEFAULT 'UTC',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	task_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(user_id),
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	category_id TEXT,
	priority TEXT NOT NULL DEFAULT 'medium',
	estimated_duration_minutes INTEGER NOT NULL,
	deadline TEXT,
	requires_focus BOOLEAN NOT NULL DEFAULT FALSE,
	fitting_environments TEXT NOT NULL DEFAULT '[]',
	scheduled_slots TEXT NOT NULL DEFAULT '[]',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);

CREATE TABLE IF NOT EXISTS calendar_days (
	calendar_day_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(user_id),
	date TEXT NOT NULL,
	work_environment TEXT NOT NULL,
	focus_slots TEXT NOT NULL DEFAULT '[]',
	availability_slots TEXT NOT NULL DEFAULT '[]',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	UNIQUE(user_id, date)
);

CREATE TABLE IF NOT EXISTS day_settings (
	setting_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(user_id),
	setting_type TEXT NOT NULL,
	value TEXT NOT NULL DEFAULT '{}',
	recurrence_pattern TEXT NOT NULL DEFAULT '{}',
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_day_settings_user ON day_settings(user_id);

CREATE TABLE IF NOT EXISTS scheduling_rules (
	rule_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL REFERENCES users(user_id),
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	conditions TEXT NOT NULL DEFAULT '[]',
	action TEXT NOT NULL,
	alert_message TEXT NOT NULL DEFAULT '',
	priority_order INTEGER NOT NULL DEFAULT 100,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scheduling_rules_user ON scheduling_rules(user_id);
`
