package models

import "time"

type FocusLevel string

const (
	FocusHigh   FocusLevel = "high"
	FocusMedium FocusLevel = "medium"
	FocusLow    FocusLevel = "low"
)

type AvailabilityStatus string

const (
	StatusAvailable AvailabilityStatus = "available"
	StatusBusy      AvailabilityStatus = "busy"
	StatusTentative AvailabilityStatus = "tentative"
)

// ContextSource identifies which configuration layer produced a day
// context's final value.
type ContextSource string

const (
	SourceDefault       ContextSource = "default"
	SourceUserSettings  ContextSource = "user_settings"
	SourceDailyOverride ContextSource = "daily_override"
)

// FocusSlot is a local time window tagged with a focus level. Times are
// HH:MM 24-hour clock strings with end after start.
type FocusSlot struct {
	StartTime  string     `json:"start_time"`
	EndTime    string     `json:"end_time"`
	FocusLevel FocusLevel `json:"focus_level"`
}

// AvailabilitySlot is a local time window describing when the user can be
// scheduled at all.
type AvailabilitySlot struct {
	StartTime string             `json:"start_time"`
	EndTime   string             `json:"end_time"`
	Status    AvailabilityStatus `json:"status"`
}

// DayContext is the resolved, effective calendar-day configuration for one
// user and one date. It is derived per request and never mutated in place.
type DayContext struct {
	Date              string             `json:"date"`
	UserID            string             `json:"user_id,omitempty"`
	WorkEnvironment   WorkEnvironment    `json:"work_environment"`
	FocusSlots        []FocusSlot        `json:"focus_slots"`
	AvailabilitySlots []AvailabilitySlot `json:"availability_slots"`
	Source            ContextSource      `json:"source"`
	CalendarDayID     *string            `json:"calendar_day_id,omitempty"`
	CreatedAt         *time.Time         `json:"created_at,omitempty"`
	UpdatedAt         *time.Time         `json:"updated_at,omitempty"`
}

// CalendarDay is a persisted one-off override for a single (user, date)
// pair. When present it wins over defaults and recurring user settings.
type CalendarDay struct {
	ID                string             `json:"calendar_day_id"`
	UserID            string             `json:"user_id"`
	Date              string             `json:"date"`
	WorkEnvironment   WorkEnvironment    `json:"work_environment"`
	FocusSlots        []FocusSlot        `json:"focus_slots"`
	AvailabilitySlots []AvailabilitySlot `json:"availability_slots"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceCustom  RecurrenceType = "custom"
)

// RecurrencePattern projects a recurring setting onto calendar dates.
// DaysOfWeek uses 0=Monday through 6=Sunday.
type RecurrencePattern struct {
	Type       RecurrenceType `json:"pattern_type"`
	DaysOfWeek []int          `json:"days_of_week,omitempty"`
	StartDate  string         `json:"start_date"`
	EndDate    string         `json:"end_date,omitempty"`
	Interval   int            `json:"interval"`
}

type SettingType string

const (
	SettingWorkEnvironment   SettingType = "work_environment"
	SettingFocusSlots        SettingType = "focus_slots"
	SettingAvailabilitySlots SettingType = "availability_slots"
)

// SettingValue is the payload of a day setting. Exactly the field matching
// the setting type is populated.
type SettingValue struct {
	WorkEnvironment   WorkEnvironment    `json:"work_environment,omitempty"`
	FocusSlots        []FocusSlot        `json:"focus_slots,omitempty"`
	AvailabilitySlots []AvailabilitySlot `json:"availability_slots,omitempty"`
}

// DaySetting is a recurring calendar-day rule a user defines once and which
// applies to every date matching its recurrence pattern.
type DaySetting struct {
	ID         string            `json:"setting_id"`
	UserID     string            `json:"user_id"`
	Type       SettingType       `json:"setting_type"`
	Value      SettingValue      `json:"value"`
	Recurrence RecurrencePattern `json:"recurrence_pattern"`
	IsActive   bool              `json:"is_active"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// DayDefaults is the immutable system-default day configuration. It is
// built once at startup and shared by reference through the resolver.
type DayDefaults struct {
	WorkEnvironment   WorkEnvironment
	FocusSlots        []FocusSlot
	AvailabilitySlots []AvailabilitySlot
}

// SystemDefaults returns the built-in day configuration used when neither
// user settings nor a daily override apply.
func SystemDefaults() DayDefaults {
	return DayDefaults{
		WorkEnvironment: EnvironmentHome,
		FocusSlots: []FocusSlot{
			{StartTime: "09:00", EndTime: "11:00", FocusLevel: FocusHigh},
			{StartTime: "14:00", EndTime: "16:00", FocusLevel: FocusMedium},
		},
		AvailabilitySlots: []AvailabilitySlot{
			{StartTime: "09:00", EndTime: "17:00", Status: StatusAvailable},
		},
	}
}
