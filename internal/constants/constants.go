package constants

const (
	AppName            = "planwise"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/planwise"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard clock format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultBusinessStart and DefaultBusinessEnd bound the fallback
	// suggestion window on days with no availability slots at all.
	DefaultBusinessStart = "09:00"
	DefaultBusinessEnd   = "17:00"

	// MaxSuggestions caps how many candidate slots the suggester returns.
	MaxSuggestions = 5

	// AlternativeWindowDays is the width of the suggestion window opened
	// when a suggest_alternative rule triggers during validation.
	AlternativeWindowDays = 7

	// DefaultRulePriorityOrder is assigned to rules created without an
	// explicit evaluation order. Lower values evaluate first.
	DefaultRulePriorityOrder = 100

	DefaultTimezone = "UTC"
)
