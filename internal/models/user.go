package models

import "time"

// User is the slice of the identity record the scheduling core needs:
// fallback work environment and timezone. Authentication lives elsewhere.
type User struct {
	ID                     string          `json:"user_id"`
	Username               string          `json:"username"`
	DefaultWorkEnvironment WorkEnvironment `json:"default_work_environment"`
	Timezone               string          `json:"timezone"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}
