package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Log levels written to the logs table.
const (
	LevelError = "ERROR"
	LevelWarn  = "WARN"
	LevelInfo  = "INFO"
	LevelDebug = "DEBUG"
)

// SourceUserInteraction marks entries written on behalf of a user action.
const SourceUserInteraction = "UserInteraction"

// User actions recorded in log metadata.
const (
	ActionCreateInitiative = "CREATE_INITIATIVE"
	ActionUpdateInitiative = "UPDATE_INITIATIVE"
	ActionDeleteInitiative = "DELETE_INITIATIVE"
	ActionAccessInitiative = "ACCESS_INITIATIVE"
	ActionViewDatabases    = "VIEW_DATABASES"
	ActionReconcile        = "RECONCILE_LINKS"
)

// Metadata keys read back by the admin analytics.
const (
	MetaUserEmail      = "userEmail"
	MetaAction         = "action"
	MetaInitiativeName = "initiativeName"
)

// LogEntry is an append-only activity or system log row.
type LogEntry struct {
	LogID      uuid.UUID         `json:"log_id" db:"log_id" gorm:"column:log_id;type:uuid;primaryKey;not null"`
	Level      string            `json:"level" db:"level" gorm:"column:level;type:text;not null;index"`
	Source     string            `json:"source" db:"source" gorm:"column:source;type:text;index"`
	Message    string            `json:"message" db:"message" gorm:"column:message;type:text;not null"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty" db:"metadata" gorm:"column:metadata"`
	OccurredAt time.Time         `json:"occurred_at" db:"occurred_at" gorm:"column:occurred_at;not null;index"`
}

func (LogEntry) TableName() string {
	return "logs"
}

// MetaString returns a string metadata value, or "" when absent or not a string.
func (l LogEntry) MetaString(key string) string {
	if l.Metadata == nil {
		return ""
	}
	s, _ := l.Metadata[key].(string)
	return s
}
