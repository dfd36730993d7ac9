package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pvn-digital/initiative-catalog/auth"
	"github.com/pvn-digital/initiative-catalog/errs"
	"github.com/pvn-digital/initiative-catalog/models"
)

// ActivityLogger appends entries to the logs table. Writes made on behalf of
// another operation never fail it; a failed write goes to the process log.
type ActivityLogger struct {
	store  LogStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewActivityLogger(store LogStore, logger zerolog.Logger) *ActivityLogger {
	return &ActivityLogger{store: store, logger: logger, now: time.Now}
}

// User records an action taken by user on the named initiative as a side
// effect of another operation. A failure is only logged.
func (a *ActivityLogger) User(ctx context.Context, user auth.User, action, initiativeName, message string) {
	if err := a.Record(ctx, user, action, initiativeName, message); err != nil {
		a.logger.Warn().Err(err).Str("action", action).Msg("Failed to write activity log")
	}
}

// Record is User for callers whose whole job is the log entry.
func (a *ActivityLogger) Record(ctx context.Context, user auth.User, action, initiativeName, message string) error {
	meta := map[string]any{
		models.MetaUserEmail: user.Email,
		models.MetaAction:    action,
	}
	if initiativeName != "" {
		meta[models.MetaInitiativeName] = initiativeName
	}
	return a.write(ctx, models.LevelInfo, models.SourceUserInteraction, message, meta)
}

// System records an event with no acting user. A failure is only logged.
func (a *ActivityLogger) System(ctx context.Context, level, source, message string, meta map[string]any) {
	if err := a.write(ctx, level, source, message, meta); err != nil {
		a.logger.Warn().Err(err).Str("source", source).Msg("Failed to write activity log")
	}
}

func (a *ActivityLogger) write(ctx context.Context, level, source, message string, meta map[string]any) error {
	entry := models.LogEntry{
		LogID:      uuid.New(),
		Level:      level,
		Source:     source,
		Message:    message,
		Metadata:   meta,
		OccurredAt: a.now().UTC(),
	}
	if err := a.store.Add(ctx, &entry); err != nil {
		return errs.NewDatabaseError("add", "log entry", err)
	}
	return nil
}
