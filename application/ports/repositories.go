package ports

import (
	"context"

	"dreamvault/domain/core/entities"
	"dreamvault/domain/core/valueobjects"
	"dreamvault/domain/events"
)

// DreamRepository defines the interface for dream entry persistence.
// This is a port in hexagonal architecture - the domain doesn't know about
// the implementation.
type DreamRepository interface {
	// Save persists a dream entry (create or update)
	Save(ctx context.Context, dream *entities.Dream) error

	// GetByID retrieves a dream by its ID
	GetByID(ctx context.Context, id valueobjects.DreamID) (*entities.Dream, error)

	// GetByUserID retrieves all dreams for a user, newest first
	GetByUserID(ctx context.Context, userID string) ([]*entities.Dream, error)

	// Delete removes a dream entry
	Delete(ctx context.Context, id valueobjects.DreamID) error
}

// AlarmRepository defines the interface for alarm rule persistence
type AlarmRepository interface {
	// Save persists an alarm rule (create or update)
	Save(ctx context.Context, alarm *entities.Alarm) error

	// GetByID retrieves an alarm by its ID
	GetByID(ctx context.Context, id valueobjects.AlarmID) (*entities.Alarm, error)

	// GetByUserID retrieves all alarms for a user, time-of-day ascending
	GetByUserID(ctx context.Context, userID string) ([]*entities.Alarm, error)

	// Delete removes an alarm rule
	Delete(ctx context.Context, id valueobjects.AlarmID) error
}

// ReminderScheduler is the contract toward the external notification
// collaborator. Registrations are keyed by alarm ID.
type ReminderScheduler interface {
	// Register installs (or replaces) the daily-recurring trigger for the
	// given alarm. Upsert semantics: registering an already registered ID
	// replaces the old trigger.
	Register(ctx context.Context, alarmID string, hour, minute int, label, body string) error

	// Cancel removes the trigger for the given alarm ID. Canceling an
	// absent registration is a silent no-op.
	Cancel(ctx context.Context, alarmID string) error

	// Probe reports whether the scheduler is usable at all (permission
	// granted, target reachable). Queried once at startup and cached by
	// callers; denial degrades the reminder feature without blocking
	// alarm CRUD.
	Probe(ctx context.Context) bool
}

// EventBus defines the interface for publishing domain events
type EventBus interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, batch []events.DomainEvent) error
}
