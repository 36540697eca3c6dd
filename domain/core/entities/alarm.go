package entities

import (
	"strings"
	"time"

	"dreamvault/domain/config"
	"dreamvault/domain/core/valueobjects"
	"dreamvault/domain/events"
	pkgerrors "dreamvault/pkg/errors"
)

// RegistrationState tracks whether an alarm rule currently owns a trigger
// registration in the external reminder scheduler.
type RegistrationState string

const (
	StateUnregistered RegistrationState = "unregistered"
	StateRegistered   RegistrationState = "registered"
)

// Alarm is a user-configured recurring daily reminder rule.
//
// Invariant: an enabled alarm owns exactly one scheduler registration keyed
// by its ID; a disabled or deleted alarm owns none. The application service
// keeps entity state and scheduler state in step on every mutation path.
type Alarm struct {
	id        valueobjects.AlarmID
	userID    string
	time      valueobjects.TimeOfDay
	label     string
	enabled   bool
	state     RegistrationState
	createdAt time.Time
	updatedAt time.Time

	events []events.DomainEvent
}

// NewAlarm creates a new alarm rule with validation
func NewAlarm(userID string, at valueobjects.TimeOfDay, label string, enabled bool) (*Alarm, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	cfg := config.DefaultDomainConfig()
	label = strings.TrimSpace(label)
	if label == "" {
		label = cfg.DefaultAlarmLabel
	}
	if len(label) > cfg.MaxLabelLength {
		return nil, pkgerrors.NewValidationError("label too long")
	}

	now := time.Now()
	return &Alarm{
		id:        valueobjects.NewAlarmID(),
		userID:    userID,
		time:      at,
		label:     label,
		enabled:   enabled,
		state:     StateUnregistered,
		createdAt: now,
		updatedAt: now,
		events:    []events.DomainEvent{},
	}, nil
}

// ReconstructAlarm rebuilds an alarm from repository data. No events are
// raised. Registration state is derived from the enabled flag: the service
// layer re-synchronizes the scheduler on every mutation, so a persisted
// enabled alarm is by construction a registered one.
func ReconstructAlarm(
	id valueobjects.AlarmID,
	userID string,
	at valueobjects.TimeOfDay,
	label string,
	enabled bool,
	createdAt, updatedAt time.Time,
) (*Alarm, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	state := StateUnregistered
	if enabled {
		state = StateRegistered
	}

	return &Alarm{
		id:        id,
		userID:    userID,
		time:      at,
		label:     label,
		enabled:   enabled,
		state:     state,
		createdAt: createdAt,
		updatedAt: updatedAt,
		events:    []events.DomainEvent{},
	}, nil
}

// ID returns the alarm's unique identifier
func (a *Alarm) ID() valueobjects.AlarmID {
	return a.id
}

// UserID returns the owner's ID
func (a *Alarm) UserID() string {
	return a.userID
}

// Time returns the daily recurrence time
func (a *Alarm) Time() valueobjects.TimeOfDay {
	return a.time
}

// Label returns the display label carried on the trigger
func (a *Alarm) Label() string {
	return a.label
}

// IsEnabled reports whether the rule is enabled
func (a *Alarm) IsEnabled() bool {
	return a.enabled
}

// State returns the current registration state
func (a *Alarm) State() RegistrationState {
	return a.state
}

// CreatedAt returns the creation timestamp
func (a *Alarm) CreatedAt() time.Time {
	return a.createdAt
}

// UpdatedAt returns the last modification timestamp
func (a *Alarm) UpdatedAt() time.Time {
	return a.updatedAt
}

// Enable turns the rule on. Returns true when the flag actually flipped,
// which is the caller's cue to install a registration.
func (a *Alarm) Enable() bool {
	if a.enabled {
		return false
	}
	a.enabled = true
	a.updatedAt = time.Now()
	return true
}

// Disable turns the rule off. Returns true when the flag actually flipped,
// which is the caller's cue to cancel the registration.
func (a *Alarm) Disable() bool {
	if !a.enabled {
		return false
	}
	a.enabled = false
	a.updatedAt = time.Now()
	return true
}

// Reschedule updates time and label. Returns true when anything changed;
// an enabled alarm whose timing changed must be cancel-then-reinstalled.
func (a *Alarm) Reschedule(at valueobjects.TimeOfDay, label string) (bool, error) {
	cfg := config.DefaultDomainConfig()
	label = strings.TrimSpace(label)
	if label == "" {
		label = cfg.DefaultAlarmLabel
	}
	if len(label) > cfg.MaxLabelLength {
		return false, pkgerrors.NewValidationError("label too long")
	}

	if a.time.Equals(at) && a.label == label {
		return false, nil
	}

	a.time = at
	a.label = label
	a.updatedAt = time.Now()
	return true, nil
}

// MarkRegistered records that the scheduler holds a registration for this
// rule and raises the matching event.
func (a *Alarm) MarkRegistered() {
	if a.state == StateRegistered {
		return
	}
	a.state = StateRegistered
	a.addEvent(events.NewAlarmScheduled(a.id, a.userID, a.time, time.Now()))
}

// MarkUnregistered records that no registration exists for this rule and
// raises the matching event.
func (a *Alarm) MarkUnregistered() {
	if a.state == StateUnregistered {
		return
	}
	a.state = StateUnregistered
	a.addEvent(events.NewAlarmCanceled(a.id, a.userID, time.Now()))
}

// GetUncommittedEvents returns all uncommitted domain events
func (a *Alarm) GetUncommittedEvents() []events.DomainEvent {
	return a.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (a *Alarm) MarkEventsAsCommitted() {
	a.events = []events.DomainEvent{}
}

func (a *Alarm) addEvent(event events.DomainEvent) {
	a.events = append(a.events, event)
}
