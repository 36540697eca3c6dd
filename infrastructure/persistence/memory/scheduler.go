package memory

import (
	"context"
	"fmt"
	"sync"

	"dreamvault/application/ports"
)

// Registration is one installed reminder trigger
type Registration struct {
	AlarmID string
	Hour    int
	Minute  int
	Label   string
	Body    string
}

// Scheduler is an in-memory ports.ReminderScheduler. Registrations are
// keyed by alarm ID with upsert semantics; nothing actually fires.
type Scheduler struct {
	mu            sync.RWMutex
	registrations map[string]Registration
}

// NewScheduler creates an empty in-memory scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{registrations: make(map[string]Registration)}
}

// Register installs or replaces the trigger for the given alarm
func (s *Scheduler) Register(ctx context.Context, alarmID string, hour, minute int, label, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registrations[alarmID] = Registration{
		AlarmID: alarmID,
		Hour:    hour,
		Minute:  minute,
		Label:   label,
		Body:    body,
	}
	return nil
}

// Cancel removes the trigger for the given alarm; absent is a no-op
func (s *Scheduler) Cancel(ctx context.Context, alarmID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registrations, alarmID)
	return nil
}

// Probe always reports the scheduler as usable
func (s *Scheduler) Probe(ctx context.Context) bool {
	return true
}

// Get returns the registration for an alarm, if any
func (s *Scheduler) Get(alarmID string) (Registration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reg, ok := s.registrations[alarmID]
	return reg, ok
}

// Count returns the number of active registrations
func (s *Scheduler) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registrations)
}

// Describe renders a registration's schedule for debugging
func (r Registration) Describe() string {
	return fmt.Sprintf("%s at %02d:%02d", r.AlarmID, r.Hour, r.Minute)
}

var _ ports.ReminderScheduler = (*Scheduler)(nil)
