package memory

import (
	"context"
	"sort"
	"sync"

	"dreamvault/application/ports"
	"dreamvault/domain/core/entities"
	"dreamvault/domain/core/valueobjects"
	pkgerrors "dreamvault/pkg/errors"
)

// In-memory repository implementations backing development mode and
// integration tests. Safe for concurrent use.

// DreamRepository is an in-memory ports.DreamRepository
type DreamRepository struct {
	mu     sync.RWMutex
	dreams map[string]*entities.Dream
}

// NewDreamRepository creates an empty in-memory dream store
func NewDreamRepository() *DreamRepository {
	return &DreamRepository{dreams: make(map[string]*entities.Dream)}
}

// Save persists a dream entry (create or update)
func (r *DreamRepository) Save(ctx context.Context, dream *entities.Dream) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dreams[dream.ID().String()] = dream
	return nil
}

// GetByID retrieves a dream by its ID
func (r *DreamRepository) GetByID(ctx context.Context, id valueobjects.DreamID) (*entities.Dream, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dream, ok := r.dreams[id.String()]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("dream")
	}
	return dream, nil
}

// GetByUserID retrieves all dreams for a user, newest first
func (r *DreamRepository) GetByUserID(ctx context.Context, userID string) ([]*entities.Dream, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var dreams []*entities.Dream
	for _, dream := range r.dreams {
		if dream.UserID() == userID {
			dreams = append(dreams, dream)
		}
	}
	sort.Slice(dreams, func(i, j int) bool {
		return dreams[i].CreatedAt().After(dreams[j].CreatedAt())
	})
	return dreams, nil
}

// Delete removes a dream entry
func (r *DreamRepository) Delete(ctx context.Context, id valueobjects.DreamID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.dreams[id.String()]; !ok {
		return pkgerrors.NewNotFoundError("dream")
	}
	delete(r.dreams, id.String())
	return nil
}

// AlarmRepository is an in-memory ports.AlarmRepository
type AlarmRepository struct {
	mu     sync.RWMutex
	alarms map[string]*entities.Alarm
}

// NewAlarmRepository creates an empty in-memory alarm store
func NewAlarmRepository() *AlarmRepository {
	return &AlarmRepository{alarms: make(map[string]*entities.Alarm)}
}

// Save persists an alarm rule (create or update)
func (r *AlarmRepository) Save(ctx context.Context, alarm *entities.Alarm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alarms[alarm.ID().String()] = alarm
	return nil
}

// GetByID retrieves an alarm by its ID
func (r *AlarmRepository) GetByID(ctx context.Context, id valueobjects.AlarmID) (*entities.Alarm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	alarm, ok := r.alarms[id.String()]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("alarm")
	}
	return alarm, nil
}

// GetByUserID retrieves all alarms for a user, time-of-day ascending
func (r *AlarmRepository) GetByUserID(ctx context.Context, userID string) ([]*entities.Alarm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var alarms []*entities.Alarm
	for _, alarm := range r.alarms {
		if alarm.UserID() == userID {
			alarms = append(alarms, alarm)
		}
	}
	sort.Slice(alarms, func(i, j int) bool {
		return alarms[i].Time().Before(alarms[j].Time())
	})
	return alarms, nil
}

// Delete removes an alarm rule
func (r *AlarmRepository) Delete(ctx context.Context, id valueobjects.AlarmID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.alarms[id.String()]; !ok {
		return pkgerrors.NewNotFoundError("alarm")
	}
	delete(r.alarms, id.String())
	return nil
}

var _ ports.DreamRepository = (*DreamRepository)(nil)
var _ ports.AlarmRepository = (*AlarmRepository)(nil)
