package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"dreamvault/domain/core/entities"
	"dreamvault/domain/core/valueobjects"
	"dreamvault/domain/events"
	pkgerrors "dreamvault/pkg/errors"
)

// In-memory test doubles for the application ports. The scheduler fake
// keeps an ordered call log so tests can assert cancel/register ordering.

type fakeDreamRepo struct {
	mu      sync.Mutex
	dreams  map[string]*entities.Dream
	saveErr error
}

func newFakeDreamRepo() *fakeDreamRepo {
	return &fakeDreamRepo{dreams: make(map[string]*entities.Dream)}
}

func (r *fakeDreamRepo) Save(ctx context.Context, dream *entities.Dream) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dreams[dream.ID().String()] = dream
	return nil
}

func (r *fakeDreamRepo) GetByID(ctx context.Context, id valueobjects.DreamID) (*entities.Dream, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dream, ok := r.dreams[id.String()]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("dream")
	}
	return dream, nil
}

func (r *fakeDreamRepo) GetByUserID(ctx context.Context, userID string) ([]*entities.Dream, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Dream
	for _, dream := range r.dreams {
		if dream.UserID() == userID {
			out = append(out, dream)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

func (r *fakeDreamRepo) Delete(ctx context.Context, id valueobjects.DreamID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.dreams, id.String())
	return nil
}

type fakeAlarmRepo struct {
	mu     sync.Mutex
	alarms map[string]*entities.Alarm
}

func newFakeAlarmRepo() *fakeAlarmRepo {
	return &fakeAlarmRepo{alarms: make(map[string]*entities.Alarm)}
}

func (r *fakeAlarmRepo) Save(ctx context.Context, alarm *entities.Alarm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alarms[alarm.ID().String()] = alarm
	return nil
}

func (r *fakeAlarmRepo) GetByID(ctx context.Context, id valueobjects.AlarmID) (*entities.Alarm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	alarm, ok := r.alarms[id.String()]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("alarm")
	}
	return alarm, nil
}

func (r *fakeAlarmRepo) GetByUserID(ctx context.Context, userID string) ([]*entities.Alarm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Alarm
	for _, alarm := range r.alarms {
		if alarm.UserID() == userID {
			out = append(out, alarm)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Time().Before(out[j].Time())
	})
	return out, nil
}

func (r *fakeAlarmRepo) Delete(ctx context.Context, id valueobjects.AlarmID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.alarms, id.String())
	return nil
}

type fakeScheduler struct {
	mu          sync.Mutex
	calls       []string
	active      map[string]string
	registerErr error
	probeResult bool
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{active: make(map[string]string), probeResult: true}
}

func (s *fakeScheduler) Register(ctx context.Context, alarmID string, hour, minute int, label, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.registerErr != nil {
		return s.registerErr
	}
	at := fmt.Sprintf("%02d:%02d", hour, minute)
	s.calls = append(s.calls, "register:"+alarmID+"@"+at)
	s.active[alarmID] = at
	return nil
}

func (s *fakeScheduler) Cancel(ctx context.Context, alarmID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "cancel:"+alarmID)
	delete(s.active, alarmID)
	return nil
}

func (s *fakeScheduler) Probe(ctx context.Context) bool {
	return s.probeResult
}

func (s *fakeScheduler) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

type fakeEventBus struct {
	mu        sync.Mutex
	published []events.DomainEvent
}

func newFakeEventBus() *fakeEventBus {
	return &fakeEventBus{}
}

func (b *fakeEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
	return nil
}

func (b *fakeEventBus) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, batch...)
	return nil
}

func (b *fakeEventBus) eventTypes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	types := make([]string, 0, len(b.published))
	for _, event := range b.published {
		types = append(types, event.GetEventType())
	}
	return types
}
