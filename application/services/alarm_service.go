package services

import (
	"context"

	"dreamvault/application/ports"
	"dreamvault/domain/core/entities"
	"dreamvault/domain/core/valueobjects"
	pkgerrors "dreamvault/pkg/errors"

	"go.uber.org/zap"
)

// ReminderBody is the text carried on every reminder delivery
const ReminderBody = "Tap here to record a new dream entry!"

// AlarmService implements the alarm rule lifecycle and keeps the external
// reminder scheduler in step with persisted rule state.
//
// Invariant maintained on every mutation path: an enabled rule has exactly
// one active registration keyed by its ID; a disabled or deleted rule has
// none. Edits of an enabled rule cancel before reinstalling - skipping the
// cancel would leave a stale trigger at the old time.
type AlarmService struct {
	alarmRepo         ports.AlarmRepository
	scheduler         ports.ReminderScheduler
	eventBus          ports.EventBus
	logger            *zap.Logger
	permissionGranted bool
}

// NewAlarmService creates a new AlarmService. permissionGranted is the
// result of the startup scheduler probe; denial suppresses registrations
// but never blocks rule CRUD.
func NewAlarmService(
	alarmRepo ports.AlarmRepository,
	scheduler ports.ReminderScheduler,
	eventBus ports.EventBus,
	permissionGranted bool,
	logger *zap.Logger,
) *AlarmService {
	return &AlarmService{
		alarmRepo:         alarmRepo,
		scheduler:         scheduler,
		eventBus:          eventBus,
		logger:            logger,
		permissionGranted: permissionGranted,
	}
}

// CreateAlarm creates a rule and, when enabled, installs its registration.
// A registration failure is returned alongside the created alarm as a
// non-fatal warning; the rule itself is committed either way.
func (s *AlarmService) CreateAlarm(ctx context.Context, userID string, hour, minute int, label string, enabled bool) (*entities.Alarm, error) {
	at, err := valueobjects.NewTimeOfDay(hour, minute)
	if err != nil {
		return nil, err
	}

	alarm, err := entities.NewAlarm(userID, at, label, enabled)
	if err != nil {
		return nil, err
	}

	if err := s.alarmRepo.Save(ctx, alarm); err != nil {
		s.logger.Error("Failed to save alarm", zap.Error(err), zap.String("userID", userID))
		return nil, pkgerrors.NewStorageError("save", err)
	}

	if alarm.IsEnabled() {
		if warn := s.register(ctx, alarm); warn != nil {
			return alarm, warn
		}
	}

	s.publishEvents(ctx, alarm)
	return alarm, nil
}

// GetAlarm retrieves a single rule owned by the user
func (s *AlarmService) GetAlarm(ctx context.Context, userID string, alarmID valueobjects.AlarmID) (*entities.Alarm, error) {
	alarm, err := s.alarmRepo.GetByID(ctx, alarmID)
	if err != nil {
		return nil, err
	}
	if alarm.UserID() != userID {
		return nil, pkgerrors.NewNotFoundError("alarm")
	}
	return alarm, nil
}

// ListAlarms retrieves the user's rules, time-of-day ascending
func (s *AlarmService) ListAlarms(ctx context.Context, userID string) ([]*entities.Alarm, error) {
	alarms, err := s.alarmRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.NewStorageError("list", err)
	}
	return alarms, nil
}

// ToggleAlarm flips the enabled flag and synchronizes the scheduler:
// false→true installs the registration, true→false cancels it.
func (s *AlarmService) ToggleAlarm(ctx context.Context, userID string, alarmID valueobjects.AlarmID, enabled bool) (*entities.Alarm, error) {
	alarm, err := s.GetAlarm(ctx, userID, alarmID)
	if err != nil {
		return nil, err
	}

	var flipped bool
	if enabled {
		flipped = alarm.Enable()
	} else {
		flipped = alarm.Disable()
	}
	if !flipped {
		return alarm, nil
	}

	if err := s.alarmRepo.Save(ctx, alarm); err != nil {
		s.logger.Error("Failed to save alarm toggle", zap.Error(err), zap.String("alarmID", alarmID.String()))
		return nil, pkgerrors.NewStorageError("save", err)
	}

	if enabled {
		if warn := s.register(ctx, alarm); warn != nil {
			return alarm, warn
		}
	} else {
		s.cancel(ctx, alarm)
	}

	s.publishEvents(ctx, alarm)
	return alarm, nil
}

// UpdateAlarm edits time and label. For an enabled rule the old
// registration is canceled before the new one is installed, in that
// order, so exactly one registration exists afterwards.
func (s *AlarmService) UpdateAlarm(ctx context.Context, userID string, alarmID valueobjects.AlarmID, hour, minute int, label string) (*entities.Alarm, error) {
	at, err := valueobjects.NewTimeOfDay(hour, minute)
	if err != nil {
		return nil, err
	}

	alarm, err := s.GetAlarm(ctx, userID, alarmID)
	if err != nil {
		return nil, err
	}

	changed, err := alarm.Reschedule(at, label)
	if err != nil {
		return nil, err
	}
	if !changed {
		return alarm, nil
	}

	if err := s.alarmRepo.Save(ctx, alarm); err != nil {
		s.logger.Error("Failed to save alarm edit", zap.Error(err), zap.String("alarmID", alarmID.String()))
		return nil, pkgerrors.NewStorageError("save", err)
	}

	if alarm.IsEnabled() {
		// Cancel-then-reinstall: the cancel must complete before the
		// install is issued
		s.cancel(ctx, alarm)
		if warn := s.register(ctx, alarm); warn != nil {
			return alarm, warn
		}
	}

	s.publishEvents(ctx, alarm)
	return alarm, nil
}

// DeleteAlarm removes the rule and cancels any registration regardless of
// the enabled flag. Canceling an absent registration is a no-op.
func (s *AlarmService) DeleteAlarm(ctx context.Context, userID string, alarmID valueobjects.AlarmID) error {
	alarm, err := s.GetAlarm(ctx, userID, alarmID)
	if err != nil {
		return err
	}

	s.cancel(ctx, alarm)

	if err := s.alarmRepo.Delete(ctx, alarmID); err != nil {
		s.logger.Error("Failed to delete alarm", zap.Error(err), zap.String("alarmID", alarmID.String()))
		return pkgerrors.NewStorageError("delete", err)
	}

	s.publishEvents(ctx, alarm)
	return nil
}

// register installs the trigger for an enabled alarm. Returns a typed
// non-fatal warning when the platform rejects the install or permission
// was denied at startup.
func (s *AlarmService) register(ctx context.Context, alarm *entities.Alarm) error {
	if !s.permissionGranted {
		s.logger.Warn("Notification permission denied; skipping registration",
			zap.String("alarmID", alarm.ID().String()),
		)
		return pkgerrors.NewPermissionDeniedError("notification permission denied; reminders will not be delivered")
	}

	err := s.scheduler.Register(ctx, alarm.ID().String(), alarm.Time().Hour(), alarm.Time().Minute(), alarm.Label(), ReminderBody)
	if err != nil {
		s.logger.Warn("Reminder registration rejected",
			zap.Error(err),
			zap.String("alarmID", alarm.ID().String()),
			zap.String("time", alarm.Time().String()),
		)
		return pkgerrors.NewRegistrationError(alarm.ID().String(), err)
	}

	alarm.MarkRegistered()
	return nil
}

// cancel removes the trigger for an alarm; failures are logged only, and
// canceling an absent registration is silent by contract.
func (s *AlarmService) cancel(ctx context.Context, alarm *entities.Alarm) {
	if err := s.scheduler.Cancel(ctx, alarm.ID().String()); err != nil {
		s.logger.Warn("Reminder cancellation failed",
			zap.Error(err),
			zap.String("alarmID", alarm.ID().String()),
		)
		return
	}
	alarm.MarkUnregistered()
}

func (s *AlarmService) publishEvents(ctx context.Context, alarm *entities.Alarm) {
	raised := alarm.GetUncommittedEvents()
	if len(raised) == 0 {
		return
	}
	if err := s.eventBus.PublishBatch(ctx, raised); err != nil {
		s.logger.Warn("Failed to publish alarm events",
			zap.Error(err),
			zap.String("alarmID", alarm.ID().String()),
		)
	}
	alarm.MarkEventsAsCommitted()
}
