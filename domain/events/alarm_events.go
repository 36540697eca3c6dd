package events

import (
	"time"

	"dreamvault/domain/core/valueobjects"
)

// Alarm events

// AlarmScheduled is raised when an alarm rule gains an active registration
type AlarmScheduled struct {
	BaseEvent
	AlarmID valueobjects.AlarmID `json:"alarm_id"`
	UserID  string               `json:"user_id"`
	Time    string               `json:"time"`
}

// NewAlarmScheduled creates an AlarmScheduled event
func NewAlarmScheduled(alarmID valueobjects.AlarmID, userID string, at valueobjects.TimeOfDay, timestamp time.Time) AlarmScheduled {
	return AlarmScheduled{
		BaseEvent: BaseEvent{
			AggregateID: alarmID.String(),
			EventType:   "alarm.scheduled",
			Timestamp:   timestamp,
			Version:     1,
		},
		AlarmID: alarmID,
		UserID:  userID,
		Time:    at.String(),
	}
}

// AlarmCanceled is raised when an alarm rule's registration is removed,
// whether by toggle, edit, or delete
type AlarmCanceled struct {
	BaseEvent
	AlarmID valueobjects.AlarmID `json:"alarm_id"`
	UserID  string               `json:"user_id"`
}

// NewAlarmCanceled creates an AlarmCanceled event
func NewAlarmCanceled(alarmID valueobjects.AlarmID, userID string, timestamp time.Time) AlarmCanceled {
	return AlarmCanceled{
		BaseEvent: BaseEvent{
			AggregateID: alarmID.String(),
			EventType:   "alarm.canceled",
			Timestamp:   timestamp,
			Version:     1,
		},
		AlarmID: alarmID,
		UserID:  userID,
	}
}
