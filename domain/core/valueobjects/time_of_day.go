package valueobjects

import (
	"fmt"

	pkgerrors "dreamvault/pkg/errors"
)

// TimeOfDay is a timezone-naive wall-clock time at which an alarm recurs
// daily. It deliberately carries no date or zone: "07:30" means 07:30 on
// every day, wherever the device happens to be.
type TimeOfDay struct {
	hour   int
	minute int
}

// NewTimeOfDay creates a TimeOfDay with validation
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, pkgerrors.NewValidationError(fmt.Sprintf("hour must be 0-23, got %d", hour))
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, pkgerrors.NewValidationError(fmt.Sprintf("minute must be 0-59, got %d", minute))
	}
	return TimeOfDay{hour: hour, minute: minute}, nil
}

// Hour returns the hour component (0-23)
func (t TimeOfDay) Hour() int {
	return t.hour
}

// Minute returns the minute component (0-59)
func (t TimeOfDay) Minute() int {
	return t.minute
}

// String returns the canonical "HH:MM" representation
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.hour, t.minute)
}

// Equals checks if two times are identical
func (t TimeOfDay) Equals(other TimeOfDay) bool {
	return t.hour == other.hour && t.minute == other.minute
}

// Before reports whether t sorts ahead of other; alarms are listed in
// ascending time-of-day order.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.hour != other.hour {
		return t.hour < other.hour
	}
	return t.minute < other.minute
}
