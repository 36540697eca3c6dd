package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// AlarmID is a value object representing a unique alarm rule identifier.
// The external scheduler keys registrations by this value, so it must be
// stable across edits of the owning rule.
type AlarmID struct {
	value string
}

// NewAlarmID creates a new random AlarmID
func NewAlarmID() AlarmID {
	return AlarmID{value: uuid.New().String()}
}

// NewAlarmIDFromString creates an AlarmID from an existing string
func NewAlarmIDFromString(id string) (AlarmID, error) {
	if id == "" {
		return AlarmID{}, errors.New("alarm ID cannot be empty")
	}
	if !isValidUUID(id) {
		return AlarmID{}, errors.New("alarm ID must be a valid UUID")
	}
	return AlarmID{value: id}, nil
}

// String returns the string representation of the AlarmID
func (id AlarmID) String() string {
	return id.value
}

// Equals checks if two AlarmIDs are equal
func (id AlarmID) Equals(other AlarmID) bool {
	return id.value == other.value
}

// IsZero checks if the AlarmID is the zero value
func (id AlarmID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id AlarmID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *AlarmID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := NewAlarmIDFromString(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
