package valueobjects

import (
	"errors"

	"github.com/google/uuid"
)

// DreamID is a value object representing a unique dream entry identifier
// Value objects are immutable and have no identity beyond their value
type DreamID struct {
	value string
}

// NewDreamID creates a new random DreamID
func NewDreamID() DreamID {
	return DreamID{value: uuid.New().String()}
}

// NewDreamIDFromString creates a DreamID from an existing string
func NewDreamIDFromString(id string) (DreamID, error) {
	if id == "" {
		return DreamID{}, errors.New("dream ID cannot be empty")
	}
	if !isValidUUID(id) {
		return DreamID{}, errors.New("dream ID must be a valid UUID")
	}
	return DreamID{value: id}, nil
}

// String returns the string representation of the DreamID
func (id DreamID) String() string {
	return id.value
}

// Equals checks if two DreamIDs are equal
func (id DreamID) Equals(other DreamID) bool {
	return id.value == other.value
}

// IsZero checks if the DreamID is the zero value
func (id DreamID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id DreamID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *DreamID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := NewDreamIDFromString(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
