package events

import (
	"time"

	"dreamvault/domain/core/valueobjects"
)

// Dream events

// DreamRecorded is raised when a new dream entry is recorded
type DreamRecorded struct {
	BaseEvent
	DreamID valueobjects.DreamID `json:"dream_id"`
	UserID  string               `json:"user_id"`
	Title   string               `json:"title"`
	Tags    []string             `json:"tags"`
}

// NewDreamRecorded creates a DreamRecorded event
func NewDreamRecorded(dreamID valueobjects.DreamID, userID, title string, tags []string, timestamp time.Time) DreamRecorded {
	return DreamRecorded{
		BaseEvent: BaseEvent{
			AggregateID: dreamID.String(),
			EventType:   "dream.recorded",
			Timestamp:   timestamp,
			Version:     1,
		},
		DreamID: dreamID,
		UserID:  userID,
		Title:   title,
		Tags:    tags,
	}
}

// DreamUpdated is raised when a dream entry's content or metadata changes
type DreamUpdated struct {
	BaseEvent
	DreamID valueobjects.DreamID `json:"dream_id"`
	UserID  string               `json:"user_id"`
}

// NewDreamUpdated creates a DreamUpdated event
func NewDreamUpdated(dreamID valueobjects.DreamID, userID string, timestamp time.Time) DreamUpdated {
	return DreamUpdated{
		BaseEvent: BaseEvent{
			AggregateID: dreamID.String(),
			EventType:   "dream.updated",
			Timestamp:   timestamp,
			Version:     1,
		},
		DreamID: dreamID,
		UserID:  userID,
	}
}

// DreamDeleted is raised when a dream entry is destroyed
type DreamDeleted struct {
	BaseEvent
	DreamID valueobjects.DreamID `json:"dream_id"`
	UserID  string               `json:"user_id"`
}

// NewDreamDeleted creates a DreamDeleted event
func NewDreamDeleted(dreamID valueobjects.DreamID, userID string, timestamp time.Time) DreamDeleted {
	return DreamDeleted{
		BaseEvent: BaseEvent{
			AggregateID: dreamID.String(),
			EventType:   "dream.deleted",
			Timestamp:   timestamp,
			Version:     1,
		},
		DreamID: dreamID,
		UserID:  userID,
	}
}

// InterpretationSaved is raised when a generated interpretation is
// persisted onto its dream entry on user confirmation
type InterpretationSaved struct {
	BaseEvent
	DreamID valueobjects.DreamID `json:"dream_id"`
	UserID  string               `json:"user_id"`
	Themes  []string             `json:"themes,omitempty"`
}

// NewInterpretationSaved creates an InterpretationSaved event
func NewInterpretationSaved(dreamID valueobjects.DreamID, userID string, themes []string, timestamp time.Time) InterpretationSaved {
	return InterpretationSaved{
		BaseEvent: BaseEvent{
			AggregateID: dreamID.String(),
			EventType:   "dream.interpretation_saved",
			Timestamp:   timestamp,
			Version:     1,
		},
		DreamID: dreamID,
		UserID:  userID,
		Themes:  themes,
	}
}
