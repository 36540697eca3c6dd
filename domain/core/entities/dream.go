package entities

import (
	"strings"
	"time"

	"dreamvault/domain/config"
	"dreamvault/domain/core/valueobjects"
	"dreamvault/domain/events"
	pkgerrors "dreamvault/pkg/errors"
)

// Dream is the main entity representing a journaled dream entry.
// This is a rich domain model with encapsulated business logic.
type Dream struct {
	// Private fields ensure encapsulation
	id             valueobjects.DreamID
	userID         string
	content        valueobjects.DreamContent
	tags           []string
	mood           string
	interpreted    bool
	interpretation string
	createdAt      time.Time
	updatedAt      time.Time
	version        int

	// Domain events that occurred during this aggregate's lifetime
	events []events.DomainEvent
}

// NewDream creates a new dream entry with full business rule validation
func NewDream(userID string, content valueobjects.DreamContent) (*Dream, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	if content.IsEmpty() {
		return nil, pkgerrors.NewValidationError("content cannot be empty")
	}

	now := time.Now()
	dream := &Dream{
		id:        valueobjects.NewDreamID(),
		userID:    userID,
		content:   content,
		tags:      []string{},
		createdAt: now,
		updatedAt: now,
		version:   1,
		events:    []events.DomainEvent{},
	}

	dream.addEvent(events.NewDreamRecorded(dream.id, userID, content.Title(), dream.tags, now))

	return dream, nil
}

// ReconstructDream reconstructs a dream from repository data with preserved
// timestamps and flags. No events are raised.
func ReconstructDream(
	id valueobjects.DreamID,
	userID string,
	content valueobjects.DreamContent,
	tags []string,
	mood string,
	interpreted bool,
	interpretation string,
	createdAt, updatedAt time.Time,
) (*Dream, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if content.IsEmpty() {
		return nil, pkgerrors.NewValidationError("content cannot be empty")
	}

	if tags == nil {
		tags = []string{}
	}

	return &Dream{
		id:             id,
		userID:         userID,
		content:        content,
		tags:           tags,
		mood:           mood,
		interpreted:    interpreted,
		interpretation: interpretation,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		version:        1,
		events:         []events.DomainEvent{},
	}, nil
}

// ID returns the dream's unique identifier
func (d *Dream) ID() valueobjects.DreamID {
	return d.id
}

// UserID returns the owner's ID
func (d *Dream) UserID() string {
	return d.userID
}

// Content returns the dream's content
func (d *Dream) Content() valueobjects.DreamContent {
	return d.content
}

// Mood returns the optional mood label, empty when unset
func (d *Dream) Mood() string {
	return d.mood
}

// IsInterpreted reports whether an interpretation has been saved
func (d *Dream) IsInterpreted() bool {
	return d.interpreted
}

// Interpretation returns the stored interpretation text, empty when unset
func (d *Dream) Interpretation() string {
	return d.interpretation
}

// CreatedAt returns the creation timestamp
func (d *Dream) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns the last modification timestamp
func (d *Dream) UpdatedAt() time.Time {
	return d.updatedAt
}

// Version returns the dream's version for optimistic locking
func (d *Dream) Version() int {
	return d.version
}

// UpdateContent replaces the dream's title and body
func (d *Dream) UpdateContent(content valueobjects.DreamContent) error {
	if content.IsEmpty() {
		return pkgerrors.NewValidationError("content cannot be empty")
	}

	if d.content.Equals(content) {
		return nil
	}

	d.content = content
	d.updatedAt = time.Now()
	d.addEvent(events.NewDreamUpdated(d.id, d.userID, d.updatedAt))
	return nil
}

// SetMood sets or clears the optional mood label
func (d *Dream) SetMood(mood string) error {
	return d.SetMoodWithConfig(mood, config.DefaultDomainConfig())
}

// SetMoodWithConfig sets the mood label with configured limits
func (d *Dream) SetMoodWithConfig(mood string, cfg *config.DomainConfig) error {
	mood = strings.TrimSpace(mood)
	if len(mood) > cfg.MaxMoodLength {
		return pkgerrors.NewValidationError("mood label too long")
	}
	d.mood = mood
	d.updatedAt = time.Now()
	return nil
}

// AddTag appends a tag to the dream
func (d *Dream) AddTag(tag string) error {
	return d.AddTagWithConfig(tag, config.DefaultDomainConfig())
}

// AddTagWithConfig appends a tag with configured limits. Duplicates are
// skipped by convention, matching the journal form behaviour.
func (d *Dream) AddTagWithConfig(tag string, cfg *config.DomainConfig) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return pkgerrors.NewValidationError("tag cannot be empty")
	}
	if len(tag) > cfg.MaxTagLength {
		return pkgerrors.NewValidationError("tag too long")
	}
	if len(d.tags) >= cfg.MaxTagsPerDream {
		return pkgerrors.NewValidationError("too many tags")
	}

	for _, existing := range d.tags {
		if existing == tag {
			return nil
		}
	}

	d.tags = append(d.tags, tag)
	d.updatedAt = time.Now()
	return nil
}

// RemoveTag removes a tag if present
func (d *Dream) RemoveTag(tag string) {
	for i, existing := range d.tags {
		if existing == tag {
			d.tags = append(d.tags[:i], d.tags[i+1:]...)
			d.updatedAt = time.Now()
			return
		}
	}
}

// ReplaceTags swaps the full tag list, preserving order
func (d *Dream) ReplaceTags(tags []string) error {
	cfg := config.DefaultDomainConfig()
	d.tags = []string{}
	for _, tag := range tags {
		if err := d.AddTagWithConfig(tag, cfg); err != nil {
			return err
		}
	}
	d.updatedAt = time.Now()
	return nil
}

// GetTags returns a copy of the ordered tag list
func (d *Dream) GetTags() []string {
	tags := make([]string, len(d.tags))
	copy(tags, d.tags)
	return tags
}

// HasTag reports whether the dream carries the given tag
func (d *Dream) HasTag(tag string) bool {
	for _, existing := range d.tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// SaveInterpretation stores a generated interpretation and marks the entry
// interpreted. Saving the identical text again is a no-op, so the operation
// is idempotent.
func (d *Dream) SaveInterpretation(text string, themes []string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return pkgerrors.NewValidationError("interpretation cannot be empty")
	}

	if d.interpreted && d.interpretation == text {
		return nil
	}

	d.interpretation = text
	d.interpreted = true
	d.updatedAt = time.Now()
	d.addEvent(events.NewInterpretationSaved(d.id, d.userID, themes, d.updatedAt))
	return nil
}

// GetUncommittedEvents returns all uncommitted domain events
func (d *Dream) GetUncommittedEvents() []events.DomainEvent {
	return d.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (d *Dream) MarkEventsAsCommitted() {
	d.events = []events.DomainEvent{}
}

// addEvent appends a domain event to the uncommitted list
func (d *Dream) addEvent(event events.DomainEvent) {
	d.events = append(d.events, event)
}
