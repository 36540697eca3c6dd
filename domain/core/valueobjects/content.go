package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"dreamvault/domain/config"
	pkgerrors "dreamvault/pkg/errors"
)

// DreamContent is a value object for the user-authored text of a dream entry
type DreamContent struct {
	title string
	body  string
}

// NewDreamContent creates content with validation using default configuration
func NewDreamContent(title, body string) (DreamContent, error) {
	return NewDreamContentWithConfig(title, body, config.DefaultDomainConfig())
}

// NewDreamContentWithConfig creates content with validation and configuration
func NewDreamContentWithConfig(title, body string, cfg *config.DomainConfig) (DreamContent, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)

	if title == "" {
		return DreamContent{}, pkgerrors.NewValidationError("title cannot be empty")
	}

	titleLength := utf8.RuneCountInString(title)
	if titleLength < cfg.MinTitleLength {
		return DreamContent{}, fmt.Errorf("title too short: minimum %d characters required", cfg.MinTitleLength)
	}
	if titleLength > cfg.MaxTitleLength {
		return DreamContent{}, fmt.Errorf("title exceeds maximum length of %d characters", cfg.MaxTitleLength)
	}

	if body == "" && !cfg.AllowEmptyBody {
		return DreamContent{}, pkgerrors.NewValidationError("body cannot be empty")
	}
	if utf8.RuneCountInString(body) > cfg.MaxBodyLength {
		return DreamContent{}, fmt.Errorf("body exceeds maximum length of %d characters", cfg.MaxBodyLength)
	}

	return DreamContent{title: title, body: body}, nil
}

// Title returns the dream title
func (c DreamContent) Title() string {
	return c.title
}

// Body returns the dream body text
func (c DreamContent) Body() string {
	return c.body
}

// IsEmpty checks whether the content carries any text
func (c DreamContent) IsEmpty() bool {
	return c.title == "" && c.body == ""
}

// Equals checks if two contents are identical
func (c DreamContent) Equals(other DreamContent) bool {
	return c.title == other.title && c.body == other.body
}
