package services

import (
	"sort"
	"strings"
)

// ThemeExtractor detects coarse topical themes in dream text.
// This is a domain service that encapsulates text processing logic.
type ThemeExtractor interface {
	// ExtractThemes returns up to five theme tags detected in the text,
	// in alphabetical order. Text with no detectable theme yields the
	// fixed fallback set.
	ExtractThemes(text string) []string
}

// maxThemes caps the extracted theme set
const maxThemes = 5

// fallbackThemes is returned when no category keyword matches
var fallbackThemes = []string{"memory", "subconscious", "symbolism"}

// themeCategories maps each theme to the whole tokens that signal it
var themeCategories = map[string][]string{
	"water":  {"water", "ocean", "sea", "river", "lake", "swim", "flood", "rain"},
	"flying": {"fly", "flying", "float", "falling", "jumping", "height", "sky"},
	"chase":  {"chase", "run", "escape", "follow", "pursued", "hunting"},
	"family": {"family", "mother", "father", "sister", "brother", "child", "parent"},
	"travel": {"journey", "travel", "path", "road", "car", "trip", "destination"},
	"home":   {"house", "home", "room", "building", "door", "window"},
	"fear":   {"fear", "afraid", "scary", "threat", "danger", "dark", "hide"},
}

// KeywordThemeExtractor provides the default ThemeExtractor implementation
type KeywordThemeExtractor struct{}

// NewKeywordThemeExtractor creates a new keyword-based theme extractor
func NewKeywordThemeExtractor() *KeywordThemeExtractor {
	return &KeywordThemeExtractor{}
}

// ExtractThemes tokenizes on whitespace, lower-cases, and includes a
// category once when any of its keywords appears as a whole token.
func (e *KeywordThemeExtractor) ExtractThemes(text string) []string {
	words := tokenize(text)

	detected := make([]string, 0, len(themeCategories))
	for category, keywords := range themeCategories {
		for _, keyword := range keywords {
			if words[keyword] {
				detected = append(detected, category)
				break
			}
		}
	}

	if len(detected) == 0 {
		result := make([]string, len(fallbackThemes))
		copy(result, fallbackThemes)
		return result
	}

	sort.Strings(detected)
	if len(detected) > maxThemes {
		detected = detected[:maxThemes]
	}
	return detected
}

// tokenize breaks text into a set of unique lowercase whitespace tokens
func tokenize(text string) map[string]bool {
	words := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if word != "" {
			words[word] = true
		}
	}
	return words
}
