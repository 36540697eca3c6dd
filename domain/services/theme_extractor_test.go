package services

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractThemes_DetectsWaterCategory(t *testing.T) {
	extractor := NewKeywordThemeExtractor()

	themes := extractor.ExtractThemes("I was standing at the edge of the ocean watching waves")

	assert.Contains(t, themes, "water")
}

func TestExtractThemes_DetectsMultipleCategories(t *testing.T) {
	extractor := NewKeywordThemeExtractor()

	themes := extractor.ExtractThemes("I had to run from my brother through a dark house near the river")

	assert.Contains(t, themes, "chase")
	assert.Contains(t, themes, "family")
	assert.Contains(t, themes, "fear")
	assert.Contains(t, themes, "home")
	assert.Contains(t, themes, "water")
}

func TestExtractThemes_ResultIsAlphabetical(t *testing.T) {
	extractor := NewKeywordThemeExtractor()

	themes := extractor.ExtractThemes("flying over the ocean road with my mother")

	assert.True(t, sort.StringsAreSorted(themes), "themes should be alphabetical, got %v", themes)
}

func TestExtractThemes_CapsAtFive(t *testing.T) {
	extractor := NewKeywordThemeExtractor()

	// Hits all seven categories
	themes := extractor.ExtractThemes("afraid of the flood while flying pursued by my father on the road to our house")

	assert.LessOrEqual(t, len(themes), 5)
	assert.Len(t, themes, 5)
}

func TestExtractThemes_FallbackWhenNoMatch(t *testing.T) {
	extractor := NewKeywordThemeExtractor()

	themes := extractor.ExtractThemes("lorem ipsum dolor sit amet")

	assert.Equal(t, []string{"memory", "subconscious", "symbolism"}, themes)
}

func TestExtractThemes_WholeTokenMatchOnly(t *testing.T) {
	extractor := NewKeywordThemeExtractor()

	// "waterfall" is not the whole token "water"
	themes := extractor.ExtractThemes("a waterfall in the distance")

	assert.Equal(t, []string{"memory", "subconscious", "symbolism"}, themes)
}

func TestExtractThemes_CaseInsensitive(t *testing.T) {
	extractor := NewKeywordThemeExtractor()

	themes := extractor.ExtractThemes("The OCEAN was calm")

	assert.Contains(t, themes, "water")
}

func TestExtractThemes_EmptyInput(t *testing.T) {
	extractor := NewKeywordThemeExtractor()

	themes := extractor.ExtractThemes("")

	assert.Equal(t, []string{"memory", "subconscious", "symbolism"}, themes)
}
