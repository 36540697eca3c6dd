package services

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestTemplateGenerator() *TemplateGenerator {
	return NewTemplateGenerator(rand.New(rand.NewSource(42)))
}

func TestTemplateGenerator_InterpretContainsLowercasedTitle(t *testing.T) {
	gen := newTestTemplateGenerator()

	for i := 0; i < 20; i++ {
		text := gen.Interpret("Falling From The Sky", "some body")
		assert.NotEmpty(t, text)
		assert.Contains(t, text, "falling from the sky")
	}
}

func TestTemplateGenerator_InterpretEmptyTitleFallsBack(t *testing.T) {
	gen := newTestTemplateGenerator()

	assert.Equal(t, FallbackInterpretation, gen.Interpret("   ", "body"))
}

func TestTemplateGenerator_HoroscopeWithoutDreamNeverMentionsEntry(t *testing.T) {
	gen := newTestTemplateGenerator()

	for i := 0; i < 50; i++ {
		text := gen.Horoscope("", false)
		assert.NotEmpty(t, text)
		assert.NotContains(t, text, "%s")
		assert.NotContains(t, text, "your recent dream")
	}
}

func TestTemplateGenerator_HoroscopePoolGrowsByOneWithDream(t *testing.T) {
	gen := newTestTemplateGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		seen[gen.Horoscope("Ocean", true)] = true
	}

	// 5 base templates plus exactly one entry-aware variant
	assert.Len(t, seen, len(horoscopeTemplates)+1)

	var withDream int
	for text := range seen {
		if strings.Contains(text, "ocean") {
			withDream++
		}
	}
	assert.Equal(t, 1, withDream)
}

type fixedScorer struct{ score float64 }

func (s fixedScorer) Score(string) float64 { return s.score }

func newHeuristic(score float64) *HeuristicGenerator {
	return NewHeuristicGenerator(NewKeywordThemeExtractor(), fixedScorer{score}, newTestTemplateGenerator())
}

func TestHeuristicGenerator_PositiveIntro(t *testing.T) {
	gen := newHeuristic(0.5)

	text := gen.Interpret("Falling", "I dreamt of falling through the sky")

	assert.True(t, strings.HasPrefix(text, "Your dream about falling carries a distinctly hopeful tone."),
		"unexpected intro: %s", text)
}

func TestHeuristicGenerator_NegativeIntro(t *testing.T) {
	gen := newHeuristic(-0.8)

	text := gen.Interpret("The Chase", "pursued through endless corridors")

	assert.True(t, strings.HasPrefix(text, "Your dream about the chase reveals tension"), "unexpected intro: %s", text)
}

func TestHeuristicGenerator_NeutralIntro(t *testing.T) {
	gen := newHeuristic(0)

	text := gen.Interpret("Gray Rooms", "rooms and corridors without end")

	assert.True(t, strings.HasPrefix(text, "Your dream about gray rooms sits in a reflective"), "unexpected intro: %s", text)
}

func TestHeuristicGenerator_ThemeKeyedBody(t *testing.T) {
	gen := newHeuristic(0)

	text := gen.Interpret("The Sea", "swimming far from shore in the ocean")

	assert.Contains(t, text, "Water moving through a dream")
}

func TestHeuristicGenerator_GenericBodyWhenNoRuleMatches(t *testing.T) {
	gen := newHeuristic(0)

	// "mother" yields the family theme, which no body rule covers
	text := gen.Interpret("Family Dinner", "my mother at the table")

	assert.Contains(t, text, genericBody)
}

func TestHeuristicGenerator_AlwaysEndsWithClosing(t *testing.T) {
	gen := newHeuristic(0.9)

	text := gen.Interpret("Anything", "some dream text")

	assert.True(t, strings.HasSuffix(text, closingSentence))
}

func TestHeuristicGenerator_DegenerateInputFallsBack(t *testing.T) {
	gen := newHeuristic(0.9)

	assert.Equal(t, FallbackInterpretation, gen.Interpret("", ""))
	assert.Equal(t, FallbackInterpretation, gen.Interpret("Title", "   "))
}
