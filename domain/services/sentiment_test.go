package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  SentimentBucket
	}{
		{"strongly positive", 0.9, SentimentPositive},
		{"just above threshold", 0.31, SentimentPositive},
		{"at positive threshold", 0.3, SentimentNeutral},
		{"zero", 0, SentimentNeutral},
		{"at negative threshold", -0.3, SentimentNeutral},
		{"just below threshold", -0.31, SentimentNegative},
		{"strongly negative", -1, SentimentNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketScore(tt.score))
		})
	}
}

func TestLexiconScorer_PositiveText(t *testing.T) {
	scorer := NewLexiconScorer()

	score := scorer.Score("I felt happy and peaceful, soaring over a beautiful golden field")

	assert.Greater(t, score, 0.3)
	assert.LessOrEqual(t, score, 1.0)
}

func TestLexiconScorer_NegativeText(t *testing.T) {
	scorer := NewLexiconScorer()

	score := scorer.Score("I was scared and alone in the dark, trapped in a nightmare")

	assert.Less(t, score, -0.3)
	assert.GreaterOrEqual(t, score, -1.0)
}

func TestLexiconScorer_NoLexiconHits(t *testing.T) {
	scorer := NewLexiconScorer()

	assert.Equal(t, 0.0, scorer.Score("the table was next to the chair"))
}

func TestLexiconScorer_StripsPunctuation(t *testing.T) {
	scorer := NewLexiconScorer()

	assert.Greater(t, scorer.Score("So happy!"), 0.0)
}

func TestLexiconScorer_MixedText(t *testing.T) {
	scorer := NewLexiconScorer()

	// One positive, one negative hit
	score := scorer.Score("happy then scared")

	assert.Equal(t, SentimentNeutral, BucketScore(score))
}
