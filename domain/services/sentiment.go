package services

import "strings"

// SentimentBucket is the three-way classification of a scored text
type SentimentBucket string

const (
	SentimentPositive SentimentBucket = "positive"
	SentimentNegative SentimentBucket = "negative"
	SentimentNeutral  SentimentBucket = "neutral"
)

// SentimentScorer is the pluggable scoring capability. Implementations
// return a scalar in [-1, 1]. The concrete scorer is an optional
// dependency; absence degrades insight generation to the template
// strategy.
type SentimentScorer interface {
	Score(text string) float64
}

// BucketScore maps a scalar score onto the three-way classification.
// Thresholds: score < -0.3 negative, score > 0.3 positive, else neutral.
func BucketScore(score float64) SentimentBucket {
	switch {
	case score < -0.3:
		return SentimentNegative
	case score > 0.3:
		return SentimentPositive
	default:
		return SentimentNeutral
	}
}

// LexiconScorer scores text against embedded positive and negative word
// lists. It is deliberately small: a dream journal needs a coarse mood
// signal, not a calibrated model.
type LexiconScorer struct {
	positive map[string]bool
	negative map[string]bool
}

// NewLexiconScorer creates a scorer with the default embedded lexicon
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{
		positive: toSet(positiveWords),
		negative: toSet(negativeWords),
	}
}

// Score returns (positive hits - negative hits) / total hits, clamped to
// [-1, 1]. Text with no lexicon hits scores 0.
func (s *LexiconScorer) Score(text string) float64 {
	var pos, neg int
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?\"'()")
		if s.positive[word] {
			pos++
		} else if s.negative[word] {
			neg++
		}
	}

	total := pos + neg
	if total == 0 {
		return 0
	}

	score := float64(pos-neg) / float64(total)
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}
	return score
}

var positiveWords = []string{
	"happy", "joy", "joyful", "peaceful", "calm", "beautiful", "wonderful",
	"love", "loved", "warm", "bright", "light", "free", "flying", "soaring",
	"safe", "laughing", "laughter", "smile", "smiling", "gentle", "golden",
	"sunshine", "glowing", "hope", "hopeful", "excited", "delight", "serene",
	"comfort", "comforting", "friend", "friends", "success", "winning",
}

var negativeWords = []string{
	"afraid", "fear", "scared", "scary", "terror", "terrified", "dark",
	"darkness", "falling", "lost", "alone", "trapped", "chased", "chasing",
	"danger", "dangerous", "dead", "death", "dying", "cry", "crying",
	"anxious", "anxiety", "panic", "nightmare", "monster", "drowning",
	"screaming", "scream", "threat", "pain", "hurt", "angry", "anger", "sad",
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
