package services

import (
	"math/rand"
	"strings"
)

// FallbackInterpretation is returned verbatim for degenerate input;
// generation never fails on well-formed text.
const FallbackInterpretation = "Your dream appears to contain significant symbolism that reflects your inner thoughts and emotions."

// FallbackHoroscope is the degenerate-input counterpart for horoscopes
const FallbackHoroscope = "The cosmic energies are shifting in your favor. Stay attentive to signs that guide you toward your true path."

// interpretationTemplates each carry one interpolation slot for the
// lower-cased entry title
var interpretationTemplates = []string{
	"Your dream about %s suggests that you may be processing feelings of uncertainty in your waking life. The symbols in your dream point to a desire for clarity and resolution.",
	"The %s in your dream represents transformation and change. This dream may be reflecting your current state of personal growth and evolution.",
	"Dreams involving %s often symbolize hidden fears or desires. Consider what aspects of yourself might be represented by the elements in this dream.",
	"This dream suggests you're working through unresolved emotions related to %s. Pay attention to how you felt during the dream - these emotions may be key to understanding what your subconscious is processing.",
	"The imagery of %s in your dream could be connected to your creative potential. Your subconscious may be encouraging you to explore new ideas or perspectives.",
}

// horoscopeTemplates are entry-independent
var horoscopeTemplates = []string{
	"The stars align in your favor today. Be open to unexpected opportunities and trust your intuition when making decisions.",
	"A period of reflection will serve you well. Take time to consider your goals and the steps needed to achieve them.",
	"Communication is highlighted today. Express your thoughts clearly and be receptive to feedback from others.",
	"Focus on balance in your life. Ensure you're giving attention to both your responsibilities and personal well-being.",
	"Creativity flows strongly now. Channel this energy into projects that inspire you and bring joy.",
}

// dreamHoroscopeTemplate is appended to the pool when an entry is supplied
const dreamHoroscopeTemplate = "Your recent dream about %s suggests a period of transformation. Embrace change and remain adaptable as new opportunities emerge."

// sentiment-keyed intro sentences, interpolating the lower-cased title
const (
	introPositive = "Your dream about %s carries a distinctly hopeful tone."
	introNegative = "Your dream about %s reveals tension your mind is still working through."
	introNeutral  = "Your dream about %s sits in a reflective, watchful register."
)

// closingSentence ends every heuristic interpretation
const closingSentence = "Sit with this imagery for a moment before the day pulls you away; dreams fade quickly, but what they point to rarely does."

// themeBodyRule maps sub-keywords found inside extracted themes to a
// fixed body sentence
type themeBodyRule struct {
	subs     []string
	sentence string
}

var themeBodyRules = []themeBodyRule{
	{[]string{"water", "flow"}, "Water moving through a dream usually tracks emotion moving through you - notice whether it felt like drifting or drowning."},
	{[]string{"fall", "fly"}, "Flight and falling are two readings of the same loss of footing: something in your waking life has left the ground."},
	{[]string{"chase", "run"}, "Being chased points at something you are postponing; the pursuer is rarely the real subject."},
	{[]string{"path", "journey", "travel"}, "Roads and journeys mark a decision in progress - the dream is rehearsing the direction you have not yet committed to."},
	{[]string{"light", "sun"}, "Light breaking into the scene suggests clarity arriving; whatever was obscured is becoming visible."},
}

// genericBody is used when no rule matches the extracted themes
const genericBody = "The recurring shapes here belong to your own private vocabulary of symbols; their meaning sits closer to you than to any dictionary."

// NarrativeGenerator produces interpretation and horoscope text for a
// dream entry. Implementations are side-effect free.
type NarrativeGenerator interface {
	Interpret(title, body string) string
	Horoscope(title string, hasDream bool) string
}

// TemplateGenerator is the zero-dependency strategy: a uniform random
// draw over a fixed phrase table.
type TemplateGenerator struct {
	rand *rand.Rand
}

// NewTemplateGenerator creates a template generator drawing from rng
func NewTemplateGenerator(rng *rand.Rand) *TemplateGenerator {
	return &TemplateGenerator{rand: rng}
}

// Interpret picks one interpretation template and interpolates the
// lower-cased title
func (g *TemplateGenerator) Interpret(title, body string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return FallbackInterpretation
	}
	template := interpretationTemplates[g.rand.Intn(len(interpretationTemplates))]
	return interpolate(template, title)
}

// Horoscope picks from the horoscope pool; when a dream is supplied the
// pool grows by exactly one entry-aware template.
func (g *TemplateGenerator) Horoscope(title string, hasDream bool) string {
	pool := horoscopeTemplates
	if hasDream {
		title = strings.TrimSpace(title)
		if title == "" {
			return FallbackHoroscope
		}
		pool = append(append([]string{}, horoscopeTemplates...), dreamHoroscopeTemplate)
	}

	picked := pool[g.rand.Intn(len(pool))]
	if strings.Contains(picked, "%s") {
		return interpolate(picked, title)
	}
	return picked
}

// HeuristicGenerator derives interpretation text from extracted themes
// and a sentiment bucket: intro + theme body + closing.
type HeuristicGenerator struct {
	themes    ThemeExtractor
	scorer    SentimentScorer
	templates *TemplateGenerator
}

// NewHeuristicGenerator creates the theme/sentiment-driven strategy.
// Horoscopes still draw from the template pools.
func NewHeuristicGenerator(themes ThemeExtractor, scorer SentimentScorer, templates *TemplateGenerator) *HeuristicGenerator {
	return &HeuristicGenerator{themes: themes, scorer: scorer, templates: templates}
}

// Interpret assembles intro, theme-keyed body, and closing sentence
func (g *HeuristicGenerator) Interpret(title, body string) string {
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(body) == "" {
		return FallbackInterpretation
	}

	var intro string
	switch BucketScore(g.scorer.Score(body)) {
	case SentimentPositive:
		intro = interpolate(introPositive, title)
	case SentimentNegative:
		intro = interpolate(introNegative, title)
	default:
		intro = interpolate(introNeutral, title)
	}

	return intro + " " + g.bodyForThemes(g.themes.ExtractThemes(body)) + " " + closingSentence
}

// Horoscope delegates to the template pools
func (g *HeuristicGenerator) Horoscope(title string, hasDream bool) string {
	return g.templates.Horoscope(title, hasDream)
}

// bodyForThemes returns the first matching rule sentence, in fixed rule
// order, or the generic fallback
func (g *HeuristicGenerator) bodyForThemes(themes []string) string {
	for _, rule := range themeBodyRules {
		for _, theme := range themes {
			for _, sub := range rule.subs {
				if strings.Contains(theme, sub) {
					return rule.sentence
				}
			}
		}
	}
	return genericBody
}

// interpolate substitutes the lower-cased title into a template's slot
func interpolate(template, title string) string {
	return strings.Replace(template, "%s", strings.ToLower(title), 1)
}
