package services

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	domainservices "dreamvault/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type insightFixture struct {
	dreams  *dreamFixture
	service *InsightService
}

func newInsightFixture(t *testing.T) *insightFixture {
	t.Helper()
	dreams := newDreamFixture()
	templates := domainservices.NewTemplateGenerator(rand.New(rand.NewSource(7)))
	extractor := domainservices.NewKeywordThemeExtractor()
	scorer := domainservices.NewLexiconScorer()
	generator := domainservices.NewHeuristicGenerator(extractor, scorer, templates)
	return &insightFixture{
		dreams: dreams,
		service: NewInsightService(
			dreams.service, generator, extractor, scorer,
			5*time.Millisecond, zap.NewNop(),
		),
	}
}

func TestInsightService_InterpretDream(t *testing.T) {
	f := newInsightFixture(t)
	dream, err := f.dreams.service.CreateDream(context.Background(), "user-1", "The Ocean", "I was swimming in a calm ocean full of light", nil, "")
	require.NoError(t, err)

	handle, err := f.service.InterpretDream(context.Background(), "user-1", dream.ID())
	require.NoError(t, err)

	insight, err := handle.Await(context.Background())
	require.NoError(t, err)
	assert.Contains(t, insight.Text, "Your dream about the ocean")
	assert.Contains(t, insight.Themes, "water")
	assert.Equal(t, domainservices.SentimentPositive, insight.Sentiment)
}

func TestInsightService_InterpretDream_UnknownEntry(t *testing.T) {
	f := newInsightFixture(t)
	dream, err := f.dreams.service.CreateDream(context.Background(), "user-1", "Falling", "body", nil, "")
	require.NoError(t, err)

	_, err = f.service.InterpretDream(context.Background(), "user-2", dream.ID())

	assert.Error(t, err)
}

func TestInsightHandle_AwaitHonorsContext(t *testing.T) {
	f := newInsightFixture(t)
	dream, err := f.dreams.service.CreateDream(context.Background(), "user-1", "Falling", "body", nil, "")
	require.NoError(t, err)

	handle, err := f.service.InterpretDream(context.Background(), "user-1", dream.ID())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = handle.Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// The result is still deliverable on a later Await
	insight, err := handle.Await(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, insight.Text)
}

func TestInsightService_GenerateHoroscope_NoEntries(t *testing.T) {
	f := newInsightFixture(t)

	handle, err := f.service.GenerateHoroscope(context.Background(), "user-1")
	require.NoError(t, err)

	insight, err := handle.Await(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, insight.Text)
	// Without an entry the text never references a dream
	assert.False(t, strings.Contains(insight.Text, "recent dream"))
}

func TestInsightService_GenerateHoroscope_WithEntry(t *testing.T) {
	f := newInsightFixture(t)
	_, err := f.dreams.service.CreateDream(context.Background(), "user-1", "Falling", "body", nil, "")
	require.NoError(t, err)

	handle, err := f.service.GenerateHoroscope(context.Background(), "user-1")
	require.NoError(t, err)

	insight, err := handle.Await(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, insight.Text)
}

func TestInsightService_SaveInterpretation(t *testing.T) {
	f := newInsightFixture(t)
	dream, err := f.dreams.service.CreateDream(context.Background(), "user-1", "Falling", "body", nil, "")
	require.NoError(t, err)

	err = f.service.SaveInterpretation(context.Background(), "user-1", dream.ID(), "You fear losing control.", []string{"flying"})
	require.NoError(t, err)

	stored, err := f.dreams.repo.GetByID(context.Background(), dream.ID())
	require.NoError(t, err)
	assert.True(t, stored.IsInterpreted())
	assert.Equal(t, "You fear losing control.", stored.Interpretation())
	assert.Contains(t, f.dreams.bus.eventTypes(), "dream.interpretation_saved")
}

func TestInsightService_SaveInterpretation_Idempotent(t *testing.T) {
	f := newInsightFixture(t)
	dream, err := f.dreams.service.CreateDream(context.Background(), "user-1", "Falling", "body", nil, "")
	require.NoError(t, err)

	require.NoError(t, f.service.SaveInterpretation(context.Background(), "user-1", dream.ID(), "Same text.", nil))
	before := len(f.dreams.bus.published)

	require.NoError(t, f.service.SaveInterpretation(context.Background(), "user-1", dream.ID(), "Same text.", nil))

	assert.Equal(t, before, len(f.dreams.bus.published), "re-saving identical text must publish nothing")
}
