package integration

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"dreamvault/application/services"
	domainservices "dreamvault/domain/services"
	"dreamvault/infrastructure/persistence/memory"
	pkgerrors "dreamvault/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// env wires the full service stack against in-memory infrastructure
type env struct {
	dreams    *services.DreamService
	alarms    *services.AlarmService
	insights  *services.InsightService
	stats     *services.StatsService
	scheduler *memory.Scheduler
	bus       *memory.EventBus
}

func newEnv(t *testing.T, permissionGranted bool) *env {
	t.Helper()

	logger := zap.NewNop()
	dreamRepo := memory.NewDreamRepository()
	alarmRepo := memory.NewAlarmRepository()
	scheduler := memory.NewScheduler()
	bus := memory.NewEventBus()

	themes := domainservices.NewKeywordThemeExtractor()
	scorer := domainservices.NewLexiconScorer()
	templates := domainservices.NewTemplateGenerator(rand.New(rand.NewSource(42)))
	generator := domainservices.NewHeuristicGenerator(themes, scorer, templates)

	dreams := services.NewDreamService(dreamRepo, bus, logger)

	return &env{
		dreams:    dreams,
		alarms:    services.NewAlarmService(alarmRepo, scheduler, bus, permissionGranted, logger),
		insights:  services.NewInsightService(dreams, generator, themes, scorer, 5*time.Millisecond, logger),
		stats:     services.NewStatsService(dreamRepo, alarmRepo, logger),
		scheduler: scheduler,
		bus:       bus,
	}
}

func TestJournalLifecycle(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, true)
	userID := "user-journal"

	dream, err := e.dreams.CreateDream(ctx, userID,
		"Flying over the ocean",
		"I was flying above a calm ocean, full of light and joy.",
		[]string{"lucid"}, "happy")
	require.NoError(t, err)

	t.Run("interpretation resolves with analysis", func(t *testing.T) {
		handle, err := e.insights.InterpretDream(ctx, userID, dream.ID())
		require.NoError(t, err)

		insight, err := handle.Await(ctx)
		require.NoError(t, err)

		assert.NotEmpty(t, insight.Text)
		assert.Contains(t, insight.Themes, "flying")
		assert.Contains(t, insight.Themes, "water")
		assert.Equal(t, domainservices.SentimentPositive, insight.Sentiment)
	})

	t.Run("saving the interpretation marks the entry", func(t *testing.T) {
		err := e.insights.SaveInterpretation(ctx, userID, dream.ID(),
			"A sign of freedom.", []string{"flying", "water"})
		require.NoError(t, err)

		saved, err := e.dreams.GetDream(ctx, userID, dream.ID())
		require.NoError(t, err)
		assert.True(t, saved.IsInterpreted())
		assert.Equal(t, "A sign of freedom.", saved.Interpretation())
	})

	t.Run("saving the same text again is a no-op", func(t *testing.T) {
		before := len(e.bus.Published())

		err := e.insights.SaveInterpretation(ctx, userID, dream.ID(),
			"A sign of freedom.", []string{"flying", "water"})
		require.NoError(t, err)

		saved, err := e.dreams.GetDream(ctx, userID, dream.ID())
		require.NoError(t, err)
		assert.Equal(t, "A sign of freedom.", saved.Interpretation())
		assert.Len(t, e.bus.Published(), before)
	})

	t.Run("stats reflect the journal", func(t *testing.T) {
		stats, err := e.stats.GetProfileStats(ctx, userID)
		require.NoError(t, err)

		assert.Equal(t, 1, stats.DreamsRecorded)
		assert.Equal(t, 1, stats.DreamsInterpreted)
		require.NotEmpty(t, stats.TopTags)
		assert.Equal(t, "lucid", stats.TopTags[0].Tag)
	})

	t.Run("other users see nothing", func(t *testing.T) {
		_, err := e.dreams.GetDream(ctx, "someone-else", dream.ID())
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestAlarmLifecycle(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, true)
	userID := "user-alarm"

	alarm, err := e.alarms.CreateAlarm(ctx, userID, 7, 30, "Morning pages", true)
	require.NoError(t, err)

	t.Run("enabled rule holds exactly one registration", func(t *testing.T) {
		require.Equal(t, 1, e.scheduler.Count())

		reg, ok := e.scheduler.Get(alarm.ID().String())
		require.True(t, ok)
		assert.Equal(t, 7, reg.Hour)
		assert.Equal(t, 30, reg.Minute)
	})

	t.Run("editing moves the single registration", func(t *testing.T) {
		_, err := e.alarms.UpdateAlarm(ctx, userID, alarm.ID(), 22, 15, "Evening pages")
		require.NoError(t, err)

		require.Equal(t, 1, e.scheduler.Count())
		reg, ok := e.scheduler.Get(alarm.ID().String())
		require.True(t, ok)
		assert.Equal(t, 22, reg.Hour)
		assert.Equal(t, 15, reg.Minute)
		assert.Equal(t, "Evening pages", reg.Label)
	})

	t.Run("disabling cancels the registration", func(t *testing.T) {
		_, err := e.alarms.ToggleAlarm(ctx, userID, alarm.ID(), false)
		require.NoError(t, err)
		assert.Equal(t, 0, e.scheduler.Count())
	})

	t.Run("re-enabling reinstalls it", func(t *testing.T) {
		_, err := e.alarms.ToggleAlarm(ctx, userID, alarm.ID(), true)
		require.NoError(t, err)
		assert.Equal(t, 1, e.scheduler.Count())
	})

	t.Run("deletion cancels and removes the rule", func(t *testing.T) {
		err := e.alarms.DeleteAlarm(ctx, userID, alarm.ID())
		require.NoError(t, err)

		assert.Equal(t, 0, e.scheduler.Count())
		_, err = e.alarms.GetAlarm(ctx, userID, alarm.ID())
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestAlarmWithoutSchedulerPermission(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, false)
	userID := "user-denied"

	alarm, err := e.alarms.CreateAlarm(ctx, userID, 6, 0, "", true)

	// The rule commits; the registration failure surfaces as a warning
	require.NotNil(t, alarm)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsType(err, pkgerrors.ErrorTypePermission))
	assert.Equal(t, 0, e.scheduler.Count())

	stored, getErr := e.alarms.GetAlarm(ctx, userID, alarm.ID())
	require.NoError(t, getErr)
	assert.True(t, stored.IsEnabled())
}

func TestHoroscopeWithAndWithoutEntries(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, true)
	userID := "user-horoscope"

	t.Run("empty journal still yields a reading", func(t *testing.T) {
		handle, err := e.insights.GenerateHoroscope(ctx, userID)
		require.NoError(t, err)

		insight, err := handle.Await(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, insight.Text)
	})

	t.Run("entries color the reading", func(t *testing.T) {
		_, err := e.dreams.CreateDream(ctx, userID,
			"The endless staircase",
			"I kept climbing a dark staircase, afraid of falling.",
			nil, "")
		require.NoError(t, err)

		handle, err := e.insights.GenerateHoroscope(ctx, userID)
		require.NoError(t, err)

		insight, err := handle.Await(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, insight.Text)
	})
}
