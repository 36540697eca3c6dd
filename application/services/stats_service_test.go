package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStatsService_GetProfileStats(t *testing.T) {
	dreams := newDreamFixture()
	alarms := newAlarmFixture(true)
	stats := NewStatsService(dreams.repo, alarms.repo, zap.NewNop())

	d1, err := dreams.service.CreateDream(context.Background(), "user-1", "Falling", "body", []string{"lucid", "recurring"}, "")
	require.NoError(t, err)
	_, err = dreams.service.CreateDream(context.Background(), "user-1", "Flying", "body", []string{"lucid"}, "")
	require.NoError(t, err)
	_, err = dreams.service.CreateDream(context.Background(), "user-2", "Other", "body", []string{"lucid"}, "")
	require.NoError(t, err)
	require.NoError(t, d1.SaveInterpretation("text", nil))
	require.NoError(t, dreams.repo.Save(context.Background(), d1))

	_, err = alarms.service.CreateAlarm(context.Background(), "user-1", 7, 30, "Morning", true)
	require.NoError(t, err)
	_, err = alarms.service.CreateAlarm(context.Background(), "user-1", 22, 0, "Night", false)
	require.NoError(t, err)

	result, err := stats.GetProfileStats(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, 2, result.DreamsRecorded)
	assert.Equal(t, 1, result.DreamsInterpreted)
	assert.Equal(t, 1, result.ActiveAlarms)
	assert.Equal(t, 2, result.UniqueTags)
	// Ranked count-descending, ties broken alphabetically
	require.Len(t, result.TopTags, 2)
	assert.Equal(t, TagCount{Tag: "lucid", Count: 2}, result.TopTags[0])
	assert.Equal(t, TagCount{Tag: "recurring", Count: 1}, result.TopTags[1])
}

func TestStatsService_GetProfileStats_EmptyJournal(t *testing.T) {
	dreams := newDreamFixture()
	alarms := newAlarmFixture(true)
	stats := NewStatsService(dreams.repo, alarms.repo, zap.NewNop())

	result, err := stats.GetProfileStats(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, 0, result.DreamsRecorded)
	assert.Equal(t, 0, result.DreamsInterpreted)
	assert.Equal(t, 0, result.ActiveAlarms)
	assert.Empty(t, result.TopTags)
}
