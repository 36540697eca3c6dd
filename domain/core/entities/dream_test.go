package entities

import (
	"testing"
	"time"

	"dreamvault/domain/core/valueobjects"
	"dreamvault/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustContent(t *testing.T, title, body string) valueobjects.DreamContent {
	t.Helper()
	content, err := valueobjects.NewDreamContent(title, body)
	require.NoError(t, err)
	return content
}

func TestNewDream(t *testing.T) {
	content := mustContent(t, "Falling", "I was falling through clouds")

	dream, err := NewDream("user-1", content)

	require.NoError(t, err)
	assert.False(t, dream.ID().IsZero())
	assert.Equal(t, "user-1", dream.UserID())
	assert.Equal(t, "Falling", dream.Content().Title())
	assert.False(t, dream.IsInterpreted())
	assert.Empty(t, dream.Interpretation())

	raised := dream.GetUncommittedEvents()
	require.Len(t, raised, 1)
	assert.Equal(t, "dream.recorded", raised[0].GetEventType())
}

func TestNewDream_RequiresUserID(t *testing.T) {
	content := mustContent(t, "Falling", "body")

	_, err := NewDream("", content)

	assert.Error(t, err)
}

func TestDream_Tags(t *testing.T) {
	dream, err := NewDream("user-1", mustContent(t, "Falling", "body"))
	require.NoError(t, err)

	require.NoError(t, dream.AddTag("lucid"))
	require.NoError(t, dream.AddTag("recurring"))
	// Duplicate appends are skipped
	require.NoError(t, dream.AddTag("lucid"))

	assert.Equal(t, []string{"lucid", "recurring"}, dream.GetTags())
	assert.True(t, dream.HasTag("lucid"))

	dream.RemoveTag("lucid")
	assert.Equal(t, []string{"recurring"}, dream.GetTags())
	assert.False(t, dream.HasTag("lucid"))
}

func TestDream_AddTag_RejectsEmpty(t *testing.T) {
	dream, err := NewDream("user-1", mustContent(t, "Falling", "body"))
	require.NoError(t, err)

	assert.Error(t, dream.AddTag("   "))
}

func TestDream_SaveInterpretation(t *testing.T) {
	dream, err := NewDream("user-1", mustContent(t, "Falling", "body"))
	require.NoError(t, err)
	dream.MarkEventsAsCommitted()

	require.NoError(t, dream.SaveInterpretation("You fear losing control.", []string{"flying"}))

	assert.True(t, dream.IsInterpreted())
	assert.Equal(t, "You fear losing control.", dream.Interpretation())

	raised := dream.GetUncommittedEvents()
	require.Len(t, raised, 1)
	assert.Equal(t, "dream.interpretation_saved", raised[0].GetEventType())
}

func TestDream_SaveInterpretation_IdempotentOnSameText(t *testing.T) {
	dream, err := NewDream("user-1", mustContent(t, "Falling", "body"))
	require.NoError(t, err)
	require.NoError(t, dream.SaveInterpretation("Same text.", nil))
	dream.MarkEventsAsCommitted()

	require.NoError(t, dream.SaveInterpretation("Same text.", nil))

	assert.Empty(t, dream.GetUncommittedEvents(), "saving identical text must not raise a second event")
	assert.Equal(t, "Same text.", dream.Interpretation())
}

func TestDream_UpdateContent(t *testing.T) {
	dream, err := NewDream("user-1", mustContent(t, "Falling", "body"))
	require.NoError(t, err)
	dream.MarkEventsAsCommitted()

	require.NoError(t, dream.UpdateContent(mustContent(t, "Flying", "new body")))

	assert.Equal(t, "Flying", dream.Content().Title())
	raised := dream.GetUncommittedEvents()
	require.Len(t, raised, 1)
	assert.Equal(t, "dream.updated", raised[0].GetEventType())
}

func TestReconstructDream_PreservesState(t *testing.T) {
	id := valueobjects.NewDreamID()
	created := time.Now().Add(-48 * time.Hour)
	updated := time.Now().Add(-24 * time.Hour)

	dream, err := ReconstructDream(
		id, "user-1",
		mustContent(t, "Falling", "body"),
		[]string{"lucid"}, "anxious", true, "stored text",
		created, updated,
	)

	require.NoError(t, err)
	assert.True(t, dream.ID().Equals(id))
	assert.Equal(t, "anxious", dream.Mood())
	assert.True(t, dream.IsInterpreted())
	assert.Equal(t, "stored text", dream.Interpretation())
	assert.Equal(t, created, dream.CreatedAt())
	assert.Empty(t, dream.GetUncommittedEvents())
}

var _ events.DomainEvent = events.DreamRecorded{}
