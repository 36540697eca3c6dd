package services

import (
	"context"
	"testing"

	pkgerrors "dreamvault/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type dreamFixture struct {
	service *DreamService
	repo    *fakeDreamRepo
	bus     *fakeEventBus
}

func newDreamFixture() *dreamFixture {
	repo := newFakeDreamRepo()
	bus := newFakeEventBus()
	return &dreamFixture{
		service: NewDreamService(repo, bus, zap.NewNop()),
		repo:    repo,
		bus:     bus,
	}
}

func strPtr(s string) *string { return &s }

func TestDreamService_CreateDream(t *testing.T) {
	f := newDreamFixture()

	dream, err := f.service.CreateDream(context.Background(), "user-1", "Falling", "I was falling through clouds", []string{"lucid"}, "anxious")

	require.NoError(t, err)
	assert.Equal(t, "Falling", dream.Content().Title())
	assert.Equal(t, []string{"lucid"}, dream.GetTags())
	assert.Equal(t, "anxious", dream.Mood())
	assert.Equal(t, []string{"dream.recorded"}, f.bus.eventTypes())

	stored, err := f.repo.GetByID(context.Background(), dream.ID())
	require.NoError(t, err)
	assert.Equal(t, dream.ID().String(), stored.ID().String())
}

func TestDreamService_CreateDream_RejectsEmptyTitle(t *testing.T) {
	f := newDreamFixture()

	_, err := f.service.CreateDream(context.Background(), "user-1", "  ", "body", nil, "")

	assert.True(t, pkgerrors.IsValidation(err))
}

func TestDreamService_GetDream_OwnershipMismatchReadsAsAbsent(t *testing.T) {
	f := newDreamFixture()
	dream, err := f.service.CreateDream(context.Background(), "user-1", "Falling", "body", nil, "")
	require.NoError(t, err)

	_, err = f.service.GetDream(context.Background(), "user-2", dream.ID())

	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestDreamService_UpdateDream_PartialFields(t *testing.T) {
	f := newDreamFixture()
	dream, err := f.service.CreateDream(context.Background(), "user-1", "Falling", "original body", []string{"lucid"}, "anxious")
	require.NoError(t, err)

	updated, err := f.service.UpdateDream(context.Background(), "user-1", dream.ID(), strPtr("Flying"), nil, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "Flying", updated.Content().Title())
	// Untouched fields survive a partial edit
	assert.Equal(t, "original body", updated.Content().Body())
	assert.Equal(t, []string{"lucid"}, updated.GetTags())
	assert.Equal(t, "anxious", updated.Mood())
}

func TestDreamService_UpdateDream_ReplacesTags(t *testing.T) {
	f := newDreamFixture()
	dream, err := f.service.CreateDream(context.Background(), "user-1", "Falling", "body", []string{"lucid"}, "")
	require.NoError(t, err)

	tags := []string{"recurring", "vivid"}
	updated, err := f.service.UpdateDream(context.Background(), "user-1", dream.ID(), nil, nil, &tags, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"recurring", "vivid"}, updated.GetTags())
}

func TestDreamService_DeleteDream_PublishesDeletion(t *testing.T) {
	f := newDreamFixture()
	dream, err := f.service.CreateDream(context.Background(), "user-1", "Falling", "body", nil, "")
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteDream(context.Background(), "user-1", dream.ID()))

	_, err = f.repo.GetByID(context.Background(), dream.ID())
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.Contains(t, f.bus.eventTypes(), "dream.deleted")
}

func TestDreamService_ListDreams_NewestFirst(t *testing.T) {
	f := newDreamFixture()
	first, err := f.service.CreateDream(context.Background(), "user-1", "First", "body", nil, "")
	require.NoError(t, err)
	second, err := f.service.CreateDream(context.Background(), "user-1", "Second", "body", nil, "")
	require.NoError(t, err)
	_, err = f.service.CreateDream(context.Background(), "user-2", "Other", "body", nil, "")
	require.NoError(t, err)

	dreams, err := f.service.ListDreams(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, dreams, 2)
	assert.Equal(t, second.ID().String(), dreams[0].ID().String())
	assert.Equal(t, first.ID().String(), dreams[1].ID().String())
}
